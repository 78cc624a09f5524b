/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goscrapbook/internal/domain"
	"goscrapbook/internal/vector"
)

func TestHitTestTopMostBodyWins(t *testing.T) {
	r := basic()
	views := r.RenderAll([]domain.Element{
		{ID: "low", X: 0, Y: 0, ZIndex: 1, Data: domain.StickerData{Width: 100, Height: 100}},
		{ID: "high", X: 50, Y: 50, ZIndex: 2, Data: domain.StickerData{Width: 100, Height: 100}},
	}, "", "")

	assert.Equal(t, Hit{ElementID: "high", Part: PartBody}, HitTest(views, vector.Pt{X: 75, Y: 75}))
	assert.Equal(t, Hit{ElementID: "low", Part: PartBody}, HitTest(views, vector.Pt{X: 10, Y: 10}))
	assert.Equal(t, Hit{Part: PartBackground}, HitTest(views, vector.Pt{X: 300, Y: 300}))
}

func TestHitTestEqualZPrefersLaterElement(t *testing.T) {
	views := basic().RenderAll([]domain.Element{
		{ID: "first", ZIndex: 1, Data: domain.StickerData{Width: 100, Height: 100}},
		{ID: "second", ZIndex: 1, Data: domain.StickerData{Width: 100, Height: 100}},
	}, "", "")
	assert.Equal(t, "second", HitTest(views, vector.Pt{X: 50, Y: 50}).ElementID)
}

func TestHitTestControlsAndHandles(t *testing.T) {
	r := basic()
	views := r.RenderAll([]domain.Element{
		{ID: "a", X: 100, Y: 200, ZIndex: 1, Data: domain.ImageData{Width: 200, Height: 100}},
		// covers the area where the active element's controls sit
		{ID: "cover", X: 0, Y: 0, ZIndex: 9, Data: domain.ImageData{Width: 400, Height: 190}},
	}, "a", "")

	var active View
	for _, v := range views {
		if v.ElementID == "a" {
			active = v
		}
	}
	require.Len(t, active.Controls, 5)
	for _, c := range active.Controls {
		h := HitTest(views, c.Center)
		assert.Equal(t, Hit{ElementID: "a", Part: PartControl, Control: c.Kind}, h)
	}
	assert.Equal(t, PartRotateHandle, HitTest(views, active.RotateHandle.Center).Part)
	assert.Equal(t, PartScaleHandle, HitTest(views, active.ScaleHandle.Center).Part)
	// the move icon is decoration; the body underneath is hit instead
	assert.Equal(t, Hit{ElementID: "a", Part: PartBody}, HitTest(views, *active.MoveIcon))
}

func TestHitTestRotatedBody(t *testing.T) {
	views := basic().RenderAll([]domain.Element{
		{ID: "bar", X: 0, Y: 40, Data: domain.StickerData{Width: 100, Height: 20, Rotation: 90}},
	}, "", "")
	assert.Equal(t, PartBody, HitTest(views, vector.Pt{X: 50, Y: 5}).Part)
	assert.Equal(t, PartBackground, HitTest(views, vector.Pt{X: 5, Y: 50}).Part)
}

func TestPartAndKindStrings(t *testing.T) {
	assert.Equal(t, "rotate-handle", PartRotateHandle.String())
	assert.Equal(t, "background", PartBackground.String())
	assert.Equal(t, "sticker", ViewSticker.String())
	assert.Equal(t, "Rotate 15°", ControlRotate.Label())
}
