/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"log/slog"

	"goscrapbook/internal/domain"
	"goscrapbook/internal/vector"
)

// RotateStep turns id by one snap step. A rotation that is not yet on the
// grid snaps first, so the result is always quantized.
func (c *Controller) RotateStep(id string) bool {
	el, ok := c.lookup(id)
	if !ok {
		return false
	}
	rot, ok := rotationOf(el)
	if !ok {
		return false
	}
	c.commit(withRotation(el, c.quantize(vector.SnapToStep(rot, c.snap)+c.snap)))
	return true
}

// ScaleUp grows id by 10%.
func (c *Controller) ScaleUp(id string) bool { return c.scaleBy(id, domain.ScaleUpFactor) }

// ScaleDown shrinks id by 10%, never below the kind's floor.
func (c *Controller) ScaleDown(id string) bool { return c.scaleBy(id, domain.ScaleDownFactor) }

func (c *Controller) scaleBy(id string, f float64) bool {
	el, ok := c.lookup(id)
	if !ok {
		return false
	}
	c.commit(resized(el, f))
	return true
}

// Remove deletes id. Selection, edit state and a gesture on it are cleared.
// Unlike gestures, removal applies to any kind so placeholders can be deleted.
func (c *Controller) Remove(id string) bool {
	out, ok := domain.Remove(c.elems, id)
	if !ok {
		return false
	}
	if c.g != nil && c.g.id == id {
		c.release()
	}
	if c.active == id {
		c.active = ""
	}
	if c.editing == id {
		c.editing = ""
	}
	c.publish(out)
	c.log.Debug("element removed", slog.String("element", id))
	return true
}

// BackgroundDown handles a press on the canvas itself: any gesture ends and
// selection and edit mode are cleared. Callers only invoke it when the press
// did not land on an element or control.
func (c *Controller) BackgroundDown() {
	c.release()
	c.active = ""
	c.editing = ""
}

// DoubleTap puts id into edit mode and asks for its editor.
func (c *Controller) DoubleTap(id string) bool {
	el, ok := c.lookup(id)
	if !ok {
		return false
	}
	c.release()
	c.active = id
	c.editing = id
	if c.edit != nil {
		c.edit(el)
	}
	return true
}

// EndEdit leaves edit mode; the element stays selected.
func (c *Controller) EndEdit() { c.editing = "" }
