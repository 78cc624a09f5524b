/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/json"
	"fmt"
)

// Kind is the closed set of element types. Drawing and audio are declared for
// compatibility with stored data but have no editor and ignore every gesture.
type Kind string

const (
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindSticker Kind = "sticker"
	KindDrawing Kind = "drawing"
	KindAudio   Kind = "audio"
)

// Editable reports whether the kind supports gestures and an editor.
func (k Kind) Editable() bool {
	switch k {
	case KindText, KindImage, KindSticker:
		return true
	}
	return false
}

// ElementData is the sealed variant carried by an Element. Only the types in
// this package implement it; consumers dispatch with a type switch.
type ElementData interface {
	Kind() Kind
	isElementData()
}

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

type TextData struct {
	Content         string    `json:"content"`
	FontFamily      string    `json:"fontFamily,omitempty"`
	FontSize        float64   `json:"fontSize,omitempty"` // px, 10..72
	Color           string    `json:"color,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	TextAlign       TextAlign `json:"textAlign,omitempty"`
	FontWeight      string    `json:"fontWeight,omitempty"`
	FontStyle       string    `json:"fontStyle,omitempty"`
}

// Filters are percentages; 100 leaves the image unchanged.
type Filters struct {
	Brightness float64 `json:"brightness,omitempty"`
	Contrast   float64 `json:"contrast,omitempty"`
	Saturation float64 `json:"saturation,omitempty"`
}

type ImageData struct {
	Src      string   `json:"src"`
	Alt      string   `json:"alt,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Rotation float64  `json:"rotation,omitempty"` // degrees, [0,360)
	Filters  *Filters `json:"filters,omitempty"`
}

type StickerData struct {
	Src      string  `json:"src"`
	Alt      string  `json:"alt,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
}

type DrawingPath struct {
	Points [][2]float64 `json:"points"`
	Color  string       `json:"color"`
	Width  float64      `json:"width"`
}

type DrawingData struct {
	Paths  []DrawingPath `json:"paths"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
}

type AudioData struct {
	Src      string  `json:"src"`
	Title    string  `json:"title,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// UnknownData keeps the payload of a type this build does not know so it
// survives a decode/encode cycle untouched.
type UnknownData struct {
	Type string
	Raw  json.RawMessage
}

func (TextData) Kind() Kind      { return KindText }
func (ImageData) Kind() Kind     { return KindImage }
func (StickerData) Kind() Kind   { return KindSticker }
func (DrawingData) Kind() Kind   { return KindDrawing }
func (AudioData) Kind() Kind     { return KindAudio }
func (u UnknownData) Kind() Kind { return Kind(u.Type) }

func (TextData) isElementData()    {}
func (ImageData) isElementData()   {}
func (StickerData) isElementData() {}
func (DrawingData) isElementData() {}
func (AudioData) isElementData()   {}
func (UnknownData) isElementData() {}

type wireElement struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	ZIndex int             `json:"zIndex"`
	Data   json.RawMessage `json:"data"`
}

// MarshalJSON encodes the element with its discriminant in "type".
func (e Element) MarshalJSON() ([]byte, error) {
	w := wireElement{ID: e.ID, Type: string(e.Kind()), X: e.X, Y: e.Y, ZIndex: e.ZIndex}
	switch d := e.Data.(type) {
	case nil:
		w.Data = json.RawMessage("null")
	case UnknownData:
		w.Data = d.Raw
		if len(w.Data) == 0 {
			w.Data = json.RawMessage("null")
		}
	default:
		raw, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("marshal %s data: %w", w.Type, err)
		}
		w.Data = raw
	}
	return json.Marshal(w)
}

// UnmarshalJSON selects the data variant from "type". Unrecognized types
// decode to UnknownData rather than failing.
func (e *Element) UnmarshalJSON(b []byte) error {
	var w wireElement
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	data, err := decodeData(Kind(w.Type), w.Data)
	if err != nil {
		return fmt.Errorf("element %s: %w", w.ID, err)
	}
	*e = Element{ID: w.ID, X: w.X, Y: w.Y, ZIndex: w.ZIndex, Data: data}
	return nil
}

func decodeData(k Kind, raw json.RawMessage) (ElementData, error) {
	switch k {
	case KindText:
		return decodeAs[TextData](raw)
	case KindImage:
		return decodeAs[ImageData](raw)
	case KindSticker:
		return decodeAs[StickerData](raw)
	case KindDrawing:
		return decodeAs[DrawingData](raw)
	case KindAudio:
		return decodeAs[AudioData](raw)
	default:
		return UnknownData{Type: string(k), Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}

func decodeAs[T ElementData](raw json.RawMessage) (ElementData, error) {
	var v T
	if len(raw) == 0 || string(raw) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s data: %w", v.Kind(), err)
	}
	return v, nil
}
