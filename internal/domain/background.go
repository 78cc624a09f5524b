/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Background is a page style token with a display name and base color.
type Background struct {
	Token string
	Name  string
	Color string
}

const DefaultBackground = "paper"

var Backgrounds = []Background{
	{Token: "paper", Name: "Paper", Color: "#fdf8ef"},
	{Token: "cream", Name: "Cream", Color: "#fef7e0"},
	{Token: "sage", Name: "Sage", Color: "#dfe8d5"},
	{Token: "lavender", Name: "Lavender", Color: "#e9e1f5"},
	{Token: "peach", Name: "Peach", Color: "#fde3d3"},
	{Token: "skyblue", Name: "Sky Blue", Color: "#dcecf8"},
}

// BackgroundFor resolves a token; unknown tokens report false and the paper background.
func BackgroundFor(token string) (Background, bool) {
	for _, b := range Backgrounds {
		if b.Token == token {
			return b, true
		}
	}
	return Backgrounds[0], false
}
