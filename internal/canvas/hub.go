/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import "goscrapbook/internal/vector"

// PointerEvent is one move report: one point for a mouse or single touch,
// two for a two-finger touch.
type PointerEvent struct {
	Points []vector.Pt
}

// Listener receives move and end events while a gesture is live.
type Listener struct {
	Move func(PointerEvent)
	End  func()
}

// Hub fans pointer events out to the listeners of the live gesture. Listeners
// exist only between gesture start and release; an idle canvas has none, so
// stray moves never reach stale gesture state.
//
// Hub is not safe for concurrent use; it is driven from the UI event thread.
type Hub struct {
	next      int
	listeners map[int]Listener
	order     []int
}

// Subscribe registers l and returns the function that removes it. Calling
// the returned function more than once is harmless.
func (h *Hub) Subscribe(l Listener) (unsubscribe func()) {
	if h.listeners == nil {
		h.listeners = make(map[int]Listener)
	}
	h.next++
	id := h.next
	h.listeners[id] = l
	h.order = append(h.order, id)
	return func() {
		if _, ok := h.listeners[id]; !ok {
			return
		}
		delete(h.listeners, id)
		for i, v := range h.order {
			if v == id {
				h.order = append(h.order[:i], h.order[i+1:]...)
				break
			}
		}
	}
}

// Listeners reports how many listeners are registered.
func (h *Hub) Listeners() int { return len(h.listeners) }

// Move dispatches a move to every listener in subscription order.
func (h *Hub) Move(pts ...vector.Pt) {
	ev := PointerEvent{Points: pts}
	for _, id := range h.snapshot() {
		if l, ok := h.listeners[id]; ok && l.Move != nil {
			l.Move(ev)
		}
	}
}

// End dispatches pointer-up / touch-end / touch-cancel.
func (h *Hub) End() {
	for _, id := range h.snapshot() {
		if l, ok := h.listeners[id]; ok && l.End != nil {
			l.End()
		}
	}
}

// snapshot lets listeners unsubscribe while being dispatched to.
func (h *Hub) snapshot() []int { return append([]int(nil), h.order...) }
