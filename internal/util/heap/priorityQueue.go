package heap

// A min priority queue keyed by float64 priorities.
// Heap functions are based on the original Go implementation in the container/heap package.
// The original Go implementation is licensed under the BSD 3-Clause License, allowing use with modification, provided that the following is included:

// Copyright (c) 2009 The Go Authors. All rights reserved.
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
// "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
// LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
// A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
// LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
// DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
// THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

// An Item is something we manage in a priority queue.
// Items with equal priority come out in the order they were pushed, so
// the queue is deterministic for a given sequence of pushes.
type Item struct {
	Value    int     // The value of the item; arbitrary.
	Other    int     // A second value, for items that describe a pair.
	Priority float64 // The priority of the item in the queue.

	seq uint64
}

// A PriorityQueue holds Items, smallest priority first.
type PriorityQueue struct {
	items []*Item
	seq   uint64
}

// NewPriorityQueue creates an empty queue with room for capacity items.
func NewPriorityQueue(capacity int) *PriorityQueue {
	return &PriorityQueue{items: make([]*Item, 0, capacity)}
}

func (h *PriorityQueue) Len() int {
	return len(h.items)
}

// Push pushes the element x onto the heap.
// The complexity is O(log n) where n = h.Len().
func (h *PriorityQueue) Push(value, other int, priority float64) {
	h.seq++
	h.items = append(h.items, &Item{Value: value, Other: other, Priority: priority, seq: h.seq})
	h.up(len(h.items) - 1)
}

// Peek returns the minimum element without removing it, or nil if the queue is empty.
func (h *PriorityQueue) Peek() *Item {
	if len(h.items) == 0 {
		return nil
	}
	return h.items[0]
}

// Pop removes and returns the minimum element (according to less) from the heap.
// The complexity is O(log n) where n = h.Len().
func (h *PriorityQueue) Pop() *Item {
	if len(h.items) == 0 {
		return nil
	}
	n := len(h.items) - 1
	h.items[0], h.items[n] = h.items[n], h.items[0]
	h.down(0, n)

	item := h.items[n]
	h.items[n] = nil // avoid memory leak
	h.items = h.items[:n]

	return item
}

func (h *PriorityQueue) less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.seq < b.seq
}

func (h *PriorityQueue) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.items[i], h.items[j] = h.items[j], h.items[i]
		j = i
	}
}

func (h *PriorityQueue) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !h.less(j, i) {
			break
		}
		h.items[i], h.items[j] = h.items[j], h.items[i]
		i = j
	}
	return i > i0
}
