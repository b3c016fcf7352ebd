package search

import (
	"container/heap"

	"github.com/hailam/gridlock/internal/board"
)

// Node is one entry of the search frontier. The board carries its own move
// trail, so nodes need no parent links.
type Node struct {
	Board *board.Board
	Depth int
	Piece int
	Dir   board.Direction

	seq uint64
}

// nodeHeap orders nodes by depth, breaking ties by insertion order so that
// expansion is deterministic within a run.
type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].Depth != h[j].Depth {
		return h[i].Depth < h[j].Depth
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*Node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// Queue is a binary min-heap frontier keyed on node depth.
type Queue struct {
	h    nodeHeap
	next uint64
}

// NewQueue returns an empty frontier.
func NewQueue() *Queue {
	return &Queue{h: make(nodeHeap, 0, 64)}
}

// Push adds a node to the frontier.
func (q *Queue) Push(n *Node) {
	n.seq = q.next
	q.next++
	heap.Push(&q.h, n)
}

// PopMin removes and returns a minimum-depth node, or nil when empty.
func (q *Queue) PopMin() *Node {
	if len(q.h) == 0 {
		return nil
	}
	return heap.Pop(&q.h).(*Node)
}

// Empty reports whether the frontier holds no nodes.
func (q *Queue) Empty() bool {
	return len(q.h) == 0
}

// Len returns the number of queued nodes.
func (q *Queue) Len() int {
	return len(q.h)
}
