package core

import (
	"container/heap"

	"github.com/encodeous/routesim/state"
)

type frontierEntry struct {
	node state.NodeId
	cost uint32
}

// frontier is a min-heap ordered by cost, then node id. The ordering is total,
// so the settle order never depends on insertion order.
type frontier []frontierEntry

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].node < f[j].node
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierEntry)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	*f = old[:n-1]
	return e
}

func (f *frontier) push(node state.NodeId, cost uint32) {
	heap.Push(f, frontierEntry{node: node, cost: cost})
}

func (f *frontier) pop() frontierEntry {
	return heap.Pop(f).(frontierEntry)
}
