package routing

import (
	"container/heap"

	"github.com/google/uuid"
)

type pqItem struct {
	node     uuid.UUID
	g        float64
	priority float64
	seq      int
}

// priorityQueue is a min-heap on priority; equal priorities pop in insertion
// order.
type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priority == pq[j].priority {
		return pq[i].seq < pq[j].seq
	}
	return pq[i].priority < pq[j].priority
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(*pqItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

type frontier struct {
	pq  priorityQueue
	seq int
}

func (f *frontier) push(node uuid.UUID, g, priority float64) {
	f.seq++
	heap.Push(&f.pq, &pqItem{node: node, g: g, priority: priority, seq: f.seq})
}

func (f *frontier) pop() *pqItem { return heap.Pop(&f.pq).(*pqItem) }

func (f *frontier) empty() bool { return f.pq.Len() == 0 }
