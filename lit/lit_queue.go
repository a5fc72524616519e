package lit

// Queue is a FIFO queue of literals used to drive propagation breadth-first.
// It is not async-safe.
type Queue struct {
	items []Lit
	head  int
}

// NewQueue returns a new empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Insert appends a literal to the queue.
func (q *Queue) Insert(l Lit) {
	q.items = append(q.items, l)
}

// Dequeue pops the first literal off the queue, or Undef when empty.
func (q *Queue) Dequeue() Lit {
	if q.head == len(q.items) {
		return Undef
	}
	first := q.items[q.head]
	q.head++

	if q.head == len(q.items) {
		q.Clear()
	}
	return first
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.items = q.items[:0]
	q.head = 0
}

// Size returns the number of literals waiting in the queue.
func (q *Queue) Size() int {
	return len(q.items) - q.head
}
