// Package order maintains the dynamic variable ordering used by the decision
// heuristic: an indexed binary max-heap over variable activity.
//
// The heap may hold variables that are currently assigned; callers are
// expected to validate assignment status after every Pop and discard stale
// entries. Ties in activity break toward the lowest variable index so that
// decisions are deterministic.
package order

// Order is an indexed max-heap of variable indices keyed by activity.
type Order struct {
	// vars is the heap itself, holding 0-indexed variables.
	vars []int
	// indices maps a variable to its position in vars, or -1 when absent.
	indices []int
	// activity is shared with the owning solver, which mutates scores and
	// calls Fix to restore heap order.
	activity []float64
}

// New returns an order over len(activity) variables, all initially enqueued.
func New(activity []float64) *Order {
	o := &Order{
		vars:     make([]int, len(activity)),
		indices:  make([]int, len(activity)),
		activity: activity,
	}
	for v := range o.vars {
		o.vars[v] = v
		o.indices[v] = v
	}
	o.init()

	return o
}

// Empty returns true when no variables remain in the heap.
func (o *Order) Empty() bool {
	return len(o.vars) == 0
}

// Pop removes and returns the variable with the highest activity, or -1 when
// the heap is empty. The returned variable may already be assigned; the
// caller validates.
func (o *Order) Pop() int {
	if len(o.vars) == 0 {
		return -1
	}
	n := len(o.vars) - 1
	o.swap(0, n)
	o.down(0, n)

	v := o.vars[n]
	o.vars = o.vars[:n]
	o.indices[v] = -1

	return v
}

// Push re-inserts a variable, typically after it was unassigned by
// backtracking. Pushing a variable already present is a no-op.
func (o *Order) Push(v int) {
	if o.indices[v] != -1 {
		return
	}
	o.indices[v] = len(o.vars)
	o.vars = append(o.vars, v)
	o.up(len(o.vars) - 1)
}

// Fix restores heap order around v after its activity changed. Fixing a
// variable not currently in the heap is a no-op.
func (o *Order) Fix(v int) {
	i := o.indices[v]
	if i == -1 {
		return
	}
	o.down(i, len(o.vars))
	o.up(i)
}

// less orders heap positions: higher activity first, then lower variable
// index for determinism.
func (o *Order) less(i, j int) bool {
	vi, vj := o.vars[i], o.vars[j]
	if o.activity[vi] != o.activity[vj] {
		return o.activity[vi] > o.activity[vj]
	}
	return vi < vj
}

func (o *Order) swap(i, j int) {
	o.vars[i], o.vars[j] = o.vars[j], o.vars[i]
	o.indices[o.vars[i]] = i
	o.indices[o.vars[j]] = j
}

// init establishes heap order, as adopted from Go's container/heap package.
func (o *Order) init() {
	n := len(o.vars)
	for i := n/2 - 1; i >= 0; i-- {
		o.down(i, n)
	}
}

// up percolates an element up, as adopted from Go's container/heap package.
func (o *Order) up(j int) {
	for {
		i := (j - 1) / 2
		if i == j || !o.less(j, i) {
			break
		}
		o.swap(i, j)
		j = i
	}
}

// down percolates an element down, as adopted from Go's container/heap
// package.
func (o *Order) down(i0, n int) {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 {
			break
		}
		j := j1
		if j2 := j1 + 1; j2 < n && o.less(j2, j1) {
			j = j2
		}
		if !o.less(j, i) {
			break
		}
		o.swap(i, j)
		i = j
	}
}
