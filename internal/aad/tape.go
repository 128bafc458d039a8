package aad

// node is one recorded elementary operation: its accumulated adjoint, the
// tape indices of its inputs and the local derivatives with respect to them.
type node struct {
	adj  float64
	argc int
	args [2]int
	ders [2]float64
}

// Tape is an append-only record of operations on Numbers. A mark splits the
// tape into a setup region (kept across RewindToMark) and a per-path region.
type Tape struct {
	nodes []node
	mark  int
}

func NewTape() *Tape {
	return &Tape{}
}

// Rewind clears the tape completely, keeping the allocated capacity.
func (t *Tape) Rewind() {
	t.nodes = t.nodes[:0]
	t.mark = 0
}

// Mark records the current position as the setup/per-path boundary.
func (t *Tape) Mark() {
	t.mark = len(t.nodes)
}

// RewindToMark drops everything recorded after the mark. Adjoints already
// accumulated on the setup region are left untouched.
func (t *Tape) RewindToMark() {
	t.nodes = t.nodes[:t.mark]
}

func (t *Tape) Len() int {
	return len(t.nodes)
}

// Leaf registers an independent input on the tape with a zero adjoint.
func (t *Tape) Leaf(v float64) Number {
	t.nodes = append(t.nodes, node{})
	return Number{tape: t, idx: len(t.nodes) - 1, val: v}
}

// PropagateMarkToStart sweeps the setup region once, pushing the adjoints
// accumulated there by the per-path propagations down into the leaves.
func (t *Tape) PropagateMarkToStart() {
	for i := t.mark - 1; i >= 0; i-- {
		nd := &t.nodes[i]
		if nd.adj == 0 {
			continue
		}
		for k := 0; k < nd.argc; k++ {
			t.nodes[nd.args[k]].adj += nd.ders[k] * nd.adj
		}
	}
}

func (t *Tape) push1(arg int, val, der float64) Number {
	t.nodes = append(t.nodes, node{argc: 1, args: [2]int{arg}, ders: [2]float64{der}})
	return Number{tape: t, idx: len(t.nodes) - 1, val: val}
}

func (t *Tape) push2(a, b int, val, da, db float64) Number {
	t.nodes = append(t.nodes, node{argc: 2, args: [2]int{a, b}, ders: [2]float64{da, db}})
	return Number{tape: t, idx: len(t.nodes) - 1, val: val}
}
