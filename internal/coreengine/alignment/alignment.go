// Package alignment computes minimal edit-distance alignments between a
// reference token sequence and a hypothesis token sequence. The opcode
// sequence it produces is the shared primitive behind every accuracy metric
// (similarity ratio, CER, WER).
package alignment

// OpType identifies one kind of edit operation in an alignment.
type OpType int

const (
	OpEqual OpType = iota
	OpReplace
	OpDelete
	OpInsert
)

func (t OpType) String() string {
	switch t {
	case OpEqual:
		return "equal"
	case OpReplace:
		return "replace"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Op is one merged span of consecutive identical edit operations.
// RefLen and HypLen report how many reference and hypothesis tokens the span
// covers: Equal and Replace spans cover the same count on both sides, Delete
// spans cover reference tokens only, Insert spans hypothesis tokens only.
type Op struct {
	Type   OpType
	RefLen int
	HypLen int
}

// Align computes a minimal unweighted-Levenshtein alignment (unit cost for
// substitution, deletion and insertion) transforming ref into hyp.
//
// The returned opcode sequence covers both inputs completely, with no gaps or
// overlaps, and adjacent operations of the same type merged into spans. Ties
// between equally minimal edit sequences are broken by a fixed backtrace
// preference (Equal, then Replace, then Delete, then Insert), so repeated
// calls on identical input always yield the identical opcode sequence.
func Align(ref, hyp []string) []Op {
	m, n := len(ref), len(hyp)

	dist := make([][]int, m+1)
	for i := 0; i <= m; i++ {
		dist[i] = make([]int, n+1)
		dist[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dist[0][j] = j
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			sub := dist[i-1][j-1]
			if ref[i-1] != hyp[j-1] {
				sub++
			}
			del := dist[i-1][j] + 1
			ins := dist[i][j-1] + 1
			dist[i][j] = min(sub, del, ins)
		}
	}

	// Backtrace from the bottom-right corner. The preference order below is
	// what makes tie-breaking deterministic.
	var reversed []OpType
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && ref[i-1] == hyp[j-1] && dist[i][j] == dist[i-1][j-1]:
			reversed = append(reversed, OpEqual)
			i--
			j--
		case i > 0 && j > 0 && dist[i][j] == dist[i-1][j-1]+1:
			reversed = append(reversed, OpReplace)
			i--
			j--
		case i > 0 && dist[i][j] == dist[i-1][j]+1:
			reversed = append(reversed, OpDelete)
			i--
		default:
			reversed = append(reversed, OpInsert)
			j--
		}
	}

	ops := make([]Op, 0, len(reversed))
	for k := len(reversed) - 1; k >= 0; k-- {
		t := reversed[k]
		refStep, hypStep := 0, 0
		switch t {
		case OpEqual, OpReplace:
			refStep, hypStep = 1, 1
		case OpDelete:
			refStep = 1
		case OpInsert:
			hypStep = 1
		}
		if len(ops) > 0 && ops[len(ops)-1].Type == t {
			ops[len(ops)-1].RefLen += refStep
			ops[len(ops)-1].HypLen += hypStep
		} else {
			ops = append(ops, Op{Type: t, RefLen: refStep, HypLen: hypStep})
		}
	}
	return ops
}

// Counts sums the opcode spans of an alignment by type. Matched is the total
// reference length covered by Equal spans.
type Counts struct {
	Matched       int
	Substitutions int
	Deletions     int
	Insertions    int
}

// Tally reduces an opcode sequence to its per-type span totals.
func Tally(ops []Op) Counts {
	var c Counts
	for _, op := range ops {
		switch op.Type {
		case OpEqual:
			c.Matched += op.RefLen
		case OpReplace:
			c.Substitutions += op.RefLen
		case OpDelete:
			c.Deletions += op.RefLen
		case OpInsert:
			c.Insertions += op.HypLen
		}
	}
	return c
}

// Distance is the total edit cost of an alignment.
func Distance(ops []Op) int {
	c := Tally(ops)
	return c.Substitutions + c.Deletions + c.Insertions
}
