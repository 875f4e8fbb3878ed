package simp

import (
	"sort"

	"github.com/kegliz/zxsyn/zx"
)

// candidate is a potential match before overlap resolution. vertices is
// the rule-specific tuple; the affected set used for overlap checks is
// derived from it.
type candidate struct {
	vertices []zx.VertexID
	affected []zx.VertexID // sorted, possibly wider than vertices
}

func newCandidate(vertices []zx.VertexID, extra ...zx.VertexID) candidate {
	affected := make([]zx.VertexID, 0, len(vertices)+len(extra))
	affected = append(affected, vertices...)
	affected = append(affected, extra...)
	sort.Slice(affected, func(i, j int) bool { return affected[i] < affected[j] })
	// dedupe
	out := affected[:0]
	for i, id := range affected {
		if i == 0 || id != affected[i-1] {
			out = append(out, id)
		}
	}
	return candidate{vertices: vertices, affected: out}
}

// less orders candidates the way overlapping matches are resolved:
// lexicographically smaller affected set first; the comparison starts at
// the minimum id, so the lower-minimum tie-break is built in.
func (c candidate) less(o candidate) bool {
	n := len(c.affected)
	if len(o.affected) < n {
		n = len(o.affected)
	}
	for i := 0; i < n; i++ {
		if c.affected[i] != o.affected[i] {
			return c.affected[i] < o.affected[i]
		}
	}
	return len(c.affected) < len(o.affected)
}

// selectDisjoint picks a maximal pairwise-disjoint subset of candidates
// in the deterministic resolution order, then returns the surviving
// matches sorted by ascending minimum id.
func selectDisjoint(cands []candidate) []Match {
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].less(cands[j]) })

	taken := make(map[zx.VertexID]struct{})
	var out []Match
	for _, c := range cands {
		clash := false
		for _, id := range c.affected {
			if _, ok := taken[id]; ok {
				clash = true
				break
			}
		}
		if clash {
			continue
		}
		for _, id := range c.affected {
			taken[id] = struct{}{}
		}
		out = append(out, Match{Vertices: c.vertices})
	}
	return out
}
