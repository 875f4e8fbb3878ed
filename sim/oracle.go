package sim

import (
	"math"
	"math/cmplx"

	"github.com/kegliz/zxsyn/qcir"
)

// amplitudeTolerance absorbs float accumulation over gate applications.
const amplitudeTolerance = 1e-9

// Evaluate runs a circuit on |0...0> and returns the final state.
func Evaluate(c *qcir.QCir) (*State, error) {
	s := NewState(c.NumQubits())
	if err := s.Run(c); err != nil {
		return nil, err
	}
	return s, nil
}

// Equivalent reports whether two circuits implement the same unitary up
// to one global phase, by comparing their action on every computational
// basis state. The global phase must be consistent across all columns.
func Equivalent(c1, c2 *qcir.QCir) (bool, error) {
	if c1.NumQubits() != c2.NumQubits() {
		return false, nil
	}
	n := c1.NumQubits()
	dim := 1 << uint(n)

	var lambda complex128 // c1 = lambda * c2, fixed by the first big entry
	haveLambda := false
	for x := 0; x < dim; x++ {
		s1 := NewBasisState(n, x)
		if err := s1.Run(c1); err != nil {
			return false, err
		}
		s2 := NewBasisState(n, x)
		if err := s2.Run(c2); err != nil {
			return false, err
		}
		a1, a2 := s1.Amplitudes(), s2.Amplitudes()
		for i := 0; i < dim; i++ {
			if !haveLambda {
				if cmplx.Abs(a2[i]) > 1e-6 {
					lambda = a1[i] / a2[i]
					if math.Abs(cmplx.Abs(lambda)-1) > 1e-6 {
						return false, nil
					}
					haveLambda = true
				} else if cmplx.Abs(a1[i]) > 1e-6 {
					return false, nil
				}
				continue
			}
			if cmplx.Abs(a1[i]-lambda*a2[i]) > amplitudeTolerance*math.Sqrt(float64(dim))+1e-7 {
				return false, nil
			}
		}
	}
	return true, nil
}
