package qcir

import (
	"fmt"

	"github.com/kegliz/zxsyn/zx"
)

// Builder is a fluent DSL for assembling circuits. The first error
// sticks and surfaces from Build.
type Builder interface {
	H(q int) Builder
	X(q int) Builder
	Z(q int) Builder
	S(q int) Builder
	T(q int) Builder
	RZ(q int, ph zx.Phase) Builder
	RX(q int, ph zx.Phase) Builder

	CX(ctrl, tgt int) Builder
	CZ(ctrl, tgt int) Builder
	SWAP(a, b int) Builder

	Build() (*QCir, error)
}

// NewBuilder returns a fresh Builder over the given qubit count.
func NewBuilder(qubits int) Builder {
	return &builder{c: New(qubits)}
}

type builder struct {
	c     *QCir
	err   error
	built bool
}

// bail-out pattern: keep the first error, swallow the rest
func (b *builder) add(g Gate) Builder {
	if b.built || b.err != nil {
		return b
	}
	if err := b.c.Append(g); err != nil {
		b.err = err
	}
	return b
}

func (b *builder) H(q int) Builder               { return b.add(NewH(q)) }
func (b *builder) X(q int) Builder               { return b.add(NewX(q)) }
func (b *builder) Z(q int) Builder               { return b.add(NewZ(q)) }
func (b *builder) S(q int) Builder               { return b.add(NewS(q)) }
func (b *builder) T(q int) Builder               { return b.add(NewT(q)) }
func (b *builder) RZ(q int, ph zx.Phase) Builder { return b.add(NewRZ(q, ph)) }
func (b *builder) RX(q int, ph zx.Phase) Builder { return b.add(NewRX(q, ph)) }
func (b *builder) CX(ctrl, tgt int) Builder      { return b.add(NewCX(ctrl, tgt)) }
func (b *builder) CZ(ctrl, tgt int) Builder      { return b.add(NewCZ(ctrl, tgt)) }
func (b *builder) SWAP(a, bq int) Builder        { return b.add(NewSwap(a, bq)) }

func (b *builder) Build() (*QCir, error) {
	if b.built {
		return nil, fmt.Errorf("qcir: Build already called")
	}
	if b.err != nil {
		return nil, b.err
	}
	b.built = true
	return b.c, nil
}
