package zx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhase_Normalize(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(NewPhase(1, 2), NewPhase(5, 2))   // 5pi/2 == pi/2
	assert.Equal(NewPhase(3, 2), NewPhase(-1, 2))  // -pi/2 == 3pi/2
	assert.Equal(NewPhase(1, 1), NewPhase(-3, -3)) // sign and gcd
	assert.Equal(PhaseZero, NewPhase(4, 2))
	assert.True(NewPhase(2, 1).IsZero())
}

func TestPhase_Arithmetic(t *testing.T) {
	assert := assert.New(t)

	quarter := NewPhase(1, 4)
	assert.Equal(NewPhase(1, 2), quarter.Add(quarter))
	assert.Equal(PhaseZero, quarter.Sub(quarter))
	assert.Equal(NewPhase(7, 4), quarter.Neg())
	assert.Equal(PhasePi, PhasePi.Neg())
}

func TestPhase_Predicates(t *testing.T) {
	assert := assert.New(t)

	assert.True(PhaseZero.IsPauli())
	assert.True(PhasePi.IsPauli())
	assert.False(NewPhase(1, 2).IsPauli())
	assert.True(NewPhase(1, 2).IsProperClifford())
	assert.True(NewPhase(3, 2).IsProperClifford())
	assert.False(NewPhase(1, 4).IsClifford())
	assert.True(PhasePi.IsClifford())
}

func TestPhase_Parse(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	p, err := ParsePhase("3/2")
	require.NoError(err)
	assert.Equal(NewPhase(3, 2), p)

	p, err = ParsePhase("-1/4")
	require.NoError(err)
	assert.Equal(NewPhase(7, 4), p)

	p, err = ParsePhase("1")
	require.NoError(err)
	assert.Equal(PhasePi, p)

	_, err = ParsePhase("")
	assert.Error(err)
	_, err = ParsePhase("1/0")
	assert.Error(err)
	_, err = ParsePhase("x/2")
	assert.Error(err)
}

func TestPhase_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0", PhaseZero.String())
	assert.Equal("pi", PhasePi.String())
	assert.Equal("pi/2", NewPhase(1, 2).String())
	assert.Equal("3pi/2", NewPhase(3, 2).String())
	assert.Equal("3/2", NewPhase(3, 2).RatString())
	assert.Equal("1", PhasePi.RatString())
}
