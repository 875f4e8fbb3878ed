package zx

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase is an exact rational multiple of pi, normalised into [0, 2).
// The zero value is the zero phase.
type Phase struct {
	num int64 // numerator, in units of pi
	den int64 // denominator, > 0 once normalised
}

// Common phases.
var (
	PhaseZero = Phase{0, 1}
	PhasePi   = Phase{1, 1}
)

// NewPhase returns num/den * pi reduced and normalised into [0, 2).
// A zero denominator panics: it is a programming error, not input.
func NewPhase(num, den int64) Phase {
	if den == 0 {
		panic("zx: phase with zero denominator")
	}
	p := Phase{num, den}
	p.normalize()
	return p
}

func (p *Phase) normalize() {
	if p.den == 0 {
		p.den = 1
	}
	if p.den < 0 {
		p.num, p.den = -p.num, -p.den
	}
	g := gcd(abs64(p.num), p.den)
	if g > 1 {
		p.num /= g
		p.den /= g
	}
	// wrap into [0, 2)
	period := 2 * p.den
	p.num %= period
	if p.num < 0 {
		p.num += period
	}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs64(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

// Num returns the normalised numerator (units of pi).
func (p Phase) Num() int64 { return p.num }

// Den returns the normalised denominator.
func (p Phase) Den() int64 {
	if p.den == 0 {
		return 1
	}
	return p.den
}

// Add returns p + q.
func (p Phase) Add(q Phase) Phase {
	return NewPhase(p.Num()*q.Den()+q.Num()*p.Den(), p.Den()*q.Den())
}

// Sub returns p - q.
func (p Phase) Sub(q Phase) Phase {
	return NewPhase(p.Num()*q.Den()-q.Num()*p.Den(), p.Den()*q.Den())
}

// Neg returns -p (mod 2pi).
func (p Phase) Neg() Phase { return NewPhase(-p.Num(), p.Den()) }

// Equal reports p == q under normalisation; safe across zero values.
func (p Phase) Equal(q Phase) bool { return p.Num() == q.Num() && p.Den() == q.Den() }

// IsZero reports p == 0.
func (p Phase) IsZero() bool { return p.Num() == 0 }

// IsPi reports p == pi.
func (p Phase) IsPi() bool { return p.Num() == 1 && p.Den() == 1 }

// IsPauli reports p in {0, pi}.
func (p Phase) IsPauli() bool { return p.IsZero() || p.IsPi() }

// IsClifford reports p is a multiple of pi/2.
func (p Phase) IsClifford() bool { return p.Den() == 1 || p.Den() == 2 }

// IsProperClifford reports p in {pi/2, 3pi/2}.
func (p Phase) IsProperClifford() bool { return p.Den() == 2 }

// Float returns the phase in radians-over-pi as a float.
func (p Phase) Float() float64 { return float64(p.Num()) / float64(p.Den()) }

// String renders the phase in units of pi, e.g. "0", "pi", "3pi/2".
func (p Phase) String() string {
	switch {
	case p.IsZero():
		return "0"
	case p.Den() == 1 && p.Num() == 1:
		return "pi"
	case p.Den() == 1:
		return fmt.Sprintf("%dpi", p.Num())
	case p.Num() == 1:
		return fmt.Sprintf("pi/%d", p.Den())
	default:
		return fmt.Sprintf("%dpi/%d", p.Num(), p.Den())
	}
}

// RatString renders the phase as "num/den" (units of pi) for file output.
func (p Phase) RatString() string {
	if p.Den() == 1 {
		return strconv.FormatInt(p.Num(), 10)
	}
	return fmt.Sprintf("%d/%d", p.Num(), p.Den())
}

// ParsePhase parses a "num" or "num/den" expression in units of pi.
func ParsePhase(s string) (Phase, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Phase{}, fmt.Errorf("zx: empty phase expression")
	}
	numStr, denStr, hasDen := strings.Cut(s, "/")
	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return Phase{}, fmt.Errorf("zx: bad phase numerator %q", numStr)
	}
	den := int64(1)
	if hasDen {
		den, err = strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
		if err != nil || den <= 0 {
			return Phase{}, fmt.Errorf("zx: bad phase denominator %q", denStr)
		}
	}
	return NewPhase(num, den), nil
}
