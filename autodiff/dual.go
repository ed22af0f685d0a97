package autodiff

import "math"

// Dual is a (value, derivative) pair whose arithmetic mirrors the
// ordinary rules of calculus, so executing a program over Duals yields
// the primal value and one directional derivative in a single pass.
type Dual struct {
	Value      float64
	Derivative float64
}

// Add returns x + y.
func (x Dual) Add(y Dual) Dual {
	return Dual{x.Value + y.Value, x.Derivative + y.Derivative}
}

// Sub returns x - y.
func (x Dual) Sub(y Dual) Dual {
	return Dual{x.Value - y.Value, x.Derivative - y.Derivative}
}

// Mul returns x * y using the product rule.
func (x Dual) Mul(y Dual) Dual {
	return Dual{
		x.Value * y.Value,
		x.Derivative*y.Value + x.Value*y.Derivative,
	}
}

// Quo returns x / y using the quotient rule. The caller is responsible
// for rejecting a zero divisor first.
func (x Dual) Quo(y Dual) Dual {
	return Dual{
		x.Value / y.Value,
		(x.Derivative*y.Value - x.Value*y.Derivative) / (y.Value * y.Value),
	}
}

// Neg returns -x.
func (x Dual) Neg() Dual {
	return Dual{-x.Value, -x.Derivative}
}

// Sin returns sin(x): d(sin x) = cos(x) dx.
func Sin(x Dual) Dual {
	return Dual{math.Sin(x.Value), x.Derivative * math.Cos(x.Value)}
}

// Cos returns cos(x): d(cos x) = -sin(x) dx.
func Cos(x Dual) Dual {
	return Dual{math.Cos(x.Value), -x.Derivative * math.Sin(x.Value)}
}

// Tan returns tan(x): d(tan x) = (1 + tan²x) dx.
func Tan(x Dual) Dual {
	t := math.Tan(x.Value)
	return Dual{t, x.Derivative * (1.0 + t*t)}
}

// Exp returns e^x: d(e^x) = e^x dx.
func Exp(x Dual) Dual {
	e := math.Exp(x.Value)
	return Dual{e, x.Derivative * e}
}

// Log returns ln(x): d(ln x) = dx / x. The caller rejects non-positive
// values first.
func Log(x Dual) Dual {
	return Dual{math.Log(x.Value), x.Derivative / x.Value}
}

// Sqrt returns √x: d(√x) = dx / (2√x). The caller rejects negative
// values first.
func Sqrt(x Dual) Dual {
	s := math.Sqrt(x.Value)
	return Dual{s, x.Derivative / (2.0 * s)}
}

// Abs returns |x|, with the derivative sign flipped on the negative
// branch.
func Abs(x Dual) Dual {
	if x.Value >= 0.0 {
		return x
	}
	return x.Neg()
}

// Pow returns x^y via the general log-exponent derivative:
// d(x^y) = x^y * (dy·ln(x) + y·dx/x). A non-positive base makes the
// derivative NaN, which propagates to the caller unchanged.
func Pow(x, y Dual) Dual {
	p := math.Pow(x.Value, y.Value)
	d := p * (y.Derivative*math.Log(x.Value) + y.Value*x.Derivative/x.Value)
	return Dual{p, d}
}
