// Package poly implements the ≤degree-7 real polynomial primitive used
// throughout the playback engine: construction (direct coefficients,
// constant, linear, cubic-Bézier), Horner evaluation, derivative,
// scale/stretch, and root/extremum finding.
//
// Coefficients are single-precision, mirroring the on-disk encoding;
// a float64 evaluation path is offered for range-sensitive callers
// such as trajectory-statistics crossing detection.
package poly

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/dronecore/skyb/errs"
)

// MaxCoeffs is the largest number of coefficients a Poly can hold,
// i.e. one more than the highest representable degree (7).
const MaxCoeffs = 8

// Poly is p(t) = Σ c[i]·tⁱ for i in [0, n). n == 0 denotes the zero
// polynomial. Degree is max(0, n-1); coefficients at index >= n are
// held at zero.
type Poly struct {
	c [MaxCoeffs]float32
	n int
}

// Zero returns the zero polynomial.
func Zero() Poly { return Poly{} }

// Constant returns the degree-0 polynomial p(t) = v.
func Constant(v float32) Poly {
	if v == 0 {
		return Poly{}
	}
	p := Poly{n: 1}
	p.c[0] = v
	return p
}

// FromCoeffs builds a polynomial directly from coefficients, low degree
// first. Panics only if more than MaxCoeffs are supplied is avoided by
// returning INVAL instead.
func FromCoeffs(c []float32) (Poly, error) {
	if len(c) > MaxCoeffs {
		return Poly{}, errs.New(errs.INVAL, "poly: %d coefficients exceeds max %d", len(c), MaxCoeffs)
	}
	p := Poly{n: len(c)}
	copy(p.c[:], c)
	p.trim()
	return p, nil
}

// Linear returns the polynomial whose graph runs linearly from a at
// t=0 to b at t=duration. A duration of zero collapses to the constant
// midpoint of a and b, per spec.
func Linear(duration, a, b float32) Poly {
	if duration == 0 {
		return Constant((a + b) / 2)
	}
	p := Poly{n: 2}
	p.c[0] = a
	p.c[1] = (b - a) / duration
	p.trim()
	return p
}

// factorials of 0..7, used by the Bézier-to-power-basis conversion.
var factorial = [8]float64{1, 1, 2, 6, 24, 120, 720, 5040}

// Bezier constructs the polynomial describing a Bézier curve with the
// given control points (k <= MaxCoeffs, degree k-1) reparameterized
// over [0, duration]. Uses the closed-form Bernstein-to-monomial
// conversion:
//
//	c_j = (n!/(n-j)!) · Σ_{i=0..j} (-1)^(j-i) · P_i / (i!·(j-i)!)
//
// followed by a time-stretch of 1/duration.
func Bezier(duration float32, points []float32) (Poly, error) {
	k := len(points)
	if k == 0 {
		return Poly{}, nil
	}
	if k > MaxCoeffs {
		return Poly{}, errs.New(errs.INVAL, "poly: %d control points exceeds max %d", k, MaxCoeffs)
	}
	deg := k - 1
	var c [MaxCoeffs]float64
	for j := 0; j <= deg; j++ {
		outer := factorial[deg] / factorial[deg-j]
		var sum float64
		for i := 0; i <= j; i++ {
			sign := 1.0
			if (j-i)%2 != 0 {
				sign = -1.0
			}
			sum += sign * float64(points[i]) / (factorial[i] * factorial[j-i])
		}
		c[j] = outer * sum
	}
	p := Poly{n: k}
	for i := 0; i <= deg; i++ {
		p.c[i] = float32(c[i])
	}
	p.trim()
	if duration == 0 {
		// A zero-duration Bézier segment has no well-defined time axis;
		// collapse to the curve's endpoint (Linear, by contrast, collapses
		// to the midpoint).
		return Constant(points[k-1]), nil
	}
	return p.Stretch(duration)
}

// trim drops trailing zero coefficients so n reflects the true degree.
func (p *Poly) trim() {
	for p.n > 0 && p.c[p.n-1] == 0 {
		p.n--
	}
}

// N returns the number of stored (possibly implicit trailing-zero)
// coefficients, n in [0, MaxCoeffs].
func (p Poly) N() int { return p.n }

// Degree returns max(0, n-1).
func (p Poly) Degree() int {
	if p.n == 0 {
		return 0
	}
	return p.n - 1
}

// Coeffs returns a copy of the coefficients in [0, n).
func (p Poly) Coeffs() []float32 {
	out := make([]float32, p.n)
	copy(out, p.c[:p.n])
	return out
}

// Eval evaluates p(t) using Horner's rule with reverse iteration.
func (p Poly) Eval(t float32) float32 {
	var r float32
	for i := p.n - 1; i >= 0; i-- {
		r = r*t + p.c[i]
	}
	return r
}

// EvalF64 is a double-precision evaluation path for range-sensitive
// callers (e.g. altitude-crossing search over long durations).
func (p Poly) EvalF64(t float64) float64 {
	var r float64
	for i := p.n - 1; i >= 0; i-- {
		r = r*t + float64(p.c[i])
	}
	return r
}

// Differentiate replaces p in place with its derivative: c_i <- i*c_i,
// shifted down one slot; the trailing slot is zeroed. A degree-0 (or
// zero) polynomial becomes the zero polynomial.
func (p *Poly) Differentiate() {
	if p.n <= 1 {
		*p = Poly{}
		return
	}
	for i := 1; i < p.n; i++ {
		p.c[i-1] = float32(i) * p.c[i]
	}
	p.c[p.n-1] = 0
	p.n--
	p.trim()
}

// Derivative returns a new polynomial equal to p's derivative, leaving
// p unmodified.
func (p Poly) Derivative() Poly {
	d := p
	d.Differentiate()
	return d
}

// Scale returns a copy of p with every coefficient multiplied by factor.
func (p Poly) Scale(factor float32) Poly {
	r := p
	for i := 0; i < r.n; i++ {
		r.c[i] *= factor
	}
	return r
}

// Stretch returns a copy p_new such that p_new(t) == p(t/factor), by
// multiplying c_i by (1/factor)^i.
func (p Poly) Stretch(factor float32) (Poly, error) {
	if factor == 0 {
		return Poly{}, errs.New(errs.OVERFLOW, "poly: stretch factor must be non-zero")
	}
	r := p
	inv := 1 / factor
	mult := float32(1)
	for i := 0; i < r.n; i++ {
		r.c[i] *= mult
		mult *= inv
	}
	return r, nil
}

// Roots returns the real roots of p. Degree 0 yields zero roots.
// Degree >= 4 is not supported and returns an UNIMPLEMENTED error.
func (p Poly) Roots() ([]float32, error) {
	switch p.Degree() {
	case 0:
		return nil, nil
	case 1:
		return linearRoots(p.c[0], p.c[1]), nil
	case 2:
		return quadraticRoots(p.c[0], p.c[1], p.c[2]), nil
	case 3:
		return cubicRoots(p.c[0], p.c[1], p.c[2], p.c[3]), nil
	default:
		return nil, errs.New(errs.UNIMPLEMENTED, "poly: root finding unsupported for degree %d", p.Degree())
	}
}

func linearRoots(a, b float32) []float32 {
	if b == 0 {
		return nil
	}
	return []float32{-a / b}
}

func quadraticRoots(a, b, c float32) []float32 {
	if c == 0 {
		return linearRoots(a, b)
	}
	disc := b*b - 4*c*a
	if disc < 0 {
		return nil
	}
	if disc == 0 {
		return []float32{-b / (2 * c)}
	}
	sq := math32.Sqrt(disc)
	r1 := (-b - sq) / (2 * c)
	r2 := (-b + sq) / (2 * c)
	return []float32{r1, r2}
}

// cubicRoots solves c3*t^3 + c2*t^2 + c1*t + c0 = 0 via the depressed
// cubic and Cardano/trigonometric method.
func cubicRoots(c0, c1, c2, c3 float32) []float32 {
	if c3 == 0 {
		return quadraticRoots(c0, c1, c2)
	}
	// Normalize to t^3 + a2 t^2 + a1 t + a0 = 0.
	a2 := float64(c2 / c3)
	a1 := float64(c1 / c3)
	a0 := float64(c0 / c3)

	// Depress: t = x - a2/3 -> x^3 + p x + q = 0.
	p := a1 - a2*a2/3
	q := 2*a2*a2*a2/27 - a2*a1/3 + a0
	shift := a2 / 3

	const eps = 1e-12
	disc := q*q/4 + p*p*p/27

	var roots []float64
	switch {
	case disc > eps:
		sq := math.Sqrt(disc)
		u := math.Cbrt(-q/2 + sq)
		v := math.Cbrt(-q/2 - sq)
		roots = []float64{u + v}
	case disc < -eps:
		// Three distinct real roots (trigonometric form).
		r := math.Sqrt(-p * p * p / 27)
		phi := math.Acos(clamp64(-q/(2*r), -1, 1))
		m := 2 * math.Sqrt(-p/3)
		for k := 0; k < 3; k++ {
			roots = append(roots, m*math.Cos((phi+2*math.Pi*float64(k))/3))
		}
	default:
		// disc ~= 0: a double root and a simple root (or a triple root).
		if p == 0 && q == 0 {
			roots = []float64{0}
		} else {
			u := math.Cbrt(-q / 2)
			roots = []float64{2 * u, -u}
		}
	}

	out := make([]float32, len(roots))
	for i, r := range roots {
		out[i] = float32(r - shift)
	}
	return out
}

func clamp64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Extrema returns the minimum and maximum values of p(t) for t in
// [0, 1]. Only degree <= 3 is supported; higher degree returns
// UNIMPLEMENTED.
func (p Poly) Extrema() (min, max float32, err error) {
	if p.Degree() > 3 {
		return 0, 0, errs.New(errs.UNIMPLEMENTED, "poly: extrema unsupported for degree %d", p.Degree())
	}
	candidates := []float32{0, 1}
	deriv := p.Derivative()
	if deriv.Degree() <= 3 {
		roots, rerr := deriv.Roots()
		if rerr == nil {
			for _, r := range roots {
				if r > 0 && r < 1 {
					candidates = append(candidates, r)
				}
			}
		}
	}
	min, max = p.Eval(candidates[0]), p.Eval(candidates[0])
	for _, t := range candidates[1:] {
		v := p.Eval(t)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, nil
}
