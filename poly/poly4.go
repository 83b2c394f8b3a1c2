package poly

// Point4 is a sample of a Poly4 at some time t: three spatial axes in
// millimeters plus yaw in degrees.
type Point4 struct {
	X, Y, Z, Yaw float32
}

// Poly4 is a tuple of four independent 1-D polynomials tagged x, y, z,
// yaw. All componentwise operations apply per spec §4.2.
type Poly4 struct {
	X, Y, Z, Yaw Poly
}

// Eval evaluates all four axes at t.
func (p Poly4) Eval(t float32) Point4 {
	return Point4{
		X:   p.X.Eval(t),
		Y:   p.Y.Eval(t),
		Z:   p.Z.Eval(t),
		Yaw: p.Yaw.Eval(t),
	}
}

// Derivative returns the componentwise derivative.
func (p Poly4) Derivative() Poly4 {
	return Poly4{
		X:   p.X.Derivative(),
		Y:   p.Y.Derivative(),
		Z:   p.Z.Derivative(),
		Yaw: p.Yaw.Derivative(),
	}
}

// Scale returns the componentwise scale by factor.
func (p Poly4) Scale(factor float32) Poly4 {
	return Poly4{
		X:   p.X.Scale(factor),
		Y:   p.Y.Scale(factor),
		Z:   p.Z.Scale(factor),
		Yaw: p.Yaw.Scale(factor),
	}
}

// Stretch returns the componentwise stretch by factor.
func (p Poly4) Stretch(factor float32) (Poly4, error) {
	x, err := p.X.Stretch(factor)
	if err != nil {
		return Poly4{}, err
	}
	y, err := p.Y.Stretch(factor)
	if err != nil {
		return Poly4{}, err
	}
	z, err := p.Z.Stretch(factor)
	if err != nil {
		return Poly4{}, err
	}
	yaw, err := p.Yaw.Stretch(factor)
	if err != nil {
		return Poly4{}, err
	}
	return Poly4{X: x, Y: y, Z: z, Yaw: yaw}, nil
}
