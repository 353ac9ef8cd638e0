package emath

import(
	"errors"
	"fmt"
	"sort"
)

var ErrNotIncreasing = errors.New("pwl points must have strictly increasing x")

// Points closer together than this along x are treated as coincident.
const pwlEpsilon = 1e-6

type Point struct {
	X, Y float64
}

// An Interval is a closed range [Start, End].
type Interval struct {
	Start, End float64
}

func (i Interval)Clip(x float64) float64 {
	if x < i.Start { return i.Start }
	if x > i.End   { return i.End }
	return x
}

func (i Interval)Len() float64 { return i.End - i.Start }

// A Pwl is a piecewise linear curve: a list of control points, sorted
// by strictly increasing x. It gets used for thresholds, strengths and
// the tonemap itself.
type Pwl struct {
	Points []Point
}

// NewPwl builds a curve from a list of points, which must already be in
// order.
func NewPwl(pts ...Point) (Pwl, error) {
	p := Pwl{}
	for _, pt := range pts {
		if err := p.Append(pt.X, pt.Y); err != nil {
			return Pwl{}, err
		}
	}
	return p, nil
}

// MustPwl is NewPwl for curves written out as literals.
func MustPwl(pts ...Point) Pwl {
	p, err := NewPwl(pts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pwl)Empty() bool { return len(p.Points) == 0 }

func (p Pwl)String() string {
	return fmt.Sprintf("Pwl%v", p.Points)
}

// Append adds a point to the end of the curve. It must lie strictly to
// the right of the current last point.
func (p *Pwl)Append(x, y float64) error {
	if n := len(p.Points); n > 0 && x <= p.Points[n-1].X + pwlEpsilon {
		return fmt.Errorf("append (%g,%g) after x=%g: %w", x, y, p.Points[n-1].X, ErrNotIncreasing)
	}
	p.Points = append(p.Points, Point{x, y})
	return nil
}

func (p Pwl)Domain() Interval {
	if p.Empty() {
		return Interval{}
	}
	return Interval{p.Points[0].X, p.Points[len(p.Points)-1].X}
}

// Eval clamps x into the curve's domain, then interpolates between the
// two points either side of it. An empty curve evaluates to zero.
func (p Pwl)Eval(x float64) float64 {
	n := len(p.Points)
	switch {
	case n == 0:
		return 0
	case x <= p.Points[0].X:
		return p.Points[0].Y
	case x >= p.Points[n-1].X:
		return p.Points[n-1].Y
	}

	// First point strictly to the right of x; the clamps above mean 1 <= i < n
	i := sort.Search(n, func(i int) bool { return p.Points[i].X > x })
	p0, p1 := p.Points[i-1], p.Points[i]

	return p0.Y + (x - p0.X) * (p1.Y - p0.Y) / (p1.X - p0.X)
}

// GenerateLut evaluates the curve at the integers 0..n-1.
func (p Pwl)GenerateLut(n int) []float64 {
	lut := make([]float64, n)
	for i := range lut {
		lut[i] = p.Eval(float64(i))
	}
	return lut
}

// GenerateIntLut is GenerateLut, with each value truncated towards zero.
func (p Pwl)GenerateIntLut(n int) []int {
	lut := make([]int, n)
	for i := range lut {
		lut[i] = int(p.Eval(float64(i)))
	}
	return lut
}

// In yaml, a Pwl is a list of [x, y] pairs.
func (p Pwl)MarshalYAML() (interface{}, error) {
	pairs := make([][]float64, len(p.Points))
	for i, pt := range p.Points {
		pairs[i] = []float64{pt.X, pt.Y}
	}
	return pairs, nil
}

func (p *Pwl)UnmarshalYAML(unmarshal func(interface{}) error) error {
	pairs := [][]float64{}
	if err := unmarshal(&pairs); err != nil {
		return err
	}

	pts := make([]Point, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return fmt.Errorf("pwl point %d: want [x, y], got %v", i, pair)
		}
		pts[i] = Point{pair[0], pair[1]}
	}

	newP, err := NewPwl(pts...)
	if err != nil {
		return err
	}
	*p = newP
	return nil
}
