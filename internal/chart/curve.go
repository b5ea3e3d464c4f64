package chart

type Point struct {
	X, Y float64
}

type SegmentKind int

const (
	MoveTo SegmentKind = iota
	LineTo
	CubicTo
)

// Segment is one path command. CubicTo carries two control points followed by
// the end point; MoveTo and LineTo carry a single point.
type Segment struct {
	Kind   SegmentKind
	Points []Point
}

type Path []Segment

// BasisPath builds a uniform cubic B-spline through pts, the same curve as
// d3's curveBasis: it starts and ends on the first and last points but only
// approaches the ones in between.
func BasisPath(pts []Point) Path {
	var (
		p      Path
		count  int
		p0, p1 Point
	)
	curve := func(next Point) {
		p = append(p, Segment{Kind: CubicTo, Points: []Point{
			{(2*p0.X + p1.X) / 3, (2*p0.Y + p1.Y) / 3},
			{(p0.X + 2*p1.X) / 3, (p0.Y + 2*p1.Y) / 3},
			{(p0.X + 4*p1.X + next.X) / 6, (p0.Y + 4*p1.Y + next.Y) / 6},
		}})
	}
	for _, pt := range pts {
		switch count {
		case 0:
			count = 1
			p = append(p, Segment{Kind: MoveTo, Points: []Point{pt}})
		case 1:
			count = 2
		case 2:
			count = 3
			p = append(p, Segment{Kind: LineTo, Points: []Point{{(5*p0.X + p1.X) / 6, (5*p0.Y + p1.Y) / 6}}})
			curve(pt)
		default:
			curve(pt)
		}
		p0, p1 = p1, pt
	}
	switch count {
	case 3:
		curve(p1)
		p = append(p, Segment{Kind: LineTo, Points: []Point{p1}})
	case 2:
		p = append(p, Segment{Kind: LineTo, Points: []Point{p1}})
	}
	return p
}

// Flatten approximates the path with straight lines, sampling every cubic
// segment at steps points. Raster backends draw the result.
func (p Path) Flatten(steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	var out []Point
	var cur Point
	for _, seg := range p {
		switch seg.Kind {
		case MoveTo, LineTo:
			cur = seg.Points[0]
			out = append(out, cur)
		case CubicTo:
			c1, c2, end := seg.Points[0], seg.Points[1], seg.Points[2]
			for i := 1; i <= steps; i++ {
				out = append(out, cubicAt(cur, c1, c2, end, float64(i)/float64(steps)))
			}
			cur = end
		}
	}
	return out
}

func cubicAt(p0, c1, c2, p3 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p3.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p3.Y,
	}
}
