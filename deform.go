package spineflow

// PlaneMesh is a flat grid centered on its origin, Width along X and Height
// along Y, top row first. It is the rest shape that a SpineFlow bends.
type PlaneMesh struct {
	Width, Height  float64
	WidthSegments  int
	HeightSegments int

	Rest    []Vec3
	UVs     []Vec2
	Indices []uint16
}

// NewPlaneMesh builds a widthSegments x heightSegments grid. Segment counts
// below 1 are raised to 1. More height segments give a smoother bend.
func NewPlaneMesh(width, height float64, widthSegments, heightSegments int) *PlaneMesh {
	if widthSegments < 1 {
		widthSegments = 1
	}
	if heightSegments < 1 {
		heightSegments = 1
	}
	cols := widthSegments + 1
	rows := heightSegments + 1
	m := &PlaneMesh{
		Width:          width,
		Height:         height,
		WidthSegments:  widthSegments,
		HeightSegments: heightSegments,
		Rest:           make([]Vec3, 0, cols*rows),
		UVs:            make([]Vec2, 0, cols*rows),
		Indices:        make([]uint16, 0, widthSegments*heightSegments*6),
	}
	segW := width / float64(widthSegments)
	segH := height / float64(heightSegments)
	for iy := 0; iy < rows; iy++ {
		y := height/2 - float64(iy)*segH
		for ix := 0; ix < cols; ix++ {
			x := -width/2 + float64(ix)*segW
			m.Rest = append(m.Rest, Vec3{X: x, Y: y})
			m.UVs = append(m.UVs, Vec2{
				X: float64(ix) / float64(widthSegments),
				Y: float64(iy) / float64(heightSegments),
			})
		}
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint16(ix + cols*iy)
			b := uint16(ix + cols*(iy+1))
			c := uint16(ix + 1 + cols*(iy+1))
			d := uint16(ix + 1 + cols*iy)
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	return m
}

// Area returns Width * Height.
func (m *PlaneMesh) Area() float64 {
	return m.Width * m.Height
}

// wrapTolerance keeps vertices that land on a spine end, give or take
// rounding, from wrapping to the opposite end.
const wrapTolerance = 1e-9

// deformVertices bends rest vertices along curve. A vertex's distance along
// the spine is pathOffset*length + spineOffset - y (y grows toward the top of
// the mesh, the spine runs top to bottom); its X becomes a sideways offset
// perpendicular to the tangent and its Z is kept as depth. Distances past
// either end wrap around the spine, which is what stretches a mesh pushed
// beyond maxFlowOffset back to the start.
func deformVertices(dst, rest []Vec3, curve *CurvePath, pathOffset, spineOffset float64) []Vec3 {
	dst = dst[:0]
	length := curve.Length()
	base := pathOffset*length + spineOffset
	for _, v := range rest {
		u := (base - v.Y) / length
		if u < -wrapTolerance || u > 1+wrapTolerance {
			u = wrap01(u)
		} else {
			u = clamp01(u)
		}
		p := curve.PointAt(u)
		tangent := curve.TangentAt(u)
		side := AxisZ.Cross(tangent).Normalize()
		if side == (Vec3{}) {
			side = AxisX
		}
		dst = append(dst, p.Add(side.Scale(v.X)).Add(AxisZ.Scale(v.Z)))
	}
	return dst
}
