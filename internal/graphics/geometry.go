package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry holds CPU-side vertex data. Attributes are parallel slices;
// Normals, UVs and Colors may be empty. With no Indices the vertices are drawn in order.
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Colors    []mgl32.Vec3
	Indices   []uint32
}

// Vertices returns a copy of the vertex positions
func (g *Geometry) Vertices() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(g.Positions))
	copy(out, g.Positions)
	return out
}

// Count returns the number of elements a draw call consumes
func (g *Geometry) Count() int {
	if len(g.Indices) > 0 {
		return len(g.Indices)
	}
	return len(g.Positions)
}

// NewSphereGeometry builds a UV sphere. Rings run from the +Y pole (v=0) to the -Y pole,
// segments wrap around Y starting on -X.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	g := &Geometry{}
	grid := make([][]uint32, heightSegments+1)
	var index uint32

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			theta := v * math.Pi

			p := mgl32.Vec3{
				float32(-float64(radius) * math.Cos(phi) * math.Sin(theta)),
				float32(float64(radius) * math.Cos(theta)),
				float32(float64(radius) * math.Sin(phi) * math.Sin(theta)),
			}
			g.Positions = append(g.Positions, p)
			g.Normals = append(g.Normals, safeNormalize(p))
			g.UVs = append(g.UVs, mgl32.Vec2{float32(u), float32(1 - v)})

			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			// the pole rows collapse to a single point, so only one triangle per quad survives there
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

var (
	icosahedronT = float32((1 + math.Sqrt(5)) / 2)

	icosahedronVertices = []mgl32.Vec3{
		{-1, icosahedronT, 0}, {1, icosahedronT, 0}, {-1, -icosahedronT, 0}, {1, -icosahedronT, 0},
		{0, -1, icosahedronT}, {0, 1, icosahedronT}, {0, -1, -icosahedronT}, {0, 1, -icosahedronT},
		{icosahedronT, 0, -1}, {icosahedronT, 0, 1}, {-icosahedronT, 0, -1}, {-icosahedronT, 0, 1},
	}

	icosahedronFaces = [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// NewIcosahedronGeometry subdivides each icosahedron face detail times, projects every
// vertex onto the sphere of the given radius and merges duplicates.
// Detail 0 yields 12 vertices, detail 1 yields 42.
func NewIcosahedronGeometry(radius float32, detail int) *Geometry {
	if detail < 0 {
		detail = 0
	}
	var soup []mgl32.Vec3
	for _, f := range icosahedronFaces {
		soup = subdivideFace(soup, icosahedronVertices[f[0]], icosahedronVertices[f[1]], icosahedronVertices[f[2]], detail)
	}
	for i, p := range soup {
		soup[i] = p.Normalize().Mul(radius)
	}

	g := mergeVertices(soup)
	g.Normals = make([]mgl32.Vec3, len(g.Positions))
	for i, p := range g.Positions {
		g.Normals[i] = safeNormalize(p)
	}
	return g
}

func subdivideFace(out []mgl32.Vec3, a, b, c mgl32.Vec3, detail int) []mgl32.Vec3 {
	cols := detail + 1
	v := make([][]mgl32.Vec3, cols+1)
	for i := 0; i <= cols; i++ {
		t := float32(i) / float32(cols)
		aj := lerp(a, c, t)
		bj := lerp(b, c, t)
		rows := cols - i
		v[i] = make([]mgl32.Vec3, rows+1)
		for j := 0; j <= rows; j++ {
			if j == 0 && i == cols {
				v[i][j] = aj
				continue
			}
			v[i][j] = lerp(aj, bj, float32(j)/float32(rows))
		}
	}

	for i := 0; i < cols; i++ {
		for j := 0; j < 2*(cols-i)-1; j++ {
			k := j / 2
			if j%2 == 0 {
				out = append(out, v[i][k+1], v[i+1][k], v[i][k])
			} else {
				out = append(out, v[i][k+1], v[i+1][k+1], v[i+1][k])
			}
		}
	}
	return out
}

type vertexKey struct{ x, y, z int64 }

const mergePrecision = 1e4

// mergeVertices collapses a triangle soup into indexed geometry, keeping first-seen order
func mergeVertices(soup []mgl32.Vec3) *Geometry {
	g := &Geometry{Indices: make([]uint32, 0, len(soup))}
	seen := make(map[vertexKey]uint32, len(soup))
	for _, p := range soup {
		k := vertexKey{
			int64(math.Round(float64(p.X()) * mergePrecision)),
			int64(math.Round(float64(p.Y()) * mergePrecision)),
			int64(math.Round(float64(p.Z()) * mergePrecision)),
		}
		idx, ok := seen[k]
		if !ok {
			idx = uint32(len(g.Positions))
			seen[k] = idx
			g.Positions = append(g.Positions, p)
		}
		g.Indices = append(g.Indices, idx)
	}
	return g
}

// NewWireframeGeometry turns the triangles of g into a line list with one segment per unique edge
func NewWireframeGeometry(g *Geometry) *Geometry {
	w := &Geometry{Positions: g.Vertices()}
	tri := g.Indices
	if len(tri) == 0 {
		tri = make([]uint32, len(g.Positions))
		for i := range tri {
			tri[i] = uint32(i)
		}
	}
	seen := make(map[[2]uint32]bool)
	for i := 0; i+2 < len(tri); i += 3 {
		for _, e := range [][2]uint32{{tri[i], tri[i+1]}, {tri[i+1], tri[i+2]}, {tri[i+2], tri[i]}} {
			a, b := e[0], e[1]
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			if seen[[2]uint32{a, b}] {
				continue
			}
			seen[[2]uint32{a, b}] = true
			w.Indices = append(w.Indices, a, b)
		}
	}
	return w
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Normalize()
}
