package model

// faceColors are the RGBA colors of the cube faces in the order front, back, top, bottom, right, left.
var faceColors = [6][4]float32{
	{1, 0, 0, 1}, // red
	{0, 1, 0, 1}, // green
	{0, 0, 1, 1}, // blue
	{1, 1, 0, 1}, // yellow
	{1, 0, 1, 1}, // magenta
	{0, 1, 1, 1}, // cyan
}

// cubeFaces lists six counter-clockwise (outward facing) corners per face, two triangles each.
var cubeFaces = [6][6][3]float32{
	// front (+Z)
	{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}},
	// back (-Z)
	{{-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, -0.5, -0.5}},
	// top (+Y)
	{{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}},
	// bottom (-Y)
	{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}},
	// right (+X)
	{{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}},
	// left (-X)
	{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}},
}

// Cube returns a unit cube centered at the origin with one solid color per face (36 vertices).
//
// Returns:
//   - Geometry: the cube in VertexLayout3D
func Cube() Geometry {
	vertices := make([]float32, 0, 36*VertexLayout3D.Stride())
	for f, face := range cubeFaces {
		for _, p := range face {
			vertices = append(vertices, p[0], p[1], p[2])
			vertices = append(vertices, faceColors[f][:]...)
		}
	}
	return Geometry{Label: "cube", Layout: VertexLayout3D, Vertices: vertices}
}

// Quad returns a flat square in clip space made of two triangles (6 vertices).
//
// Returns:
//   - Geometry: the quad in VertexLayout2D
func Quad() Geometry {
	return Geometry{
		Label:  "quad",
		Layout: VertexLayout2D,
		Vertices: []float32{
			// pos(x, y)   color(r, g, b, a)
			-0.5, -0.5, 1, 0, 0, 1,
			0.5, -0.5, 0, 1, 0, 1,
			0.5, 0.5, 0, 0, 1, 1,
			-0.5, -0.5, 1, 0, 0, 1,
			0.5, 0.5, 0, 0, 1, 1,
			-0.5, 0.5, 1, 1, 0, 1,
		},
	}
}
