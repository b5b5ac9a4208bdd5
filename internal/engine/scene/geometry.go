package scene

import "github.com/Faultbox/gldemos/pkg/math"

// Transform applies m to vertices in place. Positions take the full matrix,
// tangents and bitangents its upper 3x3, normals the inverse transpose.
// Directions are renormalised.
func Transform(vertices []Vertex, m math.Mat4) {
	normalMatrix := m.Inverse().Transpose()
	for i := range vertices {
		v := &vertices[i]
		v.Position = m.TransformPoint(v.Position)
		v.Normal = normalMatrix.TransformDirection(v.Normal).Normalize()
		v.Tangent = m.TransformDirection(v.Tangent).Normalize()
		v.Bitangent = m.TransformDirection(v.Bitangent).Normalize()
	}
}

// GenerateNormals assigns each triangle's face normal to its vertices, then
// averages normals of vertices sharing a position.
func GenerateNormals(vertices []Vertex, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = math.Vec3{}
	}
	forEachTriangle(vertices, indices, func(a, b, c uint32) {
		p0, p1, p2 := vertices[a].Position, vertices[b].Position, vertices[c].Position
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		vertices[a].Normal = vertices[a].Normal.Add(n)
		vertices[b].Normal = vertices[b].Normal.Add(n)
		vertices[c].Normal = vertices[c].Normal.Add(n)
	})
	for i := range vertices {
		vertices[i].Normal = vertices[i].Normal.Normalize()
	}
	SmoothNormals(vertices)
}

// SmoothNormals averages normals at shared vertex positions.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position.X / epsilon),
			int32(vertices[i].Position.Y / epsilon),
			int32(vertices[i].Position.Z / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}
		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(vertices[idx].Normal)
		}
		avg := sum.Normalize()
		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

// ComputeTangents derives per-vertex tangents and bitangents from texture
// coordinates. Triangles with degenerate UVs contribute nothing; vertices
// left without a tangent get an arbitrary basis perpendicular to the normal.
func ComputeTangents(vertices []Vertex, indices []uint32) {
	tan := make([]math.Vec3, len(vertices))
	bitan := make([]math.Vec3, len(vertices))

	forEachTriangle(vertices, indices, func(a, b, c uint32) {
		v0, v1, v2 := vertices[a], vertices[b], vertices[c]
		e1, e2 := v1.Position.Sub(v0.Position), v2.Position.Sub(v0.Position)
		d1, d2 := v1.TexCoords.Sub(v0.TexCoords), v2.TexCoords.Sub(v0.TexCoords)

		det := d1.X*d2.Y - d2.X*d1.Y
		if math.Abs(det) < 1e-12 {
			return
		}
		r := 1 / det
		t := e1.Scale(d2.Y).Sub(e2.Scale(d1.Y)).Scale(r)
		bt := e2.Scale(d1.X).Sub(e1.Scale(d2.X)).Scale(r)
		for _, idx := range [3]uint32{a, b, c} {
			tan[idx] = tan[idx].Add(t)
			bitan[idx] = bitan[idx].Add(bt)
		}
	})

	for i := range vertices {
		n := vertices[i].Normal
		// Gram-Schmidt against the normal.
		t := tan[i].Sub(n.Scale(n.Dot(tan[i])))
		if t.Length() < 1e-8 {
			t = perpendicular(n)
		}
		t = t.Normalize()
		b := n.Cross(t)
		if b.Dot(bitan[i]) < 0 {
			b = b.Neg()
		}
		vertices[i].Tangent = t
		vertices[i].Bitangent = b
	}
}

// perpendicular returns some unit vector orthogonal to n.
func perpendicular(n math.Vec3) math.Vec3 {
	axis := math.Vec3{X: 1}
	if math.Abs(n.X) > 0.9 {
		axis = math.Vec3{Y: 1}
	}
	return n.Cross(axis).Normalize()
}

// forEachTriangle visits index triples. Without indices vertices are taken
// three at a time; a trailing partial triangle is ignored.
func forEachTriangle(vertices []Vertex, indices []uint32, fn func(a, b, c uint32)) {
	if len(indices) == 0 {
		for i := 0; i+2 < len(vertices); i += 3 {
			fn(uint32(i), uint32(i+1), uint32(i+2))
		}
		return
	}
	n := uint32(len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a >= n || b >= n || c >= n {
			continue
		}
		fn(a, b, c)
	}
}
