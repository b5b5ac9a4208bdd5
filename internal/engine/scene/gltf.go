package scene

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/engine/texture"
	"github.com/Faultbox/gldemos/pkg/math"
)

// maxNodeDepth bounds the node walk. Cycles and shared children are cut
// separately: each node is instanced at most once, as glTF nodes have a
// single parent.
const maxNodeDepth = 256

// loadGLTF reads a .gltf or .glb file into model. Node transforms are baked
// into the vertices.
func loadGLTF(file string, model *Model, log *zap.Logger) error {
	doc, err := gltf.Open(file)
	if err != nil {
		return fmt.Errorf("gltf open: %w", err)
	}

	textures := gltfTextures(doc, file, model.Textures, log)

	meshes := make([][]*Mesh, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := gltfPrimitive(doc, gm.Name, pi, prim, log.With(zap.Int("mesh", mi), zap.Int("primitive", pi)))
			if err != nil {
				log.Warn("skipping glTF primitive", zap.Int("mesh", mi), zap.Int("primitive", pi), zap.Error(err))
				continue
			}
			if prim.Material != nil && *prim.Material < len(doc.Materials) {
				m.Textures = gltfMaterialTextures(doc.Materials[*prim.Material], textures)
			}
			meshes[mi] = append(meshes[mi], m)
		}
	}

	type item struct {
		node   int
		parent math.Mat4
		depth  int
	}
	var stack []item
	visited := make([]bool, len(doc.Nodes))
	roots := gltfRoots(doc)
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, item{node: roots[i], parent: math.Identity()})
	}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.node < 0 || it.node >= len(doc.Nodes) {
			continue
		}
		if it.depth > maxNodeDepth {
			log.Warn("glTF node hierarchy too deep, truncating", zap.Int("node", it.node))
			continue
		}
		if visited[it.node] {
			log.Warn("glTF node reached twice, skipping", zap.Int("node", it.node), zap.Int("depth", it.depth))
			continue
		}
		visited[it.node] = true

		gn := doc.Nodes[it.node]
		world := it.parent.Mul(gltfLocalMatrix(gn))

		if gn.Mesh != nil && *gn.Mesh < len(meshes) {
			for _, src := range meshes[*gn.Mesh] {
				m := src.clone()
				Transform(m.Vertices, world)
				model.Meshes = append(model.Meshes, m)
			}
		}

		for i := len(gn.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{node: gn.Children[i], parent: world, depth: it.depth + 1})
		}
	}
	return nil
}

// gltfRoots returns the nodes of the default scene, or every parentless node
// when the file has no default scene.
func gltfRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c >= 0 && c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

var gltfIdentity = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// gltfLocalMatrix returns the node's matrix, or T*R*S when it has none.
func gltfLocalMatrix(gn *gltf.Node) math.Mat4 {
	if m := gn.MatrixOrDefault(); m != gltfIdentity {
		var out math.Mat4
		for i, v := range m {
			out[i] = float32(v)
		}
		return out
	}
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault()
	s := gn.ScaleOrDefault()
	q := math.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}
	return math.Translate(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul(q.ToMat4()).
		Mul(math.Scale(float32(s[0]), float32(s[1]), float32(s[2])))
}

func gltfPrimitiveMode(mode gltf.PrimitiveMode) Primitive {
	switch mode {
	case gltf.PrimitivePoints:
		return Points
	case gltf.PrimitiveLines:
		return Lines
	case gltf.PrimitiveLineLoop:
		return LineLoop
	case gltf.PrimitiveLineStrip:
		return LineStrip
	case gltf.PrimitiveTriangleStrip:
		return TriangleStrip
	case gltf.PrimitiveTriangleFan:
		return TriangleFan
	default:
		return Triangles
	}
}

func gltfAccessor(doc *gltf.Document, i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", i, len(doc.Accessors))
	}
	return doc.Accessors[i], nil
}

// gltfAttribute reads an optional vertex attribute. A missing attribute is
// not an error; an unreadable one is logged and treated as missing.
func gltfAttribute[T any](doc *gltf.Document, prim *gltf.Primitive, name string, log *zap.Logger,
	read func(*gltf.Document, *gltf.Accessor, []T) ([]T, error)) []T {
	i, ok := prim.Attributes[name]
	if !ok {
		return nil
	}
	acr, err := gltfAccessor(doc, i)
	if err == nil {
		var out []T
		if out, err = read(doc, acr, nil); err == nil {
			return out
		}
	}
	log.Warn("glTF attribute unreadable, ignoring", zap.String("attribute", name), zap.Error(err))
	return nil
}

// gltfPrimitive converts one glTF primitive to a mesh in node-local space.
func gltfPrimitive(doc *gltf.Document, meshName string, idx int, prim *gltf.Primitive, log *zap.Logger) (*Mesh, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	posAcr, err := gltfAccessor(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, posAcr, nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	normals := gltfAttribute(doc, prim, "NORMAL", log, modeler.ReadNormal)
	uvs := gltfAttribute(doc, prim, "TEXCOORD_0", log, modeler.ReadTextureCoord)
	tangents := gltfAttribute(doc, prim, "TANGENT", log, modeler.ReadTangent)
	colors := gltfAttribute(doc, prim, "COLOR_0", log, modeler.ReadColor)

	m := &Mesh{
		Name:      fmt.Sprintf("%s#%d", meshName, idx),
		Vertices:  make([]Vertex, len(positions)),
		Primitive: gltfPrimitiveMode(prim.Mode),
		HasColor:  len(colors) == len(positions),
	}
	for i, p := range positions {
		v := Vertex{
			Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]},
			Color:    math.Vec4{1, 1, 1, 1},
		}
		if i < len(normals) {
			v.Normal = math.Vec3{X: normals[i][0], Y: normals[i][1], Z: normals[i][2]}
		}
		if i < len(uvs) {
			// glTF puts the UV origin at the top-left.
			v.TexCoords = math.Vec2{X: uvs[i][0], Y: 1 - uvs[i][1]}
		}
		if m.HasColor {
			c := colors[i]
			v.Color = math.Vec4{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255, float32(c[3]) / 255}
		}
		m.Vertices[i] = v
	}

	if prim.Indices != nil {
		acr, err := gltfAccessor(doc, *prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		if m.Indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}

	triangles := m.Primitive == Triangles
	if len(normals) != len(positions) && triangles {
		GenerateNormals(m.Vertices, m.Indices)
	}
	switch {
	case len(tangents) == len(positions):
		for i := range m.Vertices {
			t := tangents[i]
			v := &m.Vertices[i]
			v.Tangent = math.Vec3{X: t[0], Y: t[1], Z: t[2]}
			v.Bitangent = v.Normal.Cross(v.Tangent).Scale(t[3])
		}
	case triangles && len(uvs) == len(positions):
		ComputeTangents(m.Vertices, m.Indices)
	}
	return m, nil
}

// gltfTextures loads every glTF texture into lib, indexed like doc.Textures.
// Entries that could not be resolved are nil.
func gltfTextures(doc *gltf.Document, file string, lib *texture.Library, log *zap.Logger) []*texture.Ref {
	out := make([]*texture.Ref, len(doc.Textures))
	if lib == nil {
		return out
	}
	dir := filepath.Dir(file)

	for i, gt := range doc.Textures {
		if gt.Source == nil || *gt.Source >= len(doc.Images) {
			continue
		}
		img := doc.Images[*gt.Source]

		var ref texture.Ref
		switch {
		case img.BufferView != nil:
			raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if err != nil {
				log.Warn("glTF image buffer unreadable", zap.Int("image", *gt.Source), zap.Error(err))
				continue
			}
			ref, _ = lib.LoadBytes(fmt.Sprintf("%s#image%d", file, *gt.Source), raw, "", texture.Diffuse)
		case img.IsEmbeddedResource():
			raw, err := img.MarshalData()
			if err != nil {
				log.Warn("glTF data URI unreadable", zap.Int("image", *gt.Source), zap.Error(err))
				continue
			}
			ref, _ = lib.LoadBytes(fmt.Sprintf("%s#image%d", file, *gt.Source), raw, "", texture.Diffuse)
		case img.URI != "":
			ref, _ = lib.Load(filepath.Join(dir, filepath.FromSlash(img.URI)), texture.Diffuse)
		default:
			continue
		}
		out[i] = &ref
	}
	return out
}

// gltfMaterialTextures maps a material's base color and normal textures to
// diffuse and normal refs.
func gltfMaterialTextures(gm *gltf.Material, textures []*texture.Ref) []texture.Ref {
	var refs []texture.Ref
	add := func(idx int, kind texture.Kind) {
		if idx >= 0 && idx < len(textures) && textures[idx] != nil {
			refs = append(refs, texture.Ref{Index: textures[idx].Index, Kind: kind})
		}
	}
	if pbr := gm.PBRMetallicRoughness; pbr != nil && pbr.BaseColorTexture != nil {
		add(pbr.BaseColorTexture.Index, texture.Diffuse)
	}
	if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
		add(*gm.NormalTexture.Index, texture.Normal)
	}
	return refs
}

func (m *Mesh) clone() *Mesh {
	c := *m
	c.Vertices = append([]Vertex(nil), m.Vertices...)
	c.Indices = append([]uint32(nil), m.Indices...)
	c.Textures = append([]texture.Ref(nil), m.Textures...)
	c.vao, c.vbo, c.ebo, c.indexCount = 0, 0, 0, 0
	return &c
}
