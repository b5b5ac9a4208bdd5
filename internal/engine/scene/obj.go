package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/engine/texture"
	"github.com/Faultbox/gldemos/pkg/math"
)

// objCorner indexes one face corner into the position, UV and normal
// pools. -1 marks an absent index.
type objCorner struct {
	v, vt, vn int
}

type objGroup struct {
	name     string
	material string
	corners  []objCorner // three per triangle
}

// objTextureKinds maps MTL texture statements to texture kinds.
var objTextureKinds = map[string]texture.Kind{
	"map_kd":   texture.Diffuse,
	"map_ks":   texture.Specular,
	"map_bump": texture.Normal,
	"bump":     texture.Normal,
	"norm":     texture.Normal,
	"map_ka":   texture.Height,
}

type objMaterial struct {
	textures []objTexture
}

type objTexture struct {
	path string
	kind texture.Kind
}

// loadOBJ reads a Wavefront OBJ file and its MTL libraries into model.
func loadOBJ(file string, model *Model, log *zap.Logger) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()
	return parseOBJ(f, filepath.Dir(file), model, log)
}

func parseOBJ(r io.Reader, dir string, model *Model, log *zap.Logger) error {
	var (
		positions []math.Vec3
		normals   []math.Vec3
		uvs       []math.Vec2
		groups    []*objGroup
	)
	materials := map[string]*objMaterial{}
	cur := &objGroup{name: "default"}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, math.Vec3{X: v[0], Y: v[1], Z: v[2]})

		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, math.Vec3{X: v[0], Y: v[1], Z: v[2]})

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			uvs = append(uvs, math.Vec2{X: v[0], Y: v[1]})

		case "o", "g":
			if len(cur.corners) > 0 {
				groups = append(groups, cur)
			}
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			cur = &objGroup{name: name, material: cur.material}

		case "usemtl":
			if len(fields) < 2 {
				continue
			}
			// A material switch mid-group starts a new mesh.
			if len(cur.corners) > 0 {
				groups = append(groups, cur)
				cur = &objGroup{name: cur.name}
			}
			cur.material = fields[1]

		case "mtllib":
			for _, name := range fields[1:] {
				loaded, err := loadMTL(filepath.Join(dir, name), dir)
				if err != nil {
					log.Warn("material library unreadable", zap.String("file", name), zap.Error(err))
					continue
				}
				for k, v := range loaded {
					materials[k] = v
				}
			}

		case "f":
			if len(fields) < 4 {
				continue
			}
			face := make([]objCorner, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				c, err := parseCorner(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return fmt.Errorf("line %d: %w", lineNo, err)
				}
				face = append(face, c)
			}
			// Fan triangulation: 0-1-2, 0-2-3, ...
			for i := 1; i+1 < len(face); i++ {
				cur.corners = append(cur.corners, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan obj: %w", err)
	}
	if len(cur.corners) > 0 {
		groups = append(groups, cur)
	}
	if len(groups) == 0 {
		return fmt.Errorf("no faces found")
	}

	for _, g := range groups {
		mesh := buildOBJMesh(g, positions, uvs, normals)
		if mat, ok := materials[g.material]; ok && model.Textures != nil {
			for _, t := range mat.textures {
				ref, _ := model.Textures.Load(t.path, t.kind)
				mesh.Textures = append(mesh.Textures, ref)
			}
		}
		model.Meshes = append(model.Meshes, mesh)
	}
	return nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn". Indices are 1-based;
// negative ones count back from the end of the pool read so far.
func parseCorner(tok string, nv, nvt, nvn int) (objCorner, error) {
	c := objCorner{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")
	pools := [3]int{nv, nvt, nvn}
	dst := [3]*int{&c.v, &c.vt, &c.vn}

	for i := 0; i < len(parts) && i < 3; i++ {
		if parts[i] == "" {
			continue
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return c, fmt.Errorf("bad face index %q", tok)
		}
		idx := n - 1
		if n < 0 {
			idx = pools[i] + n
		}
		if n == 0 || idx < 0 || idx >= pools[i] {
			return c, fmt.Errorf("face index %q out of range", tok)
		}
		*dst[i] = idx
	}
	if c.v < 0 {
		return c, fmt.Errorf("face corner %q has no position", tok)
	}
	return c, nil
}

// buildOBJMesh deduplicates corners into indexed vertices. Normals are
// generated when the group has none; tangents come from the UVs.
func buildOBJMesh(g *objGroup, positions []math.Vec3, uvs []math.Vec2, normals []math.Vec3) *Mesh {
	m := &Mesh{Name: g.name}
	seen := map[objCorner]uint32{}
	hasNormals := true

	for _, c := range g.corners {
		if idx, ok := seen[c]; ok {
			m.Indices = append(m.Indices, idx)
			continue
		}
		v := Vertex{Position: positions[c.v], Color: math.Vec4{1, 1, 1, 1}}
		if c.vt >= 0 {
			v.TexCoords = uvs[c.vt]
		}
		if c.vn >= 0 {
			v.Normal = normals[c.vn]
		} else {
			hasNormals = false
		}
		idx := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, v)
		seen[c] = idx
		m.Indices = append(m.Indices, idx)
	}

	if !hasNormals {
		GenerateNormals(m.Vertices, m.Indices)
	}
	ComputeTangents(m.Vertices, m.Indices)
	return m
}

// loadMTL reads the texture statements of an MTL file. Texture paths are
// resolved against dir; option flags before the file name are skipped.
func loadMTL(file, dir string) (map[string]*objMaterial, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mats := map[string]*objMaterial{}
	var cur *objMaterial

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) > 1 {
				cur = &objMaterial{}
				mats[fields[1]] = cur
			}
			continue
		}
		kind, ok := objTextureKinds[strings.ToLower(fields[0])]
		if !ok || cur == nil || len(fields) < 2 {
			continue
		}
		name := filepath.FromSlash(strings.ReplaceAll(fields[len(fields)-1], `\`, "/"))
		cur.textures = append(cur.textures, objTexture{path: filepath.Join(dir, name), kind: kind})
	}
	return mats, scanner.Err()
}
