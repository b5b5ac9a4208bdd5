package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gldemos/pkg/math"
)

func TestBuiltinSources(t *testing.T) {
	pairs := [][2]string{
		{"simple_rendering", "simple_rendering"},
		{"shadow_rendering", "shadow_rendering"},
		{"depth_mapping", "depth_mapping"},
		{"point", "uniform_color"},
		{"cubes", "cubes"},
		{"triangle", "triangle"},
	}
	for _, p := range pairs {
		t.Run(p[1], func(t *testing.T) {
			vs, fs, err := Source{}.ReadPair(p[0], p[1])
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(vs, "#version 410 core"))
			assert.True(t, strings.HasPrefix(fs, "#version 410 core"))
			assert.Contains(t, vs, "void main()")
			assert.Contains(t, fs, "void main()")
		})
	}
}

func TestShadowShaderUniforms(t *testing.T) {
	vs, fs, err := Source{}.Read("shadow_rendering")
	require.NoError(t, err)
	for _, name := range []string{"lightSpaceMatrix", "projection", "view", "model"} {
		assert.Contains(t, vs, "uniform mat4 "+name)
	}
	for _, name := range []string{"shadowMap", "texture_diffuse1"} {
		assert.Contains(t, fs, "uniform sampler2D "+name)
	}
}

func TestSourceDirOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.vs"), []byte("custom vs"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.fs"), []byte("custom fs"), 0644))

	vs, fs, err := Source{Dir: dir}.Read("triangle")
	require.NoError(t, err)
	assert.Equal(t, "custom vs", vs)
	assert.Equal(t, "custom fs", fs)
}

func TestSourceMissingStage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "half.vs"), []byte("vs"), 0644))

	_, _, err := Source{Dir: dir}.Read("half")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "half.fs")

	_, _, err = Source{}.Read("does_not_exist")
	assert.Error(t, err)
}

func TestLoadMissingSourceGivesInvalidProgram(t *testing.T) {
	p := Load(Source{Dir: t.TempDir()}, "simple_rendering")
	require.NotNil(t, p)
	assert.False(t, p.Valid())
	assert.Equal(t, "simple_rendering", p.Name)

	// Calls on an invalid program do not reach GL.
	p.Use()
	p.SetMat4("model", math.Identity())
	p.SetVec3("viewPos", math.Vec3{})
	p.SetVec4("color", math.Vec4{1, 1, 1, 1})
	p.SetInt("shadowMap", 1)
	p.SetFloat("mixValue", 0.2)
	p.SetBool("useVertexColor", true)
	p.Release()
}

func TestNilProgramIsInvalid(t *testing.T) {
	var p *Program
	assert.False(t, p.Valid())
	p.Use()
	p.SetInt("texture_diffuse1", 0)
	p.Release()
}

func TestCompileErrorMessage(t *testing.T) {
	tests := []struct {
		err  *CompileError
		want string
	}{
		{&CompileError{Stage: Vertex, Log: "0:3: syntax error"}, "vertex shader: 0:3: syntax error"},
		{&CompileError{Stage: Fragment, Log: "x"}, "fragment shader: x"},
		{&CompileError{Log: "unresolved symbol"}, "link: unresolved symbol"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
	assert.Equal(t, "stage(0x1)", Stage(1).String())
}
