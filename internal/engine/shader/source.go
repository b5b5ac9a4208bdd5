package shader

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed glsl/*.vs glsl/*.fs
var builtin embed.FS

// Source locates shader stages stored as <name>.vs and <name>.fs. With an
// empty Dir the sources compiled into the binary are used.
type Source struct {
	Dir string
}

// Read returns the vertex and fragment source of the named pair.
func (s Source) Read(name string) (vertex, fragment string, err error) {
	return s.ReadPair(name, name)
}

// ReadPair reads stages that do not share a name, such as a vertex stage
// reused by several fragment stages.
func (s Source) ReadPair(vertexName, fragmentName string) (vertex, fragment string, err error) {
	if vertex, err = s.readStage(vertexName + ".vs"); err != nil {
		return "", "", err
	}
	if fragment, err = s.readStage(fragmentName + ".fs"); err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}

func (s Source) readStage(file string) (string, error) {
	var (
		data []byte
		err  error
	)
	if s.Dir != "" {
		data, err = os.ReadFile(filepath.Join(s.Dir, file))
	} else {
		data, err = builtin.ReadFile("glsl/" + file)
	}
	if err != nil {
		return "", fmt.Errorf("shader %s: %w", file, err)
	}
	return string(data), nil
}
