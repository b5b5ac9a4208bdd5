package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/engine/texture"
	"github.com/Faultbox/gldemos/internal/logger"
)

// LoadModel imports a .gltf, .glb or .obj file. It never fails: on error the
// problem is logged and the returned model is empty.
func LoadModel(path string, lib *texture.Library) *Model {
	log := logger.Named("scene")
	model := NewModel(lib)
	model.Directory = filepath.Dir(path)

	if err := loadInto(path, model, log); err != nil {
		log.Error("model import failed", zap.String("path", path), zap.Error(err))
		model.Meshes = nil
		return model
	}

	vertices := 0
	for _, m := range model.Meshes {
		vertices += len(m.Vertices)
	}
	log.Info("model loaded",
		zap.String("path", path),
		zap.Int("meshes", len(model.Meshes)),
		zap.Int("vertices", vertices),
		zap.Int("textures", lib.Len()))
	return model
}

func loadInto(path string, model *Model, log *zap.Logger) (err error) {
	// Decoders may panic on malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("importer panic: %v", r)
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return loadGLTF(path, model, log)
	case ".obj":
		return loadOBJ(path, model, log)
	default:
		return fmt.Errorf("unsupported model format %q", filepath.Ext(path))
	}
}
