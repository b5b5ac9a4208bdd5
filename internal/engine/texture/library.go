package texture

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/logger"
)

// Ref names a texture in a Library. Meshes keep Refs, never GL ids.
type Ref struct {
	Index int
	Kind  Kind
}

// Uploader creates and deletes GPU textures.
type Uploader interface {
	Upload(img *Image) (uint32, error)
	Delete(ids []uint32)
}

type entry struct {
	path string
	kind Kind
	id   uint32
}

// Library loads each image file once and hands out shared Refs to it.
type Library struct {
	uploader Uploader
	entries  []entry
	byPath   map[string]int
	log      *zap.Logger
}

// NewLibrary creates a library that uploads through OpenGL.
// Requires a current GL context when Load is called.
func NewLibrary() *Library {
	return NewLibraryWith(GLUploader{})
}

// NewLibraryWith creates a library using u for GPU work.
func NewLibraryWith(u Uploader) *Library {
	return &Library{
		uploader: u,
		byPath:   make(map[string]int),
		log:      logger.Named("texture"),
	}
}

// Load returns the Ref for path, decoding and uploading it on first use.
// ok is false when the file could not be used; the Ref is still valid and
// binds texture 0 so the mesh renders untextured.
func (l *Library) Load(path string, kind Kind) (ref Ref, ok bool) {
	key := normalize(path)
	if idx, found := l.byPath[key]; found {
		return Ref{Index: idx, Kind: kind}, l.entries[idx].id != 0
	}

	img, err := DecodeFile(key)
	return l.add(key, kind, img, err)
}

// LoadBytes is Load for images embedded in another file. key identifies
// the image for caching and logging; ext selects the TGA decoder.
func (l *Library) LoadBytes(key string, data []byte, ext string, kind Kind) (ref Ref, ok bool) {
	if idx, found := l.byPath[key]; found {
		return Ref{Index: idx, Kind: kind}, l.entries[idx].id != 0
	}
	img, err := Decode(data, ext)
	return l.add(key, kind, img, err)
}

func (l *Library) add(key string, kind Kind, img *Image, err error) (Ref, bool) {
	idx := len(l.entries)
	l.entries = append(l.entries, entry{path: key, kind: kind})
	l.byPath[key] = idx
	ref := Ref{Index: idx, Kind: kind}

	if err != nil {
		l.log.Error("texture failed to load", zap.String("path", key), zap.Error(err))
		return ref, false
	}
	id, err := l.uploader.Upload(img)
	if err != nil {
		l.log.Error("texture upload failed", zap.String("path", key), zap.Error(err))
		return ref, false
	}
	l.entries[idx].id = id
	l.log.Debug("texture loaded",
		zap.String("path", key),
		zap.Stringer("kind", kind),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("components", img.Components))
	return ref, true
}

// ID returns the GL texture for ref, or 0 for unknown or failed textures.
func (l *Library) ID(ref Ref) uint32 {
	if l == nil || ref.Index < 0 || ref.Index >= len(l.entries) {
		return 0
	}
	return l.entries[ref.Index].id
}

// Path returns the normalised path ref was loaded from.
func (l *Library) Path(ref Ref) string {
	if ref.Index < 0 || ref.Index >= len(l.entries) {
		return ""
	}
	return l.entries[ref.Index].path
}

// Len returns the number of distinct files requested.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Release deletes every GPU texture. Safe to call more than once.
func (l *Library) Release() {
	if l == nil {
		return
	}
	ids := make([]uint32, 0, len(l.entries))
	for i := range l.entries {
		if l.entries[i].id != 0 {
			ids = append(ids, l.entries[i].id)
			l.entries[i].id = 0
		}
	}
	if len(ids) > 0 {
		l.uploader.Delete(ids)
	}
	l.entries = nil
	l.byPath = make(map[string]int)
}

func normalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
