// Package assets keeps loaded textures and fonts addressable by asset id.
package assets

import (
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var ErrAssetNotFound = eris.New("asset not found")

// Loader reads asset files from disk.
type Loader interface {
	LoadTexture(path string) (*ebiten.Image, error)
	LoadFont(path string, size float64) (text.Face, error)
}

// EbitenLoader decodes images and TrueType/OpenType fonts with ebiten.
type EbitenLoader struct{}

func (EbitenLoader) LoadTexture(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "load texture %s", path)
	}
	return img, nil
}

func (EbitenLoader) LoadFont(path string, size float64) (text.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open font %s", path)
	}
	defer f.Close()

	src, err := text.NewGoTextFaceSource(f)
	if err != nil {
		return nil, eris.Wrapf(err, "parse font %s", path)
	}
	return &text.GoTextFace{Source: src, Size: size}, nil
}

// Store maps asset ids to loaded textures and fonts. Relative paths are resolved
// against the store's base directory.
type Store struct {
	log      *zap.Logger
	loader   Loader
	baseDir  string
	textures map[string]*ebiten.Image
	fonts    map[string]text.Face
}

func NewStore(baseDir string, loader Loader, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	if loader == nil {
		loader = EbitenLoader{}
	}
	return &Store{
		log:      log,
		loader:   loader,
		baseDir:  baseDir,
		textures: make(map[string]*ebiten.Image),
		fonts:    make(map[string]text.Face),
	}
}

func (s *Store) resolve(path string) string {
	if filepath.IsAbs(path) || s.baseDir == "" {
		return path
	}
	return filepath.Join(s.baseDir, path)
}

// AddTexture loads the image at path under id, replacing any previous texture.
func (s *Store) AddTexture(id, path string) error {
	img, err := s.loader.LoadTexture(s.resolve(path))
	if err != nil {
		return err
	}
	s.textures[id] = img
	s.log.Info("texture added", zap.String("asset", id), zap.String("path", path))
	return nil
}

// AddFont loads the font at path with the given size under id.
func (s *Store) AddFont(id, path string, size float64) error {
	face, err := s.loader.LoadFont(s.resolve(path), size)
	if err != nil {
		return err
	}
	s.fonts[id] = face
	s.log.Info("font added", zap.String("asset", id), zap.String("path", path), zap.Float64("size", size))
	return nil
}

func (s *Store) GetTexture(id string) (*ebiten.Image, error) {
	img, ok := s.textures[id]
	if !ok {
		return nil, eris.Wrapf(ErrAssetNotFound, "texture %q", id)
	}
	return img, nil
}

func (s *Store) GetFont(id string) (text.Face, error) {
	face, ok := s.fonts[id]
	if !ok {
		return nil, eris.Wrapf(ErrAssetNotFound, "font %q", id)
	}
	return face, nil
}

// Clear drops every texture and font.
func (s *Store) Clear() {
	for id, img := range s.textures {
		if img != nil {
			img.Deallocate()
		}
		delete(s.textures, id)
	}
	clear(s.fonts)
	s.log.Debug("asset store cleared")
}

// Len returns the number of textures and fonts held.
func (s *Store) Len() (textures, fonts int) {
	return len(s.textures), len(s.fonts)
}
