package assets_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/plus3/skirmish/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFace struct {
	text.Face
	size float64
}

type fakeLoader struct {
	paths []string
	fail  bool
}

func (l *fakeLoader) LoadTexture(path string) (*ebiten.Image, error) {
	l.paths = append(l.paths, path)
	if l.fail {
		return nil, errors.New("boom")
	}
	return nil, nil
}

func (l *fakeLoader) LoadFont(path string, size float64) (text.Face, error) {
	l.paths = append(l.paths, path)
	if l.fail {
		return nil, errors.New("boom")
	}
	return fakeFace{size: size}, nil
}

func TestAddAndGetAssets(t *testing.T) {
	loader := &fakeLoader{}
	store := assets.NewStore("assets", loader, nil)

	require.NoError(t, store.AddTexture("tank", "images/tank.png"))
	require.NoError(t, store.AddFont("arial", "/fonts/arial.ttf", 14))

	assert.Equal(t, []string{filepath.Join("assets", "images/tank.png"), "/fonts/arial.ttf"}, loader.paths)

	_, err := store.GetTexture("tank")
	assert.NoError(t, err)
	face, err := store.GetFont("arial")
	require.NoError(t, err)
	assert.Equal(t, 14.0, face.(fakeFace).size)

	textures, fonts := store.Len()
	assert.Equal(t, 1, textures)
	assert.Equal(t, 1, fonts)
}

func TestMissingAssets(t *testing.T) {
	store := assets.NewStore("", &fakeLoader{}, nil)

	_, err := store.GetTexture("nope")
	assert.ErrorIs(t, err, assets.ErrAssetNotFound)
	_, err = store.GetFont("nope")
	assert.ErrorIs(t, err, assets.ErrAssetNotFound)
}

func TestLoaderErrorsPropagate(t *testing.T) {
	store := assets.NewStore("", &fakeLoader{fail: true}, nil)

	assert.Error(t, store.AddTexture("tank", "tank.png"))
	_, err := store.GetTexture("tank")
	assert.ErrorIs(t, err, assets.ErrAssetNotFound)
}

func TestClear(t *testing.T) {
	store := assets.NewStore("", &fakeLoader{}, nil)
	require.NoError(t, store.AddTexture("tank", "tank.png"))
	require.NoError(t, store.AddFont("arial", "arial.ttf", 10))

	store.Clear()

	textures, fonts := store.Len()
	assert.Zero(t, textures)
	assert.Zero(t, fonts)
}

func TestEbitenLoaderReportsMissingFiles(t *testing.T) {
	var loader assets.EbitenLoader
	dir := t.TempDir()

	_, err := loader.LoadTexture(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
	_, err = loader.LoadFont(filepath.Join(dir, "missing.ttf"), 12)
	assert.Error(t, err)
}
