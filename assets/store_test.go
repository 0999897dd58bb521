package assets_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadOnce(t *testing.T) {
	store := assets.NewStore(nil)

	first, err := assets.ModelDef{Name: "crate", Shape: assets.ShapeCube, Size: [3]float32{2, 2, 2}}.Build()
	require.NoError(t, err)
	second, err := assets.ModelDef{Name: "crate", Shape: assets.ShapeSphere}.Build()
	require.NoError(t, err)

	assert.True(t, store.Load(first))
	assert.True(t, store.Load(second))
	assert.Equal(t, 1, store.Count())
	assert.Equal(t, assets.ShapeCube, store.Get("crate").Shape)
	assert.False(t, store.Load(nil))
}

func TestStoreInstance(t *testing.T) {
	store := assets.NewStore(nil)
	require.NoError(t, store.LoadDefs([]assets.ModelDef{
		{Name: "cube"},
		{Name: "ball", Shape: assets.ShapeSphere, Size: [3]float32{1, 1, 1}},
	}))

	h := store.Instance("cube")
	assert.True(t, h.Valid())
	b, ok := store.Bounds(h)
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, b.Min)

	missing := store.Instance("nope")
	assert.False(t, missing.Valid())
	_, ok = store.Bounds(missing)
	assert.False(t, ok)

	assert.Equal(t, []string{"ball", "cube"}, store.Names())

	store.Unload("cube")
	_, ok = store.Bounds(h)
	assert.False(t, ok)
	assert.False(t, store.Has("cube"))

	store.UnloadAll()
	assert.Equal(t, 0, store.Count())
}

func TestStoreLoadDefsKeepsGoing(t *testing.T) {
	store := assets.NewStore(nil)
	err := store.LoadDefs([]assets.ModelDef{
		{Name: "bad", Shape: "teapot"},
		{Name: ""},
		{Name: "good", Shape: assets.ShapePyramid},
	})
	assert.ErrorContains(t, err, "teapot")
	assert.True(t, store.Has("good"))
	assert.False(t, store.Has("bad"))
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
models:
  - name: floor
    shape: plane
    size: [10, 0, 10]
    color: [40, 40, 40, 255]
  - name: pillar
    shape: cylinder
    size: [1, 3, 1]
`), 0o644))

	store := assets.NewStore(nil)
	require.NoError(t, store.LoadManifest(path))

	floor := store.Get("floor")
	require.NotNil(t, floor)
	assert.Equal(t, float32(0), floor.Bounds.Size().Y())
	assert.Equal(t, uint8(40), floor.Color.R)
	assert.Len(t, floor.Segments, 4)

	pillar := store.Get("pillar")
	require.NotNil(t, pillar)
	assert.Equal(t, assets.Magenta, pillar.Color)
	assert.Equal(t, float32(1.5), pillar.Bounds.Max.Y())

	assert.Error(t, store.LoadManifest(filepath.Join(dir, "missing.yaml")))
}

func TestBuildShapes(t *testing.T) {
	for _, shape := range []assets.Shape{assets.ShapeCube, assets.ShapeSphere, assets.ShapeCylinder, assets.ShapePyramid, assets.ShapePlane} {
		m, err := assets.ModelDef{Name: string(shape), Shape: shape}.Build()
		require.NoError(t, err)
		assert.NotEmpty(t, m.Segments, shape)
		for _, seg := range m.Segments {
			assert.True(t, m.Bounds.Contains(seg[0]), shape)
			assert.True(t, m.Bounds.Contains(seg[1]), shape)
		}
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := assets.NewStore(nil)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.LoadDefs([]assets.ModelDef{{Name: "shared"}})
			for j := 0; j < 100; j++ {
				store.Instance("shared")
				store.Names()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, store.Count())
}
