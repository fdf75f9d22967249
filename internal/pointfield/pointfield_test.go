package pointfield_test

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spicy/internal/graphics"
	"spicy/internal/pointfield"
)

var tomato = graphics.MustColor("tomato").Vec3()

func vecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-3, "component %d of %v vs %v", i, want, got)
	}
}

func TestShadeExactHitIsWhite(t *testing.T) {
	cfg, err := pointfield.NewConfig(8, []mgl32.Vec3{{0, 0, 1}}, tomato)
	require.NoError(t, err)

	q := mgl32.Vec3{0, 0, 1}
	assert.Equal(t, float32(0), cfg.MinDistance(q))
	assert.Equal(t, float32(1), cfg.Mask(q))
	assert.Equal(t, pointfield.HighlightColor, cfg.Shade(q))
}

func TestShadeFarQueryKeepsBaseColor(t *testing.T) {
	cfg, err := pointfield.NewConfig(8, []mgl32.Vec3{{0, 0, 1}}, tomato)
	require.NoError(t, err)

	q := mgl32.Vec3{0, 1, 0}
	assert.InDelta(t, math.Sqrt2, cfg.MinDistance(q), 1e-5)
	assert.Equal(t, float32(0), cfg.Mask(q))
	assert.Equal(t, tomato, cfg.Shade(q))
	vecNear(t, mgl32.Vec3{1.0, 0.388, 0.278}, cfg.Shade(q))
}

func TestShadeNoPointsIsBaseEverywhere(t *testing.T) {
	cfg, err := pointfield.NewConfig(1, nil, tomato)
	require.NoError(t, err)

	for _, q := range []mgl32.Vec3{{}, {0, 0, 1}, {0.1, 0, 0}, {-3, 2, 9}} {
		assert.Equal(t, float32(10000), cfg.MinDistance(q))
		assert.Equal(t, tomato, cfg.Shade(q), "query %v", q)
	}
}

func TestThresholdBoundary(t *testing.T) {
	cfg, err := pointfield.NewConfig(4, []mgl32.Vec3{{0, 0, 0}}, tomato)
	require.NoError(t, err)

	tests := []struct {
		name string
		q    mgl32.Vec3
		mask float32
	}{
		{"inside", mgl32.Vec3{0.1, 0, 0}, 1},
		{"just inside", mgl32.Vec3{0.149, 0, 0}, 1},
		{"just outside", mgl32.Vec3{0.151, 0, 0}, 0},
		{"outside", mgl32.Vec3{0, 0.2, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.mask, cfg.Mask(tt.q))
		})
	}
}

func TestNearestOfSeveralPointsWins(t *testing.T) {
	pts := []mgl32.Vec3{{5, 0, 0}, {0, 0, 1}, {0, 0, 1.05}, {-5, 0, 0}}
	cfg, err := pointfield.NewConfig(len(pts), pts, tomato)
	require.NoError(t, err)

	assert.InDelta(t, 0.05, cfg.MinDistance(mgl32.Vec3{0, 0, 1.1}), 1e-5)
	assert.Equal(t, pointfield.HighlightColor, cfg.Shade(mgl32.Vec3{0, 0, 1.1}))
}

func TestShadeIsIdempotent(t *testing.T) {
	cfg, err := pointfield.NewConfig(8, []mgl32.Vec3{{0, 0, 1}, {1, 0, 0}}, tomato)
	require.NoError(t, err)

	q := mgl32.Vec3{0.5, 0.5, 0.1}
	first := cfg.Shade(q)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, cfg.Shade(q))
	}
}

func TestConfigValidation(t *testing.T) {
	_, err := pointfield.NewConfig(0, nil, tomato)
	assert.ErrorIs(t, err, pointfield.ErrNoCapacity)

	_, err = pointfield.NewConfig(1, []mgl32.Vec3{{}, {1, 0, 0}}, tomato)
	assert.ErrorIs(t, err, pointfield.ErrTooManyPoints)

	cfg, err := pointfield.NewConfig(2, []mgl32.Vec3{{}, {1, 0, 0}}, tomato)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.PointCount())
	assert.Equal(t, 2, cfg.MaxPoints())
}

func TestConfigCopiesPoints(t *testing.T) {
	pts := []mgl32.Vec3{{0, 0, 1}}
	cfg, err := pointfield.NewConfig(4, pts, tomato)
	require.NoError(t, err)

	pts[0] = mgl32.Vec3{9, 9, 9}
	got := cfg.Points()
	got[0] = mgl32.Vec3{7, 7, 7}

	assert.Equal(t, []mgl32.Vec3{{0, 0, 1}}, cfg.Points())
}

func TestMaterialUploadsActualCount(t *testing.T) {
	pts := graphics.NewIcosahedronGeometry(1, 1).Vertices()
	cfg, err := pointfield.NewConfig(pointfield.DefaultMaxPoints, pts, tomato)
	require.NoError(t, err)

	m := pointfield.NewMaterial(cfg)
	assert.Len(t, m.Uniforms[pointfield.UniformPoints].Value, 42)
	assert.Equal(t, int32(42), m.Uniforms[pointfield.UniformPointCount].Value)
	assert.Equal(t, pointfield.DefaultMaxPoints, m.Defines["MAX_POINTS"])

	_, fs := m.Source()
	assert.Contains(t, fs, "#define MAX_POINTS 64\n")
	assert.Contains(t, fs, "#define THRESHOLD 0.15\n")
	assert.Contains(t, fs, "#define DISTANCE_SENTINEL 10000.0\n")
	assert.True(t, strings.HasPrefix(fs, "#version 410 core\n"))
	assert.Contains(t, fs, "uniform vec3 points[MAX_POINTS];")
}

func TestIcosahedronPointsLieOnUnitSphere(t *testing.T) {
	pts := graphics.NewIcosahedronGeometry(1, 1).Vertices()
	cfg, err := pointfield.NewConfig(pointfield.DefaultMaxPoints, pts, tomato)
	require.NoError(t, err)

	// every reference point is a dot centre on the unit sphere
	for _, p := range pts {
		assert.InDelta(t, 1, p.Len(), 1e-5)
		assert.Equal(t, pointfield.HighlightColor, cfg.Shade(p))
	}
	// a sphere point midway between two neighbouring vertices stays base colored
	mid := pts[0].Add(pts[1]).Normalize()
	if cfg.MinDistance(mid) > pointfield.Threshold {
		assert.Equal(t, tomato, cfg.Shade(mid))
	}
}
