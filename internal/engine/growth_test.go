package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/agrisim/internal/crop"
	"github.com/talgya/agrisim/internal/params"
)

// testProfile gives baseline_yield_per_ha * area_ha = 10 with the default
// 10 ha area, so expected yields read directly off the growth rate.
var testProfile = crop.Profile{Name: "test", BaselineYieldKgPerHa: 1}

func TestNewWeightedModelRejectsBadSums(t *testing.T) {
	cases := [][3]float64{
		{0.4, 0.3, 0.2},  // sums to 0.9
		{0.5, 0.5, 0.5},  // sums to 1.5
		{1.2, -0.1, -0.1}, // sums to 1 but negative
		{0, 0, 0},
	}
	for _, c := range cases {
		_, err := NewWeightedModel(c[0], c[1], c[2])
		if !errors.Is(err, ErrBadWeights) {
			t.Errorf("NewWeightedModel(%v) error = %v, want ErrBadWeights", c, err)
		}
	}
}

func TestNewWeightedModelAcceptsConvexWeights(t *testing.T) {
	m, err := NewWeightedModel(0.4, 0.3, 0.3)
	require.NoError(t, err)
	assert.Equal(t, DefaultModel(), m)
}

// For all normalized inputs in [0,1], the growth rate stays in [0,1]:
// it is a convex combination.
func TestGrowthRateConvexBound(t *testing.T) {
	m := DefaultModel()
	grid := []float64{0, 0.25, 0.5, 0.75, 1}
	for _, mo := range grid {
		for _, nu := range grid {
			for _, pe := range grid {
				g := m.Growth(params.Normalized{Moisture: mo, Nutrient: nu, Pest: pe})
				assert.GreaterOrEqual(t, g, 0.0, "moisture=%g nutrient=%g pest=%g", mo, nu, pe)
				assert.LessOrEqual(t, g, 1.0, "moisture=%g nutrient=%g pest=%g", mo, nu, pe)
			}
		}
	}
}

// Growth must never go un-clamped negative or above 1 even for terms the
// caller failed to normalize.
func TestGrowthClampsWildTerms(t *testing.T) {
	m := DefaultModel()
	g := m.Growth(params.Normalized{Moisture: -5, Nutrient: 40, Pest: -3})
	assert.GreaterOrEqual(t, g, 0.0)
	assert.LessOrEqual(t, g, 1.0)
}

func TestGrowthMonotonicity(t *testing.T) {
	m := DefaultModel()
	base := params.Normalized{Moisture: 0.5, Nutrient: 0.5, Pest: 0.5}
	g0 := m.Growth(base)

	wetter := base
	wetter.Moisture = 0.9
	assert.GreaterOrEqual(t, m.Growth(wetter), g0, "non-decreasing in moisture")

	richer := base
	richer.Nutrient = 0.9
	assert.GreaterOrEqual(t, m.Growth(richer), g0, "non-decreasing in nutrient")

	buggier := base
	buggier.Pest = 0.9
	assert.LessOrEqual(t, m.Growth(buggier), g0, "non-increasing in pest pressure")
}

func TestGrowthBoundaries(t *testing.T) {
	m := DefaultModel()
	assert.Equal(t, 0.0, m.Growth(params.Normalized{Moisture: 0, Nutrient: 0, Pest: 1}))
	assert.InDelta(t, 1.0, m.Growth(params.Normalized{Moisture: 1, Nutrient: 1, Pest: 0}), 1e-12)
}

// Reference scenario: moisture 0.8, nutrient 0.5, pest 0.1 with weights
// (0.4, 0.3, 0.3) gives growth 0.74; with baseline*area = 10, yield 7.4.
func TestYieldScenario(t *testing.T) {
	e := New(DefaultModel())
	p := params.Parameters{
		Temperature:  25,
		Rainfall:     params.RainfallRange.Max * 0.8, // moisture_norm = 0.8
		SoilN:        params.SoilNRange.Max * 0.5,    // nutrient_norm = 0.5
		PestPressure: 0.1,
		AreaHa:       10,
	}
	res, err := e.Yield(p, testProfile, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.74, res.GrowthRate, 1e-9)
	assert.InDelta(t, 7.4, res.YieldKg, 1e-9)
}

func TestYieldBoundaries(t *testing.T) {
	e := New(DefaultModel())

	worst := params.Parameters{Rainfall: 0, SoilN: 0, PestPressure: 1, AreaHa: 10}
	res, err := e.Yield(worst, testProfile, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.GrowthRate)
	assert.Equal(t, 0.0, res.YieldKg)

	best := params.Parameters{
		Temperature: 22,
		Rainfall:    params.RainfallRange.Max,
		SoilN:       params.SoilNRange.Max,
		AreaHa:      10,
	}
	res, err = e.Yield(best, testProfile, false)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.GrowthRate, 1e-12)
	assert.InDelta(t, 10.0, res.YieldKg, 1e-9) // baseline 1 kg/ha × 10 ha
}

// Invoking the engine twice with an identical parameter model produces
// bit-identical results: the computation is pure.
func TestYieldIdempotent(t *testing.T) {
	e := New(DefaultModel())
	p := params.Parameters{Temperature: 19, Rainfall: 3.7, SoilN: 41, PestPressure: 0.23, AreaHa: 17}
	first, err := e.Yield(p, testProfile, false)
	require.NoError(t, err)
	second, err := e.Yield(p, testProfile, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestYieldStrictRejectsOutOfDomain(t *testing.T) {
	e := New(DefaultModel())
	p := params.Default()
	p.Rainfall = -1
	_, err := e.Yield(p, testProfile, false)
	assert.ErrorIs(t, err, params.ErrOutOfDomain)

	// Same input recovers locally when clamping is requested.
	res, err := e.Yield(p, testProfile, true)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.YieldKg, 0.0)
}
