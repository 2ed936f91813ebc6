package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/agrisim/internal/params"
)

func TestSweepDegenerate(t *testing.T) {
	e := New(DefaultModel())
	p := params.Default()

	cases := []struct {
		name     string
		from, to float64
		steps    int
	}{
		{"zero steps", 0, 12, 0},
		{"negative steps", 0, 12, -5},
		{"inverted range", 12, 0, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			series, err := e.Sweep(p, testProfile, SweepRainfall, c.from, c.to, c.steps)
			assert.ErrorIs(t, err, ErrDegenerateSweep)
			assert.Empty(t, series)
		})
	}
}

func TestSweepUnknownVariable(t *testing.T) {
	e := New(DefaultModel())
	_, err := e.Sweep(params.Default(), testProfile, SweepVar("humidity"), 0, 1, 5)
	assert.Error(t, err)
}

func TestSweepSeries(t *testing.T) {
	e := New(DefaultModel())
	p := params.Default()

	series, err := e.Sweep(p, testProfile, SweepRainfall, 0, 12, 13)
	require.NoError(t, err)
	require.Len(t, series, 13)

	assert.Equal(t, 0.0, series[0].Input)
	assert.Equal(t, 12.0, series[len(series)-1].Input)

	// Yield is non-decreasing in rainfall with everything else fixed.
	for i := 1; i < len(series); i++ {
		assert.GreaterOrEqual(t, series[i].YieldKg, series[i-1].YieldKg,
			"yield dropped between rainfall %g and %g", series[i-1].Input, series[i].Input)
	}
}

func TestSweepSinglePoint(t *testing.T) {
	e := New(DefaultModel())
	series, err := e.Sweep(params.Default(), testProfile, SweepPest, 0.5, 1, 1)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 0.5, series[0].Input)
}

// Sweeps are restartable: recomputed fresh, two identical requests give
// identical series.
func TestSweepRestartable(t *testing.T) {
	e := New(DefaultModel())
	p := params.Default()
	first, err := e.Sweep(p, testProfile, SweepSoilN, 0, 100, 21)
	require.NoError(t, err)
	second, err := e.Sweep(p, testProfile, SweepSoilN, 0, 100, 21)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// Swept values outside the physical domain are clamped per point, never
// passed through raw.
func TestSweepClampsOutOfDomainValues(t *testing.T) {
	e := New(DefaultModel())
	series, err := e.Sweep(params.Default(), testProfile, SweepRainfall, -10, 30, 5)
	require.NoError(t, err)
	for _, pt := range series {
		assert.GreaterOrEqual(t, pt.YieldKg, 0.0)
		assert.LessOrEqual(t, pt.GrowthRate, 1.0)
	}
}
