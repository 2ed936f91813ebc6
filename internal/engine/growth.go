// Package engine computes crop-yield estimates from a parameter model.
// The growth-rate formula is an injectable strategy so the dashboard (or a
// future calibration) can swap it without touching the surrounding code.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/talgya/agrisim/internal/crop"
	"github.com/talgya/agrisim/internal/params"
)

// ErrBadWeights indicates configured growth weights that do not sum to 1.
// Silently accepting them would skew every yield the tool reports, so this
// is treated as fatal at startup.
var ErrBadWeights = errors.New("growth weights must sum to 1")

const weightTolerance = 1e-9

// GrowthModel maps normalized conditions to a growth rate in [0,1].
type GrowthModel interface {
	Growth(n params.Normalized) float64
}

// WeightedModel is the default growth formula: a convex combination of
// moisture, nutrient, and pest-free terms. With weights summing to 1 and
// all terms in [0,1], the result is guaranteed to stay in [0,1].
type WeightedModel struct {
	WMoisture float64 `json:"w_moisture"`
	WNutrient float64 `json:"w_nutrient"`
	WPest     float64 `json:"w_pest"`
}

// NewWeightedModel validates the weight sum and returns the model.
func NewWeightedModel(wm, wn, wp float64) (WeightedModel, error) {
	if sum := wm + wn + wp; math.Abs(sum-1) > weightTolerance {
		return WeightedModel{}, fmt.Errorf("%w: got %g+%g+%g=%g", ErrBadWeights, wm, wn, wp, sum)
	}
	if wm < 0 || wn < 0 || wp < 0 {
		return WeightedModel{}, fmt.Errorf("%w: negative weight", ErrBadWeights)
	}
	return WeightedModel{WMoisture: wm, WNutrient: wn, WPest: wp}, nil
}

// DefaultModel returns the standard 0.4/0.3/0.3 weighting.
func DefaultModel() WeightedModel {
	return WeightedModel{WMoisture: 0.4, WNutrient: 0.3, WPest: 0.3}
}

// Growth computes the weighted growth rate. Each term is clamped to [0,1]
// before entering the sum; out-of-range terms must never skew the result
// negative or above 1.
func (m WeightedModel) Growth(n params.Normalized) float64 {
	moisture := clamp01(n.Moisture)
	nutrient := clamp01(n.Nutrient)
	pestFree := clamp01(1 - n.Pest)
	// Final clamp absorbs float rounding at the extremes.
	return clamp01(m.WMoisture*moisture + m.WNutrient*nutrient + m.WPest*pestFree)
}

// Result is one yield estimate.
type Result struct {
	GrowthRate float64 `json:"growth_rate"`
	YieldKg    float64 `json:"yield_kg"`
}

// Engine turns a Parameters snapshot into a Result. It is stateless beyond
// the configured model; every call recomputes from scratch.
type Engine struct {
	Model GrowthModel
}

// New creates an Engine around the given growth model.
func New(model GrowthModel) *Engine {
	return &Engine{Model: model}
}

// Yield computes a single yield estimate for the given crop. With clamp=true
// out-of-domain inputs are pulled to the nearest bound; with clamp=false
// they produce params.ErrOutOfDomain.
func (e *Engine) Yield(p params.Parameters, profile crop.Profile, clamp bool) (Result, error) {
	n, err := p.Normalize(clamp)
	if err != nil {
		return Result{}, err
	}
	growth := e.Model.Growth(n)
	yield := growth * profile.BaselineYieldKgPerHa * params.AreaRange.Clamp(p.AreaHa)
	if yield < 0 {
		yield = 0
	}
	return Result{GrowthRate: growth, YieldKg: yield}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
