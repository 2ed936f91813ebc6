package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/agrisim/internal/crop"
	"github.com/talgya/agrisim/internal/params"
)

// ErrDegenerateSweep indicates an empty or zero-step sweep request. The
// caller gets an empty series, never a partial or destructive failure.
var ErrDegenerateSweep = errors.New("degenerate sweep range")

// SweepVar names the input being swept. All other inputs stay fixed.
type SweepVar string

const (
	SweepTemperature SweepVar = "temperature"
	SweepRainfall    SweepVar = "rainfall"
	SweepSoilN       SweepVar = "soil_n"
	SweepPest        SweepVar = "pest_pressure"
	SweepArea        SweepVar = "area_ha"
)

// SweepVars lists the recognized sweep variables.
func SweepVars() []SweepVar {
	return []SweepVar{SweepTemperature, SweepRainfall, SweepSoilN, SweepPest, SweepArea}
}

// Point is one (input value, yield) pair of a sweep series.
type Point struct {
	Input      float64 `json:"input"`
	GrowthRate float64 `json:"growth_rate"`
	YieldKg    float64 `json:"yield_kg"`
}

// Sweep evaluates the yield across steps evenly spaced values of v in
// [from, to], holding the rest of p fixed. The series is computed fresh on
// every call. Inputs are clamped into their physical domains per point.
func (e *Engine) Sweep(p params.Parameters, profile crop.Profile, v SweepVar, from, to float64, steps int) ([]Point, error) {
	if steps <= 0 || from > to {
		return nil, fmt.Errorf("%w: from=%g to=%g steps=%d", ErrDegenerateSweep, from, to, steps)
	}

	stride := 0.0
	if steps > 1 {
		stride = (to - from) / float64(steps-1)
	}

	series := make([]Point, 0, steps)
	for i := 0; i < steps; i++ {
		value := from + stride*float64(i)
		probe, err := setVar(p, v, value)
		if err != nil {
			return nil, err
		}
		res, err := e.Yield(probe, profile, true)
		if err != nil {
			return nil, err
		}
		series = append(series, Point{Input: value, GrowthRate: res.GrowthRate, YieldKg: res.YieldKg})
	}
	return series, nil
}

func setVar(p params.Parameters, v SweepVar, value float64) (params.Parameters, error) {
	switch v {
	case SweepTemperature:
		p.Temperature = value
	case SweepRainfall:
		p.Rainfall = value
	case SweepSoilN:
		p.SoilN = value
	case SweepPest:
		p.PestPressure = value
	case SweepArea:
		p.AreaHa = value
	default:
		return p, fmt.Errorf("unknown sweep variable %q", v)
	}
	return p, nil
}
