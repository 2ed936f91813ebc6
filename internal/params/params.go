// Package params holds the parameter model for a yield computation: the raw
// environmental and management inputs, their physical domains, and the
// normalization that turns them into the [0,1] terms the growth formula uses.
package params

import (
	"errors"
	"fmt"
)

// ErrOutOfDomain is returned when a raw input lies outside its declared
// physical domain and the caller has not requested clamping.
var ErrOutOfDomain = errors.New("parameter outside physical domain")

// Range declares the physical domain of one input plus its slider default.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// Clamp returns v forced into [Min, Max].
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Contains reports whether v lies inside the declared domain.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Norm maps v to [0,1] relative to the domain. Callers must clamp first;
// the result is clamped anyway so a stray value can never leave [0,1].
func (r Range) Norm(v float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	n := (v - r.Min) / (r.Max - r.Min)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// Declared physical domains. Rainfall is daily (mm/day), with Max treated as
// the ideal/maximum value for moisture normalization. Soil nitrogen is a
// scalar proxy in kg/ha. These double as slider metadata for the dashboard.
var (
	TemperatureRange = Range{Min: 0, Max: 45, Default: 22}
	RainfallRange    = Range{Min: 0, Max: 12, Default: 4}
	SoilNRange       = Range{Min: 0, Max: 100, Default: 50}
	PestRange        = Range{Min: 0, Max: 1, Default: 0.1}
	AreaRange        = Range{Min: 1, Max: 100, Default: 10}
)

// Parameters is one snapshot of slider values. An instance is built fresh
// per interaction and discarded after producing a result.
type Parameters struct {
	Temperature  float64 `json:"temperature"`   // °C
	Rainfall     float64 `json:"rainfall"`      // mm/day
	SoilN        float64 `json:"soil_n"`        // kg/ha
	PestPressure float64 `json:"pest_pressure"` // 0 = no pest impact
	AreaHa       float64 `json:"area_ha"`
}

// Default returns a Parameters populated with every slider default.
func Default() Parameters {
	return Parameters{
		Temperature:  TemperatureRange.Default,
		Rainfall:     RainfallRange.Default,
		SoilN:        SoilNRange.Default,
		PestPressure: PestRange.Default,
		AreaHa:       AreaRange.Default,
	}
}

// Clamp returns a copy with every raw input forced into its domain.
func (p Parameters) Clamp() Parameters {
	p.Temperature = TemperatureRange.Clamp(p.Temperature)
	p.Rainfall = RainfallRange.Clamp(p.Rainfall)
	p.SoilN = SoilNRange.Clamp(p.SoilN)
	p.PestPressure = PestRange.Clamp(p.PestPressure)
	p.AreaHa = AreaRange.Clamp(p.AreaHa)
	return p
}

// Validate returns ErrOutOfDomain (wrapped with the field name) for the
// first raw input outside its physical domain.
func (p Parameters) Validate() error {
	checks := []struct {
		name  string
		value float64
		dom   Range
	}{
		{"temperature", p.Temperature, TemperatureRange},
		{"rainfall", p.Rainfall, RainfallRange},
		{"soil_n", p.SoilN, SoilNRange},
		{"pest_pressure", p.PestPressure, PestRange},
		{"area_ha", p.AreaHa, AreaRange},
	}
	for _, c := range checks {
		if !c.dom.Contains(c.value) {
			return fmt.Errorf("%s=%g not in [%g, %g]: %w",
				c.name, c.value, c.dom.Min, c.dom.Max, ErrOutOfDomain)
		}
	}
	return nil
}

// Normalized holds the three [0,1] terms fed to the growth formula.
type Normalized struct {
	Moisture float64 `json:"moisture_norm"`
	Nutrient float64 `json:"nutrient_norm"`
	Pest     float64 `json:"pest_pressure"`
}

// Normalize maps raw inputs into Normalized. With clamp=true out-of-domain
// inputs are pulled to the nearest bound first; with clamp=false they are
// rejected so a negative rainfall can never reach the formula un-clamped.
func (p Parameters) Normalize(clamp bool) (Normalized, error) {
	if clamp {
		p = p.Clamp()
	} else if err := p.Validate(); err != nil {
		return Normalized{}, err
	}
	return Normalized{
		Moisture: RainfallRange.Norm(p.Rainfall),
		Nutrient: SoilNRange.Norm(p.SoilN),
		Pest:     PestRange.Norm(p.PestPressure),
	}, nil
}
