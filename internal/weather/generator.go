// Package weather produces daily growing-season conditions for the farm
// simulation: a deterministic synthetic generator, plus an optional live
// OpenWeatherMap client used only to seed dashboard defaults.
package weather

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Conditions is one day of weather.
type Conditions struct {
	Day        int     `json:"day"`
	TempC      float64 `json:"temp_c"`
	RainfallMM float64 `json:"rainfall_mm"`
	ET0MM      float64 `json:"et0_mm"` // reference evapotranspiration
}

// Provider yields the conditions for a given day index.
type Provider interface {
	Day(i int) Conditions
}

// Generator produces a deterministic synthetic season from a seed: a
// seasonal temperature sinusoid with simplex-noise variation, noise-driven
// rainfall events, and Hargreaves ET0 derived from the daily temperature.
type Generator struct {
	seed      int64
	days      int
	tempNoise opensimplex.Noise
	rainNoise opensimplex.Noise

	// Scripted stress events (day spans). Zero spans disable them.
	heatWave    [2]int
	heatBoostC  float64
	drought     [2]int
	droughtMult float64
}

// NewGenerator creates a synthetic season of the given length.
func NewGenerator(seed int64, days int) *Generator {
	if days < 1 {
		days = 1
	}
	return &Generator{
		seed:      seed,
		days:      days,
		tempNoise: opensimplex.NewNormalized(seed),
		rainNoise: opensimplex.NewNormalized(seed + 1),
	}
}

// ForCrop returns a generator with the crop's scripted stress events.
// Wheat seasons carry a mid-season heat wave and a late drought.
func ForCrop(name string, seed int64, days int) *Generator {
	g := NewGenerator(seed, days)
	if name == "wheat" && days >= 80 {
		g.heatWave = [2]int{40, 45}
		g.heatBoostC = 8
		g.drought = [2]int{60, 80}
		g.droughtMult = 0.3
	}
	return g
}

// Day returns the conditions for day i. Calls are independent and
// repeatable: the same (seed, i) always produces the same conditions.
func (g *Generator) Day(i int) Conditions {
	if i < 0 {
		i = 0
	}
	x := float64(i)

	// Seasonal baseline 15±10°C across the season, plus two noise octaves.
	temp := 15 + 10*math.Sin(2*math.Pi*x/float64(g.days))
	temp += (g.tempNoise.Eval2(x*0.15, 0) - 0.5) * 6
	temp += (g.tempNoise.Eval2(x*0.45, 7.3) - 0.5) * 2

	// Rainfall: noise above a dry threshold becomes an event, scaled so
	// most days are dry and wet days land in the 0 to 12 mm range.
	rain := 0.0
	if w := g.rainNoise.Eval2(x*0.35, 0); w > 0.55 {
		rain = (w - 0.55) / 0.45 * 12
	}

	if g.heatBoostC > 0 && i >= g.heatWave[0] && i < g.heatWave[1] {
		temp += g.heatBoostC
	}
	if g.droughtMult > 0 && i >= g.drought[0] && i < g.drought[1] {
		rain *= g.droughtMult
	}

	tmin, tmax := temp-5, temp+5
	return Conditions{
		Day:        i,
		TempC:      round1(temp),
		RainfallMM: round1(rain),
		ET0MM:      round1(ET0Hargreaves(tmin, tmax)),
	}
}

// Profile materializes the whole season.
func (g *Generator) Profile() []Conditions {
	out := make([]Conditions, g.days)
	for i := range out {
		out[i] = g.Day(i)
	}
	return out
}

// ET0Hargreaves estimates reference evapotranspiration (mm/day) from the
// daily temperature range using the simplified Hargreaves equation.
// ra folds the 0.408 MJ-to-mm conversion into a fixed mid-latitude
// extraterrestrial radiation of ~29 MJ/m²/day.
func ET0Hargreaves(tminC, tmaxC float64) float64 {
	const ra = 12.0
	tmean := (tminC + tmaxC) / 2
	et0 := 0.0023 * (tmean + 17.8) * math.Sqrt(math.Max(tmaxC-tminC, 0)) * ra
	if et0 < 0 {
		return 0
	}
	return et0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
