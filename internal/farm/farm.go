// Package farm runs the multi-day virtual farm: daily soil-moisture and
// nutrient balances, pest dynamics, and smart irrigation/fertilization
// decisions driven by (noisy) sensor readings. Growth itself comes from the
// same injectable model the single-shot engine uses.
package farm

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/talgya/agrisim/internal/crop"
	"github.com/talgya/agrisim/internal/engine"
	"github.com/talgya/agrisim/internal/params"
	"github.com/talgya/agrisim/internal/sensors"
	"github.com/talgya/agrisim/internal/weather"
)

const (
	// capacityMM is the plant-available water represented by the 0..1
	// moisture scale (one full profile ≈ 100 mm).
	capacityMM = 100.0

	rainEfficiency       = 0.6  // fraction of rainfall that infiltrates
	irrigationEfficiency = 0.8  // fraction of applied water reaching the root zone
	fertilizerEfficiency = 0.7  // fraction of applied N reaching the soil pool
	dailyGrowthFraction  = 0.01 // max growth progress per day at growth rate 1
)

// Config describes one simulation run.
type Config struct {
	Crop   string             `json:"crop"`
	AreaHa float64            `json:"area_ha"`
	Days   int                `json:"days"`
	Seed   int64              `json:"seed"`
	Model  engine.GrowthModel `json:"-"` // nil = engine.DefaultModel()
}

// DayRecord is one day of the run, kept for plotting.
type DayRecord struct {
	Day          int     `json:"day"`
	TempC        float64 `json:"temp_c"`
	RainfallMM   float64 `json:"rainfall_mm"`
	SoilMoisture float64 `json:"soil_moisture"` // [0,1] average across layers
	SoilN        float64 `json:"soil_n"`        // kg/ha
	PestPressure float64 `json:"pest_pressure"` // [0,1]
	Growth       float64 `json:"growth"`        // [0,1]
	IrrigationMM float64 `json:"irrigation_mm"` // applied this day
	FertilizerKg float64 `json:"fertilizer_kg"` // cumulative, kg/ha
}

// Farm is the mutable state of one run.
type Farm struct {
	cfg     Config
	profile crop.Profile
	model   engine.GrowthModel
	wx      weather.Provider
	net     *sensors.Network
	rng     *rand.Rand

	day          int
	soilMoisture [3]float64 // depth layers, [0,1]
	soilN        float64    // kg/ha
	pest         float64
	growth       float64

	waterUsedMM  float64 // irrigation + ET drawn from the profile
	irrigationMM float64
	fertilizerKg float64
	pesticideUse int

	costs costs
	log   []DayRecord
}

type costs struct {
	Water      float64 `json:"water"`
	Fertilizer float64 `json:"fertilizer"`
	Pesticide  float64 `json:"pesticide"`
	Labor      float64 `json:"labor"`
}

func (c costs) total() float64 {
	return c.Water + c.Fertilizer + c.Pesticide + c.Labor
}

// New validates the config and sets up a farm ready to step.
func New(cfg Config) (*Farm, error) {
	profile, ok := crop.Lookup(cfg.Crop)
	if !ok {
		return nil, fmt.Errorf("unknown crop %q (have %v)", cfg.Crop, crop.Names())
	}
	if cfg.Days < 1 || cfg.Days > 366 {
		return nil, fmt.Errorf("days=%d not in [1, 366]", cfg.Days)
	}
	cfg.AreaHa = params.AreaRange.Clamp(cfg.AreaHa)

	model := cfg.Model
	if model == nil {
		model = engine.DefaultModel()
	}

	f := &Farm{
		cfg:     cfg,
		profile: profile,
		model:   model,
		wx:      weather.ForCrop(cfg.Crop, cfg.Seed+2, cfg.Days),
		net:     sensors.NewNetwork(cfg.Seed+1, cfg.AreaHa),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		soilN:   50,
		pest:    0.1,
	}
	for i := range f.soilMoisture {
		f.soilMoisture[i] = 0.2 + f.rng.Float64()*0.3
	}
	return f, nil
}

// Step advances the farm by one day. Returns false once the crop is mature
// or the season is over.
func (f *Farm) Step() bool {
	if f.day >= f.cfg.Days || f.growth >= 1.0 {
		return false
	}

	wx := f.wx.Day(f.day)
	kc := f.profile.Kc(f.growth)

	// Water balance: crop ET out, rainfall in.
	depletion := kc * wx.ET0MM / capacityMM
	infiltration := rainEfficiency * wx.RainfallMM / capacityMM
	for i := range f.soilMoisture {
		f.soilMoisture[i] = clamp01(f.soilMoisture[i] - depletion + infiltration)
	}
	f.waterUsedMM += kc * wx.ET0MM

	// Management acts on what the sensors report, not on ground truth.
	reading := f.net.Collect(sensors.Truth{
		Moisture: f.avgMoisture(),
		SoilN:    f.soilN,
		Pest:     f.pest,
	})
	d := f.decide(reading, wx)
	f.apply(d)

	// Nutrient uptake scales with how developed the crop is.
	f.soilN -= 0.3 * f.growth
	if f.soilN < 0 {
		f.soilN = 0
	}

	// Pest dynamics: random drift, boosted by wet days.
	f.pest += -0.01 + f.rng.Float64()*0.03
	if wx.RainfallMM > 5 {
		f.pest += 0.01
	}
	f.pest = clamp01(f.pest)

	// Growth for the day.
	n := params.Normalized{
		Moisture: f.avgMoisture(),
		Nutrient: clamp01(f.soilN / params.SoilNRange.Max),
		Pest:     f.pest,
	}
	rate := f.model.Growth(n) * f.profile.HeatStress(wx.TempC)
	f.growth = clamp01(f.growth + dailyGrowthFraction*rate)

	f.costs.Labor += 20.0 / float64(f.cfg.Days)
	f.day++

	f.log = append(f.log, DayRecord{
		Day:          f.day,
		TempC:        wx.TempC,
		RainfallMM:   wx.RainfallMM,
		SoilMoisture: f.avgMoisture(),
		SoilN:        f.soilN,
		PestPressure: f.pest,
		Growth:       f.growth,
		IrrigationMM: d.irrigationMM,
		FertilizerKg: f.fertilizerKg,
	})

	return f.day < f.cfg.Days && f.growth < 1.0
}

// Run steps the farm to completion and returns its report.
func (f *Farm) Run() *Report {
	for f.Step() {
		if f.day%30 == 0 {
			slog.Info("simulation progress",
				"crop", f.cfg.Crop,
				"day", f.day,
				"growth", fmt.Sprintf("%.1f%%", f.growth*100),
				"soil_n", fmt.Sprintf("%.1f", f.soilN),
				"pest", fmt.Sprintf("%.2f", f.pest),
			)
		}
	}
	return f.report()
}

// Log returns the per-day records collected so far.
func (f *Farm) Log() []DayRecord { return f.log }

// Growth returns the current growth fraction.
func (f *Farm) Growth() float64 { return f.growth }

// Day returns the number of days simulated so far.
func (f *Farm) Day() int { return f.day }

func (f *Farm) avgMoisture() float64 {
	sum := 0.0
	for _, m := range f.soilMoisture {
		sum += m
	}
	return sum / float64(len(f.soilMoisture))
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
