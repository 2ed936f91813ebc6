package farm

import (
	"log/slog"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Conventional-practice baselines used for the savings figures: flood
// irrigation and blanket fertilization per hectare over a season.
const (
	conventionalWaterM3PerHa = 600.0
	conventionalFertKgPerHa  = 150.0
	cropPricePerKg           = 0.3
)

// Report summarizes a completed run.
type Report struct {
	RunID string `json:"run_id"`
	Crop  string `json:"crop"`

	AreaHa    float64 `json:"area_ha"`
	DaysRun   int     `json:"days_run"`
	Matured   bool    `json:"matured"`
	Growth    float64 `json:"final_growth"`
	YieldKg   float64 `json:"yield_kg"`
	YieldKgHa float64 `json:"yield_kg_per_ha"`

	WaterUsedM3       float64 `json:"water_used_m3"`
	IrrigationMM      float64 `json:"irrigation_mm"`
	WaterSavingsPct   float64 `json:"water_savings_pct"`
	FertilizerKg      float64 `json:"fertilizer_kg"`
	FertSavingsPct    float64 `json:"fertilizer_savings_pct"`
	PesticideSprays   int     `json:"pesticide_sprays"`
	FinalSoilN        float64 `json:"final_soil_n"`
	FinalPestPressure float64 `json:"final_pest_pressure"`

	TotalCost float64 `json:"total_cost"`
	Revenue   float64 `json:"revenue"`
	ROIPct    float64 `json:"roi_pct"`

	SensorUptimePct float64 `json:"sensor_uptime_pct"`
}

func (f *Farm) report() *Report {
	area := f.cfg.AreaHa
	yield := f.growth * f.profile.BaselineYieldKgPerHa * area

	// 1 mm over 1 ha = 10 m³.
	waterM3 := f.irrigationMM * area * 10
	waterSavings := (1 - waterM3/(conventionalWaterM3PerHa*area)) * 100
	fertSavings := (1 - f.fertilizerKg/conventionalFertKgPerHa) * 100

	revenue := yield * cropPricePerKg
	cost := f.costs.total()
	roi := 0.0
	if cost > 0 {
		roi = (revenue - cost) / cost * 100
	}

	r := &Report{
		RunID:             uuid.NewString(),
		Crop:              f.cfg.Crop,
		AreaHa:            area,
		DaysRun:           f.day,
		Matured:           f.growth >= 1.0,
		Growth:            round2(f.growth),
		YieldKg:           round1(yield),
		YieldKgHa:         round1(yield / area),
		WaterUsedM3:       round1(waterM3),
		IrrigationMM:      round1(f.irrigationMM),
		WaterSavingsPct:   round1(waterSavings),
		FertilizerKg:      round1(f.fertilizerKg),
		FertSavingsPct:    round1(fertSavings),
		PesticideSprays:   f.pesticideUse,
		FinalSoilN:        round1(f.soilN),
		FinalPestPressure: round2(f.pest),
		TotalCost:         round1(cost),
		Revenue:           round1(revenue),
		ROIPct:            round1(roi),
		SensorUptimePct:   round1(f.net.Uptime()),
	}

	slog.Info("simulation complete",
		"run_id", r.RunID,
		"crop", r.Crop,
		"days", r.DaysRun,
		"growth", r.Growth,
		"yield_kg", humanize.Commaf(r.YieldKg),
		"water_m3", humanize.Commaf(r.WaterUsedM3),
		"fertilizer_kg", r.FertilizerKg,
		"sensor_uptime", r.SensorUptimePct,
	)
	return r
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
