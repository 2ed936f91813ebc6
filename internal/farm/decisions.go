package farm

import (
	"github.com/talgya/agrisim/internal/sensors"
	"github.com/talgya/agrisim/internal/weather"
)

// Management thresholds. The decision engine works from sensor readings,
// mirroring what a real smart-farming controller would see.
const (
	moistureTrigger = 0.25 // irrigate below this reading
	irrigationBase  = 5.0  // mm, base dose
	irrigationCoeff = 0.5  // mm extra per mm of unmet ET0
	irrigationCapMM = 10.0 // max single dose

	nitrogenTrigger = 20.0 // kg/ha, fertilize below this reading
	nitrogenDoseKg  = 10.0

	pestTrigger = 0.4 // spray above this reading

	waterCostPerMM      = 0.05 // per mm per ha
	fertilizerCostPerKg = 1.2
	pesticideCostPerApp = 15.0
)

type decision struct {
	irrigationMM float64
	fertilizerKg float64
	pesticide    bool
}

// decide picks today's management actions. The irrigation dose follows the
// deficit formula: a base amount plus a share of whatever ET0 the day's rain
// did not cover, capped per application.
func (f *Farm) decide(r sensors.Reading, wx weather.Conditions) decision {
	var d decision

	if r.Moisture < moistureTrigger {
		unmet := wx.ET0MM - wx.RainfallMM
		if unmet < 0 {
			unmet = 0
		}
		dose := irrigationBase + irrigationCoeff*unmet
		if dose > irrigationCapMM {
			dose = irrigationCapMM
		}
		d.irrigationMM = dose
	}

	// Fertilize only while the crop can still take nitrogen up; dumping N
	// on a mature crop wastes it.
	if r.SoilN < nitrogenTrigger && f.growth > 0.05 && f.growth < 0.85 {
		d.fertilizerKg = nitrogenDoseKg
	}

	if r.Pest > pestTrigger {
		d.pesticide = true
	}

	return d
}

// apply executes the decision and books its costs.
func (f *Farm) apply(d decision) {
	if d.irrigationMM > 0 {
		frac := irrigationEfficiency * d.irrigationMM / capacityMM
		for i := range f.soilMoisture {
			f.soilMoisture[i] = clamp01(f.soilMoisture[i] + frac)
		}
		f.irrigationMM += d.irrigationMM
		f.waterUsedMM += d.irrigationMM
		f.costs.Water += d.irrigationMM * waterCostPerMM * f.cfg.AreaHa
	}

	if d.fertilizerKg > 0 {
		f.soilN += d.fertilizerKg * fertilizerEfficiency
		f.fertilizerKg += d.fertilizerKg
		f.costs.Fertilizer += d.fertilizerKg * fertilizerCostPerKg
	}

	if d.pesticide {
		f.pest *= 0.3
		f.pesticideUse++
		f.costs.Pesticide += pesticideCostPerApp
	}
}
