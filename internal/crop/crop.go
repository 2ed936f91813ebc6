// Package crop holds the built-in crop catalog: baseline yields, temperature
// tolerances, and per-stage crop coefficients. Values are illustrative
// presets, fixed at construction time.
package crop

// Stage identifies a phase of the growing cycle.
type Stage string

const (
	StageEmergence Stage = "Emergence"
	StageMidSeason Stage = "MidSeason"
	StageMaturity  Stage = "Maturity"
)

// StageParams holds the crop coefficient for a stage and the growth fraction
// at which the stage ends.
type StageParams struct {
	Kc    float64 `json:"kc"`
	Until float64 `json:"until"` // growth fraction, exclusive upper bound
}

// Profile describes one crop's simulation constants.
type Profile struct {
	Name                 string        `json:"name"`
	BaselineYieldKgPerHa float64       `json:"baseline_yield_kg_per_ha"` // at growth rate 1.0
	IdealTempC           [2]float64    `json:"ideal_temp_c"`
	HeatStressC          float64       `json:"heat_stress_c"` // above this, yield degrades
	Stages               []StageParams `json:"stages"`
}

// Crop coefficients follow the usual three-phase curve: low during
// establishment, peak through mid-season, tapering toward maturity.
var defaultStages = []StageParams{
	{Kc: 0.3, Until: 0.3},
	{Kc: 1.2, Until: 0.7},
	{Kc: 0.6, Until: 1.0},
}

var profiles = []Profile{
	{Name: "wheat", BaselineYieldKgPerHa: 4000, IdealTempC: [2]float64{12, 25}, HeatStressC: 32, Stages: defaultStages},
	{Name: "corn", BaselineYieldKgPerHa: 9000, IdealTempC: [2]float64{18, 30}, HeatStressC: 35, Stages: defaultStages},
	{Name: "soy", BaselineYieldKgPerHa: 3000, IdealTempC: [2]float64{20, 30}, HeatStressC: 35, Stages: defaultStages},
	{Name: "tomato", BaselineYieldKgPerHa: 35000, IdealTempC: [2]float64{18, 27}, HeatStressC: 30, Stages: defaultStages},
}

// Profiles returns the full catalog.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// Lookup finds a profile by name.
func Lookup(name string) (Profile, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Names lists the catalog crop names in catalog order.
func Names() []string {
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.Name
	}
	return out
}

// Kc returns the crop coefficient for the given growth fraction.
func (p Profile) Kc(growth float64) float64 {
	for _, s := range p.Stages {
		if growth < s.Until {
			return s.Kc
		}
	}
	if n := len(p.Stages); n > 0 {
		return p.Stages[n-1].Kc
	}
	return 1.0
}

// StageAt names the stage for the given growth fraction.
func (p Profile) StageAt(growth float64) Stage {
	switch {
	case growth < 0.3:
		return StageEmergence
	case growth < 0.7:
		return StageMidSeason
	default:
		return StageMaturity
	}
}

// HeatStress returns a yield multiplier in (0,1] for a daily temperature.
// Below the stress threshold there is no penalty; above it, the penalty
// ramps linearly and bottoms out at 20°C past the threshold.
func (p Profile) HeatStress(tempC float64) float64 {
	if tempC <= p.HeatStressC {
		return 1.0
	}
	excess := tempC - p.HeatStressC
	if excess > 20 {
		excess = 20
	}
	return 1.0 - excess/20*0.9
}
