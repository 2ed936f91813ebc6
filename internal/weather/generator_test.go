package weather

import (
	"testing"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(42, 120)
	b := NewGenerator(42, 120)
	for i := 0; i < 120; i++ {
		if a.Day(i) != b.Day(i) {
			t.Fatalf("day %d differs between identically seeded generators", i)
		}
	}
	c := NewGenerator(43, 120)
	same := true
	for i := 0; i < 120; i++ {
		if a.Day(i) != c.Day(i) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced an identical season")
	}
}

func TestGeneratorPhysicalBounds(t *testing.T) {
	g := NewGenerator(7, 180)
	for _, c := range g.Profile() {
		if c.RainfallMM < 0 {
			t.Errorf("day %d rainfall %g < 0", c.Day, c.RainfallMM)
		}
		if c.ET0MM < 0 {
			t.Errorf("day %d ET0 %g < 0", c.Day, c.ET0MM)
		}
		if c.TempC < -20 || c.TempC > 50 {
			t.Errorf("day %d temperature %g implausible", c.Day, c.TempC)
		}
	}
}

func TestWheatSeasonCarriesHeatWave(t *testing.T) {
	base := NewGenerator(42, 120)
	wheat := ForCrop("wheat", 42, 120)
	if wheat.Day(42).TempC <= base.Day(42).TempC {
		t.Error("wheat heat wave did not raise mid-season temperature")
	}
	if wheat.Day(10) != base.Day(10) {
		t.Error("days outside scripted events should match the base season")
	}
}

func TestET0Hargreaves(t *testing.T) {
	if got := ET0Hargreaves(20, 20); got != 0 {
		t.Errorf("zero temperature range should give 0, got %g", got)
	}
	if got := ET0Hargreaves(25, 15); got != 0 {
		t.Errorf("inverted range should not go negative, got %g", got)
	}
	// Typical summer day lands in a plausible mm/day band.
	got := ET0Hargreaves(15, 25)
	if got < 1 || got > 10 {
		t.Errorf("ET0(15,25) = %g, want in [1,10] mm/day", got)
	}
	// Warmer and wider range means more evapotranspiration.
	if ET0Hargreaves(20, 35) <= got {
		t.Error("hotter day should evaporate more")
	}
}
