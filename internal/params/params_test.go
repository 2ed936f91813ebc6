package params

import (
	"errors"
	"math"
	"testing"
)

func TestRangeClamp(t *testing.T) {
	r := Range{Min: 0, Max: 10, Default: 5}
	cases := []struct {
		in, want float64
	}{
		{-3, 0},
		{0, 0},
		{5, 5},
		{10, 10},
		{42, 10},
	}
	for _, c := range cases {
		if got := r.Clamp(c.in); got != c.want {
			t.Errorf("Clamp(%g) = %g, want %g", c.in, got, c.want)
		}
	}
}

func TestRangeNormBounds(t *testing.T) {
	r := Range{Min: 0, Max: 12}
	for _, v := range []float64{-100, -0.1, 0, 3, 12, 99} {
		n := r.Norm(v)
		if n < 0 || n > 1 {
			t.Errorf("Norm(%g) = %g, outside [0,1]", v, n)
		}
	}
	if got := r.Norm(6); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Norm(6) = %g, want 0.5", got)
	}
}

func TestValidateNamesField(t *testing.T) {
	p := Default()
	p.Rainfall = -4
	err := p.Validate()
	if err == nil {
		t.Fatal("expected error for negative rainfall")
	}
	if !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("expected ErrOutOfDomain, got %v", err)
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestNormalizeRejectsWithoutClamp(t *testing.T) {
	p := Default()
	p.PestPressure = 1.5
	if _, err := p.Normalize(false); !errors.Is(err, ErrOutOfDomain) {
		t.Fatalf("expected ErrOutOfDomain, got %v", err)
	}
}

// Raw rainfall below the declared minimum is clamped to the minimum before
// normalization, never propagated negative.
func TestNormalizeClampsNegativeRainfall(t *testing.T) {
	p := Default()
	p.Rainfall = -10
	n, err := p.Normalize(true)
	if err != nil {
		t.Fatalf("Normalize with clamp failed: %v", err)
	}
	if n.Moisture != 0 {
		t.Errorf("moisture = %g, want 0 for clamped negative rainfall", n.Moisture)
	}
}

func TestNormalizeAllTermsInUnitInterval(t *testing.T) {
	extremes := []Parameters{
		{Temperature: -50, Rainfall: -5, SoilN: -1, PestPressure: -1, AreaHa: 0},
		{Temperature: 500, Rainfall: 500, SoilN: 500, PestPressure: 5, AreaHa: 500},
		Default(),
	}
	for _, p := range extremes {
		n, err := p.Normalize(true)
		if err != nil {
			t.Fatalf("Normalize(%+v) failed: %v", p, err)
		}
		for name, v := range map[string]float64{
			"moisture": n.Moisture, "nutrient": n.Nutrient, "pest": n.Pest,
		} {
			if v < 0 || v > 1 {
				t.Errorf("%s = %g outside [0,1] for %+v", name, v, p)
			}
		}
	}
}
