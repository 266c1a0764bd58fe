package model

import (
	"errors"
	"math"
	"testing"

	"github.com/avolkov/condsim/internal/field"
)

func TestOriginals_Derive(t *testing.T) {
	// Laboratory parameters of the reference polariton experiment.
	o := Originals{R: 0.05, Gamma: 0.566, G: 1.0e-3, TildeG: 0.011, GammaR: 10}
	p := o.Derive()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"gain", p.Gain, 0.05 / 0.044},
		{"loss", p.Loss, 0.283},
		{"kerr", p.Kerr, 1.0},
		{"res_interaction", p.ResInteraction, 1.0},
		{"pump_rate", p.PumpRate, 0.0022},
		{"res_decay", p.ResDecay, 1.0},
		{"res_saturation", p.ResSaturation, 5.0},
		{"res_diffusion", p.ResDiffusion, 0.0},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-12 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestParams_VectorRoundTrip(t *testing.T) {
	p := Params{
		Gain: 1.1, Loss: 0.2, Kerr: 1.0, ResInteraction: 0.9,
		PumpRate: 0.01, ResDecay: 1.0, ResSaturation: 5.0, ResDiffusion: 0.3,
	}
	v := p.Vector()
	if len(v) != VectorLen {
		t.Fatalf("Vector() length %d, want %d", len(v), VectorLen)
	}
	if v[2] != p.Gain || v[3] != p.Loss || v[4] != p.Kerr || v[5] != p.ResInteraction {
		t.Error("condensate slots 2-5 wrong")
	}
	if v[11] != p.PumpRate || v[12] != p.ResDecay || v[13] != p.ResSaturation || v[14] != p.ResDiffusion {
		t.Error("reservoir slots 11-14 wrong")
	}

	back, err := ParamsFromVector(v)
	if err != nil {
		t.Fatalf("ParamsFromVector: %v", err)
	}
	if back != p {
		t.Errorf("round trip: got %+v, want %+v", back, p)
	}
}

func TestParamsFromVector_WrongLength(t *testing.T) {
	if _, err := ParamsFromVector(make([]float64, 20)); !errors.Is(err, field.ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestParams_Validate(t *testing.T) {
	good := Params{ResDecay: 1.0, ResSaturation: 0.0}
	if err := good.Validate(); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}

	for _, p := range []Params{
		{ResDecay: 0},
		{ResDecay: -1},
		{ResDecay: 1, ResSaturation: -0.5},
	} {
		if err := p.Validate(); !errors.Is(err, field.ErrDegenerateReservoir) {
			t.Errorf("params %+v: err = %v, want ErrDegenerateReservoir", p, err)
		}
	}
}
