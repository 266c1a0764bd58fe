// Package model defines the driven-dissipative NLS equation for an
// axially symmetric polariton condensate: named physical coefficients,
// pumping profiles, the algebraic reservoir relation, and the
// Hamiltonian right-hand side consumed by the integrators.
package model

import (
	"fmt"

	"github.com/avolkov/condsim/internal/field"
)

// VectorLen is the size of the flat coefficient vector exchanged with
// legacy tooling. Most slots are reserved; see Vector for the layout.
const VectorLen = 23

// referenceTime is the t0 scale (seconds) used when deriving
// dimensionless coefficients from laboratory parameters.
const referenceTime = 1.0

// Params names the coefficients of the condensate and reservoir
// equations. All values are dimensionless.
type Params struct {
	// Gain couples reservoir density into condensate growth.
	Gain float64 `yaml:"gain"`
	// Loss is the linear damping rate of the condensate.
	Loss float64 `yaml:"loss"`
	// Kerr is the self-interaction (blue-shift) strength.
	Kerr float64 `yaml:"kerr"`
	// ResInteraction is the reservoir-induced energy shift.
	ResInteraction float64 `yaml:"res_interaction"`
	// PumpRate scales the pumping profile feeding the reservoir.
	PumpRate float64 `yaml:"pump_rate"`
	// ResDecay is the reservoir relaxation rate. Must stay positive:
	// it anchors the denominator of the reservoir relation.
	ResDecay float64 `yaml:"res_decay"`
	// ResSaturation depletes the reservoir with condensate density.
	ResSaturation float64 `yaml:"res_saturation"`
	// ResDiffusion is declared in the physical model but not consumed
	// by the algebraic reservoir relation. Kept for ABI stability.
	ResDiffusion float64 `yaml:"res_diffusion"`
}

// Originals are the laboratory parameters of the polariton system.
type Originals struct {
	R      float64 `yaml:"R"`       // condensation rate
	Gamma  float64 `yaml:"gamma"`   // condensate decay
	G      float64 `yaml:"g"`       // polariton-polariton interaction
	TildeG float64 `yaml:"tilde_g"` // polariton-reservoir interaction
	GammaR float64 `yaml:"gamma_R"` // reservoir decay
}

// Derive maps laboratory parameters onto the dimensionless equation
// coefficients.
func (o Originals) Derive() Params {
	return Params{
		Gain:           o.R / (4.0 * o.TildeG),
		Loss:           o.Gamma * referenceTime / 2.0,
		Kerr:           1.0,
		ResInteraction: 1.0,
		PumpRate:       2.0 * o.TildeG * referenceTime / o.GammaR,
		ResDecay:       1.0,
		ResSaturation:  o.R / (o.GammaR * o.G),
		ResDiffusion:   0.0,
	}
}

// Validate rejects coefficient choices that let the reservoir
// denominator reach zero for nonnegative density.
func (p Params) Validate() error {
	if p.ResDecay <= 0 {
		return fmt.Errorf("%w: reservoir decay %v must be positive",
			field.ErrDegenerateReservoir, p.ResDecay)
	}
	if p.ResSaturation < 0 {
		return fmt.Errorf("%w: reservoir saturation %v must be nonnegative",
			field.ErrDegenerateReservoir, p.ResSaturation)
	}
	return nil
}

// Vector flattens the named coefficients into the 23-slot layout that
// legacy tooling exchanges:
//
//	slot  2: Gain          slot 11: PumpRate
//	slot  3: Loss          slot 12: ResDecay
//	slot  4: Kerr          slot 13: ResSaturation
//	slot  5: ResInteraction slot 14: ResDiffusion (unused)
//
// Slots 0, 1 and 10 carry the fixed time-derivative and Laplacian
// prefactors; the remaining slots are reserved and zero.
func (p Params) Vector() []float64 {
	v := make([]float64, VectorLen)
	v[0] = 1.0
	v[1] = 1.0
	v[2] = p.Gain
	v[3] = p.Loss
	v[4] = p.Kerr
	v[5] = p.ResInteraction
	v[11] = p.PumpRate
	v[12] = p.ResDecay
	v[13] = p.ResSaturation
	v[14] = p.ResDiffusion
	return v
}

// ParamsFromVector reads the 23-slot coefficient vector back into named
// form.
func ParamsFromVector(v []float64) (Params, error) {
	if len(v) != VectorLen {
		return Params{}, fmt.Errorf("%w: coefficient vector has %d slots, want %d",
			field.ErrDimensionMismatch, len(v), VectorLen)
	}
	return Params{
		Gain:           v[2],
		Loss:           v[3],
		Kerr:           v[4],
		ResInteraction: v[5],
		PumpRate:       v[11],
		ResDecay:       v[12],
		ResSaturation:  v[13],
		ResDiffusion:   v[14],
	}, nil
}
