package model

// Reservoir evaluates the algebraic reservoir relation
//
//	n_i = PumpRate * pumping_i / (ResDecay + ResSaturation * density_i)
//
// elementwise into dst and returns it. A nil dst allocates. The relation
// has no history and no spatial coupling; reservoir density is derived
// from the instantaneous field on every evaluation. ResDiffusion takes
// no part here.
//
// The caller keeps the denominator bounded away from zero; see
// Params.Validate.
func Reservoir(dst, pumping, density []float64, p Params) []float64 {
	if dst == nil {
		dst = make([]float64, len(pumping))
	}
	for i, pump := range pumping {
		dst[i] = p.PumpRate * pump / (p.ResDecay + p.ResSaturation*density[i])
	}
	return dst
}
