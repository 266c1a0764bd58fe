// Package radial builds finite-difference operators for axially
// symmetric geometry: a 1-D grid in the radial coordinate standing in
// for a rotationally symmetric plane, with the coordinate singularity
// at the axis handled by a regularity closure.
package radial

// Grid is a uniform radial grid of N nodes with spacing H. Node i
// (0-based) sits at r = (i+1)*H; the axis r=0 itself carries no node.
type Grid struct {
	N int
	H float64
}

// R returns the radial coordinate of node i.
func (g Grid) R(i int) float64 {
	return float64(i+1) * g.H
}

// Coords samples every node coordinate into a fresh slice.
func (g Grid) Coords() []float64 {
	r := make([]float64, g.N)
	for i := range r {
		r[i] = g.R(i)
	}
	return r
}
