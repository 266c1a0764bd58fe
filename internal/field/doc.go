// Package field provides the state representation for radial condensate
// simulations.
//
// A complex field on an n-node radial grid is carried as a packed real
// [State] of length 2n: the first n entries hold the real part, the last
// n the imaginary part. The packing lets real-valued banded linear
// algebra and the fixed-step integrators act on the two halves
// independently:
//
//   - [State]: packed real/imaginary field vector
//   - [Field]: complex view, convertible to and from [State]
//   - [System]: right-hand side of dU/dt = F(U, t)
//
// # Thread Safety
//
// States are plain slices with no internal synchronization. A state is
// owned by exactly one integration run at a time.
package field
