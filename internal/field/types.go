package field

import "math"

// State is a packed real vector of length 2n holding a complex field on
// an n-node grid: real part in [0:n], imaginary part in [n:2n].
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Nodes returns the number of grid nodes represented by the packed state.
func (s State) Nodes() int {
	return len(s) / 2
}

// Re returns the real half of the state. The slice aliases s.
func (s State) Re() []float64 {
	return s[:s.Nodes()]
}

// Im returns the imaginary half of the state. The slice aliases s.
func (s State) Im() []float64 {
	return s[s.Nodes():]
}

// Density writes |u_i|^2 for every node into dst and returns it.
// A nil dst allocates.
func (s State) Density(dst []float64) []float64 {
	n := s.Nodes()
	if dst == nil {
		dst = make([]float64, n)
	}
	re, im := s.Re(), s.Im()
	for i := 0; i < n; i++ {
		dst[i] = re[i]*re[i] + im[i]*im[i]
	}
	return dst
}

// Field is the complex view of a grid field.
type Field []complex128

// Pack converts the complex field into packed real/imaginary halves.
func (f Field) Pack() State {
	n := len(f)
	s := make(State, 2*n)
	for i, v := range f {
		s[i] = real(v)
		s[n+i] = imag(v)
	}
	return s
}

// Unpack converts a packed state back into a complex field.
func Unpack(s State) Field {
	n := s.Nodes()
	f := make(Field, n)
	re, im := s.Re(), s.Im()
	for i := 0; i < n; i++ {
		f[i] = complex(re[i], im[i])
	}
	return f
}

// Uniform returns a field with every node set to v, the usual seed
// for a condensate solve.
func Uniform(n int, v complex128) Field {
	f := make(Field, n)
	for i := range f {
		f[i] = v
	}
	return f
}

// System is the right-hand side of an autonomous evolution dU/dt = F(U, t).
// Derive must not retain or mutate x.
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Integrator advances a state by one fixed step.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// Metric accumulates a scalar observation over a run.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(x State, t float64)
}
