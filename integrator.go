package meteor

import (
	"github.com/ChristopherRabotin/ode"
)

// Integrator advances a position/velocity pair by one step. Both models share
// the signature; the Arcade model accepts and ignores the mass and
// cross-section so callers can swap models without special-casing.
type Integrator interface {
	Step(pos, vel []float64, massKg, crossSectionM2, dt float64) (newPos, newVel []float64)
}

// Arcade is the deliberately simplified attraction model. It works directly
// in display units with a hand-tuned pull constant instead of the body's true
// gravitational parameter, has no drag, and takes a single Euler-like step.
type Arcade struct {
	K float64 // pull constant, display units
}

// Step implements the Integrator interface. dt folds in the simulation speed
// multiplier.
func (a Arcade) Step(pos, vel []float64, _, _ float64, dt float64) ([]float64, []float64) {
	r := norm(pos)
	if r < minRadiusDisplay {
		r = minRadiusDisplay
	}
	pull := a.K / (r * r) * dt
	dir := unit(pos)
	newVel := make([]float64, 3)
	newPos := make([]float64, 3)
	for i := 0; i < 3; i++ {
		newVel[i] = vel[i] - dir[i]*pull
		newPos[i] = pos[i] + newVel[i]*dt
	}
	return newPos, newVel
}

// Realistic integrates the coupled position/velocity ODE in SI units with a
// classical RK4 step, combining inverse-square gravity with quadratic drag
// from the body's exponential atmosphere.
type Realistic struct {
	Body CentralBody
	Cd   float64 // drag coefficient
}

// NewRealistic returns the SI model for the given body with the fixed sphere
// drag coefficient.
func NewRealistic(body CentralBody) Realistic {
	return Realistic{Body: body, Cd: 1.0}
}

// Step implements the Integrator interface. dt is a physical time slice in
// seconds; callers wanting to advance further take more steps, not a larger
// slice.
func (r Realistic) Step(pos, vel []float64, massKg, crossSectionM2, dt float64) ([]float64, []float64) {
	sys := &entrySystem{
		body:           r.Body,
		cd:             r.Cd,
		massKg:         massKg,
		crossSectionM2: crossSectionM2,
		state:          []float64{pos[0], pos[1], pos[2], vel[0], vel[1], vel[2]},
		remaining:      1,
	}
	ode.NewRK4(0, dt, sys).Solve()
	return sys.state[0:3], sys.state[3:6]
}

// entrySystem implements ode.Integrable for the atmospheric-entry ODE
// dx/dt = v, dv/dt = gravity(x) + drag(x, v).
type entrySystem struct {
	body           CentralBody
	cd             float64
	massKg         float64
	crossSectionM2 float64
	state          []float64 // [rx ry rz vx vy vz]
	remaining      int
}

// GetState returns the latest state.
func (s *entrySystem) GetState() []float64 {
	return s.state
}

// SetState stores the state of the latest iteration.
func (s *entrySystem) SetState(t float64, state []float64) {
	copy(s.state, state)
	s.remaining--
}

// Stop returns whether the integration is done.
func (s *entrySystem) Stop(t float64) bool {
	return s.remaining <= 0
}

// Func is the integration function.
func (s *entrySystem) Func(t float64, f []float64) (fDot []float64) {
	fDot = make([]float64, 6)
	pos := f[0:3]
	vel := f[3:6]
	grav := s.body.GravityAt(pos)
	speed := norm(vel)
	if speed < minSpeedMS {
		speed = minSpeedMS
	}
	rho := s.body.AtmosphericDensity(s.body.AltitudeAt(pos))
	drag := -0.5 * rho * speed * s.cd * s.crossSectionM2 / s.massKg
	// d\vec{R}/dt
	fDot[0] = f[3]
	fDot[1] = f[4]
	fDot[2] = f[5]
	// d\vec{V}/dt
	fDot[3] = grav[0] + drag*vel[0]
	fDot[4] = grav[1] + drag*vel[1]
	fDot[5] = grav[2] + drag*vel[2]
	return
}
