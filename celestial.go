package meteor

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
)

// CentralBody defines the massive spherical body the projectiles fall toward.
// All of its attributes are fixed at construction: the engine only ever reads
// them.
type CentralBody struct {
	Name          string
	G             float64 // gravitational constant, m³/(kg·s²)
	M             float64 // mass, kg
	RadiusM       float64 // physical radius, m
	RadiusDisplay float64 // radius in display units
	Scale         float64 // meters per display unit
	Rho0          float64 // atmospheric density at the surface, kg/m³
	ScaleHeightM  float64 // atmospheric scale height, m
}

// NewCentralBody returns a body after checking the radius/scale invariant.
// A mismatch is a misconfiguration, not a runtime condition, hence the panic.
func NewCentralBody(name string, g, m, radiusM, scale, rho0, scaleHeightM float64) CentralBody {
	radiusDisplay := radiusM / scale
	b := CentralBody{name, g, m, radiusM, radiusDisplay, scale, rho0, scaleHeightM}
	if err := b.check(); err != nil {
		panic(err)
	}
	return b
}

func (b CentralBody) check() error {
	if b.Scale <= 0 {
		return fmt.Errorf("%s: scale must be positive, got %f", b.Name, b.Scale)
	}
	if !floats.EqualWithinAbsOrRel(b.RadiusDisplay, b.RadiusM/b.Scale, 1e-9, 1e-9) {
		return fmt.Errorf("%s: display radius %f does not match %f m at %f m/du", b.Name, b.RadiusDisplay, b.RadiusM, b.Scale)
	}
	return nil
}

// GM returns the standard gravitational parameter μ = G*M.
func (b CentralBody) GM() float64 {
	return b.G * b.M
}

// GravityAt returns the gravitational acceleration vector at the given SI
// position, always pointing at the body center. The radius is floored so a
// state at the center cannot divide by zero.
func (b CentralBody) GravityAt(posSI []float64) []float64 {
	r := norm(posSI)
	if r < minRadiusM {
		r = minRadiusM
	}
	f := -b.GM() / (r * r * r)
	return []float64{f * posSI[0], f * posSI[1], f * posSI[2]}
}

// AtmosphericDensity returns the exponential-profile density at the given
// altitude. Negative altitudes (inside the body) evaluate at the surface.
func (b CentralBody) AtmosphericDensity(altitudeM float64) float64 {
	if altitudeM < 0 {
		altitudeM = 0
	}
	rho := b.Rho0 * math.Exp(-altitudeM/b.ScaleHeightM)
	if rho < 0 {
		return 0
	}
	return rho
}

// AltitudeAt returns the altitude above the surface for an SI position.
func (b CentralBody) AltitudeAt(posSI []float64) float64 {
	return norm(posSI) - b.RadiusM
}

// String implements the Stringer interface.
func (b CentralBody) String() string {
	return b.Name + " body"
}

// Equals returns whether the provided body is the same.
func (b CentralBody) Equals(o CentralBody) bool {
	return b.Name == o.Name && b.M == o.M && b.RadiusM == o.RadiusM && b.Scale == o.Scale
}

/* Definitions */

// Earth is home. One display unit spans 1000 km, so the globe renders at
// radius 6.371.
var Earth = NewCentralBody("Earth", 6.67430e-11, 5.9722e24, 6371000, 1e6, 1.225, 8500)
