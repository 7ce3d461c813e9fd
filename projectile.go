package meteor

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	// RockDensity is the assumed bulk density of a spawned projectile, kg/m³.
	RockDensity = 3000.0
	// TNTJoulesPerKiloton converts kinetic energy to a TNT equivalent.
	TNTJoulesPerKiloton = 4.184e9
)

// LifecycleState tracks a projectile from launch to removal.
type LifecycleState uint8

const (
	// Flying projectiles are integrated every tick.
	Flying LifecycleState = iota
	// Fading projectiles have outlived their TTL and ramp their opacity down.
	Fading
	// Removed projectiles are dropped from the live set at the end of the tick.
	Removed
)

func (s LifecycleState) String() string {
	switch s {
	case Flying:
		return "flying"
	case Fading:
		return "fading"
	case Removed:
		return "removed"
	}
	panic("cannot stringify unknown lifecycle state")
}

// Projectile owns one body's kinematic and lifecycle state. Exactly one of
// VelocityDisplay/VelocitySI is authoritative at a time, selected by the
// model flag of the tick which reads it; the engine re-derives the other
// through the unit conversions after every step.
type Projectile struct {
	ID              int
	PositionDisplay []float64 // display units, authoritative for rendering
	VelocityDisplay []float64 // display units per tick, Arcade model
	VelocitySI      []float64 // m/s, Realistic model
	MassKg          float64
	CrossSectionM2  float64
	TTLSeconds      float64
	Opacity         float64   // 1 at spawn, ramps to 0 while fading
	Tumble          []float64 // angular rates, rad/s, cosmetic only
	Orientation     []float64 // accumulated tumble angles, rad
	State           LifecycleState
}

// NewProjectile builds a projectile from launch parameters. Mass and
// cross-section are derived once from the diameter assuming a rock-density
// sphere. Invalid launch parameters are rejected here so the tick loop only
// ever sees well-formed entries.
func NewProjectile(id int, body CentralBody, originDisplay, dirUnit []float64, launchSpeed, diameterM, ttlSeconds float64) (*Projectile, error) {
	if !isFinite(diameterM) || diameterM <= 0 {
		return nil, fmt.Errorf("projectile %d: diameter must be positive, got %f m", id, diameterM)
	}
	if !isFinite(launchSpeed) {
		return nil, fmt.Errorf("projectile %d: non-finite launch speed", id)
	}
	if !allFinite(originDisplay) || !allFinite(dirUnit) {
		return nil, fmt.Errorf("projectile %d: non-finite launch state", id)
	}
	radius := diameterM / 2
	mass := RockDensity * (4. / 3.) * math.Pi * math.Pow(radius, 3)
	area := math.Pi * radius * radius
	dir := unit(dirUnit)
	velDisplay := []float64{dir[0] * launchSpeed, dir[1] * launchSpeed, dir[2] * launchSpeed}
	return &Projectile{
		ID:              id,
		PositionDisplay: vecCopy(originDisplay),
		VelocityDisplay: velDisplay,
		VelocitySI:      body.ToSI(velDisplay),
		MassKg:          mass,
		CrossSectionM2:  area,
		TTLSeconds:      ttlSeconds,
		Opacity:         1.0,
		Tumble:          randomTumble(),
		Orientation:     []float64{0, 0, 0},
		State:           Flying,
	}, nil
}

// randomTumble assigns a small random angular velocity so each rock spins
// differently. Purely decorative, never coupled to the trajectory.
func randomTumble() []float64 {
	return []float64{
		(rand.Float64() - 0.5) * 2,
		(rand.Float64() - 0.5) * 2,
		(rand.Float64() - 0.5) * 2,
	}
}

// DiameterM recovers the spawn diameter from the stored cross-section.
func (p *Projectile) DiameterM() float64 {
	return 2 * math.Sqrt(p.CrossSectionM2/math.Pi)
}

func (p *Projectile) String() string {
	return fmt.Sprintf("projectile %d (%s, %.1f kg)", p.ID, p.State, p.MassKg)
}
