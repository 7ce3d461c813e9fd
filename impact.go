package meteor

// ImpactEvent records a single surface hit. It is created once per impact,
// handed to whatever renders effects, and not retained by the engine beyond
// the running counters.
type ImpactEvent struct {
	ProjectileID        int
	PointDisplay        []float64
	KineticEnergyJoules float64
	TNTKilotons         float64
	// Invalid marks an event whose inputs were not finite. Such events carry
	// zero energy instead of propagating a fault into the host tick loop.
	Invalid bool
}

// resolveImpact computes the impact energy from whichever velocity
// representation is authoritative for the active model. It never panics:
// malformed state degrades to a zero-energy flagged event.
func resolveImpact(body CentralBody, p *Projectile, realistic bool) ImpactEvent {
	ev := ImpactEvent{
		ProjectileID: p.ID,
		PointDisplay: vecCopy(p.PositionDisplay),
	}
	var speed float64
	if realistic {
		speed = norm(p.VelocitySI)
	} else {
		speed = norm(body.ToSI(p.VelocityDisplay))
	}
	if !isFinite(speed) || !isFinite(p.MassKg) || p.MassKg < 0 {
		ev.Invalid = true
		return ev
	}
	ev.KineticEnergyJoules = 0.5 * p.MassKg * speed * speed
	ev.TNTKilotons = ev.KineticEnergyJoules / TNTJoulesPerKiloton
	return ev
}
