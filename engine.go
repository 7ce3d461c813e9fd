package meteor

import (
	kitlog "github.com/go-kit/kit/log"

	"github.com/nmistikm-ship-it/meteor-demo/metrics"
)

/* Handles the per-tick simulation of the live projectile set. */

// TickConfig carries the control inputs of a single tick. The host reads its
// UI state once, fills this in, and the values hold for the whole tick so the
// two integrators' differing time semantics cannot tear mid-frame.
type TickConfig struct {
	Realistic bool    // false selects the arcade model
	Speed     float64 // positive global simulation speed multiplier
}

// Stats is the counter surface exposed to the host UI.
type Stats struct {
	ImpactCount        uint64
	LiveProjectiles    int
	LastImpactJoules   float64
	LastImpactKilotons float64
	LastImpactInvalid  bool
}

// Engine owns the live projectile set and advances it one tick at a time. It
// is single-owner by construction: nothing in here blocks, and every public
// method completes synchronously within the tick that calls it.
type Engine struct {
	Body        CentralBody
	arcade      Arcade
	realistic   Realistic
	tunables    Tunables
	logger      kitlog.Logger
	projectiles []*Projectile
	nextID      int
	impactCount uint64
	lastImpact  *ImpactEvent
}

// NewEngine returns an engine for the given body. A nil logger is replaced
// with a no-op one.
func NewEngine(body CentralBody, logger kitlog.Logger) *Engine {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	tun := engineConfig()
	return &Engine{
		Body:      body,
		arcade:    Arcade{K: tun.ArcadeK},
		realistic: NewRealistic(body),
		tunables:  tun,
		logger:    kitlog.With(logger, "subsys", "engine"),
	}
}

// Tunables returns the engine constants in effect.
func (e *Engine) Tunables() Tunables {
	return e.tunables
}

// Spawn creates a projectile from launch parameters and adds it to the live
// set. The launch speed is in display units per tick; origin is in display
// units; direction need not be normalized.
func (e *Engine) Spawn(originDisplay, dir []float64, launchSpeed, diameterM, ttlSeconds float64) (*Projectile, error) {
	p, err := NewProjectile(e.nextID, e.Body, originDisplay, dir, launchSpeed, diameterM, ttlSeconds)
	if err != nil {
		e.logger.Log("level", "warning", "rejected", err)
		return nil, err
	}
	e.nextID++
	e.projectiles = append(e.projectiles, p)
	metrics.SetLiveProjectiles(len(e.projectiles))
	e.logger.Log("level", "info", "spawned", p.ID, "mass(kg)", p.MassKg, "diameter(m)", diameterM, "ttl(s)", ttlSeconds)
	return p, nil
}

// SpawnDefault spawns with the configured default TTL.
func (e *Engine) SpawnDefault(originDisplay, dir []float64, launchSpeed, diameterM float64) (*Projectile, error) {
	return e.Spawn(originDisplay, dir, launchSpeed, diameterM, e.tunables.DefaultTTLSeconds)
}

// Projectiles returns the live set. Callers must treat it as read-only; the
// tick loop is the only mutator.
func (e *Engine) Projectiles() []*Projectile {
	return e.projectiles
}

// Stats returns the running counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		ImpactCount:     e.impactCount,
		LiveProjectiles: len(e.projectiles),
	}
	if e.lastImpact != nil {
		s.LastImpactJoules = e.lastImpact.KineticEnergyJoules
		s.LastImpactKilotons = e.lastImpact.TNTKilotons
		s.LastImpactInvalid = e.lastImpact.Invalid
	}
	return s
}

// Tick advances every live projectile by one frame of dtSeconds wall time and
// returns the impact events of this tick. Control flags are read once from
// cfg and held for the whole tick.
func (e *Engine) Tick(dtSeconds float64, cfg TickConfig) []ImpactEvent {
	if cfg.Speed <= 0 {
		cfg.Speed = 1
	}
	simSeconds := dtSeconds * cfg.Speed
	var impacts []ImpactEvent
	for _, p := range e.projectiles {
		if p.State == Removed {
			continue
		}
		// Cosmetic tumble, decoupled from the trajectory.
		for i := 0; i < 3; i++ {
			p.Orientation[i] += p.Tumble[i] * simSeconds
		}
		if cfg.Realistic {
			e.stepRealistic(p, simSeconds)
		} else {
			e.stepArcade(p, cfg.Speed)
		}
		if norm(p.PositionDisplay) < e.Body.RadiusDisplay+e.tunables.ImpactMarginDisplay {
			ev := resolveImpact(e.Body, p, cfg.Realistic)
			e.recordImpact(ev)
			impacts = append(impacts, ev)
			p.State = Removed
			continue
		}
		if p.State == Flying {
			p.TTLSeconds -= simSeconds
			if p.TTLSeconds <= 0 {
				p.State = Fading
				e.logger.Log("level", "info", "fading", p.ID)
			}
		}
		if p.State == Fading {
			p.Opacity -= e.tunables.FadeRatePerSecond * simSeconds
			if p.Opacity <= 0 {
				p.Opacity = 0
				p.State = Removed
				e.logger.Log("level", "info", "expired", p.ID)
			}
		}
	}
	e.dropRemoved()
	metrics.SetLiveProjectiles(len(e.projectiles))
	return impacts
}

// stepArcade advances one projectile with the display-space model. The speed
// multiplier folds straight into the step scale, which is the arcade model's
// time semantic.
func (e *Engine) stepArcade(p *Projectile, speed float64) {
	pos, vel := e.arcade.Step(p.PositionDisplay, p.VelocityDisplay, p.MassKg, p.CrossSectionM2, speed)
	p.PositionDisplay = pos
	p.VelocityDisplay = vel
	// Keep the inactive representation numerically consistent.
	p.VelocitySI = e.Body.ToSI(vel)
}

// stepRealistic advances one projectile in SI with fixed physical slices.
// Larger speed multipliers advance more simulated seconds, never a larger
// slice, preserving integrator stability.
func (e *Engine) stepRealistic(p *Projectile, simSeconds float64) {
	posSI := e.Body.ToSI(p.PositionDisplay)
	velSI := p.VelocitySI
	steps := 0
	for remaining := simSeconds; remaining > 0; remaining -= e.tunables.StepSeconds {
		h := e.tunables.StepSeconds
		if remaining < h {
			h = remaining
		}
		posSI, velSI = e.realistic.Step(posSI, velSI, p.MassKg, p.CrossSectionM2, h)
		steps++
		if norm(posSI) < e.Body.RadiusM {
			break // already inside the body, the impact test below handles it
		}
	}
	metrics.AddIntegrationSteps(steps)
	p.VelocitySI = velSI
	p.PositionDisplay = e.Body.ToDisplay(posSI)
	p.VelocityDisplay = e.Body.ToDisplay(velSI)
}

func (e *Engine) recordImpact(ev ImpactEvent) {
	e.impactCount++
	e.lastImpact = &ev
	metrics.RecordImpact(ev.KineticEnergyJoules, ev.TNTKilotons)
	e.logger.Log("level", "notice", "impact", ev.ProjectileID,
		"energy(J)", ev.KineticEnergyJoules, "tnt(kt)", ev.TNTKilotons, "invalid", ev.Invalid)
}

// dropRemoved compacts the live set in place.
func (e *Engine) dropRemoved() {
	live := e.projectiles[:0]
	for _, p := range e.projectiles {
		if p.State != Removed {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(e.projectiles); i++ {
		e.projectiles[i] = nil
	}
	e.projectiles = live
}
