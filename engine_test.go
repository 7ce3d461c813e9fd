package meteor

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

const frameDT = 1.0 / 60

func TestSpawnValidation(t *testing.T) {
	e := NewEngine(Earth, nil)
	cases := []struct {
		name     string
		speed    float64
		diameter float64
	}{
		{"zero diameter", 0.05, 0},
		{"negative diameter", 0.05, -1},
		{"NaN diameter", 0.05, math.NaN()},
		{"NaN speed", math.NaN(), 0.5},
		{"Inf speed", math.Inf(1), 0.5},
	}
	for _, tc := range cases {
		if _, err := e.Spawn([]float64{0, 0, 15}, []float64{0, 0, -1}, tc.speed, tc.diameter, 60); err == nil {
			t.Fatalf("%s: spawn did not error", tc.name)
		}
	}
	if len(e.Projectiles()) != 0 {
		t.Fatal("rejected spawns left projectiles behind")
	}
}

func TestSpawnDerivedMass(t *testing.T) {
	e := NewEngine(Earth, nil)
	p, err := e.Spawn([]float64{0, 0, 15}, []float64{0, 0, -1}, 0.05, 0.5, 60)
	if err != nil {
		t.Fatal(err)
	}
	// 3000 kg/m³ * (4/3)π(0.25)³ ≈ 196.3 kg
	if !floats.EqualWithinAbs(p.MassKg, 196.3, 0.1) {
		t.Fatalf("mass is %f kg, expected about 196.3", p.MassKg)
	}
	if !floats.EqualWithinAbs(p.CrossSectionM2, math.Pi*0.25*0.25, 1e-9) {
		t.Fatalf("cross-section is %f m²", p.CrossSectionM2)
	}
	if !floats.EqualWithinAbs(p.DiameterM(), 0.5, 1e-9) {
		t.Fatalf("diameter round trip gave %f m", p.DiameterM())
	}
}

func TestArcadeMonotonicInfall(t *testing.T) {
	// From rest under the arcade model the distance to the body center must
	// strictly decrease every tick until impact.
	e := NewEngine(Earth, nil)
	p, err := e.Spawn([]float64{0, 0, 15}, []float64{0, 0, -1}, 0, 1.0, 1e6)
	if err != nil {
		t.Fatal(err)
	}
	cfg := TickConfig{Realistic: false, Speed: 1}
	prev := norm(p.PositionDisplay)
	for i := 0; i < 5000; i++ {
		impacts := e.Tick(frameDT, cfg)
		if len(impacts) > 0 {
			return // reached the surface, monotonic all the way
		}
		cur := norm(p.PositionDisplay)
		if cur >= prev {
			t.Fatalf("distance did not decrease at tick %d: %f >= %f", i, cur, prev)
		}
		prev = cur
	}
	t.Fatal("no impact within 5000 ticks")
}

func TestArcadeImpactScenario(t *testing.T) {
	// Rm = 6,371,000 m at S = 1,000,000 m/du gives Rd = 6.371. A shot from
	// (0,0,15) straight at the origin at 0.05 du/tick must land at about Rd.
	e := NewEngine(Earth, nil)
	if _, err := e.Spawn([]float64{0, 0, 15}, []float64{0, 0, -1}, 0.05, 1.0, 1e6); err != nil {
		t.Fatal(err)
	}
	cfg := TickConfig{Realistic: false, Speed: 1}
	for i := 0; i < 2000; i++ {
		impacts := e.Tick(frameDT, cfg)
		if len(impacts) == 0 {
			continue
		}
		ev := impacts[0]
		if ev.Invalid {
			t.Fatal("scenario impact flagged invalid")
		}
		if d := norm(ev.PointDisplay); !floats.EqualWithinAbs(d, Earth.RadiusDisplay, 0.25) {
			t.Fatalf("impact point at distance %f, expected about %f", d, Earth.RadiusDisplay)
		}
		if e.Stats().ImpactCount != 1 {
			t.Fatal("impact counter not bumped")
		}
		if len(e.Projectiles()) != 0 {
			t.Fatal("impacted projectile still in the live set")
		}
		return
	}
	t.Fatal("no impact within 2000 ticks")
}

func TestRealisticImpact(t *testing.T) {
	// Same shot under the SI model: 0.05 du/tick converts to 50 km/s, which
	// reaches the surface well inside the tick budget.
	e := NewEngine(Earth, nil)
	if _, err := e.Spawn([]float64{0, 0, 15}, []float64{0, 0, -1}, 0.05, 1.0, 1e6); err != nil {
		t.Fatal(err)
	}
	cfg := TickConfig{Realistic: true, Speed: 60} // one simulated second per tick
	for i := 0; i < 2000; i++ {
		impacts := e.Tick(frameDT, cfg)
		if len(impacts) == 0 {
			continue
		}
		ev := impacts[0]
		if ev.Invalid || ev.KineticEnergyJoules <= 0 {
			t.Fatalf("bad impact event: %+v", ev)
		}
		if d := norm(ev.PointDisplay); !floats.EqualWithinAbs(d, Earth.RadiusDisplay, 0.25) {
			t.Fatalf("impact point at distance %f, expected about %f", d, Earth.RadiusDisplay)
		}
		return
	}
	t.Fatal("no impact within 2000 ticks")
}

func TestTTLFadeOut(t *testing.T) {
	// A projectile that never crosses the body radius fades instead of
	// impacting: Flying → Fading at TTL expiry, Removed at opacity 0, and no
	// ImpactEvent anywhere on that path.
	e := NewEngine(Earth, nil)
	p, err := e.Spawn([]float64{0, 0, 15}, []float64{0, 0, 1}, 0.1, 1.0, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	cfg := TickConfig{Realistic: false, Speed: 1}
	// 0.125 s per tick is exact in binary, so the TTL hits zero on the tick
	// it should rather than one tick late on accumulated rounding.
	dt := 0.125
	for i := 0; i < 7; i++ {
		if impacts := e.Tick(dt, cfg); len(impacts) > 0 {
			t.Fatal("outbound projectile impacted")
		}
	}
	if p.State != Flying {
		t.Fatalf("state is %s before TTL expiry", p.State)
	}
	if impacts := e.Tick(dt, cfg); len(impacts) > 0 {
		t.Fatal("outbound projectile impacted")
	}
	if p.State != Fading {
		t.Fatalf("state is %s at t=1.0s, expected fading", p.State)
	}
	// Fade rate of 1.0/s drains the opacity over the next second.
	for i := 0; i < 8; i++ {
		if impacts := e.Tick(dt, cfg); len(impacts) > 0 {
			t.Fatal("fading projectile impacted")
		}
	}
	if p.State != Removed || p.Opacity != 0 {
		t.Fatalf("state is %s with opacity %f after the fade", p.State, p.Opacity)
	}
	if len(e.Projectiles()) != 0 {
		t.Fatal("removed projectile still in the live set")
	}
	if e.Stats().ImpactCount != 0 {
		t.Fatal("fade-out produced an impact")
	}
}

func TestVelocityRepresentationsSync(t *testing.T) {
	e := NewEngine(Earth, nil)
	p, err := e.Spawn([]float64{0, 0, 15}, []float64{0.3, -0.2, -1}, 0.04, 1.0, 60)
	if err != nil {
		t.Fatal(err)
	}
	cfg := TickConfig{Realistic: false, Speed: 1}
	e.Tick(frameDT, cfg)
	si := Earth.ToSI(p.VelocityDisplay)
	for i := 0; i < 3; i++ {
		if !floats.EqualWithinAbs(p.VelocitySI[i], si[i], 1e-6) {
			t.Fatal("SI velocity out of sync after an arcade tick")
		}
	}
	cfg.Realistic = true
	e.Tick(frameDT, cfg)
	disp := Earth.ToDisplay(p.VelocitySI)
	for i := 0; i < 3; i++ {
		if !floats.EqualWithinAbs(p.VelocityDisplay[i], disp[i], 1e-12) {
			t.Fatal("display velocity out of sync after a realistic tick")
		}
	}
}

func TestTumbleAccumulates(t *testing.T) {
	e := NewEngine(Earth, nil)
	p, err := e.Spawn([]float64{0, 0, 15}, []float64{0, 0, 1}, 0.1, 1.0, 60)
	if err != nil {
		t.Fatal(err)
	}
	p.Tumble = []float64{1, 0, 0}
	e.Tick(1.0, TickConfig{Speed: 1})
	if !floats.EqualWithinAbs(p.Orientation[0], 1.0, 1e-12) {
		t.Fatalf("orientation is %f after one simulated second", p.Orientation[0])
	}
}
