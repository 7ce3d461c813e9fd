package main

import (
	"sync"
	"time"

	meteor "github.com/nmistikm-ship-it/meteor-demo"
)

const frameRate = 60

// controlState mirrors the UI inputs. REST handlers write it under the mutex;
// the loop reads it once at the start of every tick, so the engine itself
// only ever sees values held constant for a whole tick.
type controlState struct {
	Realistic bool      `json:"realistic"`
	Speed     float64   `json:"speed"`
	AimOrigin []float64 `json:"aim_origin"`
	AimDir    []float64 `json:"aim_direction"`
	AimSpeed  float64   `json:"aim_speed"`
}

type spawnRequest struct {
	Origin    []float64 `json:"origin"`
	Direction []float64 `json:"direction"`
	Speed     float64   `json:"speed"`
	Diameter  float64   `json:"diameter"`
}

type projectileView struct {
	ID          int       `json:"id"`
	Position    []float64 `json:"position"`
	Orientation []float64 `json:"orientation"`
	Opacity     float64   `json:"opacity"`
	State       string    `json:"state"`
}

type simSnapshot struct {
	Projectiles []projectileView        `json:"projectiles"`
	Prediction  meteor.PredictionResult `json:"prediction"`
	Stats       meteor.Stats            `json:"stats"`
}

var (
	mu       sync.Mutex
	controls = controlState{
		Speed:     1,
		AimOrigin: []float64{0, 0, 15},
		AimDir:    []float64{0, 0, -1},
		AimSpeed:  0.05,
	}
	spawnQueue = make(chan spawnRequest, 16)
	snapshot   simSnapshot
)

// runSimulation is the host loop: one engine tick per frame, with the
// predictor refreshed from the current aim state each tick. The engine is
// owned exclusively by this goroutine; the REST side only touches the control
// state, the spawn queue and the published snapshot.
func runSimulation(engine *meteor.Engine) {
	dt := 1.0 / frameRate
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()
	for range ticker.C {
		mu.Lock()
		cs := controls
		mu.Unlock()

	drain:
		for {
			select {
			case req := <-spawnQueue:
				// Spawn errors are logged by the engine and otherwise dropped.
				engine.SpawnDefault(req.Origin, req.Direction, req.Speed, req.Diameter)
			default:
				break drain
			}
		}

		cfg := meteor.TickConfig{Realistic: cs.Realistic, Speed: cs.Speed}
		engine.Tick(dt, cfg)
		pred := engine.Predict(cs.AimOrigin, cs.AimDir, cs.AimSpeed, cfg)

		views := make([]projectileView, 0, len(engine.Projectiles()))
		for _, p := range engine.Projectiles() {
			views = append(views, projectileView{
				ID:          p.ID,
				Position:    append([]float64(nil), p.PositionDisplay...),
				Orientation: append([]float64(nil), p.Orientation...),
				Opacity:     p.Opacity,
				State:       p.State.String(),
			})
		}

		mu.Lock()
		snapshot = simSnapshot{Projectiles: views, Prediction: pred, Stats: engine.Stats()}
		mu.Unlock()
	}
}
