package meteor

import "math"

/* Bounded throwaway forward integration for aim feedback. */

// PredictionResult is the outcome of one ballistic prediction. Point is only
// set when Impact is true.
type PredictionResult struct {
	Impact bool
	Point  []float64 // display units
	Steps  int
}

// Predict runs a disposable forward integration from a hypothetical launch
// state and returns where it would strike the body, or no impact if the state
// escapes or the step budget runs out. It uses the same step slice and
// integrator selection as the live simulation but only ever touches local
// copies, so it is safe to call every tick alongside Tick.
func (e *Engine) Predict(originDisplay, aimDir []float64, launchSpeed float64, cfg TickConfig) PredictionResult {
	if cfg.Speed <= 0 {
		cfg.Speed = 1
	}
	if !allFinite(originDisplay) || !allFinite(aimDir) || !isFinite(launchSpeed) {
		return PredictionResult{}
	}
	dir := unit(aimDir)
	radius := e.tunables.DefaultDiameterM / 2
	mass := RockDensity * (4. / 3.) * math.Pi * math.Pow(radius, 3)
	area := math.Pi * radius * radius

	if cfg.Realistic {
		pos := e.Body.ToSI(originDisplay)
		vel := []float64{
			dir[0] * e.Body.SpeedToSI(launchSpeed),
			dir[1] * e.Body.SpeedToSI(launchSpeed),
			dir[2] * e.Body.SpeedToSI(launchSpeed),
		}
		hitRadius := e.Body.RadiusM + e.tunables.ImpactMarginDisplay*e.Body.Scale
		escape := e.tunables.EscapeRadiusDisplay * e.Body.Scale
		for step := 1; step <= e.tunables.MaxPredictionSteps; step++ {
			pos, vel = e.realistic.Step(pos, vel, mass, area, e.tunables.StepSeconds)
			r := norm(pos)
			if r < hitRadius {
				return PredictionResult{Impact: true, Point: e.Body.ToDisplay(pos), Steps: step}
			}
			if r > escape {
				return PredictionResult{Steps: step}
			}
		}
		return PredictionResult{Steps: e.tunables.MaxPredictionSteps}
	}

	pos := vecCopy(originDisplay)
	vel := []float64{dir[0] * launchSpeed, dir[1] * launchSpeed, dir[2] * launchSpeed}
	hitRadius := e.Body.RadiusDisplay + e.tunables.ImpactMarginDisplay
	for step := 1; step <= e.tunables.MaxPredictionSteps; step++ {
		pos, vel = e.arcade.Step(pos, vel, mass, area, cfg.Speed)
		r := norm(pos)
		if r < hitRadius {
			return PredictionResult{Impact: true, Point: pos, Steps: step}
		}
		if r > e.tunables.EscapeRadiusDisplay {
			return PredictionResult{Steps: step}
		}
	}
	return PredictionResult{Steps: e.tunables.MaxPredictionSteps}
}
