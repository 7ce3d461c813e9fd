package meteor

/* Conversions between display-space and SI coordinates. The same linear scale
applies to positions and velocities; it is fixed on the CentralBody for the
process lifetime. */

// ToSI converts a display-space vector to SI.
func (b CentralBody) ToSI(display []float64) []float64 {
	return []float64{display[0] * b.Scale, display[1] * b.Scale, display[2] * b.Scale}
}

// ToDisplay converts an SI vector to display space.
func (b CentralBody) ToDisplay(si []float64) []float64 {
	return []float64{si[0] / b.Scale, si[1] / b.Scale, si[2] / b.Scale}
}

// SpeedToSI converts a display-space speed to SI.
func (b CentralBody) SpeedToSI(display float64) float64 {
	return display * b.Scale
}

// SpeedToDisplay converts an SI speed to display space.
func (b CentralBody) SpeedToDisplay(si float64) float64 {
	return si / b.Scale
}
