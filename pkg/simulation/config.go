package simulation

import "math"

// Force parameters. These are fixed design constants, not user input; the
// bounded magnitudes together with velocity damping are what keep the
// integration from diverging.
const (
	DefaultLinkDistance   = 120.0
	DefaultLinkStrength   = 0.5
	DefaultChargeStrength = -400.0
	DefaultCenterStrength = 0.05

	// Collision radii. The designated center node is drawn larger.
	CenterNodeRadius  = 28.0
	RegularNodeRadius = 20.0
	CollidePadding    = 5.0

	// Alpha schedule. The decay rate targets ~300 ticks from 1 to alphaMin,
	// matching the usual force-layout cooling curve.
	DefaultAlphaMin        = 0.001
	DefaultVelocityDecay   = 0.6
	DefaultDragAlphaTarget = 0.3
)

// Config holds the engine's integration parameters.
type Config struct {
	LinkDistance   float64
	LinkStrength   float64
	ChargeStrength float64
	CenterStrength float64
	AlphaMin       float64
	AlphaDecay     float64
	VelocityDecay  float64
}

// DefaultConfig returns the standard parameter set.
func DefaultConfig() Config {
	return Config{
		LinkDistance:   DefaultLinkDistance,
		LinkStrength:   DefaultLinkStrength,
		ChargeStrength: DefaultChargeStrength,
		CenterStrength: DefaultCenterStrength,
		AlphaMin:       DefaultAlphaMin,
		AlphaDecay:     AlphaDecayFor(DefaultAlphaMin),
		VelocityDecay:  DefaultVelocityDecay,
	}
}

// AlphaDecayFor returns the per-tick decay rate that takes alpha from 1
// to alphaMin in about 300 ticks. Decay and minimum must move together
// or the cooling schedule stretches or truncates.
func AlphaDecayFor(alphaMin float64) float64 {
	return 1 - math.Pow(alphaMin, 1.0/300)
}
