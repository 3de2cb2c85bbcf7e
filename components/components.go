// Package components defines ECS components for the simulation.
package components

// Particle holds per-particle bookkeeping.
type Particle struct {
	Seq       uint64 // Creation order; merge pairs are evaluated in ascending Seq
	ColorSeed uint32 // Stable per-particle value for presentation
	Alive     bool   // False once absorbed or merged; removed at end of tick
}

// SeedHSV derives a stable particle color from its color seed.
// Hue covers the full wheel; saturation and value stay in a bright band.
func SeedHSV(seed uint32) (h, s, v float64) {
	h = float64(seed%360) + float64((seed>>9)%100)/100
	s = 0.55 + float64((seed>>16)%40)/100
	v = 0.80 + float64((seed>>24)%20)/100
	return h, s, v
}
