package domain

// Bounds of the presentation seed distribution.
const (
	seedMinX        = 10.0
	seedSpanX       = 80.0
	seedMinDuration = 60.0
	seedSpanDur     = 60.0
	seedMinScale    = 0.6
	seedSpanScale   = 0.4
)

// SampleSeed draws presentation parameters for a new lantern. X falls in the
// central band [10, 90), duration in [60, 120) seconds, scale in [0.6, 1.0)
// and the tone is uniform over Palette. New lanterns start with no delay.
func SampleSeed(rng RNG) PresentationSeed {
	return PresentationSeed{
		X:         seedMinX + rng.Float64()*seedSpanX,
		Duration:  seedMinDuration + rng.Float64()*seedSpanDur,
		Delay:     0,
		Scale:     seedMinScale + rng.Float64()*seedSpanScale,
		ColorTone: Palette[rng.IntN(len(Palette))],
	}
}
