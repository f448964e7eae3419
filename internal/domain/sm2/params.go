package sm2

// Params defines the configurable constants of the SM2 algorithm.
type Params struct {
	// MinFactor is the easiness factor floor (classically 1.3).
	MinFactor float64

	// PassThreshold is the lowest quality counted as a pass. Quality
	// exactly at the threshold passes (boundary inclusive).
	PassThreshold int

	// FirstInterval is the interval in days after the first pass.
	FirstInterval int

	// SecondInterval is the interval in days after the second
	// consecutive pass.
	SecondInterval int
}

// NewDefaultParams returns the classic SM2 constants.
func NewDefaultParams() *Params {
	return &Params{
		MinFactor:      1.3,
		PassThreshold:  3,
		FirstInterval:  1,
		SecondInterval: 6,
	}
}
