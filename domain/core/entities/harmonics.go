package entities

// Consonance classifies the musical character of a harmonic ratio
type Consonance string

const (
	ConsonanceConsonant Consonance = "consonant"
	ConsonanceDissonant Consonance = "dissonant"
	ConsonanceNeutral   Consonance = "neutral"
)

// HarmonicEnergy describes the energetic quality paired with a ratio
type HarmonicEnergy string

const (
	EnergyFlowing HarmonicEnergy = "flowing"
	EnergyDynamic HarmonicEnergy = "dynamic"
	EnergyTense   HarmonicEnergy = "tense"
	EnergyStable  HarmonicEnergy = "stable"
)

// HarmonicRatio is one row of the static aspect-to-interval table. The
// table is immutable and built once at startup.
type HarmonicRatio struct {
	Kind           AspectKind
	AngleDegrees   float64
	Ratio          float64
	RatioLabel     string
	IntervalName   string
	HarmonicNumber int
	Consonance     Consonance
	Energy         HarmonicEnergy
}

// Partial is one overtone component of a song's harmonic series
type Partial struct {
	HarmonicNumber     int     `json:"harmonicNumber" validate:"required,min=1"`
	FrequencyHz        float64 `json:"frequencyHz" validate:"required,gt=0"`
	Amplitude          float64 `json:"amplitude" validate:"min=0,max=1"`
	RatioToFundamental float64 `json:"ratioToFundamental" validate:"required,gt=0"`
}

// SongHarmonicSeries is the pre-extracted harmonic content of a song,
// supplied by an external audio-analysis collaborator. This core never
// computes one.
type SongHarmonicSeries struct {
	FundamentalHz float64   `json:"fundamentalHz" validate:"required,gt=0"`
	Partials      []Partial `json:"partials" validate:"required,min=1,dive"`
}

// ResonanceType classifies how an aspect ratio met a song partial
type ResonanceType string

const (
	ResonanceExact     ResonanceType = "exact"
	ResonanceOvertone  ResonanceType = "overtone"
	ResonanceUndertone ResonanceType = "undertone"
	ResonanceComposite ResonanceType = "composite"
)

// HarmonicCorrelation is a single (aspect, partial) match. Correlations
// are recomputed per (chart, series) pair and never persisted here.
type HarmonicCorrelation struct {
	Aspect        Aspect
	Ratio         HarmonicRatio
	Partial       Partial
	MatchStrength float64
	ResonanceType ResonanceType
}

// ResonanceReport aggregates the correlations of one chart against one
// song. An empty report with score zero is a valid, common outcome.
type ResonanceReport struct {
	Correlations []HarmonicCorrelation
	Score        float64
}
