package entities

// ChartPattern names the overall shape of the body distribution around
// the wheel. Exactly one applies to any chart.
type ChartPattern string

const (
	PatternBucket     ChartPattern = "Bucket"
	PatternBundle     ChartPattern = "Bundle"
	PatternBowl       ChartPattern = "Bowl"
	PatternSeeSaw     ChartPattern = "See-Saw"
	PatternSplash     ChartPattern = "Splash"
	PatternLocomotive ChartPattern = "Locomotive"
	PatternSplay      ChartPattern = "Splay"
)

// AllPatterns returns the seven recognized chart shapes
func AllPatterns() []ChartPattern {
	return []ChartPattern{
		PatternBucket, PatternBundle, PatternBowl, PatternSeeSaw,
		PatternSplash, PatternLocomotive, PatternSplay,
	}
}

// IsValid checks if the pattern is one of the recognized shapes
func (p ChartPattern) IsValid() bool {
	for _, known := range AllPatterns() {
		if p == known {
			return true
		}
	}
	return false
}

// String returns the pattern name
func (p ChartPattern) String() string {
	return string(p)
}
