package analytics

// ConfidenceTier maps a sample-count ceiling to a confidence value
type ConfidenceTier struct {
	MaxSamples int
	Confidence float64
}

// Config holds the tunable thresholds used across the analyzers. The defaults
// come from production calibration; none of them are statistically derived,
// so keep them adjustable rather than baked into the algorithms.
type Config struct {
	// Minimum samples before a grouped result is reported
	MinGroupSamples int
	// Minimum posts before a topic group is reported
	MinTopicPosts int
	// Minimum matching posts before a style bucket is reported
	MinStyleSamples int

	// Confidence tiers by total sample count, ascending by MaxSamples
	ConfidenceTiers []ConfidenceTier
	// Confidence when sample count exceeds every tier
	MaxConfidence float64

	// Similarity score a historical post must exceed to count as a match
	SimilarityThreshold float64
	// Cap on similar posts used for a prediction
	MaxCandidates int
	// Minimum posts with performance data before predicting at all
	MinHistoryForPrediction int
	// Confidence assigned to the no-match fallback prediction
	FallbackConfidence float64

	// Score bands (on a 0-10 scale) used to grade content performance,
	// descending
	ViralScoreBands []float64

	// Cap on suggestions per recommendation list
	MaxSuggestions int
	// Default number of top patterns reported per analyzer
	TopPatterns int
}

// DefaultConfig returns the calibrated defaults
func DefaultConfig() Config {
	return Config{
		MinGroupSamples: 2,
		MinTopicPosts:   2,
		MinStyleSamples: 2,
		ConfidenceTiers: []ConfidenceTier{
			{MaxSamples: 5, Confidence: 0.3},
			{MaxSamples: 10, Confidence: 0.5},
			{MaxSamples: 20, Confidence: 0.7},
			{MaxSamples: 50, Confidence: 0.85},
		},
		MaxConfidence:           0.95,
		SimilarityThreshold:     0.4,
		MaxCandidates:           5,
		MinHistoryForPrediction: 5,
		FallbackConfidence:      0.4,
		ViralScoreBands:         []float64{8.0, 6.0, 4.0, 2.0},
		MaxSuggestions:          5,
		TopPatterns:             3,
	}
}

// ConfidenceForSamples maps a sample count onto the configured tiers
func (c Config) ConfidenceForSamples(n int) float64 {
	for _, tier := range c.ConfidenceTiers {
		if n < tier.MaxSamples {
			return tier.Confidence
		}
	}
	return c.MaxConfidence
}
