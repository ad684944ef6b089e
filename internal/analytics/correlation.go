package analytics

import "math"

// CorrelationResult is the Pearson correlation between a content attribute
// and per-post engagement
type CorrelationResult struct {
	Attribute   string  `json:"attribute"`
	Coefficient float64 `json:"coefficient"`
	SampleCount int     `json:"sample_count"`
}

// Correlate computes the Pearson correlation coefficient between
// attrFn(record) and the per-record average engagement score across the
// snapshot. The coefficient is 0 when fewer than 3 samples exist or either
// series has zero variance.
func Correlate(records []JoinedRecord, attribute string, attrFn func(JoinedRecord) float64, w EngagementWeights) CorrelationResult {
	scored := WithPerformance(records)

	result := CorrelationResult{
		Attribute:   attribute,
		SampleCount: len(scored),
	}
	if len(scored) < 3 {
		return result
	}

	n := float64(len(scored))
	xs := make([]float64, len(scored))
	ys := make([]float64, len(scored))

	var sumX, sumY float64
	for i, r := range scored {
		xs[i] = attrFn(r)
		ys[i] = r.EngagementScore(w)
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return result
	}

	coef := cov / math.Sqrt(varX*varY)
	// Guard against float drift outside [-1, 1]
	result.Coefficient = math.Max(-1, math.Min(1, coef))
	return result
}
