package analytics

import (
	"math"
	"sort"
	"strings"
	"time"
)

// EngagementFactor is one content attribute and its measured relationship to
// engagement
type EngagementFactor struct {
	Name        string  `json:"name"`
	Importance  float64 `json:"importance"` // absolute correlation strength
	Coefficient float64 `json:"coefficient"`
	SampleCount int     `json:"sample_count"`
	Description string  `json:"description"`
}

// factorDescriptions names what each tracked attribute measures
var factorDescriptions = map[string]string{
	"media_presence":     "Whether the post includes an image or video",
	"call_to_action":     "Whether the post asks the audience to act",
	"title_length":       "Number of characters in the title",
	"content_length":     "Number of characters in the body",
	"tag_count":          "Number of tags on the post",
	"weekend_publishing": "Whether the post went live on a weekend",
}

// IdentifyFactors correlates six content attributes against engagement and
// ranks them by importance descending. The factor list is fixed; attributes
// with too few samples or no variance report a zero coefficient.
func IdentifyFactors(records []JoinedRecord, w EngagementWeights) []EngagementFactor {
	attrs := []struct {
		name string
		fn   func(JoinedRecord) float64
	}{
		{"media_presence", func(r JoinedRecord) float64 {
			if r.Post.HasMedia {
				return 1
			}
			return 0
		}},
		{"call_to_action", func(r JoinedRecord) float64 {
			body := strings.ToLower(r.Post.Body)
			for _, kw := range styleKeywords[StyleCallToAction] {
				if strings.Contains(body, kw) {
					return 1
				}
			}
			return 0
		}},
		{"title_length", func(r JoinedRecord) float64 {
			return float64(len(r.Post.Title))
		}},
		{"content_length", func(r JoinedRecord) float64 {
			return float64(len(r.Post.Body))
		}},
		{"tag_count", func(r JoinedRecord) float64 {
			return float64(len(r.Post.Tags))
		}},
		{"weekend_publishing", func(r JoinedRecord) float64 {
			day := r.PublishedTime().Weekday()
			if day == time.Saturday || day == time.Sunday {
				return 1
			}
			return 0
		}},
	}

	factors := make([]EngagementFactor, 0, len(attrs))
	for _, attr := range attrs {
		result := Correlate(records, attr.name, attr.fn, w)
		factors = append(factors, EngagementFactor{
			Name:        attr.name,
			Importance:  math.Abs(result.Coefficient),
			Coefficient: result.Coefficient,
			SampleCount: result.SampleCount,
			Description: factorDescriptions[attr.name],
		})
	}

	sort.SliceStable(factors, func(i, k int) bool {
		return factors[i].Importance > factors[k].Importance
	})

	return factors
}
