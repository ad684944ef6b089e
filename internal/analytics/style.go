package analytics

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// StylePattern reports how one writing style performs for the creator
type StylePattern struct {
	Style           string   `json:"style"`
	AvgEngagement   float64  `json:"avg_engagement"`
	SampleCount     int      `json:"sample_count"`
	Characteristics []string `json:"characteristics"`
	Confidence      float64  `json:"confidence"`
}

// Style bucket names
const (
	StyleStorytelling = "storytelling"
	StyleInspiring    = "inspirational"
	StyleConcise      = "concise"
	StyleCallToAction = "call-to-action"
)

var styleKeywords = map[string][]string{
	StyleStorytelling: {"story", "journey", "experience", "learned", "when i"},
	StyleInspiring:    {"inspir", "motivat", "believe", "dream", "never give up"},
	StyleCallToAction: {"subscribe", "follow", "comment below", "sign up", "check out", "link in bio", "share this"},
}

var styleCharacteristics = map[string][]string{
	StyleStorytelling: {
		"Personal narrative arc",
		"Concrete details over abstractions",
		"Emotional beats that carry the reader",
	},
	StyleInspiring: {
		"Aspirational framing",
		"Direct address to the audience",
		"Quotable, shareable lines",
	},
	StyleConcise: {
		"Under 500 characters",
		"One idea per post",
		"Fast to consume and easy to share",
	},
	StyleCallToAction: {
		"Explicit next step for the audience",
		"Urgency or invitation language",
		"Drives measurable responses",
	},
}

// conciseLimit is the body length in characters under which a post counts
// as concise
const conciseLimit = 500

// classifyStyles returns every style bucket a post matches
func classifyStyles(body string) []string {
	lower := strings.ToLower(body)

	var styles []string
	for _, style := range []string{StyleStorytelling, StyleInspiring, StyleCallToAction} {
		for _, kw := range styleKeywords[style] {
			if strings.Contains(lower, kw) {
				styles = append(styles, style)
				break
			}
		}
	}
	if chars := utf8.RuneCountInString(body); chars > 0 && chars < conciseLimit {
		styles = append(styles, StyleConcise)
	}
	return styles
}

// AnalyzeStyles classifies posts into fixed style buckets and reports the
// average reception of each bucket with at least the minimum match count
func AnalyzeStyles(records []JoinedRecord, cfg Config, w EngagementWeights) []StylePattern {
	scored := WithPerformance(records)

	type bucket struct {
		total float64
		count int
	}
	buckets := make(map[string]*bucket)

	for _, r := range scored {
		score := r.EngagementScore(w)
		for _, style := range classifyStyles(r.Post.Body) {
			b, ok := buckets[style]
			if !ok {
				b = &bucket{}
				buckets[style] = b
			}
			b.total += score
			b.count++
		}
	}

	patterns := make([]StylePattern, 0, len(buckets))
	for style, b := range buckets {
		if b.count < cfg.MinStyleSamples {
			continue
		}
		patterns = append(patterns, StylePattern{
			Style:           style,
			AvgEngagement:   b.total / float64(b.count),
			SampleCount:     b.count,
			Characteristics: styleCharacteristics[style],
			Confidence:      cfg.ConfidenceForSamples(b.count),
		})
	}

	sort.Slice(patterns, func(i, k int) bool {
		if patterns[i].AvgEngagement != patterns[k].AvgEngagement {
			return patterns[i].AvgEngagement > patterns[k].AvgEngagement
		}
		return patterns[i].Style < patterns[k].Style
	})

	return patterns
}
