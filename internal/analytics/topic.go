package analytics

import (
	"sort"
	"strings"
)

// TopicInsight describes how one extracted topic performs for the creator
type TopicInsight struct {
	Topic         string   `json:"topic"`
	AvgEngagement float64  `json:"avg_engagement"`
	PostCount     int      `json:"post_count"`
	GrowthTrend   float64  `json:"growth_trend"` // percent change, older half vs newer half
	RelatedTopics []string `json:"related_topics"`
	Keywords      []string `json:"keywords"`
	Confidence    float64  `json:"confidence"`
}

// Topic extraction is a cheap heuristic over the title, not topic modeling.
var topicSeparators = []string{"-", ":", "|", "—"}

// ExtractTopic derives a topic label from a post title by splitting at the
// first separator, falling back to the first 30 characters
func ExtractTopic(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}

	cut := -1
	for _, sep := range topicSeparators {
		if idx := strings.Index(title, sep); idx >= 0 && (cut == -1 || idx < cut) {
			cut = idx
		}
	}
	if cut > 0 {
		return strings.TrimSpace(title[:cut])
	}

	runes := []rune(title)
	if len(runes) > 30 {
		return strings.TrimSpace(string(runes[:30]))
	}
	return title
}

// AnalyzeTopics groups posts by extracted topic and ranks topics by average
// engagement. Topics below the minimum post count are never reported.
func AnalyzeTopics(records []JoinedRecord, cfg Config, w EngagementWeights) []TopicInsight {
	scored := WithPerformance(records)

	groups := make(map[string][]JoinedRecord)
	labels := make(map[string]string)
	for _, r := range scored {
		label := ExtractTopic(r.Post.Title)
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		groups[key] = append(groups[key], r)
		if _, ok := labels[key]; !ok {
			labels[key] = label
		}
	}

	insights := make([]TopicInsight, 0, len(groups))
	for key, group := range groups {
		if len(group) < cfg.MinTopicPosts {
			continue
		}

		var total float64
		for _, r := range group {
			total += r.EngagementScore(w)
		}

		insights = append(insights, TopicInsight{
			Topic:         labels[key],
			AvgEngagement: total / float64(len(group)),
			PostCount:     len(group),
			GrowthTrend:   topicGrowthTrend(group, w),
			RelatedTopics: relatedTopics(key, labels),
			Keywords:      frequentKeywords(group),
			Confidence:    cfg.ConfidenceForSamples(len(group)),
		})
	}

	sort.Slice(insights, func(i, k int) bool {
		if insights[i].AvgEngagement != insights[k].AvgEngagement {
			return insights[i].AvgEngagement > insights[k].AvgEngagement
		}
		return insights[i].Topic < insights[k].Topic
	})

	return insights
}

// topicGrowthTrend splits the group's chronologically ordered posts into two
// halves and returns the percent change in average engagement
func topicGrowthTrend(group []JoinedRecord, w EngagementWeights) float64 {
	if len(group) < 2 {
		return 0
	}

	ordered := make([]JoinedRecord, len(group))
	copy(ordered, group)
	sort.Slice(ordered, func(i, k int) bool {
		return ordered[i].PublishedTime().Before(ordered[k].PublishedTime())
	})

	mid := len(ordered) / 2
	older := averageEngagement(ordered[:mid], w)
	newer := averageEngagement(ordered[mid:], w)

	if older == 0 {
		return 0
	}
	return (newer - older) / older * 100
}

func averageEngagement(group []JoinedRecord, w EngagementWeights) float64 {
	if len(group) == 0 {
		return 0
	}
	var total float64
	for _, r := range group {
		total += r.EngagementScore(w)
	}
	return total / float64(len(group))
}

// relatedTopics finds up to 3 other topics related by substring containment
// in either direction
func relatedTopics(key string, labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for other := range labels {
		if other != key {
			keys = append(keys, other)
		}
	}
	sort.Strings(keys)

	var related []string
	for _, other := range keys {
		if strings.Contains(other, key) || strings.Contains(key, other) {
			related = append(related, labels[other])
			if len(related) == 3 {
				break
			}
		}
	}
	return related
}

// frequentKeywords returns up to 5 words longer than 3 characters ranked by
// case-insensitive frequency across the group's titles
func frequentKeywords(group []JoinedRecord) []string {
	counts := make(map[string]int)
	for _, r := range group {
		for _, word := range strings.Fields(strings.ToLower(r.Post.Title)) {
			word = strings.Trim(word, ".,!?;:-|")
			if len([]rune(word)) > 3 {
				counts[word]++
			}
		}
	}

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, k int) bool {
		if counts[words[i]] != counts[words[k]] {
			return counts[words[i]] > counts[words[k]]
		}
		return words[i] < words[k]
	})

	if len(words) > 5 {
		words = words[:5]
	}
	return words
}
