package analytics

import "sort"

// GroupStat is one aggregated group produced by GroupAndScore
type GroupStat struct {
	Key           string  `json:"key"`
	AvgEngagement float64 `json:"avg_engagement"`
	Count         int     `json:"count"`
}

// GroupAndScore buckets joined records by keyFn, averages their engagement
// scores and drops groups below minSamples. Records without performance data
// or with an empty key are skipped. Results are sorted by average engagement
// descending, ties broken by larger sample count, then key.
func GroupAndScore(records []JoinedRecord, keyFn func(JoinedRecord) string, minSamples int, w EngagementWeights) []GroupStat {
	if minSamples <= 0 {
		minSamples = 2
	}

	type bucket struct {
		total float64
		count int
	}
	buckets := make(map[string]*bucket)

	for _, r := range records {
		if !r.HasPerformance() {
			continue
		}
		key := keyFn(r)
		if key == "" {
			continue
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.total += r.EngagementScore(w)
		b.count++
	}

	stats := make([]GroupStat, 0, len(buckets))
	for key, b := range buckets {
		if b.count < minSamples {
			continue
		}
		stats = append(stats, GroupStat{
			Key:           key,
			AvgEngagement: b.total / float64(b.count),
			Count:         b.count,
		})
	}

	sort.Slice(stats, func(i, k int) bool {
		if stats[i].AvgEngagement != stats[k].AvgEngagement {
			return stats[i].AvgEngagement > stats[k].AvgEngagement
		}
		if stats[i].Count != stats[k].Count {
			return stats[i].Count > stats[k].Count
		}
		return stats[i].Key < stats[k].Key
	})

	return stats
}

// topN caps a stat list to the n best entries
func topN(stats []GroupStat, n int) []GroupStat {
	if n > 0 && len(stats) > n {
		return stats[:n]
	}
	return stats
}
