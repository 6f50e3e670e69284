package evaluationengine

import (
	"accuracy-eval-platform/backend/internal/coreengine/metricscalculator"
)

// Summarize folds record results into the dataset-level aggregates. Records
// are folded in slice order, so the summary is deterministic for a given
// result order.
func (e *Engine) Summarize(records []RecordResult) DatasetSummary {
	summary := DatasetSummary{
		TotalRecords: len(records),
		FieldStats:   make(map[string]FieldStats),
	}
	if len(records) == 0 {
		return summary
	}

	tierCounts := make(map[int]int)
	var accuracySum float64
	type fieldAcc struct {
		records       int
		exactMatches  int
		sum, min, max float64
	}
	fieldAccs := make(map[string]*fieldAcc)

	for _, rec := range records {
		accuracySum += rec.OverallAccuracy
		if rec.FullMatch {
			summary.FullyCorrectRecords++
		}
		tierCounts[int(rec.Tier)]++

		for _, field := range rec.FieldOrder {
			fr := rec.Fields[field]
			acc, ok := fieldAccs[field]
			if !ok {
				acc = &fieldAcc{min: fr.Similarity, max: fr.Similarity}
				fieldAccs[field] = acc
				summary.FieldOrder = append(summary.FieldOrder, field)
			}
			acc.records++
			acc.sum += fr.Similarity
			if fr.ExactMatch {
				acc.exactMatches++
			}
			if fr.Similarity < acc.min {
				acc.min = fr.Similarity
			}
			if fr.Similarity > acc.max {
				acc.max = fr.Similarity
			}
		}
	}

	summary.OverallAccuracy = accuracySum / float64(len(records))

	for field, acc := range fieldAccs {
		summary.FieldStats[field] = FieldStats{
			Records:        acc.records,
			ExactMatches:   acc.exactMatches,
			MatchRate:      float64(acc.exactMatches) / float64(acc.records),
			MeanSimilarity: acc.sum / float64(acc.records),
			MinSimilarity:  acc.min,
			MaxSimilarity:  acc.max,
		}
	}

	summary.TierDistribution = tierDistribution(tierCounts, len(records))
	return summary
}

// tierDistribution expands tier counts into every bucket in display order,
// including empty ones.
func tierDistribution(counts map[int]int, total int) []TierBucket {
	buckets := make([]TierBucket, 0, len(metricscalculator.Tiers))
	for _, tier := range metricscalculator.Tiers {
		n := counts[int(tier)]
		buckets = append(buckets, TierBucket{
			Tier:    tier,
			Count:   n,
			Percent: 100.0 * float64(n) / float64(total),
		})
	}
	return buckets
}
