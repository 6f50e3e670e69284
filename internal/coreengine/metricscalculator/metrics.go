// Package metricscalculator derives accuracy metrics from edit-distance
// alignments: similarity ratio, Character Error Rate (CER), Word Error Rate
// (WER) and tier classification.
package metricscalculator

import (
	"accuracy-eval-platform/backend/internal/coreengine/alignment"
)

// Metrics carries every scalar derived from aligning one reference string
// against one hypothesis string.
type Metrics struct {
	Similarity float64 `json:"similarity"`
	CER        float64 `json:"cer"`
	WER        float64 `json:"wer"`
	ExactMatch bool    `json:"exact_match"`

	// Character-level error counts, summed from the opcode spans.
	Substitutions int `json:"substitutions"`
	Deletions     int `json:"deletions"`
	Insertions    int `json:"insertions"`
}

// Calculate computes similarity ratio, CER and WER for a normalized
// (reference, hypothesis) pair. It is total: every pair of finite strings,
// including empty ones, produces a result.
//
// Similarity = 2 * matched_length / (len(ref) + len(hyp)), over code points.
// CER = (substitutions + deletions + insertions) / len(ref), over code points.
// WER = the same formula over word units.
//
// An empty reference paired with an empty hypothesis is a free match
// (similarity 1, CER 0, WER 0); an empty reference or hypothesis paired with
// a non-empty counterpart is a total mismatch (similarity 0, CER 1, WER 1).
func Calculate(ref, hyp string) Metrics {
	refChars := alignment.Chars(ref)
	hypChars := alignment.Chars(hyp)

	if len(refChars) == 0 && len(hypChars) == 0 {
		return Metrics{Similarity: 1.0, ExactMatch: true}
	}
	if len(refChars) == 0 {
		return Metrics{CER: 1.0, WER: 1.0, Insertions: len(hypChars)}
	}
	if len(hypChars) == 0 {
		return Metrics{CER: 1.0, WER: 1.0, Deletions: len(refChars)}
	}

	chars := alignment.Tally(alignment.Align(refChars, hypChars))
	similarity := 2.0 * float64(chars.Matched) / float64(len(refChars)+len(hypChars))
	cer := float64(chars.Substitutions+chars.Deletions+chars.Insertions) / float64(len(refChars))

	refWords := alignment.Words(ref)
	hypWords := alignment.Words(hyp)
	var wer float64
	if len(refWords) == 0 {
		if len(hypWords) > 0 {
			wer = 1.0
		}
	} else {
		wordErrs := alignment.Distance(alignment.Align(refWords, hypWords))
		wer = float64(wordErrs) / float64(len(refWords))
	}

	return Metrics{
		Similarity: similarity,
		CER:        cer,
		WER:        wer,
		// 2*M/(n+m) is exactly 1.0 only when every token matched on both
		// sides, so float equality is safe here.
		ExactMatch:    similarity == 1.0,
		Substitutions: chars.Substitutions,
		Deletions:     chars.Deletions,
		Insertions:    chars.Insertions,
	}
}

// AccuracyFromCER converts a character error rate to the clamped accuracy
// used as a display metric in document mode.
func AccuracyFromCER(cer float64) float64 {
	if cer >= 1.0 {
		return 0.0
	}
	return 1.0 - cer
}
