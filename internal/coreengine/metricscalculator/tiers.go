package metricscalculator

// Tier is an ordered accuracy classification bucket.
type Tier int

const (
	TierExcellent Tier = iota
	TierGood
	TierFair
	TierPoor
)

// Tiers lists every bucket in display order.
var Tiers = []Tier{TierExcellent, TierGood, TierFair, TierPoor}

func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "excellent"
	case TierGood:
		return "good"
	case TierFair:
		return "fair"
	case TierPoor:
		return "poor"
	default:
		return "unknown"
	}
}

// Thresholds holds the lower bound of each tier above Poor. Boundaries are
// inclusive on the lower edge and exclusive on the upper edge; the top bucket
// additionally includes 1.0.
type Thresholds struct {
	Excellent float64 `json:"excellent"`
	Good      float64 `json:"good"`
	Fair      float64 `json:"fair"`
}

// DefaultThresholds are the standard tier cutoffs.
var DefaultThresholds = Thresholds{
	Excellent: 0.90,
	Good:      0.70,
	Fair:      0.50,
}

// Classify maps an accuracy value to its tier.
func (th Thresholds) Classify(accuracy float64) Tier {
	switch {
	case accuracy >= th.Excellent:
		return TierExcellent
	case accuracy >= th.Good:
		return TierGood
	case accuracy >= th.Fair:
		return TierFair
	default:
		return TierPoor
	}
}
