package scoring

type Tier string

const (
	TierTop Tier = "top"
	TierMid Tier = "mid"
	TierLow Tier = "low"
)

const (
	topTierThreshold = 80
	midTierThreshold = 60
)

var AllTiers = []Tier{
	TierTop,
	TierMid,
	TierLow,
}

// TierFor buckets a percentage; both thresholds are inclusive.
func TierFor(percentage int) Tier {
	switch {
	case percentage >= topTierThreshold:
		return TierTop
	case percentage >= midTierThreshold:
		return TierMid
	default:
		return TierLow
	}
}
