package domain

type TrustTier string

const (
	TrustHigh   TrustTier = "high"
	TrustMedium TrustTier = "medium"
	TrustLow    TrustTier = "low"
)

func TrustTierFor(score int) TrustTier {
	switch {
	case score > 85:
		return TrustHigh
	case score > 70:
		return TrustMedium
	default:
		return TrustLow
	}
}
