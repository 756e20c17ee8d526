package domain

// AwardTier is the completion status of a user on a challenge game within one
// period. The ordering is total: None < Participation < Beaten < Mastered.
type AwardTier int

const (
	TierNone AwardTier = iota
	TierParticipation
	TierBeaten
	TierMastered
)

var tierNames = map[AwardTier]string{
	TierNone:          "None",
	TierParticipation: "Participation",
	TierBeaten:        "Beaten",
	TierMastered:      "Mastered",
}

func (t AwardTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "Unknown"
}

// MaxTier merges a freshly computed tier with a stored one. Award tiers only
// ever move forward within a challenge period; every caller that persists a
// tier must go through this merge.
func MaxTier(a, b AwardTier) AwardTier {
	if a > b {
		return a
	}
	return b
}
