package awards

import "ra-challenge-bot/internal/core/domain"

// Points granted per tier reached, by challenge type. Regular challenges pay
// half the monthly rates; Shadow never pays mastery because it cannot reach it.
var tierPoints = map[domain.ChallengeType]map[domain.AwardTier]int{
	domain.ChallengeMonthly: {
		domain.TierParticipation: 25,
		domain.TierBeaten:        100,
		domain.TierMastered:      150,
	},
	domain.ChallengeShadow: {
		domain.TierParticipation: 25,
		domain.TierBeaten:        100,
	},
	domain.ChallengeRegular: {
		domain.TierParticipation: 12,
		domain.TierBeaten:        50,
		domain.TierMastered:      75,
	},
}

// TransitionPoints returns the points owed for moving from previous to new
// tier: the sum of the per-tier grants for every tier crossed. A non-forward
// transition pays nothing.
func TransitionPoints(challengeType domain.ChallengeType, previous, new domain.AwardTier) int {
	if new <= previous {
		return 0
	}

	rates, ok := tierPoints[challengeType]
	if !ok {
		return 0
	}

	total := 0
	for tier := previous + 1; tier <= new; tier++ {
		total += rates[tier]
	}
	return total
}
