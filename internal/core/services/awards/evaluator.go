package awards

import (
	"ra-challenge-bot/internal/core/domain"
)

// Evaluate maps a challenge definition and a progress snapshot to an award
// tier. It is pure and fails closed: malformed input yields TierNone rather
// than an error, since the poll loop must survive bad API payloads.
//
// Win-condition semantics: an empty win set is vacuously satisfied. A
// challenge that declares no win-condition achievements requires none.
//
// The returned tier is the tier the snapshot supports on its own; callers
// must merge it with the stored record via domain.MaxTier so a tier never
// regresses within a period.
func Evaluate(challenge domain.GameChallenge, progress domain.UserGameProgress) domain.AwardTier {
	if challenge.GameID <= 0 || challenge.TotalAchievements < 0 {
		return domain.TierNone
	}
	if len(progress.EarnedIDs) == 0 {
		return domain.TierNone
	}

	tier := domain.TierParticipation

	if progressionMet(challenge, progress.EarnedIDs) && winMet(challenge, progress.EarnedIDs) {
		tier = domain.TierBeaten
	}

	// Mastery is a Monthly-only concept; Shadow challenges cap at Beaten.
	if challenge.Type == domain.ChallengeMonthly &&
		challenge.MasteryCheck &&
		challenge.TotalAchievements > 0 &&
		progress.EarnedCount >= challenge.TotalAchievements {
		tier = domain.TierMastered
	}

	return tier
}

// progressionMet requires every declared progression achievement to be earned
// and the earned ones to respect the declared sequence: an earned achievement
// at index i implies all of indices 0..i-1 are earned. Order is defined by the
// declaration, never by earn timestamps.
func progressionMet(challenge domain.GameChallenge, earned map[int]bool) bool {
	if !challenge.RequireProgression {
		return true
	}

	earnedCount := 0
	for i, id := range challenge.ProgressionIDs {
		if !earned[id] {
			continue
		}
		earnedCount++
		for j := 0; j < i; j++ {
			if !earned[challenge.ProgressionIDs[j]] {
				return false
			}
		}
	}

	return earnedCount == len(challenge.ProgressionIDs)
}

func winMet(challenge domain.GameChallenge, earned map[int]bool) bool {
	if len(challenge.WinIDs) == 0 {
		return true
	}

	if challenge.RequireAllWinConditions {
		for _, id := range challenge.WinIDs {
			if !earned[id] {
				return false
			}
		}
		return true
	}

	for _, id := range challenge.WinIDs {
		if earned[id] {
			return true
		}
	}
	return false
}
