package tracker

import "ra-challenge-bot/internal/core/domain"

// checkPair is one (tracked user, open challenge) combination scheduled for a
// progress check this tick.
type checkPair struct {
	user      domain.TrackedUser
	challenge domain.GameChallenge
	record    *domain.AwardRecord
	priority  int
}
