package tracker

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"ra-challenge-bot/internal/adapters/metrics"
	"ra-challenge-bot/internal/core/domain"
	"ra-challenge-bot/internal/core/services/awards"

	"github.com/google/uuid"
)

// Achievements earned longer ago than this are never announced, even when the
// ledger has no record of them. Protects newly tracked users from a backlog
// dump.
const achievementMaxAge = 2 * time.Hour

const maxPriority = 3

// Tick runs one poll pass: collect due (user, challenge) pairs, check them in
// priority order, announce what changed. Overlapping ticks are skipped, not
// queued.
func (s *Service) Tick(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		slog.Warn("Previous tick still running, skipping")
		metrics.PollTicksSkipped.Inc()
		return
	}
	defer s.running.Store(false)

	metrics.PollTicks.Inc()
	tickID := uuid.NewString()
	now := time.Now().UTC()

	users, err := s.storage.GetTrackedUsers(ctx)
	if err != nil {
		slog.Error("Failed to fetch tracked users", "tick_id", tickID, "error", err)
		return
	}
	challenges, err := s.storage.GetOpenChallenges(ctx, int(now.Month()), now.Year())
	if err != nil {
		slog.Error("Failed to fetch open challenges", "tick_id", tickID, "error", err)
		return
	}

	pairs := s.duePairs(ctx, users, challenges, now)
	slog.Info("Tick started", "tick_id", tickID, "due_pairs", len(pairs))

	for start := 0; start < len(pairs); start += s.config.ChunkSize {
		end := min(start+s.config.ChunkSize, len(pairs))

		// Pairs in a chunk run concurrently; the rate limiter below the
		// fetcher serializes the actual wire calls.
		var wg sync.WaitGroup
		for _, pair := range pairs[start:end] {
			wg.Add(1)
			go func(pair checkPair) {
				defer wg.Done()
				s.processPair(ctx, tickID, pair, now)
			}(pair)
		}
		wg.Wait()

		if end < len(pairs) {
			select {
			case <-ctx.Done():
				slog.Info("Tick cancelled", "tick_id", tickID)
				return
			case <-time.After(s.config.ChunkDelay):
			}
		}
	}

	s.recentPass(ctx, tickID, users, challenges, now)

	slog.Info("Tick complete", "tick_id", tickID, "pairs", len(pairs))
}

// recentPass announces achievements users earned on challenge games since the
// last tick. One recent-achievements call per user covers every open
// challenge at once, so it runs outside the per-pair loop.
func (s *Service) recentPass(ctx context.Context, tickID string, users []domain.TrackedUser, challenges []domain.GameChallenge, now time.Time) {
	if len(challenges) == 0 {
		return
	}

	byGame := make(map[int]domain.GameChallenge, len(challenges))
	for _, c := range challenges {
		byGame[c.GameID] = c
	}

	for _, user := range users {
		recent, err := s.fetcher.FetchRecentAchievements(ctx, user.Username, s.config.RecentCount)
		if err != nil {
			slog.Error("Failed to fetch recent achievements",
				"tick_id", tickID, "username", user.Username, "error", err)
			continue
		}

		// recent arrives sorted by earn time ascending
		perGame := make(map[int][]domain.Achievement)
		for _, a := range recent {
			if _, open := byGame[a.GameID]; open {
				perGame[a.GameID] = append(perGame[a.GameID], a)
			}
		}

		for gameID, earned := range perGame {
			s.announceAchievements(ctx, user.Username, byGame[gameID], earned, now)
		}
	}
}

// duePairs builds every (tracked user, open challenge) pair whose check
// interval has elapsed, highest priority first. Higher priority shrinks the
// effective interval.
func (s *Service) duePairs(ctx context.Context, users []domain.TrackedUser, challenges []domain.GameChallenge, now time.Time) []checkPair {
	var pairs []checkPair
	for _, user := range users {
		for _, challenge := range challenges {
			record, err := s.storage.GetAwardRecord(ctx, user.Username, challenge.GameID, challenge.Month, challenge.Year)
			if err != nil {
				slog.Error("Failed to fetch award record",
					"username", user.Username, "game_id", challenge.GameID, "error", err)
				continue
			}

			pair := checkPair{user: user, challenge: challenge, record: record}
			if record != nil {
				pair.priority = record.CheckPriority
			}

			if s.isDue(pair, now) {
				pairs = append(pairs, pair)
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].priority > pairs[j].priority
	})
	return pairs
}

func (s *Service) isDue(pair checkPair, now time.Time) bool {
	if pair.record == nil {
		return true
	}
	interval := s.config.BaseCheckInterval * time.Duration(maxPriority+1-pair.priority)
	return now.Sub(pair.record.LastCheckedAt) > interval
}

// processPair fetches fresh progress for one pair and announces any tier
// transition and newly earned achievements. On fetch failure the record is
// left untouched so the pair comes due again next tick.
func (s *Service) processPair(ctx context.Context, tickID string, pair checkPair, now time.Time) {
	username := pair.user.Username
	challenge := pair.challenge

	progress, err := s.fetcher.FetchUserGameProgress(ctx, username, challenge.GameID)
	if err != nil {
		slog.Error("Failed to fetch progress",
			"tick_id", tickID, "username", username, "game_id", challenge.GameID, "error", err)
		metrics.PairsChecked.WithLabelValues("error").Inc()
		return
	}

	previousTier := domain.TierNone
	previousCount := 0
	if pair.record != nil {
		previousTier = pair.record.Tier
		previousCount = pair.record.AchievementCount
	}

	newTier := domain.MaxTier(previousTier, awards.Evaluate(challenge, *progress))

	record := domain.AwardRecord{
		Username:          username,
		GameID:            challenge.GameID,
		Month:             challenge.Month,
		Year:              challenge.Year,
		Tier:              newTier,
		AchievementCount:  progress.EarnedCount,
		TotalAchievements: progress.TotalAchievements,
		LastCheckedAt:     now,
		CheckPriority:     priorityFor(progress.EarnedCount - previousCount),
	}
	if err := s.storage.UpsertAwardRecord(ctx, record); err != nil {
		slog.Error("Failed to upsert award record",
			"tick_id", tickID, "username", username, "game_id", challenge.GameID, "error", err)
		metrics.PairsChecked.WithLabelValues("error").Inc()
		return
	}

	if newTier > previousTier {
		s.announceAward(ctx, pair, previousTier, newTier, now)
	}

	metrics.PairsChecked.WithLabelValues("success").Inc()
}

// priorityFor maps the achievement-count delta since the last check to a
// polling priority. Users earning fast get checked more often.
func priorityFor(delta int) int {
	switch {
	case delta > 20:
		return 3
	case delta > 10:
		return 2
	case delta > 0:
		return 1
	default:
		return 0
	}
}

func (s *Service) announceAward(ctx context.Context, pair checkPair, previousTier, newTier domain.AwardTier, now time.Time) {
	username := pair.user.Username
	challenge := pair.challenge

	entry := domain.AnnouncementEntry{
		Kind:      domain.AnnounceAward,
		GameID:    challenge.GameID,
		SubjectID: int(newTier),
		EarnedAt:  now,
	}
	if !s.ledger.IsNew(ctx, username, entry) {
		return
	}

	event := domain.AwardEvent{
		Username:     username,
		Game:         s.gameInfo(ctx, challenge),
		Challenge:    challenge,
		PreviousTier: previousTier,
		NewTier:      newTier,
	}
	if err := s.notifier.SendAwardNotification(event); err != nil {
		slog.Error("Failed to send award notification",
			"username", username, "game_id", challenge.GameID, "tier", newTier, "error", err)
		return
	}

	if err := s.ledger.Record(ctx, username, entry); err != nil {
		slog.Error("Failed to record award announcement",
			"username", username, "game_id", challenge.GameID, "error", err)
	}

	s.grantPoints(ctx, username, challenge, previousTier, newTier, now)
}

func (s *Service) grantPoints(ctx context.Context, username string, challenge domain.GameChallenge, previousTier, newTier domain.AwardTier, now time.Time) {
	points := awards.TransitionPoints(challenge.Type, previousTier, newTier)
	if points == 0 {
		return
	}

	err := s.storage.AddPoints(ctx, domain.PointsEntry{
		Username:  username,
		Amount:    points,
		Reason:    newTier.String(),
		GameID:    challenge.GameID,
		Month:     challenge.Month,
		Year:      challenge.Year,
		CreatedAt: now,
	})
	if err != nil {
		slog.Error("Failed to grant points",
			"username", username, "game_id", challenge.GameID, "points", points, "error", err)
	}
}

func (s *Service) announceAchievements(ctx context.Context, username string, challenge domain.GameChallenge, earned []domain.Achievement, now time.Time) {
	var game *domain.GameInfo

	for _, a := range earned {
		if a.EarnedAt == nil || now.Sub(*a.EarnedAt) > achievementMaxAge {
			continue
		}

		entry := domain.AnnouncementEntry{
			Kind:      domain.AnnounceAchievement,
			GameID:    challenge.GameID,
			SubjectID: a.ID,
			EarnedAt:  *a.EarnedAt,
		}
		if !s.ledger.IsNew(ctx, username, entry) {
			continue
		}

		if game == nil {
			info := s.gameInfo(ctx, challenge)
			game = &info
		}

		if err := s.notifier.SendAchievementNotification(username, *game, a); err != nil {
			slog.Error("Failed to send achievement notification",
				"username", username, "achievement_id", a.ID, "error", err)
			continue
		}

		if err := s.ledger.Record(ctx, username, entry); err != nil {
			slog.Error("Failed to record achievement announcement",
				"username", username, "achievement_id", a.ID, "error", err)
		}
	}
}

// gameInfo fetches full game metadata for announcement embeds, falling back
// to what the challenge itself carries.
func (s *Service) gameInfo(ctx context.Context, challenge domain.GameChallenge) domain.GameInfo {
	info, err := s.fetcher.FetchGameInfo(ctx, challenge.GameID)
	if err != nil || info == nil {
		slog.Warn("Failed to fetch game info", "game_id", challenge.GameID, "error", err)
		return domain.GameInfo{ID: challenge.GameID, Title: challenge.Title}
	}
	return *info
}
