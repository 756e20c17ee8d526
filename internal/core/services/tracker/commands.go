package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ra-challenge-bot/internal/core/domain"
)

// SetChallenge opens a challenge for the current month, filling in the game
// title and achievement total from the API when the caller did not supply
// them.
func (s *Service) SetChallenge(ctx context.Context, challenge domain.GameChallenge) (domain.GameChallenge, error) {
	now := time.Now().UTC()
	if challenge.Month == 0 {
		challenge.Month = int(now.Month())
	}
	if challenge.Year == 0 {
		challenge.Year = now.Year()
	}

	if challenge.Title == "" {
		if info, err := s.fetcher.FetchGameInfo(ctx, challenge.GameID); err == nil && info != nil {
			challenge.Title = info.Title
		} else {
			slog.Warn("Failed to fetch game title", "game_id", challenge.GameID, "error", err)
			challenge.Title = fmt.Sprintf("Game %d", challenge.GameID)
		}
	}

	if challenge.TotalAchievements == 0 && s.config.RAAPIUsername != "" {
		if progress, err := s.fetcher.FetchUserGameProgress(ctx, s.config.RAAPIUsername, challenge.GameID); err == nil && progress != nil {
			challenge.TotalAchievements = progress.TotalAchievements
		} else {
			slog.Warn("Failed to fetch achievement total", "game_id", challenge.GameID, "error", err)
		}
	}

	if err := s.storage.SaveChallenge(ctx, challenge); err != nil {
		return domain.GameChallenge{}, err
	}

	slog.Info("Challenge set",
		"game_id", challenge.GameID, "type", challenge.Type,
		"month", challenge.Month, "year", challenge.Year)
	return challenge, nil
}

func (s *Service) EndChallenge(ctx context.Context, gameID int) error {
	now := time.Now().UTC()
	if err := s.storage.EndChallenge(ctx, gameID, int(now.Month()), now.Year()); err != nil {
		return err
	}

	slog.Info("Challenge ended", "game_id", gameID)
	return nil
}

func (s *Service) TrackUser(ctx context.Context, username, discordUserID string) error {
	if err := s.storage.AddTrackedUser(ctx, username, discordUserID); err != nil {
		return err
	}

	slog.Info("User tracked", "username", username)
	return nil
}

func (s *Service) UntrackUser(ctx context.Context, username string) error {
	if err := s.storage.RemoveTrackedUser(ctx, username); err != nil {
		return err
	}

	slog.Info("User untracked", "username", username)
	return nil
}

func (s *Service) OpenChallenges(ctx context.Context) ([]domain.GameChallenge, error) {
	now := time.Now().UTC()
	return s.storage.GetOpenChallenges(ctx, int(now.Month()), now.Year())
}

func (s *Service) UserAwards(ctx context.Context, username string) ([]domain.AwardRecord, error) {
	now := time.Now().UTC()
	return s.storage.GetUserAwards(ctx, username, int(now.Month()), now.Year())
}

func (s *Service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, error) {
	now := time.Now().UTC()
	return s.storage.GetMonthlyLeaderboard(ctx, int(now.Month()), now.Year(), limit)
}
