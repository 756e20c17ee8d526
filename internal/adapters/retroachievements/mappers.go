package retroachievements

import (
	"sort"
	"time"

	"ra-challenge-bot/internal/adapters/retroachievements/api"
	"ra-challenge-bot/internal/core/domain"
)

// raTimeLayout is the timestamp format the RA API uses for earn dates.
const raTimeLayout = "2006-01-02 15:04:05"

func mapProgress(username string, gameID int, resp *api.GameProgressResponse) *domain.UserGameProgress {
	if resp == nil {
		return &domain.UserGameProgress{Username: username, GameID: gameID}
	}

	progress := &domain.UserGameProgress{
		Username:          username,
		GameID:            gameID,
		EarnedIDs:         make(map[int]bool),
		TotalAchievements: resp.NumAchievements,
	}

	for _, ach := range resp.Achievements {
		mapped := domain.Achievement{
			ID:          ach.ID,
			GameID:      gameID,
			Title:       ach.Title,
			Description: ach.Description,
			Points:      ach.Points,
			BadgeName:   ach.BadgeName,
		}

		if ach.DateEarned != nil {
			if earned, err := time.Parse(raTimeLayout, *ach.DateEarned); err == nil {
				mapped.EarnedAt = &earned
				progress.EarnedIDs[ach.ID] = true
			}
		}

		progress.Achievements = append(progress.Achievements, mapped)
	}

	progress.EarnedCount = len(progress.EarnedIDs)
	if progress.TotalAchievements > 0 {
		progress.CompletionPct = float64(progress.EarnedCount) / float64(progress.TotalAchievements) * 100
	}

	// Earned achievements in earn order, unearned after; the poll loop
	// announces in ascending earn time.
	sort.SliceStable(progress.Achievements, func(i, j int) bool {
		a, b := progress.Achievements[i].EarnedAt, progress.Achievements[j].EarnedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})

	return progress
}

func mapRecentAchievements(resp []api.RecentAchievement) []domain.Achievement {
	achievements := make([]domain.Achievement, 0, len(resp))
	for _, ach := range resp {
		mapped := domain.Achievement{
			ID:          ach.AchievementID,
			GameID:      ach.GameID,
			Title:       ach.Title,
			Description: ach.Description,
			Points:      ach.Points,
			BadgeName:   ach.BadgeName,
		}
		if earned, err := time.Parse(raTimeLayout, ach.Date); err == nil {
			mapped.EarnedAt = &earned
		}
		achievements = append(achievements, mapped)
	}

	sort.SliceStable(achievements, func(i, j int) bool {
		a, b := achievements[i].EarnedAt, achievements[j].EarnedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})

	return achievements
}

func mapGame(gameID int, resp *api.GameResponse) *domain.GameInfo {
	if resp == nil {
		return &domain.GameInfo{ID: gameID}
	}

	info := &domain.GameInfo{
		ID:          resp.ID,
		Title:       resp.Title,
		ConsoleName: resp.ConsoleName,
		ImageIcon:   resp.ImageIcon,
	}
	if info.ID == 0 {
		info.ID = gameID
	}
	return info
}
