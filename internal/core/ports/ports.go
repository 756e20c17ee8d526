package ports

import (
	"context"

	"ra-challenge-bot/internal/core/domain"
)

// AnnouncementStore is the durable half of the deduplication ledger: a
// per-user bounded history of announcement keys.
type AnnouncementStore interface {
	GetAnnouncementHistory(ctx context.Context, username string) ([]string, error)
	AppendAnnouncement(ctx context.Context, username, key string, cap int) error
}

type Repository interface {
	AnnouncementStore

	AddTrackedUser(ctx context.Context, username, discordUserID string) error
	RemoveTrackedUser(ctx context.Context, username string) error
	GetTrackedUsers(ctx context.Context) ([]domain.TrackedUser, error)

	SaveChallenge(ctx context.Context, challenge domain.GameChallenge) error
	EndChallenge(ctx context.Context, gameID, month, year int) error
	GetOpenChallenges(ctx context.Context, month, year int) ([]domain.GameChallenge, error)

	GetAwardRecord(ctx context.Context, username string, gameID, month, year int) (*domain.AwardRecord, error)
	UpsertAwardRecord(ctx context.Context, record domain.AwardRecord) error
	GetUserAwards(ctx context.Context, username string, month, year int) ([]domain.AwardRecord, error)

	AddPoints(ctx context.Context, entry domain.PointsEntry) error
	GetMonthlyLeaderboard(ctx context.Context, month, year, limit int) ([]domain.LeaderboardRow, error)

	Close()
}

type ProgressFetcher interface {
	FetchUserGameProgress(ctx context.Context, username string, gameID int) (*domain.UserGameProgress, error)
	FetchRecentAchievements(ctx context.Context, username string, count int) ([]domain.Achievement, error)
	FetchGameInfo(ctx context.Context, gameID int) (*domain.GameInfo, error)
}

type NotificationService interface {
	SendAwardNotification(event domain.AwardEvent) error
	SendAchievementNotification(username string, game domain.GameInfo, achievement domain.Achievement) error
	SendGenericMessage(channelName, message string) error
}
