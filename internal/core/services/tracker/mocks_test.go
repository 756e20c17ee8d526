package tracker

import (
	"context"
	"sync"

	"ra-challenge-bot/internal/core/domain"
)

type mockServiceStorage struct {
	getTrackedUsersFunc   func(ctx context.Context) ([]domain.TrackedUser, error)
	getOpenChallengesFunc func(ctx context.Context, month, year int) ([]domain.GameChallenge, error)
	getAwardRecordFunc    func(ctx context.Context, username string, gameID, month, year int) (*domain.AwardRecord, error)
	upsertAwardRecordFunc func(ctx context.Context, record domain.AwardRecord) error
	addPointsFunc         func(ctx context.Context, entry domain.PointsEntry) error
	saveChallengeFunc     func(ctx context.Context, challenge domain.GameChallenge) error
	endChallengeFunc      func(ctx context.Context, gameID, month, year int) error

	// mu guards the recorded state below; pairs in a chunk run concurrently.
	mu sync.Mutex

	// in-memory announcement history, keyed by username
	history map[string][]string

	upserted []domain.AwardRecord
	points   []domain.PointsEntry
}

func (m *mockServiceStorage) GetTrackedUsers(ctx context.Context) ([]domain.TrackedUser, error) {
	if m.getTrackedUsersFunc != nil {
		return m.getTrackedUsersFunc(ctx)
	}
	return nil, nil
}

func (m *mockServiceStorage) GetOpenChallenges(ctx context.Context, month, year int) ([]domain.GameChallenge, error) {
	if m.getOpenChallengesFunc != nil {
		return m.getOpenChallengesFunc(ctx, month, year)
	}
	return nil, nil
}

func (m *mockServiceStorage) GetAwardRecord(ctx context.Context, username string, gameID, month, year int) (*domain.AwardRecord, error) {
	if m.getAwardRecordFunc != nil {
		return m.getAwardRecordFunc(ctx, username, gameID, month, year)
	}
	return nil, nil
}

func (m *mockServiceStorage) UpsertAwardRecord(ctx context.Context, record domain.AwardRecord) error {
	m.mu.Lock()
	m.upserted = append(m.upserted, record)
	m.mu.Unlock()
	if m.upsertAwardRecordFunc != nil {
		return m.upsertAwardRecordFunc(ctx, record)
	}
	return nil
}

func (m *mockServiceStorage) AddPoints(ctx context.Context, entry domain.PointsEntry) error {
	m.mu.Lock()
	m.points = append(m.points, entry)
	m.mu.Unlock()
	if m.addPointsFunc != nil {
		return m.addPointsFunc(ctx, entry)
	}
	return nil
}

func (m *mockServiceStorage) GetAnnouncementHistory(ctx context.Context, username string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history[username], nil
}

func (m *mockServiceStorage) AppendAnnouncement(ctx context.Context, username, key string, cap int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.history == nil {
		m.history = make(map[string][]string)
	}
	m.history[username] = append(m.history[username], key)
	return nil
}

func (m *mockServiceStorage) SaveChallenge(ctx context.Context, challenge domain.GameChallenge) error {
	if m.saveChallengeFunc != nil {
		return m.saveChallengeFunc(ctx, challenge)
	}
	return nil
}

func (m *mockServiceStorage) EndChallenge(ctx context.Context, gameID, month, year int) error {
	if m.endChallengeFunc != nil {
		return m.endChallengeFunc(ctx, gameID, month, year)
	}
	return nil
}

func (m *mockServiceStorage) AddTrackedUser(ctx context.Context, username, discordUserID string) error {
	return nil
}
func (m *mockServiceStorage) RemoveTrackedUser(ctx context.Context, username string) error {
	return nil
}
func (m *mockServiceStorage) GetUserAwards(ctx context.Context, username string, month, year int) ([]domain.AwardRecord, error) {
	return nil, nil
}
func (m *mockServiceStorage) GetMonthlyLeaderboard(ctx context.Context, month, year, limit int) ([]domain.LeaderboardRow, error) {
	return nil, nil
}
func (m *mockServiceStorage) Close() {}

type mockServiceFetcher struct {
	fetchUserGameProgressFunc   func(ctx context.Context, username string, gameID int) (*domain.UserGameProgress, error)
	fetchRecentAchievementsFunc func(ctx context.Context, username string, count int) ([]domain.Achievement, error)
	fetchGameInfoFunc           func(ctx context.Context, gameID int) (*domain.GameInfo, error)

	mu            sync.Mutex
	progressCalls int
}

func (m *mockServiceFetcher) FetchUserGameProgress(ctx context.Context, username string, gameID int) (*domain.UserGameProgress, error) {
	m.mu.Lock()
	m.progressCalls++
	m.mu.Unlock()
	if m.fetchUserGameProgressFunc != nil {
		return m.fetchUserGameProgressFunc(ctx, username, gameID)
	}
	return &domain.UserGameProgress{Username: username, GameID: gameID, EarnedIDs: map[int]bool{}}, nil
}

func (m *mockServiceFetcher) FetchRecentAchievements(ctx context.Context, username string, count int) ([]domain.Achievement, error) {
	if m.fetchRecentAchievementsFunc != nil {
		return m.fetchRecentAchievementsFunc(ctx, username, count)
	}
	return nil, nil
}

func (m *mockServiceFetcher) FetchGameInfo(ctx context.Context, gameID int) (*domain.GameInfo, error) {
	if m.fetchGameInfoFunc != nil {
		return m.fetchGameInfoFunc(ctx, gameID)
	}
	return &domain.GameInfo{ID: gameID, Title: "Mock Game"}, nil
}

type mockServiceNotifier struct {
	sendAwardFunc       func(event domain.AwardEvent) error
	sendAchievementFunc func(username string, game domain.GameInfo, achievement domain.Achievement) error

	mu           sync.Mutex
	awardEvents  []domain.AwardEvent
	achievements []domain.Achievement
}

func (m *mockServiceNotifier) SendAwardNotification(event domain.AwardEvent) error {
	m.mu.Lock()
	m.awardEvents = append(m.awardEvents, event)
	m.mu.Unlock()
	if m.sendAwardFunc != nil {
		return m.sendAwardFunc(event)
	}
	return nil
}

func (m *mockServiceNotifier) SendAchievementNotification(username string, game domain.GameInfo, achievement domain.Achievement) error {
	m.mu.Lock()
	m.achievements = append(m.achievements, achievement)
	m.mu.Unlock()
	if m.sendAchievementFunc != nil {
		return m.sendAchievementFunc(username, game, achievement)
	}
	return nil
}

func (m *mockServiceNotifier) SendGenericMessage(channelName, message string) error {
	return nil
}
