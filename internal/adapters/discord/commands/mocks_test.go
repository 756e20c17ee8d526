package commands

import (
	"context"

	"ra-challenge-bot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type mockDiscordSession struct {
	guildChannelsFunc      func(guildID string) ([]*discordgo.Channel, error)
	guildChannelCreateFunc func(guildID, name string, ctype discordgo.ChannelType) (*discordgo.Channel, error)
	interactionRespondFunc func(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error

	lastInteractionResponse *discordgo.InteractionResponse
}

func (m *mockDiscordSession) GuildChannels(guildID string, opts ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	if m.guildChannelsFunc != nil {
		return m.guildChannelsFunc(guildID)
	}
	return []*discordgo.Channel{}, nil
}

func (m *mockDiscordSession) GuildChannelCreate(guildID, name string, ctype discordgo.ChannelType, opts ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if m.guildChannelCreateFunc != nil {
		return m.guildChannelCreateFunc(guildID, name, ctype)
	}
	return &discordgo.Channel{ID: "mock-id", Name: name, Type: ctype}, nil
}

func (m *mockDiscordSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, opts ...discordgo.RequestOption) error {
	m.lastInteractionResponse = resp
	if m.interactionRespondFunc != nil {
		return m.interactionRespondFunc(interaction, resp)
	}
	return nil
}

type mockCommandSession struct {
	createFunc func(appID, guildID string, cmd *discordgo.ApplicationCommand) (*discordgo.ApplicationCommand, error)
	deleteFunc func(appID, guildID, cmdID string) error

	created []string
	deleted []string
}

func (m *mockCommandSession) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, opts ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	m.created = append(m.created, cmd.Name)
	if m.createFunc != nil {
		return m.createFunc(appID, guildID, cmd)
	}
	return &discordgo.ApplicationCommand{ID: "id-" + cmd.Name, Name: cmd.Name}, nil
}

func (m *mockCommandSession) ApplicationCommandDelete(appID, guildID, cmdID string, opts ...discordgo.RequestOption) error {
	m.deleted = append(m.deleted, cmdID)
	if m.deleteFunc != nil {
		return m.deleteFunc(appID, guildID, cmdID)
	}
	return nil
}

type mockStorage struct {
	saveChallengeFunc     func(ctx context.Context, challenge domain.GameChallenge) error
	endChallengeFunc      func(ctx context.Context, gameID, month, year int) error
	addTrackedUserFunc    func(ctx context.Context, username, discordUserID string) error
	removeTrackedUserFunc func(ctx context.Context, username string) error
	getOpenChallengesFunc func(ctx context.Context, month, year int) ([]domain.GameChallenge, error)
	getUserAwardsFunc     func(ctx context.Context, username string, month, year int) ([]domain.AwardRecord, error)
	getLeaderboardFunc    func(ctx context.Context, month, year, limit int) ([]domain.LeaderboardRow, error)
}

func (m *mockStorage) SaveChallenge(ctx context.Context, challenge domain.GameChallenge) error {
	if m.saveChallengeFunc != nil {
		return m.saveChallengeFunc(ctx, challenge)
	}
	return nil
}

func (m *mockStorage) EndChallenge(ctx context.Context, gameID, month, year int) error {
	if m.endChallengeFunc != nil {
		return m.endChallengeFunc(ctx, gameID, month, year)
	}
	return nil
}

func (m *mockStorage) AddTrackedUser(ctx context.Context, username, discordUserID string) error {
	if m.addTrackedUserFunc != nil {
		return m.addTrackedUserFunc(ctx, username, discordUserID)
	}
	return nil
}

func (m *mockStorage) RemoveTrackedUser(ctx context.Context, username string) error {
	if m.removeTrackedUserFunc != nil {
		return m.removeTrackedUserFunc(ctx, username)
	}
	return nil
}

func (m *mockStorage) GetOpenChallenges(ctx context.Context, month, year int) ([]domain.GameChallenge, error) {
	if m.getOpenChallengesFunc != nil {
		return m.getOpenChallengesFunc(ctx, month, year)
	}
	return nil, nil
}

func (m *mockStorage) GetUserAwards(ctx context.Context, username string, month, year int) ([]domain.AwardRecord, error) {
	if m.getUserAwardsFunc != nil {
		return m.getUserAwardsFunc(ctx, username, month, year)
	}
	return nil, nil
}

func (m *mockStorage) GetMonthlyLeaderboard(ctx context.Context, month, year, limit int) ([]domain.LeaderboardRow, error) {
	if m.getLeaderboardFunc != nil {
		return m.getLeaderboardFunc(ctx, month, year, limit)
	}
	return nil, nil
}

func (m *mockStorage) GetTrackedUsers(ctx context.Context) ([]domain.TrackedUser, error) {
	return nil, nil
}
func (m *mockStorage) GetAwardRecord(ctx context.Context, username string, gameID, month, year int) (*domain.AwardRecord, error) {
	return nil, nil
}
func (m *mockStorage) UpsertAwardRecord(ctx context.Context, record domain.AwardRecord) error {
	return nil
}
func (m *mockStorage) AddPoints(ctx context.Context, entry domain.PointsEntry) error { return nil }
func (m *mockStorage) GetAnnouncementHistory(ctx context.Context, username string) ([]string, error) {
	return nil, nil
}
func (m *mockStorage) AppendAnnouncement(ctx context.Context, username, key string, cap int) error {
	return nil
}
func (m *mockStorage) Close() {}

type mockFetcher struct {
	fetchGameInfoFunc func(ctx context.Context, gameID int) (*domain.GameInfo, error)
}

func (m *mockFetcher) FetchUserGameProgress(ctx context.Context, username string, gameID int) (*domain.UserGameProgress, error) {
	return &domain.UserGameProgress{Username: username, GameID: gameID, TotalAchievements: 10}, nil
}

func (m *mockFetcher) FetchRecentAchievements(ctx context.Context, username string, count int) ([]domain.Achievement, error) {
	return nil, nil
}

func (m *mockFetcher) FetchGameInfo(ctx context.Context, gameID int) (*domain.GameInfo, error) {
	if m.fetchGameInfoFunc != nil {
		return m.fetchGameInfoFunc(ctx, gameID)
	}
	return &domain.GameInfo{ID: gameID, Title: "Mock Game"}, nil
}

type mockNotifier struct{}

func (m *mockNotifier) SendAwardNotification(event domain.AwardEvent) error { return nil }
func (m *mockNotifier) SendAchievementNotification(username string, game domain.GameInfo, achievement domain.Achievement) error {
	return nil
}
func (m *mockNotifier) SendGenericMessage(channelName, message string) error { return nil }
