package discord

import (
	"fmt"
	"log/slog"

	"ra-challenge-bot/internal/adapters/discord/formatting"
	"ra-challenge-bot/internal/adapters/metrics"
	"ra-challenge-bot/internal/config"
	"ra-challenge-bot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type DiscordSession interface {
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Adapter struct {
	session DiscordSession
	config  *config.Config
	cache   *channelCache
}

func NewAdapter(session DiscordSession, cfg *config.Config) *Adapter {
	return &Adapter{
		session: session,
		config:  cfg,
		cache:   newChannelCache(),
	}
}

func (a *Adapter) SendAwardNotification(event domain.AwardEvent) error {
	embed := formatting.AwardEmbed(event)
	if err := a.sendEmbed(a.config.AwardsChannel, "award", embed); err != nil {
		return err
	}

	metrics.AwardsAnnounced.WithLabelValues(event.NewTier.String()).Inc()
	return nil
}

func (a *Adapter) SendAchievementNotification(username string, game domain.GameInfo, achievement domain.Achievement) error {
	embed := formatting.AchievementEmbed(username, game, achievement)
	if err := a.sendEmbed(a.config.AwardsChannel, "achievement", embed); err != nil {
		return err
	}

	metrics.AchievementsAnnounced.Inc()
	return nil
}

func (a *Adapter) SendGenericMessage(channelName, message string) error {
	channelID, err := a.resolveChannelID(channelName)
	if err != nil {
		slog.Error("Failed to get channel ID", "channel_name", channelName, "error", err)
		return err
	}

	if _, err := a.session.ChannelMessageSend(channelID, message); err != nil {
		slog.Error("Failed to send message", "channel_id", channelID, "error", err)
		a.cache.Invalidate(channelName)
		metrics.DiscordMessagesSent.WithLabelValues("generic", "failure").Inc()
		return err
	}

	metrics.DiscordMessagesSent.WithLabelValues("generic", "success").Inc()
	return nil
}

func (a *Adapter) sendEmbed(channelName, kind string, embed *discordgo.MessageEmbed) error {
	channelID, err := a.resolveChannelID(channelName)
	if err != nil {
		slog.Error("Failed to get channel ID", "channel_name", channelName, "error", err)
		return err
	}

	if _, err := a.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		slog.Error("Failed to send embed", "channel_id", channelID, "kind", kind, "error", err)
		a.cache.Invalidate(channelName)
		metrics.DiscordMessagesSent.WithLabelValues(kind, "failure").Inc()
		return err
	}

	metrics.DiscordMessagesSent.WithLabelValues(kind, "success").Inc()
	return nil
}

func (a *Adapter) resolveChannelID(channelName string) (string, error) {
	if id, ok := a.cache.Get(channelName); ok {
		return id, nil
	}

	id, err := a.fetchChannelID(channelName)
	if err != nil {
		return "", err
	}

	a.cache.Set(channelName, id)
	return id, nil
}

func (a *Adapter) fetchChannelID(channelName string) (string, error) {
	channels, err := a.session.GuildChannels(a.config.DiscordGuildID)
	if err != nil {
		slog.Error("Failed to fetch guild channels", "guild_id", a.config.DiscordGuildID, "error", err)
		return "", err
	}

	for _, ch := range channels {
		if ch.Name == channelName && ch.Type == discordgo.ChannelTypeGuildText {
			return ch.ID, nil
		}
	}

	return "", fmt.Errorf("channel %s not found", channelName)
}
