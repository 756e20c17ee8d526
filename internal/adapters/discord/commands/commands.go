package commands

import (
	"context"
	"log/slog"

	"ra-challenge-bot/internal/adapters/discord/formatting"
	"ra-challenge-bot/internal/config"
	"ra-challenge-bot/internal/core/domain"
	"ra-challenge-bot/internal/core/services/tracker"

	"github.com/bwmarrin/discordgo"
)

type BotHandler struct {
	Config  *config.Config
	Service *tracker.Service
}

func ReadyHandler(session *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("Challenge bot is online!", "user", session.State.User.Username)
}

func (h *BotHandler) SetChallenge(s DiscordSession, i *discordgo.InteractionCreate) {
	opts := i.ApplicationCommandData().Options

	gameID := getIntOption(opts, "game-id")
	if gameID <= 0 {
		respond(s, i, formatting.MsgGameIDRequired, true)
		return
	}

	if _, err := ensureChannel(s, i.GuildID, h.Config.AwardsChannel); err != nil {
		slog.Error("Failed to ensure awards channel", "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	challenge := domain.GameChallenge{
		GameID:                  gameID,
		Type:                    domain.ChallengeType(getStringOption(opts, "type")),
		ProgressionIDs:          parseIDList(getStringOption(opts, "progression")),
		WinIDs:                  parseIDList(getStringOption(opts, "win")),
		RequireProgression:      getBoolOptionDefault(opts, "require-progression", true),
		RequireAllWinConditions: getBoolOption(opts, "require-all-win"),
		MasteryCheck:            getBoolOption(opts, "mastery"),
	}

	saved, err := h.Service.SetChallenge(context.Background(), challenge)
	if err != nil {
		slog.Error("Failed to save challenge", "game_id", gameID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	respond(s, i, formatting.MsgChallengeSet(saved), false)
}

func (h *BotHandler) EndChallenge(s DiscordSession, i *discordgo.InteractionCreate) {
	gameID := getIntOption(i.ApplicationCommandData().Options, "game-id")
	if gameID <= 0 {
		respond(s, i, formatting.MsgGameIDRequired, true)
		return
	}

	if err := h.Service.EndChallenge(context.Background(), gameID); err != nil {
		slog.Error("Failed to end challenge", "game_id", gameID, "error", err)
		respond(s, i, formatting.MsgEndError, true)
		return
	}

	respond(s, i, formatting.MsgChallengeEnded(gameID), false)
}

func (h *BotHandler) TrackUser(s DiscordSession, i *discordgo.InteractionCreate) {
	opts := i.ApplicationCommandData().Options

	username := getStringOption(opts, "username")
	if username == "" {
		respond(s, i, formatting.MsgUsernameRequired, true)
		return
	}
	discordUserID := getUserOption(opts, "discord-user")

	if err := h.Service.TrackUser(context.Background(), username, discordUserID); err != nil {
		slog.Error("Failed to track user", "username", username, "error", err)
		respond(s, i, formatting.MsgTrackError, true)
		return
	}

	respond(s, i, formatting.MsgUserTracked(username), false)
}

func (h *BotHandler) UntrackUser(s DiscordSession, i *discordgo.InteractionCreate) {
	username := getStringOption(i.ApplicationCommandData().Options, "username")
	if username == "" {
		respond(s, i, formatting.MsgUsernameRequired, true)
		return
	}

	if err := h.Service.UntrackUser(context.Background(), username); err != nil {
		slog.Error("Failed to untrack user", "username", username, "error", err)
		respond(s, i, formatting.MsgUntrackError, true)
		return
	}

	respond(s, i, formatting.MsgUserUntracked(username), false)
}

func (h *BotHandler) ChallengeStatus(s DiscordSession, i *discordgo.InteractionCreate) {
	challenges, err := h.Service.OpenChallenges(context.Background())
	if err != nil {
		slog.Error("Failed to list open challenges", "error", err)
		respond(s, i, formatting.MsgLookupError, true)
		return
	}

	if len(challenges) == 0 {
		respond(s, i, formatting.MsgNoOpenChallenges, false)
		return
	}

	respond(s, i, formatting.MsgChallengeList(challenges), false)
}

func (h *BotHandler) Profile(s DiscordSession, i *discordgo.InteractionCreate) {
	username := getStringOption(i.ApplicationCommandData().Options, "username")
	if username == "" {
		respond(s, i, formatting.MsgUsernameRequired, true)
		return
	}

	awards, err := h.Service.UserAwards(context.Background(), username)
	if err != nil {
		slog.Error("Failed to get user awards", "username", username, "error", err)
		respond(s, i, formatting.MsgLookupError, true)
		return
	}

	if len(awards) == 0 {
		respond(s, i, formatting.MsgNoAwards, false)
		return
	}

	respond(s, i, formatting.MsgProfile(username, awards), false)
}

func (h *BotHandler) Leaderboard(s DiscordSession, i *discordgo.InteractionCreate) {
	rows, err := h.Service.Leaderboard(context.Background(), 10)
	if err != nil {
		slog.Error("Failed to get leaderboard", "error", err)
		respond(s, i, formatting.MsgLookupError, true)
		return
	}

	if len(rows) == 0 {
		respond(s, i, formatting.MsgEmptyLeaderboard, false)
		return
	}

	respond(s, i, formatting.MsgLeaderboard(rows), false)
}
