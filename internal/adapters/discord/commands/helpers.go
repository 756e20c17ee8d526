package commands

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func respond(s DiscordSession, i *discordgo.InteractionCreate, msg string, ephemeral bool) {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	})
}

func ensureChannel(s DiscordSession, guildID, name string) (string, error) {
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return "", err
	}

	for _, ch := range channels {
		if ch.Name == name && ch.Type == discordgo.ChannelTypeGuildText {
			return ch.ID, nil
		}
	}

	ch, err := s.GuildChannelCreate(guildID, name, discordgo.ChannelTypeGuildText)
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}

func getStringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func getIntOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	for _, opt := range opts {
		if opt.Name == name {
			return int(opt.IntValue())
		}
	}
	return 0
}

func getBoolOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	return getBoolOptionDefault(opts, name, false)
}

func getBoolOptionDefault(opts []*discordgo.ApplicationCommandInteractionDataOption, name string, def bool) bool {
	for _, opt := range opts {
		if opt.Name == name {
			return opt.BoolValue()
		}
	}
	return def
}

func getUserOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionUser {
			if u, ok := opt.Value.(string); ok {
				return u
			}
		}
	}
	return ""
}

// parseIDList turns "101, 102,103" into []int{101, 102, 103}. Unparseable
// entries are dropped.
func parseIDList(raw string) []int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
