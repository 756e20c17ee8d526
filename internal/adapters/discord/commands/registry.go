package commands

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

var adminPerms = int64(discordgo.PermissionAdministrator)

func GetApplicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "set-challenge",
			Description:              "Open a challenge for a RetroAchievements game this month",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				intOption("game-id", "RetroAchievements game ID", true),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "type",
					Description: "Challenge type",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Monthly", Value: "monthly"},
						{Name: "Shadow", Value: "shadow"},
						{Name: "Regular", Value: "regular"},
					},
				},
				stringOption("progression", "Comma-separated progression achievement IDs", false),
				stringOption("win", "Comma-separated win condition achievement IDs", false),
				boolOption("require-progression", "Require the progression achievements in declared order (default true)"),
				boolOption("require-all-win", "Require every win condition instead of any one"),
				boolOption("mastery", "Enable the mastery check for this challenge"),
			},
		},
		{
			Name:                     "end-challenge",
			Description:              "Close an open challenge",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				intOption("game-id", "RetroAchievements game ID", true),
			},
		},
		{
			Name:                     "track-user",
			Description:              "Start polling a RetroAchievements user",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("username", "RetroAchievements username", true),
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "discord-user",
					Description: "Discord account to associate with the username",
				},
			},
		},
		{
			Name:                     "untrack-user",
			Description:              "Stop polling a RetroAchievements user",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("username", "RetroAchievements username", true),
			},
		},
		{
			Name:        "challenge-status",
			Description: "List challenges open this month",
		},
		{
			Name:        "profile",
			Description: "Show a user's challenge awards this month",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("username", "RetroAchievements username", true),
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show this month's points standings",
		},
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func intOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func boolOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        name,
		Description: description,
	}
}

func RegisterCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID, guildID string) []*discordgo.ApplicationCommand {
	registered := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		result, err := session.ApplicationCommandCreate(userID, guildID, cmd)
		if err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "error", err)
			continue
		}
		registered[i] = result
		slog.Info("Registered command", "name", cmd.Name, "guild", guildID)
	}

	return registered
}

func CleanupCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID, guildID string) {
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		if err := session.ApplicationCommandDelete(userID, guildID, cmd.ID); err != nil {
			slog.Error("Cannot delete command", "name", cmd.Name, "error", err)
		}
	}
}
