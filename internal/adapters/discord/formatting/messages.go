package formatting

import (
	"fmt"
	"strings"

	"ra-challenge-bot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MsgAdminRequired    = "You need Administrator permissions to use this command."
	MsgUsernameRequired = "RetroAchievements username is required."
	MsgGameIDRequired   = "A valid game ID is required."
	MsgSaveError        = "Failed to save the challenge."
	MsgEndError         = "Failed to end the challenge."
	MsgTrackError       = "Failed to track the user."
	MsgUntrackError     = "Failed to untrack the user."
	MsgLookupError      = "Failed to look that up."
	MsgNoOpenChallenges = "No challenges are open this month."
	MsgNoAwards         = "No awards earned this month yet."
	MsgEmptyLeaderboard = "Nobody has earned points this month yet."
)

const mediaBaseURL = "https://media.retroachievements.org"

var titleCaser = cases.Title(language.English)

var tierColors = map[domain.AwardTier]int{
	domain.TierParticipation: 0x3498db,
	domain.TierBeaten:        0x95a5a6,
	domain.TierMastered:      0xf1c40f,
}

var tierEmoji = map[domain.AwardTier]string{
	domain.TierParticipation: "🎮",
	domain.TierBeaten:        "⚔️",
	domain.TierMastered:      "🏆",
}

// TypeLabel renders a challenge type for display, e.g. "Monthly Challenge".
func TypeLabel(t domain.ChallengeType) string {
	return titleCaser.String(string(t)) + " Challenge"
}

func MsgChallengeSet(c domain.GameChallenge) string {
	return fmt.Sprintf("%s set: **%s** (game %d) for %02d/%d.",
		TypeLabel(c.Type), c.Title, c.GameID, c.Month, c.Year)
}

func MsgChallengeEnded(gameID int) string {
	return fmt.Sprintf("Challenge for game %d is closed.", gameID)
}

func MsgUserTracked(username string) string {
	return fmt.Sprintf("Now tracking **%s**.", username)
}

func MsgUserUntracked(username string) string {
	return fmt.Sprintf("Stopped tracking **%s**.", username)
}

func MsgChallengeList(challenges []domain.GameChallenge) string {
	var b strings.Builder
	b.WriteString("Open challenges:\n")
	for _, c := range challenges {
		fmt.Fprintf(&b, "- **%s** (game %d): %s\n", c.Title, c.GameID, TypeLabel(c.Type))
	}
	return b.String()
}

func MsgProfile(username string, awards []domain.AwardRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Awards for **%s** this month:\n", username)
	for _, a := range awards {
		fmt.Fprintf(&b, "- Game %d: %s %s (%d/%d achievements)\n",
			a.GameID, tierEmoji[a.Tier], a.Tier, a.AchievementCount, a.TotalAchievements)
	}
	return b.String()
}

func MsgLeaderboard(rows []domain.LeaderboardRow) string {
	var b strings.Builder
	b.WriteString("This month's standings:\n")
	for i, row := range rows {
		fmt.Fprintf(&b, "%d. **%s**: %d points\n", i+1, row.Username, row.Points)
	}
	return b.String()
}

// AwardEmbed builds the announcement for a tier transition. Only the newly
// reached tier is shown, never the intermediate ones.
func AwardEmbed(event domain.AwardEvent) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s has %s %s!",
			tierEmoji[event.NewTier], event.Username, tierVerb(event.NewTier), event.Game.Title),
		Description: fmt.Sprintf("%s: **%s**", TypeLabel(event.Challenge.Type), event.NewTier),
		Color:       tierColors[event.NewTier],
	}

	if event.Game.ImageIcon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
			URL: mediaBaseURL + event.Game.ImageIcon,
		}
	}
	if event.Game.ConsoleName != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: event.Game.ConsoleName}
	}

	return embed
}

// AchievementEmbed builds the announcement for a single earned achievement.
func AchievementEmbed(username string, game domain.GameInfo, a domain.Achievement) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s earned **%s**", username, a.Title),
		Description: fmt.Sprintf("%s (%d points) - %s", a.Description, a.Points, game.Title),
		Color:       0x2ecc71,
	}

	if a.BadgeName != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
			URL: fmt.Sprintf("%s/Badge/%s.png", mediaBaseURL, a.BadgeName),
		}
	}

	return embed
}

func tierVerb(t domain.AwardTier) string {
	switch t {
	case domain.TierMastered:
		return "mastered"
	case domain.TierBeaten:
		return "beaten"
	default:
		return "started"
	}
}
