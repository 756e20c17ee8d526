package domain

import (
	"fmt"
	"time"
)

type ChallengeType string

const (
	ChallengeMonthly ChallengeType = "monthly"
	ChallengeShadow  ChallengeType = "shadow"
	ChallengeRegular ChallengeType = "regular"
)

type Achievement struct {
	ID          int
	GameID      int
	Title       string
	Description string
	Points      int
	BadgeName   string
	EarnedAt    *time.Time
}

// GameChallenge declares the achievement sets a user must earn to beat a game
// within a challenge period. Immutable for the period once created.
type GameChallenge struct {
	GameID                  int
	Type                    ChallengeType
	Title                   string
	Month                   int
	Year                    int
	ProgressionIDs          []int
	WinIDs                  []int
	RequireProgression      bool
	RequireAllWinConditions bool
	MasteryCheck            bool
	TotalAchievements       int
}

// UserGameProgress is a per-poll snapshot of a user's standing on one game.
// It is recomputed from the API on every poll and never persisted.
type UserGameProgress struct {
	Username          string
	GameID            int
	EarnedIDs         map[int]bool
	EarnedCount       int
	TotalAchievements int
	CompletionPct     float64
	Achievements      []Achievement
}

type AwardRecord struct {
	Username          string
	GameID            int
	Month             int
	Year              int
	Tier              AwardTier
	AchievementCount  int
	TotalAchievements int
	LastCheckedAt     time.Time
	CheckPriority     int
}

type GameInfo struct {
	ID          int
	Title       string
	ConsoleName string
	ImageIcon   string
}

type TrackedUser struct {
	Username      string
	DiscordUserID string
	AddedAt       time.Time
}

type AwardEvent struct {
	Username     string
	Game         GameInfo
	Challenge    GameChallenge
	PreviousTier AwardTier
	NewTier      AwardTier
}

type PointsEntry struct {
	Username  string
	Amount    int
	Reason    string
	GameID    int
	Month     int
	Year      int
	CreatedAt time.Time
}

type LeaderboardRow struct {
	Username string
	Points   int
}

type AnnouncementKind string

const (
	AnnounceAward       AnnouncementKind = "award"
	AnnounceAchievement AnnouncementKind = "achievement"
)

// AnnouncementEntry identifies a single announceable event. The timestamp is
// part of the stored key for debuggability but never participates in
// duplicate matching; see Triple.
type AnnouncementEntry struct {
	Kind      AnnouncementKind
	GameID    int
	SubjectID int
	EarnedAt  time.Time
}

func (e AnnouncementEntry) Key() string {
	return fmt.Sprintf("%s:%d:%d:%d", e.Kind, e.GameID, e.SubjectID, e.EarnedAt.Unix())
}

// Triple is the identity used for duplicate detection: kind, game, subject.
func (e AnnouncementEntry) Triple() string {
	return fmt.Sprintf("%s:%d:%d", e.Kind, e.GameID, e.SubjectID)
}
