package api

type RecentAchievement struct {
	Date          string `json:"Date"`
	HardcoreMode  int    `json:"HardcoreMode"`
	AchievementID int    `json:"AchievementID"`
	Title         string `json:"Title"`
	Description   string `json:"Description"`
	BadgeName     string `json:"BadgeName"`
	Points        int    `json:"Points"`
	GameID        int    `json:"GameID"`
	GameTitle     string `json:"GameTitle"`
	ConsoleName   string `json:"ConsoleName"`
}

type GameProgressResponse struct {
	ID               int                            `json:"ID"`
	Title            string                         `json:"Title"`
	ConsoleName      string                         `json:"ConsoleName"`
	ImageIcon        string                         `json:"ImageIcon"`
	NumAchievements  int                            `json:"NumAchievements"`
	NumAwardedToUser int                            `json:"NumAwardedToUser"`
	UserCompletion   string                         `json:"UserCompletion"`
	Achievements     map[string]ProgressAchievement `json:"Achievements"`
}

type ProgressAchievement struct {
	ID          int     `json:"ID"`
	Title       string  `json:"Title"`
	Description string  `json:"Description"`
	Points      int     `json:"Points"`
	BadgeName   string  `json:"BadgeName"`
	DateEarned  *string `json:"DateEarned"`
}

type GameResponse struct {
	ID          int    `json:"ID"`
	Title       string `json:"Title"`
	ConsoleName string `json:"ConsoleName"`
	ImageIcon   string `json:"ImageIcon"`
}
