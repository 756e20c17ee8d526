package retroachievements

import (
	"testing"

	"ra-challenge-bot/internal/adapters/retroachievements/api"
)

func strPtr(s string) *string { return &s }

func TestMapProgress(t *testing.T) {
	resp := &api.GameProgressResponse{
		ID:              14402,
		Title:           "Some Game",
		NumAchievements: 4,
		Achievements: map[string]api.ProgressAchievement{
			"102": {ID: 102, Title: "Second", DateEarned: strPtr("2026-09-01 11:00:00")},
			"101": {ID: 101, Title: "First", DateEarned: strPtr("2026-09-01 10:00:00")},
			"103": {ID: 103, Title: "Unearned"},
			"104": {ID: 104, Title: "Bad Date", DateEarned: strPtr("not-a-date")},
		},
	}

	progress := mapProgress("Scott", 14402, resp)

	if progress.EarnedCount != 2 {
		t.Errorf("expected 2 earned, got %d", progress.EarnedCount)
	}
	if !progress.EarnedIDs[101] || !progress.EarnedIDs[102] {
		t.Error("expected 101 and 102 to be earned")
	}
	if progress.EarnedIDs[103] || progress.EarnedIDs[104] {
		t.Error("unearned or unparseable achievements must not count as earned")
	}
	if progress.CompletionPct != 50 {
		t.Errorf("expected 50%% completion, got %v", progress.CompletionPct)
	}

	// Earned achievements sorted ascending by earn time, unearned last.
	if progress.Achievements[0].ID != 101 || progress.Achievements[1].ID != 102 {
		t.Errorf("expected earn-order 101,102 first, got %d,%d",
			progress.Achievements[0].ID, progress.Achievements[1].ID)
	}
}

func TestMapProgress_NilResponse(t *testing.T) {
	progress := mapProgress("Scott", 14402, nil)
	if progress.Username != "Scott" || progress.GameID != 14402 {
		t.Error("expected identity fields to be set")
	}
	if progress.EarnedCount != 0 {
		t.Error("expected empty progress")
	}
}

func TestMapRecentAchievements_SortsAscending(t *testing.T) {
	resp := []api.RecentAchievement{
		{AchievementID: 2, Date: "2026-09-01 11:00:00", GameID: 1},
		{AchievementID: 1, Date: "2026-09-01 10:00:00", GameID: 1},
		{AchievementID: 3, Date: "garbage", GameID: 1},
	}

	achievements := mapRecentAchievements(resp)
	if len(achievements) != 3 {
		t.Fatalf("expected 3 achievements, got %d", len(achievements))
	}
	if achievements[0].ID != 1 || achievements[1].ID != 2 {
		t.Errorf("expected ascending earn order 1,2 got %d,%d", achievements[0].ID, achievements[1].ID)
	}
	if achievements[2].ID != 3 || achievements[2].EarnedAt != nil {
		t.Error("expected unparseable date to sort last with nil earn time")
	}
}

func TestMapGame_FallsBackToRequestedID(t *testing.T) {
	game := mapGame(14402, &api.GameResponse{Title: "Some Game"})
	if game.ID != 14402 {
		t.Errorf("expected fallback ID 14402, got %d", game.ID)
	}
}
