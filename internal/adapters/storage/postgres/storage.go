package postgres

import (
	"context"
	"fmt"
	"time"

	"ra-challenge-bot/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgxpool.Pool the store uses; tests substitute a mock.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
}

type PostgresStore struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{pool: pool, db: pool}
	if err := store.migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS tracked_users (
	username        TEXT PRIMARY KEY,
	discord_user_id TEXT NOT NULL DEFAULT '',
	added_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS challenges (
	game_id             INT NOT NULL,
	month               INT NOT NULL,
	year                INT NOT NULL,
	type                TEXT NOT NULL,
	title               TEXT NOT NULL DEFAULT '',
	progression_ids     INT[] NOT NULL DEFAULT '{}',
	win_ids             INT[] NOT NULL DEFAULT '{}',
	require_progression BOOL NOT NULL DEFAULT TRUE,
	require_all_win     BOOL NOT NULL DEFAULT FALSE,
	mastery_check       BOOL NOT NULL DEFAULT FALSE,
	total_achievements  INT NOT NULL DEFAULT 0,
	active              BOOL NOT NULL DEFAULT TRUE,
	PRIMARY KEY (game_id, month, year)
);

CREATE TABLE IF NOT EXISTS award_records (
	username           TEXT NOT NULL,
	game_id            INT NOT NULL,
	month              INT NOT NULL,
	year               INT NOT NULL,
	tier               INT NOT NULL DEFAULT 0,
	achievement_count  INT NOT NULL DEFAULT 0,
	total_achievements INT NOT NULL DEFAULT 0,
	last_checked_at    TIMESTAMPTZ NOT NULL DEFAULT to_timestamp(0),
	check_priority     INT NOT NULL DEFAULT 0,
	PRIMARY KEY (username, game_id, month, year)
);

CREATE TABLE IF NOT EXISTS announcement_history (
	id         BIGSERIAL PRIMARY KEY,
	username   TEXT NOT NULL,
	key        TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_announcement_history_username ON announcement_history (username);

CREATE TABLE IF NOT EXISTS points_ledger (
	id         BIGSERIAL PRIMARY KEY,
	username   TEXT NOT NULL,
	amount     INT NOT NULL,
	reason     TEXT NOT NULL DEFAULT '',
	game_id    INT NOT NULL DEFAULT 0,
	month      INT NOT NULL,
	year       INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_points_ledger_period ON points_ledger (year, month);
`

// -- Tracked Users --

func (s *PostgresStore) AddTrackedUser(ctx context.Context, username, discordUserID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO tracked_users (username, discord_user_id)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET discord_user_id = EXCLUDED.discord_user_id`,
		username, discordUserID)
	if err != nil {
		return fmt.Errorf("add tracked user: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveTrackedUser(ctx context.Context, username string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM tracked_users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("remove tracked user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetTrackedUsers(ctx context.Context) ([]domain.TrackedUser, error) {
	rows, err := s.db.Query(ctx, `
		SELECT username, discord_user_id, added_at
		FROM tracked_users
		ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("get tracked users: %w", err)
	}
	defer rows.Close()

	var users []domain.TrackedUser
	for rows.Next() {
		var u domain.TrackedUser
		if err := rows.Scan(&u.Username, &u.DiscordUserID, &u.AddedAt); err != nil {
			return nil, fmt.Errorf("scan tracked user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// -- Challenges --

func (s *PostgresStore) SaveChallenge(ctx context.Context, c domain.GameChallenge) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO challenges (
			game_id, month, year, type, title, progression_ids, win_ids,
			require_progression, require_all_win, mastery_check, total_achievements, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE)
		ON CONFLICT (game_id, month, year) DO UPDATE SET
			type = EXCLUDED.type,
			title = EXCLUDED.title,
			progression_ids = EXCLUDED.progression_ids,
			win_ids = EXCLUDED.win_ids,
			require_progression = EXCLUDED.require_progression,
			require_all_win = EXCLUDED.require_all_win,
			mastery_check = EXCLUDED.mastery_check,
			total_achievements = EXCLUDED.total_achievements,
			active = TRUE`,
		c.GameID, c.Month, c.Year, string(c.Type), c.Title,
		intsTo32(c.ProgressionIDs), intsTo32(c.WinIDs),
		c.RequireProgression, c.RequireAllWinConditions, c.MasteryCheck, c.TotalAchievements)
	if err != nil {
		return fmt.Errorf("save challenge: %w", err)
	}
	return nil
}

func (s *PostgresStore) EndChallenge(ctx context.Context, gameID, month, year int) error {
	_, err := s.db.Exec(ctx, `
		UPDATE challenges SET active = FALSE
		WHERE game_id = $1 AND month = $2 AND year = $3`,
		gameID, month, year)
	if err != nil {
		return fmt.Errorf("end challenge: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetOpenChallenges(ctx context.Context, month, year int) ([]domain.GameChallenge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT game_id, month, year, type, title, progression_ids, win_ids,
		       require_progression, require_all_win, mastery_check, total_achievements
		FROM challenges
		WHERE month = $1 AND year = $2 AND active
		ORDER BY game_id`,
		month, year)
	if err != nil {
		return nil, fmt.Errorf("get open challenges: %w", err)
	}
	defer rows.Close()

	var challenges []domain.GameChallenge
	for rows.Next() {
		var c domain.GameChallenge
		var challengeType string
		var progression, wins []int32
		if err := rows.Scan(
			&c.GameID, &c.Month, &c.Year, &challengeType, &c.Title,
			&progression, &wins,
			&c.RequireProgression, &c.RequireAllWinConditions, &c.MasteryCheck,
			&c.TotalAchievements,
		); err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		c.Type = domain.ChallengeType(challengeType)
		c.ProgressionIDs = ints32To(progression)
		c.WinIDs = ints32To(wins)
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

// -- Award Records --

func (s *PostgresStore) GetAwardRecord(ctx context.Context, username string, gameID, month, year int) (*domain.AwardRecord, error) {
	var r domain.AwardRecord
	var tier int
	err := s.db.QueryRow(ctx, `
		SELECT username, game_id, month, year, tier, achievement_count,
		       total_achievements, last_checked_at, check_priority
		FROM award_records
		WHERE username = $1 AND game_id = $2 AND month = $3 AND year = $4`,
		username, gameID, month, year).Scan(
		&r.Username, &r.GameID, &r.Month, &r.Year, &tier,
		&r.AchievementCount, &r.TotalAchievements, &r.LastCheckedAt, &r.CheckPriority)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get award record: %w", err)
	}

	r.Tier = domain.AwardTier(tier)
	return &r, nil
}

func (s *PostgresStore) UpsertAwardRecord(ctx context.Context, r domain.AwardRecord) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO award_records (
			username, game_id, month, year, tier, achievement_count,
			total_achievements, last_checked_at, check_priority
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (username, game_id, month, year) DO UPDATE SET
			tier = GREATEST(award_records.tier, EXCLUDED.tier),
			achievement_count = EXCLUDED.achievement_count,
			total_achievements = EXCLUDED.total_achievements,
			last_checked_at = EXCLUDED.last_checked_at,
			check_priority = EXCLUDED.check_priority`,
		r.Username, r.GameID, r.Month, r.Year, int(r.Tier),
		r.AchievementCount, r.TotalAchievements, r.LastCheckedAt, r.CheckPriority)
	if err != nil {
		return fmt.Errorf("upsert award record: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserAwards(ctx context.Context, username string, month, year int) ([]domain.AwardRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT username, game_id, month, year, tier, achievement_count,
		       total_achievements, last_checked_at, check_priority
		FROM award_records
		WHERE username = $1 AND month = $2 AND year = $3
		ORDER BY game_id`,
		username, month, year)
	if err != nil {
		return nil, fmt.Errorf("get user awards: %w", err)
	}
	defer rows.Close()

	var records []domain.AwardRecord
	for rows.Next() {
		var r domain.AwardRecord
		var tier int
		if err := rows.Scan(
			&r.Username, &r.GameID, &r.Month, &r.Year, &tier,
			&r.AchievementCount, &r.TotalAchievements, &r.LastCheckedAt, &r.CheckPriority,
		); err != nil {
			return nil, fmt.Errorf("scan award record: %w", err)
		}
		r.Tier = domain.AwardTier(tier)
		records = append(records, r)
	}
	return records, rows.Err()
}

// -- Announcement History --

func (s *PostgresStore) GetAnnouncementHistory(ctx context.Context, username string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT key FROM announcement_history
		WHERE username = $1
		ORDER BY id`,
		username)
	if err != nil {
		return nil, fmt.Errorf("get announcement history: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan announcement key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// AppendAnnouncement appends a key to the user's history and evicts the oldest
// rows beyond the cap. Eviction is by append order, not by timestamp.
func (s *PostgresStore) AppendAnnouncement(ctx context.Context, username, key string, cap int) error {
	if _, err := s.db.Exec(ctx, `
		INSERT INTO announcement_history (username, key) VALUES ($1, $2)`,
		username, key); err != nil {
		return fmt.Errorf("append announcement: %w", err)
	}

	if _, err := s.db.Exec(ctx, `
		DELETE FROM announcement_history
		WHERE username = $1 AND id NOT IN (
			SELECT id FROM announcement_history
			WHERE username = $1
			ORDER BY id DESC
			LIMIT $2
		)`,
		username, cap); err != nil {
		return fmt.Errorf("trim announcement history: %w", err)
	}

	return nil
}

// -- Points Ledger --

func (s *PostgresStore) AddPoints(ctx context.Context, entry domain.PointsEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO points_ledger (username, amount, reason, game_id, month, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.Username, entry.Amount, entry.Reason, entry.GameID, entry.Month, entry.Year, createdAt)
	if err != nil {
		return fmt.Errorf("add points: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetMonthlyLeaderboard(ctx context.Context, month, year, limit int) ([]domain.LeaderboardRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT username, SUM(amount)::INT AS points
		FROM points_ledger
		WHERE month = $1 AND year = $2
		GROUP BY username
		ORDER BY points DESC, username
		LIMIT $3`,
		month, year, limit)
	if err != nil {
		return nil, fmt.Errorf("get monthly leaderboard: %w", err)
	}
	defer rows.Close()

	var leaderboard []domain.LeaderboardRow
	for rows.Next() {
		var row domain.LeaderboardRow
		if err := rows.Scan(&row.Username, &row.Points); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		leaderboard = append(leaderboard, row)
	}
	return leaderboard, rows.Err()
}

func intsTo32(ids []int) []int32 {
	out := make([]int32, len(ids))
	for i, id := range ids {
		out[i] = int32(id)
	}
	return out
}

func ints32To(ids []int32) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
