package retroachievements

import (
	"context"

	"ra-challenge-bot/internal/adapters/retroachievements/api"
	"ra-challenge-bot/internal/config"
	"ra-challenge-bot/internal/core/domain"
)

// Adapter implements the ProgressFetcher port against the RetroAchievements
// Web API, with every wire call funnelled through the rate limiter.
type Adapter struct {
	client  *api.Client
	limiter *RateLimiter
}

func NewAdapter(client *api.Client, cfg *config.Config) *Adapter {
	return &Adapter{
		client: client,
		limiter: NewRateLimiter(
			cfg.RateLimitInterval,
			1,
			cfg.RateLimitRetries,
			cfg.RateLimitDelay,
		),
	}
}

func (a *Adapter) FetchUserGameProgress(ctx context.Context, username string, gameID int) (*domain.UserGameProgress, error) {
	var resp *api.GameProgressResponse
	err := a.limiter.Do(ctx, func() error {
		var callErr error
		resp, callErr = a.client.GetGameInfoAndUserProgress(username, gameID)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return mapProgress(username, gameID, resp), nil
}

func (a *Adapter) FetchRecentAchievements(ctx context.Context, username string, count int) ([]domain.Achievement, error) {
	var resp []api.RecentAchievement
	err := a.limiter.Do(ctx, func() error {
		var callErr error
		resp, callErr = a.client.GetUserRecentAchievements(username, count)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return mapRecentAchievements(resp), nil
}

func (a *Adapter) FetchGameInfo(ctx context.Context, gameID int) (*domain.GameInfo, error) {
	var resp *api.GameResponse
	err := a.limiter.Do(ctx, func() error {
		var callErr error
		resp, callErr = a.client.GetGame(gameID)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return mapGame(gameID, resp), nil
}

func (a *Adapter) Stop() {
	a.limiter.Stop()
}
