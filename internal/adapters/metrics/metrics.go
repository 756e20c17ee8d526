package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AwardsAnnounced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "challenge_awards_announced_total",
		Help: "The total number of award tier transitions announced",
	}, []string{"tier"})

	AchievementsAnnounced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "challenge_achievements_announced_total",
		Help: "The total number of earned achievements announced",
	})

	PollTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "challenge_poll_ticks_total",
		Help: "Total number of scheduler ticks executed",
	})

	PollTicksSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "challenge_poll_ticks_skipped_total",
		Help: "Ticks skipped because a previous tick was still running",
	})

	PairsChecked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "challenge_pairs_checked_total",
		Help: "User/game pairs processed per tick outcome",
	}, []string{"status"})

	RARequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "retroachievements_request_duration_seconds",
		Help:    "Duration of RetroAchievements API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})

	RARequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retroachievements_requests_total",
		Help: "Total number of RetroAchievements API requests",
	}, []string{"endpoint", "status"})

	RARateLimitRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "retroachievements_rate_limit_retries_total",
		Help: "Requests requeued after a 429 response",
	})

	DiscordMessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_messages_sent_total",
		Help: "Total number of Discord messages sent",
	}, []string{"kind", "status"})
)
