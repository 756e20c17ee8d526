package awards

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"ra-challenge-bot/internal/core/domain"
	"ra-challenge-bot/internal/core/ports"
)

const DefaultHistoryCap = 200

// AnnouncementLedger decides whether an announcement is novel and records it
// exactly once. A session set covers rapid re-polls within one process
// lifetime; the persisted per-user history covers restarts. Both comparisons
// use the (kind, game, subject) triple and ignore the timestamp suffix.
type AnnouncementLedger struct {
	store ports.AnnouncementStore
	cap   int

	mu      sync.Mutex
	session map[string]struct{}
}

func NewAnnouncementLedger(store ports.AnnouncementStore, historyCap int) *AnnouncementLedger {
	if historyCap <= 0 {
		historyCap = DefaultHistoryCap
	}
	return &AnnouncementLedger{
		store:   store,
		cap:     historyCap,
		session: make(map[string]struct{}),
	}
}

// IsNew reports whether the entry has not been announced before, for this
// user, in this process or in the persisted history. A history read failure
// degrades to the session-set answer; it never blocks the batch.
func (l *AnnouncementLedger) IsNew(ctx context.Context, username string, entry domain.AnnouncementEntry) bool {
	if l.inSession(username, entry) {
		return false
	}

	history, err := l.store.GetAnnouncementHistory(ctx, username)
	if err != nil {
		slog.Warn("Failed to read announcement history", "username", username, "error", err)
		return true
	}

	triple := entry.Triple()
	for _, key := range history {
		if tripleOfKey(key) == triple {
			return false
		}
	}
	return true
}

// Record marks the entry as announced in both the session set and the
// persisted history. The session set is updated even when persistence fails,
// so a failed write cannot cause a re-announcement within this process.
func (l *AnnouncementLedger) Record(ctx context.Context, username string, entry domain.AnnouncementEntry) error {
	l.mu.Lock()
	l.session[sessionKey(username, entry)] = struct{}{}
	l.mu.Unlock()

	if err := l.store.AppendAnnouncement(ctx, username, entry.Key(), l.cap); err != nil {
		slog.Error("Failed to persist announcement", "username", username, "key", entry.Key(), "error", err)
		return err
	}
	return nil
}

func (l *AnnouncementLedger) inSession(username string, entry domain.AnnouncementEntry) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.session[sessionKey(username, entry)]
	return ok
}

func sessionKey(username string, entry domain.AnnouncementEntry) string {
	return username + "|" + entry.Triple()
}

// tripleOfKey strips the trailing timestamp segment from a stored key.
func tripleOfKey(key string) string {
	parts := strings.SplitN(key, ":", 4)
	if len(parts) < 3 {
		return key
	}
	return strings.Join(parts[:3], ":")
}
