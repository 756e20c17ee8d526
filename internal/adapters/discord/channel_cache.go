package discord

import "sync"

// channelCache maps channel names to resolved channel IDs. The bot serves a
// single guild, so names are unique keys.
type channelCache struct {
	mu    sync.RWMutex
	items map[string]string
}

func newChannelCache() *channelCache {
	return &channelCache{
		items: make(map[string]string),
	}
}

func (c *channelCache) Get(channelName string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.items[channelName]
	return id, ok
}

func (c *channelCache) Set(channelName, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[channelName] = id
}

func (c *channelCache) Invalidate(channelName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, channelName)
}
