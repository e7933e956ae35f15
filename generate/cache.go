package generate

import (
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// ReplyCache is a TTL cache of sanitized replies. Entries are keyed by
// endpoint, model and utterance so a settings change never serves a reply
// from another model.
type ReplyCache struct {
	cache *ttlcache.Cache[string, string]
	stop  sync.Once
}

// NewReplyCache creates an empty cache and starts its expiration loop.
func NewReplyCache() *ReplyCache {
	c := ttlcache.New[string, string](
		ttlcache.WithDisableTouchOnHit[string, string](),
	)
	go c.Start()
	return &ReplyCache{cache: c}
}

// Close stops the cache expiration loop. It is safe to call more than once.
func (rc *ReplyCache) Close() {
	rc.stop.Do(rc.cache.Stop)
}

// Get returns the cached reply, if any.
func (rc *ReplyCache) Get(baseURL, model, utterance string) (string, bool) {
	item := rc.cache.Get(replyKey(baseURL, model, utterance))
	if item == nil {
		return "", false
	}
	return item.Value(), true
}

// Set stores reply for ttl. Non-positive ttls are ignored.
func (rc *ReplyCache) Set(baseURL, model, utterance, reply string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	rc.cache.Set(replyKey(baseURL, model, utterance), reply, ttl)
}

// Len returns the number of cached replies.
func (rc *ReplyCache) Len() int {
	return rc.cache.Len()
}

func replyKey(baseURL, model, utterance string) string {
	return baseURL + "\x00" + model + "\x00" + utterance
}
