package loader

import (
	"crypto/sha256"
	"encoding/hex"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/tryouts/pkg/constants"
	"github.com/agentstation/tryouts/pkg/records"
)

// recordCache keeps parsed records keyed by a digest of the file bytes, so a
// file copied under several names is decoded once per run.
type recordCache struct {
	store *gocache.Cache
}

func newRecordCache() *recordCache {
	return &recordCache{
		store: gocache.New(constants.CacheTTL, constants.CacheCleanupInterval),
	}
}

// cacheKey digests the format hint together with the content, since the
// same bytes may decode differently under another hint.
func cacheKey(format Format, content []byte) string {
	h := sha256.New()
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// get returns a private copy of the cached record.
func (c *recordCache) get(key string) (*records.FileRecord, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	rec, ok := v.(*records.FileRecord)
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

func (c *recordCache) set(key string, rec *records.FileRecord) {
	c.store.Set(key, rec.Clone(), gocache.DefaultExpiration)
}

func (c *recordCache) len() int {
	return c.store.ItemCount()
}

func (c *recordCache) clear() {
	c.store.Flush()
}
