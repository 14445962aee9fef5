package cas

import (
	"container/list"
	"sync"
)

// LRUCache is a CAS wrapper that keeps a bounded set of finished results and
// recently read values. Results live only in the cache: once evicted, the job
// that produced them has to run again.
type LRUCache struct {
	mu         sync.Mutex
	underlying CAS
	cache      map[Hash]*list.Element
	evictList  *list.List
	maxSize    int
}

type cacheEntry struct {
	hash      Hash
	value     []byte
	result    uint64
	hasResult bool
}

// NewLRUCache creates a new LRU-cached CAS wrapper
// maxSize is the maximum number of entries to cache (0 or negative means the default)
func NewLRUCache(underlying CAS, maxSize int) *LRUCache {
	if maxSize <= 0 {
		maxSize = 1000 // Default cache size
	}
	return &LRUCache{
		underlying: underlying,
		cache:      make(map[Hash]*list.Element),
		evictList:  list.New(),
		maxSize:    maxSize,
	}
}

// Put stores an item in the underlying CAS
func (l *LRUCache) Put(item Hashable) (Hash, error) {
	return l.underlying.Put(item)
}

// Has checks if the hash exists in underlying CAS
func (l *LRUCache) Has(hash Hash) bool {
	return l.underlying.Has(hash)
}

// getValue implements directStore interface
func (l *LRUCache) getValue(h Hash) (bool, []byte, error) {
	l.mu.Lock()
	if elem, ok := l.cache[h]; ok {
		entry := elem.Value.(*cacheEntry)
		if entry.value != nil {
			l.evictList.MoveToFront(elem)
			l.mu.Unlock()
			return true, entry.value, nil
		}
	}
	l.mu.Unlock()

	underlying, ok := l.underlying.(directStore)
	if !ok {
		return false, nil, nil
	}
	has, data, err := underlying.getValue(h)
	if err != nil || !has {
		return false, nil, err
	}

	l.mu.Lock()
	l.entry(h).value = data
	l.mu.Unlock()
	return true, data, nil
}

// RecordResult caches the result for hash, evicting the least recently used
// entry when full.
func (l *LRUCache) RecordResult(hash Hash, count uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entry(hash)
	e.result = count
	e.hasResult = true
}

// GetResult returns a cached result.
func (l *LRUCache) GetResult(hash Hash) (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	elem, ok := l.cache[hash]
	if !ok {
		return 0, false
	}
	entry := elem.Value.(*cacheEntry)
	if !entry.hasResult {
		return 0, false
	}
	l.evictList.MoveToFront(elem)
	return entry.result, true
}

// entry returns the cache entry for hash, creating it and evicting the oldest
// entry if necessary. Callers hold l.mu.
func (l *LRUCache) entry(hash Hash) *cacheEntry {
	if elem, ok := l.cache[hash]; ok {
		l.evictList.MoveToFront(elem)
		return elem.Value.(*cacheEntry)
	}

	entry := &cacheEntry{hash: hash}
	elem := l.evictList.PushFront(entry)
	l.cache[hash] = elem

	if l.evictList.Len() > l.maxSize {
		l.evictOldest()
	}
	return entry
}

// evictOldest removes the least recently used entry from cache
func (l *LRUCache) evictOldest() {
	elem := l.evictList.Back()
	if elem != nil {
		l.evictList.Remove(elem)
		entry := elem.Value.(*cacheEntry)
		delete(l.cache, entry.hash)
	}
}

// CacheStats returns cache statistics for monitoring
type CacheStats struct {
	Size    int
	MaxSize int
}

// Stats returns current cache statistics
func (l *LRUCache) Stats() CacheStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return CacheStats{
		Size:    len(l.cache),
		MaxSize: l.maxSize,
	}
}
