package resolver

import (
	"hash/fnv"
	"sync"
)

const lockShards = 64

// keyedLocks serializes writers per string key using a fixed set of mutex
// shards. Two different keys may share a shard; that costs an occasional
// needless wait, never a lost update.
type keyedLocks struct {
	shards [lockShards]sync.Mutex
}

// lock acquires the shard for key and returns its unlock function.
func (k *keyedLocks) lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	shard := &k.shards[h.Sum32()%lockShards]
	shard.Lock()
	return shard.Unlock
}
