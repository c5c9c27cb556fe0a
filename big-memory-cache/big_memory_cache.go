package bigmemcache

import (
	"time"

	"github.com/allegro/bigcache"
	"github.com/google/uuid"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

const (
	__DefaultEvictionTime = 100 * 365 * 24 * time.Hour
	__DefaultShardsFactor = 100
	__DefaultMaxShards    = 128
	__OneMB               = 1024 * 1024
)

// BigMemCacheCfg BigMemCache配置
type BigMemCacheCfg struct {
	MaxNumOfCacheItem  uint64 // 最多可缓存的记录数量
	MaxSizeOfCacheItem uint64 // 单条记录编码后的大小, unit is byte
}

func (cfg *BigMemCacheCfg) defaultBigCacheCfg() bigcache.Config {
	bcCfg := bigcache.DefaultConfig(__DefaultEvictionTime)
	bcCfg.Verbose = false

	shardsUpLimit := uint(cfg.MaxNumOfCacheItem/__DefaultShardsFactor) + 1
	bcCfg.Shards = int(findNearestPowerOf2Num(shardsUpLimit))
	if bcCfg.Shards > __DefaultMaxShards {
		bcCfg.Shards = __DefaultMaxShards
	}

	// init 10 entries for each shard.
	bcCfg.MaxEntriesInWindow = 10 * bcCfg.Shards
	bcCfg.MaxEntrySize = int(cfg.MaxSizeOfCacheItem)

	bcCfg.HardMaxCacheSize = int((cfg.MaxNumOfCacheItem*cfg.MaxSizeOfCacheItem)/__OneMB) + 1
	return bcCfg
}

// BigMemCache stores encoded records in memory.
// Records are kept as []byte to avoid excessive GC stress and extra memory footprint.
type BigMemCache struct {
	cache *bigcache.BigCache
}

// NewBigMemCache 返回BigMemCache实例.
func NewBigMemCache(cfg *BigMemCacheCfg) (*BigMemCache, error) {
	cache, err := bigcache.NewBigCache(cfg.defaultBigCacheCfg())
	if err != nil {
		return nil, err
	}
	return &BigMemCache{
		cache: cache,
	}, nil
}

// Add 将记录编码后添加进BigMemCache, 返回记录的key.
// key为空时生成一个UUIDv7作为key并回填到rec.
func (bmc *BigMemCache) Add(rec *Record) (string, error) {
	if rec.Key == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", err
		}
		rec.Key = id.String()
	}

	encoded := make(streamio.Buffer, 0, rec.EncodedLen())
	if err := EncodeRecord(&encoded, rec); err != nil {
		return "", err
	}
	if err := bmc.cache.Set(rec.Key, encoded); err != nil {
		return "", err
	}
	return rec.Key, nil
}

// Del 将记录从BigMemCache删除.
func (bmc *BigMemCache) Del(key string) error {
	// mark-deletion in bigcache
	return bmc.cache.Delete(key)
}

// Get 从BigMemCache中获取记录, 不存在或无法解码时返回nil.
func (bmc *BigMemCache) Get(key string) *Record {
	c, err := bmc.Open(key)
	if err != nil {
		return nil
	}
	rec, err := DecodeRecord(c)
	if err != nil {
		return nil
	}
	return rec
}

// Open 返回指向记录原始编码的Cursor.
func (bmc *BigMemCache) Open(key string) (*streamio.Cursor, error) {
	v, err := bmc.cache.Get(key)
	if err != nil {
		return nil, err
	}
	return streamio.NewCursor(v), nil
}

// Size 返回BigMemCache当前缓存的记录数量.
func (bmc *BigMemCache) Size() int {
	return bmc.cache.Len()
}

// Reset 真正意义上去清理缓存.
func (bmc *BigMemCache) Reset() error {
	return bmc.cache.Reset()
}
