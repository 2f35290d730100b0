package ledger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisLedgerKey = "deployer:ledger"

func NewRedis(url string) (Base, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	c := RedisStore{
		c:   redis.NewClient(opts),
		log: zap.L().With(zap.String("facility", "redis-ledger")),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err = c.c.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	c.log.Info("Initialized Redis ledger store", zap.String("host", opts.Addr))
	return c, nil
}

// RedisStore keeps the whole ledger document under a single key, preserving
// the wholesale load/flush semantics of the local store.
type RedisStore struct {
	c   *redis.Client
	log *zap.Logger
}

func (r RedisStore) Load() (map[string]Entry, error) {
	data, err := r.c.Get(context.Background(), redisLedgerKey).Bytes()
	if err == redis.Nil {
		return map[string]Entry{}, nil
	} else if err != nil {
		return nil, err
	}

	entries := map[string]Entry{}
	if err = json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r RedisStore) Save(entries map[string]Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return r.c.Set(context.Background(), redisLedgerKey, data, 0).Err()
}
