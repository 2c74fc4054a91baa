package redisstorage

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/godruoyi/go-snowflake"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libpoisson/coefficient"
	"github.com/sgostarter/libpoisson/series"
	"github.com/sgostarter/libpoisson/symbol"
	"github.com/spf13/cast"
)

func NewRedisStorage(preKey string, redisCli *redis.Client, logger l.Wrapper) series.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "redisStorageImpl"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	return &redisStorageImpl{
		logger:   logger,
		preKey:   preKey,
		redisCli: redisCli,
	}
}

type redisStorageImpl struct {
	logger   l.Wrapper
	preKey   string
	redisCli *redis.Client
}

func (impl *redisStorageImpl) seriesKey(key string) string {
	return impl.preKey + ":series:" + key
}

func (impl *redisStorageImpl) infoKey(key string) string {
	return impl.preKey + ":series-info:" + key
}

func (impl *redisStorageImpl) Save(ctx context.Context, key string, s *series.Series) error {
	if key == "" {
		return commerr.ErrInvalidArgument
	}

	info := series.NewInfo(s)

	_, err := impl.redisCli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, impl.seriesKey(key), s.String(), 0)
		pipe.HSet(ctx, impl.infoKey(key), "kind", info.Kind, "terms", info.Terms, "cfArgs", info.CfArgs,
			"trigArgs", info.TrigArgs, "savedAt", info.SavedAt)

		return nil
	})
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("save series failed")
	}

	return err
}

func (impl *redisStorageImpl) Put(ctx context.Context, s *series.Series) (key string, err error) {
	key = strconv.FormatUint(snowflake.ID(), 10)
	err = impl.Save(ctx, key, s)

	return
}

func (impl *redisStorageImpl) Load(ctx context.Context, key string, table symbol.Table, kind coefficient.Kind,
	opts ...series.Option) (*series.Series, error) {
	text, err := impl.redisCli.Get(ctx, impl.seriesKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, commerr.ErrNotFound
		}

		return nil, err
	}

	return series.Load(strings.NewReader(text), table, kind, opts...)
}

func (impl *redisStorageImpl) Stat(ctx context.Context, key string) (info series.Info, err error) {
	m, err := impl.redisCli.HGetAll(ctx, impl.infoKey(key)).Result()
	if err != nil {
		return
	}

	if len(m) == 0 {
		err = commerr.ErrNotFound

		return
	}

	info.Kind = m["kind"]
	info.Terms = cast.ToInt(m["terms"])
	info.CfArgs = cast.ToInt(m["cfArgs"])
	info.TrigArgs = cast.ToInt(m["trigArgs"])
	info.SavedAt = cast.ToInt64(m["savedAt"])

	return
}
