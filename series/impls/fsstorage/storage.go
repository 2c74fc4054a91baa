package fsstorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/godruoyi/go-snowflake"
	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/kv"
	"github.com/sgostarter/libeasygo/stg/mwf"
	"github.com/sgostarter/libpoisson/coefficient"
	"github.com/sgostarter/libpoisson/series"
	"github.com/sgostarter/libpoisson/symbol"
)

const (
	fileExt     = ".pser"
	catalogFile = "catalog.dat"

	cacheExpiration = 5 * time.Minute
	cacheCleanup    = 10 * time.Minute
)

// NewFSStorage keeps every series as a plain text file named after its key, with an Info
// record per key in a catalog file. Recently read or written texts are served from memory.
func NewFSStorage(storage stg.FileStorage, logger l.Wrapper) series.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &fsStorageImpl{
		logger:  logger.WithFields(l.StringField(l.ClsKey, "fsStorageImpl")),
		storage: storage,
		texts:   cache.New(cacheExpiration, cacheCleanup),
		catalog: mwf.NewKVEx(catalogFile, storage),
	}
}

type fsStorageImpl struct {
	logger  l.Wrapper
	storage stg.FileStorage
	texts   *cache.Cache
	catalog kv.StorageTiny
}

func fileName(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: series key %q", commerr.ErrInvalidArgument, key)
	}

	return key + fileExt, nil
}

func (impl *fsStorageImpl) Save(_ context.Context, key string, s *series.Series) error {
	name, err := fileName(key)
	if err != nil {
		return err
	}

	var b bytes.Buffer

	if err = s.Print(&b, series.PrintPlain); err != nil {
		return err
	}

	if err = impl.storage.WriteFile(name, b.Bytes()); err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("write series failed")

		return err
	}

	impl.texts.Set(key, b.Bytes(), cache.DefaultExpiration)

	if err = impl.catalog.Set(key, series.NewInfo(s)); err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("update catalog failed")

		return err
	}

	return nil
}

func (impl *fsStorageImpl) Put(ctx context.Context, s *series.Series) (key string, err error) {
	key = strconv.FormatUint(snowflake.ID(), 10)
	err = impl.Save(ctx, key, s)

	return
}

func (impl *fsStorageImpl) Load(_ context.Context, key string, table symbol.Table, kind coefficient.Kind,
	opts ...series.Option) (*series.Series, error) {
	name, err := fileName(key)
	if err != nil {
		return nil, err
	}

	if d, ok := impl.texts.Get(key); ok {
		return series.Load(bytes.NewReader(d.([]byte)), table, kind, opts...)
	}

	d, err := impl.storage.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, commerr.ErrNotFound
		}

		return nil, err
	}

	impl.texts.Set(key, d, cache.DefaultExpiration)

	return series.Load(bytes.NewReader(d), table, kind, opts...)
}

func (impl *fsStorageImpl) Stat(_ context.Context, key string) (info series.Info, err error) {
	if _, err = fileName(key); err != nil {
		return
	}

	exists, err := impl.catalog.Get(key, &info)
	if err != nil {
		return
	}

	if !exists {
		err = commerr.ErrNotFound
	}

	return
}
