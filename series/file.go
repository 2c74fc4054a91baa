package series

import (
	"bytes"

	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libpoisson/coefficient"
	"github.com/sgostarter/libpoisson/symbol"
)

func LoadFile(file string, storage stg.FileStorage, table symbol.Table, kind coefficient.Kind, opts ...Option) (*Series, error) {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	d, err := storage.ReadFile(file)
	if err != nil {
		return nil, err
	}

	return Load(bytes.NewReader(d), table, kind, opts...)
}

func (s *Series) SaveFile(file string, storage stg.FileStorage, mode PrintMode) error {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	var b bytes.Buffer

	if err := s.Print(&b, mode); err != nil {
		return err
	}

	return storage.WriteFile(file, b.Bytes())
}
