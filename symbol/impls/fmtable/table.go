package fmtable

import (
	"sync"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
	"github.com/sgostarter/libpoisson/symbol"
)

// NewFMTable returns a symbol table kept in memory and mirrored to file on every registration.
func NewFMTable(file string, storage stg.FileStorage, logger l.Wrapper) symbol.Table {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &fmTableImpl{
		logger: logger.WithFields(l.StringField(l.ClsKey, "fmTableImpl")),
		d: mwf.NewMemWithFile[[]symbol.Symbol, mwf.Serial, mwf.Lock](make([]symbol.Symbol, 0),
			&mwf.JSONSerial{}, &sync.RWMutex{}, file, storage),
	}
}

type fmTableImpl struct {
	logger l.Wrapper
	d      *mwf.MemWithFile[[]symbol.Symbol, mwf.Serial, mwf.Lock]
}

func (impl *fmTableImpl) Register(sym symbol.Symbol) (idx int, err error) {
	err = impl.d.Change(func(oldV []symbol.Symbol) (newV []symbol.Symbol, err error) {
		newV = oldV

		if !sym.IsPlaceholder() {
			for i, s := range newV {
				if s.Name != sym.Name {
					continue
				}

				if !s.Equal(sym) {
					err = symbol.ErrConflict

					return
				}

				idx = i

				return
			}
		}

		idx = len(newV)
		newV = append(newV, symbol.New(sym.Name, sym.PolyEval...))

		return
	})

	if err != nil {
		impl.logger.WithFields(l.StringField("name", sym.Name), l.ErrorField(err)).Error("register failed")
	}

	return
}

func (impl *fmTableImpl) Resolve(name string) (idx int, ok bool) {
	if name == "" {
		return
	}

	impl.d.Read(func(v []symbol.Symbol) {
		for i, s := range v {
			if s.Name == name {
				idx, ok = i, true

				return
			}
		}
	})

	return
}

func (impl *fmTableImpl) Get(idx int) (sym symbol.Symbol, ok bool) {
	impl.d.Read(func(v []symbol.Symbol) {
		if idx < 0 || idx >= len(v) {
			return
		}

		sym, ok = v[idx], true
	})

	return
}

func (impl *fmTableImpl) Evaluate(idx int, t float64) float64 {
	sym, ok := impl.Get(idx)
	if !ok {
		impl.logger.WithFields(l.IntField("idx", idx)).Fatal("evaluate: symbol index out of range")
	}

	return sym.Eval(t)
}

func (impl *fmTableImpl) Len() (n int) {
	impl.d.Read(func(v []symbol.Symbol) {
		n = len(v)
	})

	return
}
