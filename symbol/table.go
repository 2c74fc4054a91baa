package symbol

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
)

const (
	evalCacheExpiration = 10 * time.Minute
	evalCacheCleanup    = 20 * time.Minute
)

func NewTable(logger l.Wrapper) Table {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	return &tableImpl{
		logger: logger.WithFields(l.StringField(l.ClsKey, "tableImpl")),
		byName: make(map[string]int),
		evals:  cache.New(evalCacheExpiration, evalCacheCleanup),
	}
}

type tableImpl struct {
	logger l.Wrapper

	lock    sync.RWMutex
	symbols []Symbol
	byName  map[string]int

	// registered symbols never change, so evaluations stay valid
	evals *cache.Cache
}

func (impl *tableImpl) Register(sym Symbol) (idx int, err error) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	return register(&impl.symbols, impl.byName, sym, impl.logger)
}

func register(symbols *[]Symbol, byName map[string]int, sym Symbol, logger l.Wrapper) (idx int, err error) {
	if !sym.IsPlaceholder() {
		if i, ok := byName[sym.Name]; ok {
			if !(*symbols)[i].Equal(sym) {
				logger.WithFields(l.StringField("name", sym.Name)).Error("register: conflicting definition")

				err = ErrConflict

				return
			}

			idx = i

			return
		}
	}

	idx = len(*symbols)
	*symbols = append(*symbols, New(sym.Name, sym.PolyEval...))

	if !sym.IsPlaceholder() {
		byName[sym.Name] = idx
	}

	return
}

func (impl *tableImpl) Resolve(name string) (idx int, ok bool) {
	if name == "" {
		return
	}

	impl.lock.RLock()
	defer impl.lock.RUnlock()

	idx, ok = impl.byName[name]

	return
}

func (impl *tableImpl) Get(idx int) (sym Symbol, ok bool) {
	impl.lock.RLock()
	defer impl.lock.RUnlock()

	if idx < 0 || idx >= len(impl.symbols) {
		return
	}

	return impl.symbols[idx], true
}

func (impl *tableImpl) Evaluate(idx int, t float64) float64 {
	key := strconv.Itoa(idx) + "@" + strconv.FormatFloat(t, 'g', -1, 64)

	if v, ok := impl.evals.Get(key); ok {
		return v.(float64)
	}

	sym, ok := impl.Get(idx)
	if !ok {
		impl.logger.WithFields(l.IntField("idx", idx)).Fatal("evaluate: symbol index out of range")
	}

	v := sym.Eval(t)
	impl.evals.Set(key, v, cache.DefaultExpiration)

	return v
}

func (impl *tableImpl) Len() int {
	impl.lock.RLock()
	defer impl.lock.RUnlock()

	return len(impl.symbols)
}
