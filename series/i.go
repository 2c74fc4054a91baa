package series

import (
	"context"
	"time"

	"github.com/sgostarter/libpoisson/coefficient"
	"github.com/sgostarter/libpoisson/symbol"
)

// Info is the catalog record a Storage keeps next to every saved series.
type Info struct {
	Kind     string `json:"kind" yaml:"kind"`
	Terms    int    `json:"terms" yaml:"terms"`
	CfArgs   int    `json:"cfArgs" yaml:"cfArgs"`
	TrigArgs int    `json:"trigArgs" yaml:"trigArgs"`
	SavedAt  int64  `json:"savedAt" yaml:"savedAt"`
}

func NewInfo(s *Series) Info {
	return Info{
		Kind:     s.Kind().String(),
		Terms:    s.Len(),
		CfArgs:   len(s.CfArgs()),
		TrigArgs: len(s.TrigArgs()),
		SavedAt:  time.Now().Unix(),
	}
}

// Storage keeps series in the plain text format under string keys.
type Storage interface {
	Save(ctx context.Context, key string, s *Series) error
	// Put saves s under a generated key.
	Put(ctx context.Context, s *Series) (key string, err error)
	Load(ctx context.Context, key string, table symbol.Table, kind coefficient.Kind, opts ...Option) (*Series, error)
	Stat(ctx context.Context, key string) (Info, error)
}
