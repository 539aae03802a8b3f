package storage

import (
	"github.com/charmbracelet/log"
)

const DefaultKey = "todoApp_todos"

type Source int

const (
	SourceNone Source = iota
	SourcePrimary
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourceFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Result reports the outcome of a Persister call. Err holds the primary
// backend failure even when the fallback slot served the call.
type Result struct {
	Value  string
	Found  bool
	Source Source
	Err    error
}

func (r Result) OK() bool {
	return r.Source != SourceNone
}

// Persister reads and writes one blob under a fixed key. A failed primary
// write is retried once against the in-memory fallback slot; a failed
// primary read is served from that slot.
type Persister struct {
	primary  Backend
	fallback *Memory
	key      string
	logger   *log.Logger
}

func NewPersister(primary Backend, key string, logger *log.Logger) *Persister {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Persister{
		primary:  primary,
		fallback: NewMemory(),
		key:      key,
		logger:   logger,
	}
}

func (p *Persister) Key() string {
	return p.key
}

func (p *Persister) Load() Result {
	if p.primary != nil {
		v, ok, err := p.primary.Get(p.key)
		if err == nil {
			return Result{Value: v, Found: ok, Source: SourcePrimary}
		}
		p.logger.Error("load from store failed", "key", p.key, "err", err)
		return p.loadFallback(err)
	}
	return p.loadFallback(nil)
}

func (p *Persister) loadFallback(primaryErr error) Result {
	v, ok, err := p.fallback.Get(p.key)
	if err != nil {
		p.logger.Error("load from fallback failed", "key", p.key, "err", err)
		return Result{Err: primaryErr}
	}
	return Result{Value: v, Found: ok, Source: SourceFallback, Err: primaryErr}
}

func (p *Persister) Save(blob string) Result {
	if p.primary != nil {
		err := p.primary.Set(p.key, blob)
		if err == nil {
			return Result{Value: blob, Found: true, Source: SourcePrimary}
		}
		p.logger.Error("save to store failed", "key", p.key, "err", err)
		return p.saveFallback(blob, err)
	}
	return p.saveFallback(blob, nil)
}

func (p *Persister) saveFallback(blob string, primaryErr error) Result {
	if err := p.fallback.Set(p.key, blob); err != nil {
		p.logger.Error("save to fallback failed", "key", p.key, "err", err)
		return Result{Err: primaryErr}
	}
	p.logger.Debug("blob kept in memory", "key", p.key, "bytes", len(blob))
	return Result{Value: blob, Found: true, Source: SourceFallback, Err: primaryErr}
}
