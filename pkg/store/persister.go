package store

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardboard/pkg/board"
)

// DefaultSaveTimeout bounds a single save triggered by a layout change.
const DefaultSaveTimeout = 5 * time.Second

// Source yields the full card list to persist. *engine.Engine implements it.
type Source interface {
	Cards() []board.Card
}

// Persister writes a board to a [Store] whenever its layout changes.
//
// Wire it in two steps, since the engine needs the callback at
// construction and the persister needs the engine to read from:
//
//	p := store.NewPersister(s, "team", cfg, logger)
//	e, _ := engine.New(cfg, engine.WithLayoutChange(p.OnLayoutChange))
//	p.Attach(e)
type Persister struct {
	store   Store
	id      string
	cfg     board.Config
	logger  *log.Logger
	timeout time.Duration

	mu      sync.Mutex
	src     Source
	saves   int
	lastErr error
}

// NewPersister returns a persister for board id. A nil logger discards output.
func NewPersister(s Store, id string, cfg board.Config, logger *log.Logger) *Persister {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Persister{store: s, id: id, cfg: cfg, logger: logger, timeout: DefaultSaveTimeout}
}

// Attach sets the source read on every change.
func (p *Persister) Attach(src Source) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.src = src
}

// OnLayoutChange saves the whole board. It has the signature of an engine
// layout change callback. Saves are serialised; a failure is logged and
// kept for [Persister.Err].
func (p *Persister) OnLayoutChange(changes board.ChangeSet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.src == nil {
		p.logger.Warn("layout change before persister was attached", "board", p.id)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	b := &Board{ID: p.id, Config: p.cfg, Cards: p.src.Cards(), UpdatedAt: time.Now().UTC()}
	if err := p.store.Save(ctx, b); err != nil {
		p.lastErr = err
		p.logger.Error("save board", "board", p.id, "err", err)
		return
	}
	p.saves++
	p.lastErr = nil
	p.logger.Debug("board saved", "board", p.id, "cards", len(b.Cards), "updated", len(changes.UpdatedCards))
}

// Saves returns how many saves succeeded.
func (p *Persister) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}

// Err returns the error of the most recent save, if it failed.
func (p *Persister) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
