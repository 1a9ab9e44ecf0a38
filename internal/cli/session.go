package cli

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardboard/pkg/board"
	"github.com/matzehuels/cardboard/pkg/boardfile"
	"github.com/matzehuels/cardboard/pkg/engine"
	"github.com/matzehuels/cardboard/pkg/errors"
	"github.com/matzehuels/cardboard/pkg/store"
)

// sink persists the board on every committed change.
type sink interface {
	Attach(src store.Source)
	OnLayoutChange(changes board.ChangeSet)
	Err() error
}

// fileSink writes the whole board back to its board file.
type fileSink struct {
	path   string
	cfg    board.Config
	logger *log.Logger

	mu  sync.Mutex
	src store.Source
	err error
}

func (f *fileSink) Attach(src store.Source) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.src = src
}

func (f *fileSink) OnLayoutChange(board.ChangeSet) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.src == nil {
		return
	}
	if err := boardfile.Save(f.path, &boardfile.File{Config: f.cfg, Cards: f.src.Cards()}); err != nil {
		f.err = err
		f.logger.Error("save board file", "path", f.path, "err", err)
		return
	}
	f.err = nil
	f.logger.Debug("board file saved", "path", f.path)
}

func (f *fileSink) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// boardSession is an engine bound to where its board is persisted.
type boardSession struct {
	Engine *engine.Engine

	sink  sink
	store store.Store
}

// openBoard loads the configured board into a new engine. Every change the
// engine commits is persisted before the mutating call returns.
//
// With a store backend, a board missing from the store is seeded from the
// board file when one exists, and written to the store right away.
func (c *CLI) openBoard(ctx context.Context, opts ...engine.Option) (*boardSession, error) {
	s := c.settings
	sess := &boardSession{}

	var (
		cfg    board.Config
		cards  []board.Card
		seeded bool
	)
	switch s.Store {
	case storeFile:
		f, err := loadBoardFile(s.Board)
		if err != nil {
			return nil, err
		}
		cfg, cards = f.Config, f.Cards

	default:
		st, err := c.openStore(ctx)
		if err != nil {
			return nil, err
		}
		sess.store = st
		b, err := st.Load(ctx, s.BoardID)
		switch {
		case err == nil:
			cfg, cards = b.Config, b.Cards
		case errors.Is(err, errors.ErrCodeBoardNotFound):
			f, ferr := loadBoardFile(s.Board)
			if ferr != nil {
				_ = st.Close()
				return nil, ferr
			}
			cfg, cards, seeded = f.Config, f.Cards, true
		default:
			_ = st.Close()
			return nil, err
		}
	}

	// Overrides shape this session only; the board is saved with its own
	// configuration.
	saved := cfg
	applyConfigOverrides(c.v, &cfg)

	if sess.store != nil {
		sess.sink = store.NewPersister(sess.store, s.BoardID, saved, c.Logger)
	} else {
		sess.sink = &fileSink{path: s.Board, cfg: saved, logger: c.Logger}
	}

	all := append([]engine.Option{engine.WithLogger(c.Logger), engine.WithLayoutChange(sess.sink.OnLayoutChange)}, opts...)
	e, err := engine.New(cfg, all...)
	if err != nil {
		_ = sess.Close()
		return nil, err
	}
	sess.Engine = e
	sess.sink.Attach(e)
	e.Load(cards)

	if seeded {
		c.Logger.Info("seeding board", "id", s.BoardID, "from", s.Board, "cards", len(cards))
		sess.sink.OnLayoutChange(board.ChangeSet{})
	}
	return sess, nil
}

// openStore opens the configured store backend.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	switch c.settings.Store {
	case storeDisk:
		return store.NewDiskStore(c.settings.StoreDir)
	case storeRedis:
		return store.OpenRedisStore(ctx, c.settings.RedisURL, "")
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "store %q has no board list; use --store disk or --store redis", c.settings.Store)
	}
}

// loadBoardFile reads a board file; a missing file is an empty board.
func loadBoardFile(path string) (*boardfile.File, error) {
	f, err := boardfile.Load(path)
	if errors.Is(err, errors.ErrCodeBoardNotFound) {
		if _, ferr := boardfile.FormatFor(path); ferr != nil {
			return nil, ferr
		}
		return &boardfile.File{Config: board.DefaultConfig()}, nil
	}
	return f, err
}

// Close reports the last persistence failure and releases the store.
func (s *boardSession) Close() error {
	var errs []error
	if s.sink != nil {
		errs = append(errs, s.sink.Err())
	}
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	return stderrors.Join(errs...)
}

// closeInto closes the session and joins its error into *err. Deferred by
// commands that hold a session until they return.
func (s *boardSession) closeInto(err *error) {
	*err = stderrors.Join(*err, s.Close())
}

// withBoard runs fn on the configured board and closes it afterwards.
func (c *CLI) withBoard(ctx context.Context, fn func(e *engine.Engine) error, opts ...engine.Option) (err error) {
	sess, err := c.openBoard(ctx, opts...)
	if err != nil {
		return err
	}
	defer sess.closeInto(&err)
	return fn(sess.Engine)
}
