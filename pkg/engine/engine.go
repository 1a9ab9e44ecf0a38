package engine

import (
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardboard/pkg/board"
	"github.com/matzehuels/cardboard/pkg/observability"
)

// Option configures an [Engine] at construction.
type Option func(*Engine)

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *log.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithGeometry sets the provider of row bounding boxes used by width
// resizing and drop resolution.
func WithGeometry(g Geometry) Option { return func(e *Engine) { e.geometry = g } }

// WithWidthGeometry sets a provider read only by width resizing, for hosts
// that know a row's pixel width but not its position. Drop resolution keeps
// using the [WithGeometry] provider. The default is that provider.
func WithWidthGeometry(g Geometry) Option { return func(e *Engine) { e.widths = g } }

// WithLayoutChange registers the callback invoked once per committed change.
// It is never called with an empty change set or during a drag.
func WithLayoutChange(fn func(board.ChangeSet)) Option {
	return func(e *Engine) { e.onChange = fn }
}

// WithHooks overrides the globally registered [observability.EngineHooks].
func WithHooks(h observability.EngineHooks) Option { return func(e *Engine) { e.hooks = h } }

// Engine is the stateful layout engine for one board.
type Engine struct {
	cfg      board.Config
	logger   *log.Logger
	geometry Geometry
	widths   Geometry
	onChange func(board.ChangeSet)
	hooks    observability.EngineHooks

	mu     sync.Mutex
	rows   []board.Row
	cards  map[board.CardID]board.Card
	loaded bool
	width  *widthSession
	height *heightSession
}

// New returns an empty engine. It fails with INVALID_CONFIG when cfg does
// not validate.
func New(cfg board.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:   cfg,
		cards: map[board.CardID]board.Card{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if e.geometry == nil {
		e.geometry = StaticGeometry{}
	}
	if e.widths == nil {
		e.widths = e.geometry
	}
	if e.hooks == nil {
		e.hooks = observability.Engine()
	}
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() board.Config { return e.cfg }

// Load replaces the board with cards, normalised by [board.BuildRows].
//
// The first Load reports only layout correction: when it is enabled and
// normalisation altered any input card, the change set holds every row and
// only the corrected cards, so the host can persist the fix. A later Load
// also reports the difference from the board it replaces, merged with any
// correction into one change set. The result is passed to the change
// callback once when it is non-empty. Any resize session is discarded.
func (e *Engine) Load(cards []board.Card) board.ChangeSet {
	rows := board.BuildRows(cards)
	corrected := 0

	e.mu.Lock()
	var report board.ChangeSet
	if e.loaded {
		report = board.DiffGrids(e.rows, rows, e.cards)
		report.UpdatedRows = board.CloneRows(report.UpdatedRows)
	}
	e.rows = rows
	e.cards = board.CardsMap(rows)
	e.loaded = true
	e.width, e.height = nil, nil

	if e.cfg.EnableLayoutCorrection {
		if fixed := board.DiffImproperLayout(cards, e.cards); len(fixed) > 0 {
			corrected = len(fixed)
			report = mergeChanges(report, board.ChangeSet{UpdatedRows: board.CloneRows(rows), UpdatedCards: fixed})
		}
	}
	e.mu.Unlock()

	e.logger.Debug("board loaded", "cards", len(cards), "rows", len(rows))
	if corrected > 0 {
		e.logger.Warn("layout corrected on load", "cards", corrected)
		e.hooks.OnLayoutCorrection(corrected)
	}
	e.notify("load", report)
	return report
}

// mergeChanges returns a followed by the rows and cards of b not already in
// a. An entry of b replaces the entry of a with the same id.
func mergeChanges(a, b board.ChangeSet) board.ChangeSet {
	out := board.ChangeSet{}
	for _, r := range a.UpdatedRows {
		if !slices.ContainsFunc(b.UpdatedRows, func(o board.Row) bool { return o.ID == r.ID }) {
			out.UpdatedRows = append(out.UpdatedRows, r)
		}
	}
	out.UpdatedRows = append(out.UpdatedRows, b.UpdatedRows...)
	for _, c := range a.UpdatedCards {
		if !slices.ContainsFunc(b.UpdatedCards, func(o board.Card) bool { return o.ID == c.ID }) {
			out.UpdatedCards = append(out.UpdatedCards, c)
		}
	}
	out.UpdatedCards = append(out.UpdatedCards, b.UpdatedCards...)
	return out
}

// Rows returns a copy of the current rows.
func (e *Engine) Rows() []board.Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	return board.CloneRows(e.rows)
}

// Cards returns the current board as a flat card list in row then column
// order, the form hosts persist.
func (e *Engine) Cards() []board.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	return board.Cards(e.rows)
}

// FindRow returns a copy of the row with the given id.
func (e *Engine) FindRow(id board.RowID) (board.Row, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := rowIndex(e.rows, id)
	if i < 0 {
		return board.Row{}, false
	}
	return e.rows[i].Clone(), true
}

// FindCard returns the card with the given id.
func (e *Engine) FindCard(id board.CardID) (board.Card, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.cards[id]
	return c, ok
}

// update runs fn on a copy of the rows under the lock and commits its result.
// fn returns false to signal a no-op.
func (e *Engine) update(op string, fn func(rows []board.Row) ([]board.Row, bool)) board.ChangeSet {
	e.mu.Lock()
	next, ok := fn(board.CloneRows(e.rows))
	var changes board.ChangeSet
	if ok {
		changes = e.commitLocked(next)
	}
	e.mu.Unlock()

	if !ok {
		e.logger.Debug("ignored", "op", op)
	}
	e.notify(op, changes)
	return changes
}

// commitLocked diffs next against the current snapshot and replaces it.
func (e *Engine) commitLocked(next []board.Row) board.ChangeSet {
	changes := board.DiffGrids(e.rows, next, e.cards)
	changes.UpdatedRows = board.CloneRows(changes.UpdatedRows)
	e.rows = next
	e.cards = board.CardsMap(next)
	return changes
}

func (e *Engine) notify(op string, changes board.ChangeSet) {
	if changes.Empty() {
		return
	}
	e.logger.Debug("layout changed", "op", op, "rows", len(changes.UpdatedRows), "cards", len(changes.UpdatedCards))
	e.hooks.OnCommit(op, len(changes.UpdatedRows), len(changes.UpdatedCards))
	if e.onChange != nil {
		e.onChange(changes)
	}
}

func rowIndex(rows []board.Row, id board.RowID) int {
	for i, r := range rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}
