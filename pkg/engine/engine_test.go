package engine

import (
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/matzehuels/cardboard/pkg/board"
	"github.com/matzehuels/cardboard/pkg/errors"
)

func card(id string, row, col int, w, h float64) board.Card {
	return board.Card{ID: board.CardID(id), Layout: board.Layout{Row: row, Col: col, WidthPercentage: w, Height: h}}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

type recorder struct {
	mu    sync.Mutex
	calls []board.ChangeSet
}

func (r *recorder) record(c board.ChangeSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newEngine(t *testing.T, cfg board.Config, cards []board.Card, opts ...Option) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	e, err := New(cfg, append(opts, WithLayoutChange(rec.record))...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	e.Load(cards)
	rec.calls = nil
	return e, rec
}

func rowCardIDs(rows []board.Row) [][]board.CardID {
	out := make([][]board.CardID, len(rows))
	for i, r := range rows {
		for _, c := range r.Cards {
			out[i] = append(out[i], c.ID)
		}
	}
	return out
}

func changedIDs(c board.ChangeSet) []board.CardID {
	var out []board.CardID
	for _, card := range c.UpdatedCards {
		out = append(out, card.ID)
	}
	return out
}

// checkRows asserts the structural invariants every settled board holds.
func checkRows(t *testing.T, rows []board.Row) {
	t.Helper()
	for i, r := range rows {
		if r.ID != board.RowIDFor(i) {
			t.Errorf("rows[%d].ID = %q, want %q", i, r.ID, board.RowIDFor(i))
		}
		if len(r.Cards) == 0 {
			t.Errorf("%s is empty", r.ID)
			continue
		}
		if sum := board.SumWidths(r.Cards); !approx(sum, 100) {
			t.Errorf("%s widths sum to %v, want 100", r.ID, sum)
		}
		for j, c := range r.Cards {
			if c.Layout.Row != i || c.Layout.Col != j {
				t.Errorf("%s card %s at (%d,%d), want (%d,%d)", r.ID, c.ID, c.Layout.Row, c.Layout.Col, i, j)
			}
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := board.DefaultConfig()
	cfg.MaxCardsPerRow = 0

	_, err := New(cfg)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("New() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestLoadReportsLayoutCorrection(t *testing.T) {
	cards := []board.Card{
		card("A", 0, 0, 60, 200),
		card("B", 0, 1, 60, 300),
		card("C", 1, 0, 100, 300),
	}

	t.Run("enabled", func(t *testing.T) {
		rec := &recorder{}
		e, err := New(board.DefaultConfig(), WithLayoutChange(rec.record))
		if err != nil {
			t.Fatal(err)
		}

		report := e.Load(cards)
		if got := changedIDs(report); !reflect.DeepEqual(got, []board.CardID{"A", "B"}) {
			t.Errorf("corrected = %v, want [A B]", got)
		}
		if len(report.UpdatedRows) != 2 {
			t.Errorf("len(UpdatedRows) = %d, want all 2 rows", len(report.UpdatedRows))
		}
		if rec.count() != 1 {
			t.Errorf("callback calls = %d, want 1", rec.count())
		}
		for _, c := range report.UpdatedCards {
			if !approx(c.Layout.WidthPercentage, 50) || c.Layout.Height != 300 {
				t.Errorf("card %s layout = %+v, want width 50 height 300", c.ID, c.Layout)
			}
		}
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := board.DefaultConfig()
		cfg.EnableLayoutCorrection = false
		rec := &recorder{}
		e, _ := New(cfg, WithLayoutChange(rec.record))

		if report := e.Load(cards); !report.Empty() {
			t.Errorf("Load() = %+v, want empty", report)
		}
		if rec.count() != 0 {
			t.Errorf("callback calls = %d, want 0", rec.count())
		}
		checkRows(t, e.Rows())
	})
}

func TestLoadIdempotent(t *testing.T) {
	cards := []board.Card{
		card("a", 0, 0, 40, 300),
		card("b", 0, 1, 60, 300),
		card("c", 1, 0, 100, 420),
	}
	e, _ := newEngine(t, board.DefaultConfig(), cards)
	first := e.Rows()

	e.Load(cards)
	if !reflect.DeepEqual(first, e.Rows()) {
		t.Errorf("second Load produced different rows:\n%v\n%v", first, e.Rows())
	}
}

func TestReloadReportsDifference(t *testing.T) {
	tests := []struct {
		name      string
		first     []board.Card
		reload    []board.Card
		wantCards []board.CardID
		wantRows  []board.RowID
	}{
		{
			name:      "card joins row",
			first:     []board.Card{card("A", 0, 0, 100, 300)},
			reload:    []board.Card{card("A", 0, 0, 50, 300), card("B", 0, 1, 50, 300)},
			wantCards: []board.CardID{"A", "B"},
			wantRows:  []board.RowID{"row-1"},
		},
		{
			name:      "row removed",
			first:     []board.Card{card("A", 0, 0, 100, 300), card("B", 1, 0, 100, 300)},
			reload:    []board.Card{card("A", 0, 0, 100, 300)},
			wantRows:  []board.RowID{"row-2"},
			wantCards: nil,
		},
		{
			name:      "malformed reload merges correction",
			first:     []board.Card{card("A", 0, 0, 60, 300), card("B", 0, 1, 60, 300)},
			reload:    []board.Card{card("A", 0, 0, 60, 300), card("B", 0, 1, 60, 300)},
			wantCards: []board.CardID{"A", "B"},
			wantRows:  []board.RowID{"row-1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newEngine(t, board.DefaultConfig(), tt.first)

			report := e.Load(tt.reload)
			if got := changedIDs(report); !reflect.DeepEqual(got, tt.wantCards) {
				t.Errorf("UpdatedCards = %v, want %v", got, tt.wantCards)
			}
			var rows []board.RowID
			for _, r := range report.UpdatedRows {
				rows = append(rows, r.ID)
			}
			if !reflect.DeepEqual(rows, tt.wantRows) {
				t.Errorf("UpdatedRows = %v, want %v", rows, tt.wantRows)
			}
			if rec.count() != 1 {
				t.Errorf("callback calls = %d, want 1", rec.count())
			}
		})
	}
}

func TestWidthGeometryIsNotUsedForDrops(t *testing.T) {
	widths := NewLiveGeometry()
	e, _ := newEngine(t, board.DefaultConfig(), dropBoard(),
		WithGeometry(GridGeometry()), WithWidthGeometry(widths))

	widths.Set("row-1", Rect{Width: 800})
	h := e.WidthHandle("row-1", 0)
	if err := h.DragStart(Pointer{}); err != nil {
		t.Fatal(err)
	}
	h.Drop(Pointer{X: 80})
	if row, _ := e.FindRow("row-1"); !approx(row.Cards[0].Layout.WidthPercentage, 60) {
		t.Errorf("X width = %v, want 60", row.Cards[0].Layout.WidthPercentage)
	}

	res := e.Drop(DropEvent{CardID: "Y", SourceRowID: "row-2", TargetRowID: "row-1", TargetCardID: "W", Edge: EdgeLeft, Pointer: Pointer{X: 50, Y: 0.5}})
	if res.Outcome != DropMoved {
		t.Errorf("Drop() after width resize = %s, want %s", res.Outcome, DropMoved)
	}
}

func TestReorderCard(t *testing.T) {
	cards := []board.Card{
		card("a", 0, 0, 20, 300),
		card("b", 0, 1, 30, 300),
		card("c", 0, 2, 50, 300),
	}

	tests := []struct {
		name     string
		row      board.RowID
		from, to int
		wantIDs  []board.CardID
		wantCall bool
	}{
		{"first to last", "row-1", 0, 2, []board.CardID{"b", "c", "a"}, true},
		{"last to first", "row-1", 2, 0, []board.CardID{"c", "a", "b"}, true},
		{"append", "row-1", 0, board.Append, []board.CardID{"b", "c", "a"}, true},
		{"same index", "row-1", 1, 1, []board.CardID{"a", "b", "c"}, false},
		{"bad from", "row-1", 5, 0, []board.CardID{"a", "b", "c"}, false},
		{"unknown row", "row-9", 0, 2, []board.CardID{"a", "b", "c"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newEngine(t, board.DefaultConfig(), cards)

			changes := e.ReorderCard(tt.row, tt.from, tt.to)
			rows := e.Rows()
			if got := rowCardIDs(rows)[0]; !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("order = %v, want %v", got, tt.wantIDs)
			}
			if (rec.count() == 1) != tt.wantCall {
				t.Errorf("callback calls = %d, want call %v", rec.count(), tt.wantCall)
			}
			if changes.Empty() == tt.wantCall {
				t.Errorf("ReorderCard() empty = %v", changes.Empty())
			}
			checkRows(t, rows)

			// Widths travel with their cards.
			for _, c := range rows[0].Cards {
				orig := map[board.CardID]float64{"a": 20, "b": 30, "c": 50}[c.ID]
				if !approx(c.Layout.WidthPercentage, orig) {
					t.Errorf("card %s width = %v, want %v", c.ID, c.Layout.WidthPercentage, orig)
				}
			}
		})
	}
}

func TestMoveCardDisplacementSwap(t *testing.T) {
	cards := []board.Card{
		card("C1", 0, 0, 50, 300),
		card("C2", 0, 1, 50, 300),
		card("D1", 1, 0, 30, 400),
		card("D2", 1, 1, 30, 400),
		card("D3", 1, 2, 40, 400),
	}
	e, rec := newEngine(t, board.DefaultConfig(), cards)

	changes := e.MoveCard("C1", "row-1", "row-2", 0)

	rows := e.Rows()
	want := [][]board.CardID{{"D1", "C2"}, {"C1", "D2", "D3"}}
	if got := rowCardIDs(rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	checkRows(t, rows)

	d1 := rows[0].Cards[0]
	if !approx(d1.Layout.WidthPercentage, 50) || d1.Layout.Height != 300 {
		t.Errorf("D1 = %+v, want width 50 height 300", d1.Layout)
	}
	c1 := rows[1].Cards[0]
	if !approx(c1.Layout.WidthPercentage, 30) || c1.Layout.Height != 400 {
		t.Errorf("C1 = %+v, want width 30 height 400", c1.Layout)
	}
	if got := changedIDs(changes); !reflect.DeepEqual(got, []board.CardID{"D1", "C1"}) {
		t.Errorf("changed = %v, want [D1 C1]", got)
	}
	if rec.count() != 1 {
		t.Errorf("callback calls = %d, want 1", rec.count())
	}
}

func TestMoveCardIntoFullRowOutOfRange(t *testing.T) {
	cards := []board.Card{
		card("x", 0, 0, 100, 300),
		card("a", 1, 0, 30, 300),
		card("b", 1, 1, 30, 300),
		card("c", 1, 2, 40, 300),
	}
	e, rec := newEngine(t, board.DefaultConfig(), cards)
	before := e.Rows()

	for _, pos := range []int{board.Append, 3} {
		if changes := e.MoveCard("x", "row-1", "row-2", pos); !changes.Empty() {
			t.Errorf("MoveCard(pos=%d) = %+v, want no-op", pos, changes)
		}
	}
	if !reflect.DeepEqual(before, e.Rows()) {
		t.Errorf("rows changed")
	}
	if rec.count() != 0 {
		t.Errorf("callback calls = %d, want 0", rec.count())
	}
}

func TestMoveCardRemovesEmptySourceRow(t *testing.T) {
	cards := []board.Card{
		card("a", 0, 0, 100, 300),
		card("b", 1, 0, 100, 400),
		card("c", 2, 0, 100, 300),
	}
	e, _ := newEngine(t, board.DefaultConfig(), cards)

	changes := e.MoveCard("a", "row-1", "row-2", board.Append)

	rows := e.Rows()
	want := [][]board.CardID{{"b", "a"}, {"c"}}
	if got := rowCardIDs(rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	checkRows(t, rows)

	b, a := rows[0].Cards[0], rows[0].Cards[1]
	if !approx(a.Layout.WidthPercentage, board.MaxCardWidth) || !approx(b.Layout.WidthPercentage, 10) {
		t.Errorf("widths = %v/%v, want 10/90", b.Layout.WidthPercentage, a.Layout.WidthPercentage)
	}
	if a.Layout.Height != 400 {
		t.Errorf("moved card height = %v, want target row height 400", a.Layout.Height)
	}

	var removed bool
	for _, r := range changes.UpdatedRows {
		if r.ID == "row-3" {
			removed = true
		}
	}
	if !removed {
		t.Errorf("UpdatedRows should report the vanished row-3")
	}
}

func TestMoveCardDeclaredWidthShare(t *testing.T) {
	cards := []board.Card{
		card("m", 0, 0, 20, 300),
		card("n", 0, 1, 80, 300),
		card("a", 1, 0, 60, 300),
		card("b", 1, 1, 40, 300),
	}
	e, _ := newEngine(t, board.DefaultConfig(), cards)

	e.MoveCard("m", "row-1", "row-2", 1)

	rows := e.Rows()
	checkRows(t, rows)
	got := rows[1].Cards
	wantIDs := []board.CardID{"a", "m", "b"}
	wantW := []float64{48, 20, 32}
	for i, c := range got {
		if c.ID != wantIDs[i] || !approx(c.Layout.WidthPercentage, wantW[i]) {
			t.Errorf("[%d] = %s %v, want %s %v", i, c.ID, c.Layout.WidthPercentage, wantIDs[i], wantW[i])
		}
	}
	if n := rows[0].Cards[0]; !approx(n.Layout.WidthPercentage, 100) {
		t.Errorf("source row remainder width = %v, want 100", n.Layout.WidthPercentage)
	}
}

func TestMoveCardWithinRowReorders(t *testing.T) {
	cards := []board.Card{
		card("a", 0, 0, 50, 300),
		card("b", 0, 1, 50, 300),
	}
	e, _ := newEngine(t, board.DefaultConfig(), cards)

	e.MoveCard("a", "row-1", "row-1", board.Append)
	if got := rowCardIDs(e.Rows())[0]; !reflect.DeepEqual(got, []board.CardID{"b", "a"}) {
		t.Errorf("order = %v, want [b a]", got)
	}
}

func TestMoveCardUnknownIDs(t *testing.T) {
	cards := []board.Card{
		card("a", 0, 0, 100, 300),
		card("b", 1, 0, 100, 300),
	}
	tests := []struct {
		name     string
		id       board.CardID
		src, dst board.RowID
	}{
		{"unknown card", "zz", "row-1", "row-2"},
		{"card not in source", "b", "row-1", "row-2"},
		{"unknown source", "a", "row-7", "row-2"},
		{"unknown target", "a", "row-1", "row-7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newEngine(t, board.DefaultConfig(), cards)
			if changes := e.MoveCard(tt.id, tt.src, tt.dst, 0); !changes.Empty() {
				t.Errorf("MoveCard() = %+v, want empty", changes)
			}
			if rec.count() != 0 {
				t.Errorf("callback calls = %d, want 0", rec.count())
			}
		})
	}
}

func TestAddCard(t *testing.T) {
	base := []board.Card{
		card("a", 0, 0, 100, 300),
		card("b", 1, 0, 30, 400),
		card("c", 1, 1, 30, 400),
		card("d", 1, 2, 40, 400),
	}

	t.Run("new row", func(t *testing.T) {
		e, rec := newEngine(t, board.DefaultConfig(), base)
		changes := e.AddCard("", board.Card{ID: "n", Content: board.Content{"title": "New"}})

		rows := e.Rows()
		if len(rows) != 3 {
			t.Fatalf("len(rows) = %d, want 3", len(rows))
		}
		checkRows(t, rows)
		n := rows[2].Cards[0]
		if n.Layout.Height != board.DefaultCardHeight || !approx(n.Layout.WidthPercentage, 100) {
			t.Errorf("new card layout = %+v", n.Layout)
		}
		if got := changedIDs(changes); !reflect.DeepEqual(got, []board.CardID{"n"}) {
			t.Errorf("changed = %v, want [n]", got)
		}
		if rec.count() != 1 {
			t.Errorf("callback calls = %d, want 1", rec.count())
		}
	})

	t.Run("single card row", func(t *testing.T) {
		e, _ := newEngine(t, board.DefaultConfig(), base)
		e.AddCard("row-1", card("n", 0, 0, 30, 999))

		row, _ := e.FindRow("row-1")
		checkRows(t, []board.Row{row})
		if a := row.Cards[0]; !approx(a.Layout.WidthPercentage, 70) {
			t.Errorf("existing width = %v, want 70", a.Layout.WidthPercentage)
		}
		if n := row.Cards[1]; !approx(n.Layout.WidthPercentage, 30) || n.Layout.Height != 300 {
			t.Errorf("new card layout = %+v, want width 30 height 300", n.Layout)
		}
	})

	noops := []struct {
		name   string
		mutate func(*board.Config)
		row    board.RowID
		id     board.CardID
	}{
		{"full row", func(*board.Config) {}, "row-2", "n"},
		{"duplicate id", func(*board.Config) {}, "row-1", "b"},
		{"empty id", func(*board.Config) {}, "row-1", ""},
		{"unknown row", func(*board.Config) {}, "row-5", "n"},
		{"disabled", func(c *board.Config) { c.DisableAddCard = true }, "", "n"},
	}
	for _, tt := range noops {
		t.Run(tt.name, func(t *testing.T) {
			cfg := board.DefaultConfig()
			tt.mutate(&cfg)
			e, rec := newEngine(t, cfg, base)
			before := e.Rows()

			if changes := e.AddCard(tt.row, board.Card{ID: tt.id}); !changes.Empty() {
				t.Errorf("AddCard() = %+v, want empty", changes)
			}
			if !reflect.DeepEqual(before, e.Rows()) || rec.count() != 0 {
				t.Errorf("AddCard() should not change anything")
			}
		})
	}
}

func TestDeleteCardRenumbersRows(t *testing.T) {
	cards := []board.Card{
		card("a", 0, 0, 100, 300),
		card("only", 1, 0, 100, 300),
		card("x", 2, 0, 50, 300),
		card("y", 2, 1, 50, 300),
	}
	e, rec := newEngine(t, board.DefaultConfig(), cards)

	changes := e.DeleteCard("only", "row-2")

	rows := e.Rows()
	want := [][]board.CardID{{"a"}, {"x", "y"}}
	if got := rowCardIDs(rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	checkRows(t, rows)
	for _, c := range rows[1].Cards {
		if c.Layout.Row != 1 {
			t.Errorf("card %s row = %d, want 1", c.ID, c.Layout.Row)
		}
	}
	if _, ok := e.FindRow("row-3"); ok {
		t.Errorf("row-3 should no longer exist")
	}
	if _, ok := e.FindCard("only"); ok {
		t.Errorf("deleted card still indexed")
	}
	if got := changedIDs(changes); !reflect.DeepEqual(got, []board.CardID{"x", "y"}) {
		t.Errorf("changed = %v, want [x y]", got)
	}
	if rec.count() != 1 {
		t.Errorf("callback calls = %d, want 1", rec.count())
	}
}

func TestDeleteCardRescalesRow(t *testing.T) {
	cards := []board.Card{
		card("a", 0, 0, 20, 300),
		card("b", 0, 1, 30, 300),
		card("c", 0, 2, 50, 300),
	}
	e, _ := newEngine(t, board.DefaultConfig(), cards)

	e.DeleteCard("b", "row-1")

	row, _ := e.FindRow("row-1")
	checkRows(t, []board.Row{row})
	if got := row.Cards[0].Layout.WidthPercentage; !approx(got, 100*20.0/70) {
		t.Errorf("a width = %v, want %v", got, 100*20.0/70)
	}

	if changes := e.DeleteCard("b", "row-1"); !changes.Empty() {
		t.Errorf("second delete = %+v, want empty", changes)
	}
}

func TestUpdateCard(t *testing.T) {
	cards := []board.Card{
		card("a", 0, 0, 50, 300),
		card("b", 0, 1, 50, 300),
	}
	e, rec := newEngine(t, board.DefaultConfig(), cards)

	upd := card("ignored", 7, 7, 50, 300)
	upd.Content = board.Content{"title": "Revenue"}
	changes := e.UpdateCard("b", upd)

	got, ok := e.FindCard("b")
	if !ok {
		t.Fatal("card b missing")
	}
	if got.Title() != "Revenue" {
		t.Errorf("Title() = %q, want Revenue", got.Title())
	}
	if got.Layout.Row != 0 || got.Layout.Col != 1 {
		t.Errorf("layout = %+v, want re-stamped (0,1)", got.Layout)
	}
	if ids := changedIDs(changes); !reflect.DeepEqual(ids, []board.CardID{"b"}) {
		t.Errorf("changed = %v, want [b]", ids)
	}
	if len(changes.UpdatedRows) != 1 || changes.UpdatedRows[0].ID != "row-1" {
		t.Errorf("UpdatedRows = %v, want [row-1]", changes.UpdatedRows)
	}
	if rec.count() != 1 {
		t.Errorf("callback calls = %d, want 1", rec.count())
	}

	if changes := e.UpdateCard("nope", upd); !changes.Empty() {
		t.Errorf("UpdateCard(unknown) = %+v, want empty", changes)
	}
}

func TestCallbackMayQueryEngine(t *testing.T) {
	var e *Engine
	var seen int
	e, err := New(board.DefaultConfig(), WithLayoutChange(func(board.ChangeSet) {
		seen = len(e.Cards())
	}))
	if err != nil {
		t.Fatal(err)
	}
	e.AddCard("", board.Card{ID: "a"})
	if seen != 1 {
		t.Errorf("callback saw %d cards, want 1", seen)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	e, _ := newEngine(t, board.DefaultConfig(), []board.Card{card("a", 0, 0, 100, 300)})

	rows := e.Rows()
	rows[0].Cards[0].Layout.WidthPercentage = 1

	if row, _ := e.FindRow("row-1"); row.Cards[0].Layout.WidthPercentage != 100 {
		t.Errorf("engine state changed through a snapshot")
	}
}

func TestConcurrentMutations(t *testing.T) {
	e, _ := newEngine(t, board.DefaultConfig(), []board.Card{
		card("a", 0, 0, 50, 300),
		card("b", 0, 1, 50, 300),
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				e.ReorderCard("row-1", 0, 1)
				_ = e.Rows()
			}
		}()
	}
	wg.Wait()
	checkRows(t, e.Rows())
}
