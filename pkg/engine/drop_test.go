package engine

import (
	"reflect"
	"testing"

	"github.com/matzehuels/cardboard/pkg/board"
)

func TestClosestPosition(t *testing.T) {
	row := board.Row{ID: "row-1", Cards: []board.Card{
		card("a", 0, 0, 25, 300),
		card("b", 0, 1, 25, 300),
		card("c", 0, 2, 50, 300),
	}}

	tests := []struct {
		x      float64
		want   int
		wantOK bool
	}{
		{-5, 0, true},
		{10, 0, true},
		{12.5, 0, true}, // tie between 0 and 25
		{20, 1, true},
		{37.5, 1, true}, // tie between 25 and 50
		{60, 2, true},
		{75, 2, true}, // tie between 50 and 100
		{80, 0, false},
		{120, 0, false},
	}
	for _, tt := range tests {
		got, ok := ClosestPosition(row, tt.x)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ClosestPosition(%v) = %d, %v; want %d, %v", tt.x, got, ok, tt.want, tt.wantOK)
		}
	}
}

func dropBoard() []board.Card {
	return []board.Card{
		card("X", 0, 0, 50, 300),
		card("W", 0, 1, 50, 300),
		card("P", 1, 0, 30, 300),
		card("Q", 1, 1, 30, 300),
		card("Y", 1, 2, 40, 300),
	}
}

func TestDropOnCardEdgeFromOtherRow(t *testing.T) {
	cfg := board.DefaultConfig()
	cfg.MaxCardsPerRow = 4

	tests := []struct {
		edge Edge
		want []board.CardID
	}{
		{EdgeLeft, []board.CardID{"P", "Q", "X", "Y"}},
		{EdgeRight, []board.CardID{"P", "Q", "Y", "X"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.edge), func(t *testing.T) {
			e, rec := newEngine(t, cfg, dropBoard(), WithGeometry(GridGeometry()))

			res := e.Drop(DropEvent{
				CardID:       "X",
				SourceRowID:  "row-1",
				TargetRowID:  "row-2",
				TargetCardID: "Y",
				Edge:         tt.edge,
				Pointer:      Pointer{X: 90, Y: 1.5},
			})
			if res.Outcome != DropMoved {
				t.Fatalf("Outcome = %s, want %s", res.Outcome, DropMoved)
			}
			rows := e.Rows()
			if got := rowCardIDs(rows)[1]; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("row-2 = %v, want %v", got, tt.want)
			}
			checkRows(t, rows)
			if rec.count() != 1 {
				t.Errorf("callback calls = %d, want 1", rec.count())
			}
		})
	}
}

func TestDropOnRowSurface(t *testing.T) {
	tests := []struct {
		name     string
		card     board.CardID
		x        float64
		want     DropOutcome
		wantRow1 []board.CardID
	}{
		{"reorder to front", "W", 5, DropReordered, []board.CardID{"W", "X"}},
		{"same slot", "X", 5, DropNoOp, []board.CardID{"X", "W"}},
		{"trailing edge", "X", 95, DropRejected, []board.CardID{"X", "W"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newEngine(t, board.DefaultConfig(), dropBoard(), WithGeometry(GridGeometry()))

			res := e.Drop(DropEvent{
				CardID:      tt.card,
				SourceRowID: "row-1",
				TargetRowID: "row-1",
				Pointer:     Pointer{X: tt.x, Y: 0.5},
			})
			if res.Outcome != tt.want {
				t.Errorf("Outcome = %s, want %s", res.Outcome, tt.want)
			}
			if got := rowCardIDs(e.Rows())[0]; !reflect.DeepEqual(got, tt.wantRow1) {
				t.Errorf("row-1 = %v, want %v", got, tt.wantRow1)
			}
		})
	}
}

func TestDropIntoFullRowSwaps(t *testing.T) {
	e, _ := newEngine(t, board.DefaultConfig(), dropBoard(), WithGeometry(GridGeometry()))

	res := e.Drop(DropEvent{
		CardID:      "W",
		SourceRowID: "row-1",
		TargetRowID: "row-2",
		Pointer:     Pointer{X: 28, Y: 1.5},
	})
	if res.Outcome != DropMoved || res.Index != 1 {
		t.Fatalf("Drop() = %s at %d, want moved at 1", res.Outcome, res.Index)
	}
	want := [][]board.CardID{{"X", "Q"}, {"P", "W", "Y"}}
	if got := rowCardIDs(e.Rows()); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestDropBetweenRows(t *testing.T) {
	geom := StaticGeometry{
		"row-1": {Left: 0, Top: 0, Width: 800, Height: 100},
		"row-2": {Left: 0, Top: 150, Width: 800, Height: 100},
	}
	e, rec := newEngine(t, board.DefaultConfig(), dropBoard(), WithGeometry(geom))
	before := e.Rows()

	res := e.Drop(DropEvent{
		CardID:      "X",
		SourceRowID: "row-1",
		TargetRowID: "row-2",
		Pointer:     Pointer{X: 10, Y: 120},
	})
	if res.Outcome != DropBetweenRows || res.RowID != "row-1" {
		t.Errorf("Drop() = %s on %s, want %s on row-1", res.Outcome, res.RowID, DropBetweenRows)
	}
	if !reflect.DeepEqual(before, e.Rows()) || rec.count() != 0 {
		t.Errorf("between-rows drop must not change the board")
	}
}

func TestDropIgnored(t *testing.T) {
	base := DropEvent{CardID: "X", SourceRowID: "row-1", TargetRowID: "row-2", TargetCardID: "Q", Edge: EdgeLeft, Pointer: Pointer{Y: 1.5}}

	tests := []struct {
		name   string
		mutate func(*DropEvent)
		cfg    func(*board.Config)
	}{
		{"no target", func(ev *DropEvent) { ev.TargetRowID = "" }, nil},
		{"unknown card", func(ev *DropEvent) { ev.CardID = "zz" }, nil},
		{"card not in source row", func(ev *DropEvent) { ev.SourceRowID = "row-2" }, nil},
		{"unknown target row", func(ev *DropEvent) { ev.TargetRowID = "row-9" }, nil},
		{"target card elsewhere", func(ev *DropEvent) { ev.TargetCardID = "W" }, nil},
		{"drag disabled", func(*DropEvent) {}, func(c *board.Config) { c.DisableDrag = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := board.DefaultConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			e, rec := newEngine(t, cfg, dropBoard(), WithGeometry(GridGeometry()))
			ev := base
			tt.mutate(&ev)

			if res := e.Drop(ev); res.Outcome != DropIgnored {
				t.Errorf("Outcome = %s, want %s", res.Outcome, DropIgnored)
			}
			if rec.count() != 0 {
				t.Errorf("callback calls = %d, want 0", rec.count())
			}
		})
	}
}

func TestDropWithoutRowGeometry(t *testing.T) {
	e, _ := newEngine(t, board.DefaultConfig(), dropBoard())

	// A card target needs no geometry.
	res := e.Drop(DropEvent{CardID: "Y", SourceRowID: "row-2", TargetRowID: "row-2", TargetCardID: "P", Edge: EdgeLeft})
	if res.Outcome != DropReordered {
		t.Errorf("card target Outcome = %s, want %s", res.Outcome, DropReordered)
	}

	// A bare row surface does.
	res = e.Drop(DropEvent{CardID: "Y", SourceRowID: "row-2", TargetRowID: "row-2", Pointer: Pointer{X: 50}})
	if res.Outcome != DropIgnored {
		t.Errorf("row target Outcome = %s, want %s", res.Outcome, DropIgnored)
	}
}

func TestDragOver(t *testing.T) {
	geom := StaticGeometry{
		"row-1": {Left: 10, Top: 0, Width: 800, Height: 100},
		"row-2": {Left: 10, Top: 150, Width: 800, Height: 100},
	}
	cfg := board.DefaultConfig()
	cfg.DisableCardDropInBetweenRows = false
	e, _ := newEngine(t, cfg, dropBoard(), WithGeometry(geom))

	tests := []struct {
		name   string
		y      float64
		want   RowIndicator
		wantOK bool
	}{
		{"below row-1", 120, RowIndicator{RowID: "row-1", Top: 100, Left: 10, Width: 800}, true},
		{"above row-2", 140, RowIndicator{RowID: "row-2", Top: 150, Left: 10, Width: 800}, true},
		{"below last row", 300, RowIndicator{RowID: "row-2", Top: 250, Left: 10, Width: 800}, true},
		{"inside row", 50, RowIndicator{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.DragOver(Pointer{X: 100, Y: tt.y})
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("DragOver() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}

	def, _ := newEngine(t, board.DefaultConfig(), dropBoard(), WithGeometry(geom))
	if _, ok := def.DragOver(Pointer{Y: 120}); ok {
		t.Errorf("DragOver() should be suppressed when between-row drops are disabled")
	}
}

func TestGeometryProviders(t *testing.T) {
	g := GridGeometry()
	r, ok := g.RowRect("row-3")
	if !ok || r.Top != 2 || r.Width != 100 || !r.Contains(2.5) {
		t.Errorf("GridGeometry row-3 = %+v, %v", r, ok)
	}
	if _, ok := g.RowRect("bogus"); ok {
		t.Errorf("GridGeometry accepted a non-positional id")
	}

	live := NewLiveGeometry()
	live.Set("row-1", Rect{Width: 640, Height: 200})
	if r, ok := live.RowRect("row-1"); !ok || r.Width != 640 || r.Right() != 640 || r.CenterY() != 100 {
		t.Errorf("LiveGeometry row-1 = %+v, %v", r, ok)
	}
	live.Reset()
	if _, ok := live.RowRect("row-1"); ok {
		t.Errorf("Reset() kept row-1")
	}
}
