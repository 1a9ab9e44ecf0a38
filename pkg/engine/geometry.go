package engine

import (
	"sync"

	"github.com/matzehuels/cardboard/pkg/board"
)

// Pointer is a pointer position in the host's pixel coordinates.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a row's bounding box in the same coordinates as [Pointer].
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Right() float64   { return r.Left + r.Width }
func (r Rect) Bottom() float64  { return r.Top + r.Height }
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Contains reports whether y lies within the vertical extent of r, edges
// included.
func (r Rect) Contains(y float64) bool {
	return y >= r.Top && y <= r.Bottom()
}

// Geometry supplies row bounding boxes measured by the presentation layer.
// The engine only reads it; a row without a box reports false.
type Geometry interface {
	RowRect(id board.RowID) (Rect, bool)
}

// GeometryFunc adapts a function to [Geometry].
type GeometryFunc func(id board.RowID) (Rect, bool)

func (f GeometryFunc) RowRect(id board.RowID) (Rect, bool) { return f(id) }

// StaticGeometry is a fixed map of row boxes.
type StaticGeometry map[board.RowID]Rect

func (g StaticGeometry) RowRect(id board.RowID) (Rect, bool) {
	r, ok := g[id]
	return r, ok
}

// GridGeometry lays rows out as a unit grid: row i spans y in [i, i+1) and
// x in [0, 100), so pointer X reads directly as a percentage. Hosts without
// real measurements (CLI, HTTP) use it.
func GridGeometry() Geometry {
	return GeometryFunc(func(id board.RowID) (Rect, bool) {
		i, ok := board.RowIndex(id)
		if !ok {
			return Rect{}, false
		}
		return Rect{Left: 0, Top: float64(i), Width: 100, Height: 1}, true
	})
}

// LiveGeometry is a concurrency-safe, updatable set of row boxes for hosts
// that measure rows while the engine runs.
type LiveGeometry struct {
	mu    sync.RWMutex
	rects map[board.RowID]Rect
}

// NewLiveGeometry returns an empty LiveGeometry.
func NewLiveGeometry() *LiveGeometry {
	return &LiveGeometry{rects: map[board.RowID]Rect{}}
}

// Set records the box of a row.
func (g *LiveGeometry) Set(id board.RowID, r Rect) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rects[id] = r
}

// Reset forgets every row box, typically after rows were renumbered.
func (g *LiveGeometry) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.rects)
}

func (g *LiveGeometry) RowRect(id board.RowID) (Rect, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rects[id]
	return r, ok
}
