// Package pkg provides the core libraries for Cardboard dashboard layouts.
//
// # Overview
//
// Cardboard arranges dashboard cards in rows. Every row's card widths sum to
// 100 percent, every card in a row shares the row's height, and rows hold at
// most a configured number of cards. The pkg directory is organized into four
// main areas:
//
//  1. [board] and [engine] - Domain logic (row model, mutations, gestures)
//  2. [store] and [boardfile] - Persistence (board files, disk, Redis)
//  3. [render] and [server] - Outer surfaces (text, DOT, SVG, HTTP)
//  4. [errors] and [observability] - Shared error codes and hooks
//
// # Architecture
//
// The typical data flow through Cardboard:
//
//	Flat card list (board file or store)
//	         ↓
//	    [board] package (group into rows, correct widths and heights)
//	         ↓
//	    [engine] package (mutations, drag-and-drop, resize gestures)
//	         ↓
//	    ChangeSet → layout-change callback → [store] Persister
//	         ↓
//	    [render] text / DOT / SVG, [server] JSON
//
// # Quick Start
//
// Load a board and move a card:
//
//	import (
//	    "github.com/matzehuels/cardboard/pkg/board"
//	    "github.com/matzehuels/cardboard/pkg/engine"
//	)
//
//	// 1. Create the engine
//	e, _ := engine.New(board.DefaultConfig(), engine.WithLayoutChange(func(c board.ChangeSet) {
//	    fmt.Println(len(c.UpdatedCards), "cards changed")
//	}))
//
//	// 2. Load the flat card list; malformed widths are corrected
//	e.Load(cards)
//
//	// 3. Move a card into the first row
//	e.MoveCard("users", "row-2", "row-1", 1)
//
//	// 4. Render the rows
//	fmt.Println(render.Text(e.Rows()))
//
// # Main Packages
//
// ## Domain Logic
//
// [board] - Cards, rows, configuration and change sets. [board.BuildRows]
// groups a flat card list into rows and repairs widths that do not sum to
// 100; [board.DiffGrids] computes what a mutation changed.
//
// [engine] - The stateful layout engine. Mutations (reorder, move, add,
// delete, update), drop resolution and the width and height resize sessions
// all report a [board.ChangeSet] to the layout-change callback.
//
// ## Persistence
//
// [boardfile] - TOML and JSON board files.
//
// [store] - Named boards on disk (diskv) or in Redis, plus a Persister that
// saves a board whenever the engine reports a change.
//
// ## Surfaces
//
// [render] - Terminal boxes (lipgloss), Graphviz DOT and SVG.
//
// [server] - JSON HTTP API over one engine (chi).
//
// ## Shared
//
// [errors] - Coded errors with HTTP status mapping and input validation.
//
// [observability] - Hook interfaces for engine, store and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/engine/...      # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [board]: https://pkg.go.dev/github.com/matzehuels/cardboard/pkg/board
// [engine]: https://pkg.go.dev/github.com/matzehuels/cardboard/pkg/engine
// [store]: https://pkg.go.dev/github.com/matzehuels/cardboard/pkg/store
// [boardfile]: https://pkg.go.dev/github.com/matzehuels/cardboard/pkg/boardfile
// [render]: https://pkg.go.dev/github.com/matzehuels/cardboard/pkg/render
// [server]: https://pkg.go.dev/github.com/matzehuels/cardboard/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/cardboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cardboard/pkg/observability
package pkg
