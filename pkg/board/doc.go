// Package board defines the dashboard data model and the pure layout
// functions that operate on it.
//
// A board is a list of rows; a row is an ordered list of cards that share one
// height and whose width percentages sum to 100. The external representation
// is a flat list of [Card] values carrying their own [Layout]. [BuildRows]
// turns that list into normalised rows and [Cards] flattens them back.
//
// # Layout Builder
//
// [BuildRows] groups cards by declared row, sorts each group by declared
// column and then:
//
//  1. Redistributes widths equally when a row's total deviates from 100 by
//     more than [WidthTolerance] points (layout correction)
//  2. Sets every card's height to the row maximum; cards without a height
//     count as [DefaultCardHeight]
//  3. Re-stamps row and column indices so they are contiguous from 0
//  4. Assigns positional row ids ("row-1", "row-2", ...)
//
// Row ids are positional: they are regenerated whenever a row disappears,
// so they must not be used as durable keys.
//
// # Diff Engine
//
// [DiffGrids] compares two row snapshots and reports the rows and cards
// whose layout changed, including added and removed rows.
// [DiffImproperLayout] reports which input cards were altered by layout
// correction so a host can persist the fix.
//
// All functions in this package are pure: inputs are never mutated.
package board
