// Package diff computes the terminal update operations that reconcile a
// displayed cell grid (front) into a desired one (back).
//
// Generation is a pure function over the two grids. The result is an ordered
// operation list: later operations may rely on the terminal state earlier
// ones establish, so consumers must apply them in sequence. Span operations
// borrow row storage from the back grid and remain valid until that grid's
// next mutation.
//
// Four optimization levels trade scan work for smaller output: LevelNone
// emits one SetCell per differing cell, LevelBasic merges contiguous runs
// into spans, LevelBalanced additionally recognizes vertical scrolling, and
// LevelAggressive currently aliases LevelBalanced.
package diff
