// Package store persists the four curvefit tables.
//
// The tables are keyed by the independent variable x:
//
//	train    x, y1..y4           training curves
//	ideal    x, y1..y50          reference catalog
//	test     x, y                test observations
//	results  x, y, delta_y, ideal_id   classification records
//
// delta_y and ideal_id are NaN for observations that matched no curve.
//
// FileStore keeps one binary table file per table in a directory and
// replaces files atomically. MemStore keeps the tables in memory. Both
// implement Store; the pipeline receives a Store and never opens one itself.
//
// Every error returned by a store wraps errs.ErrStorage.
package store
