// Package wheel lays out a linear list of capsules along the circumference
// of a circle and scrolls them along it, Ferris-wheel style.
//
// # Overview
//
// A [Manager] owns one [QuadrantHelper], which owns one circle point table
// (see package circle). Placement is a table walk: the next capsule's center
// is the first table point after the previous capsule's center whose box
// does not overlap the previous box. Consecutive capsules therefore touch
// without overlapping, and every center is an exact table point.
//
// Scrolling moves capsules by table index steps. The pixel-perfect strategy
// moves the first visible capsule by delta steps and re-runs the placement
// search for the rest. The natural strategy shifts every capsule by the same
// number of steps. Both recycle capsules that left the viewport and
// materialize new ones where a gap opened.
//
// # Host contract
//
// The package never draws anything. A [Host] measures, positions, adds and
// removes views, and a [Recycler] materializes views for data positions.
// package viewport provides an in-memory host.
//
// # Concurrency
//
// A Manager is not safe for concurrent use. Every call runs to completion.
// Callers serving several goroutines wrap it in a mutex (see package session).
package wheel
