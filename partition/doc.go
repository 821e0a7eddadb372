// Package partition derives lane membership from a flat work item list.
//
// The engine is a pure transform with no state of its own: every state
// change on the board re-runs Compute over the current projection. The
// core invariant is that every input item lands in exactly one lane bucket,
// with no duplication and no orphaning, and that bucket order is stable
// with respect to input order.
package partition
