// Package gesture implements the pointer-driven drag state machine.
//
// A tracker follows one drag from press-down through drop or cancel and
// produces at most one mutation intent per completed drag. Pointer movement
// must exceed a minimum distance threshold before a press is treated as a
// drag, so plain clicks never produce intents.
//
// Exactly one item may be dragged at a time. During a drag only a transient
// preview position changes; canonical state is untouched until the drop.
package gesture
