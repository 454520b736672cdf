// Package vm implements the execution core of a Funge-98 machine.
//
// Programs live in a shared 2-D toroidal space (package space) and
// are executed by one or more instruction pointers, each carrying its
// own direction, storage offset, stack-of-stacks and string-mode
// flag. A character-keyed instruction table maps each cell to a total
// state-transition function; the scheduler advances every live IP by
// exactly one instruction per tick, in ascending id order, applying
// spawns and deaths between ticks.
//
// The table is built by NewTable, is injected into the scheduler, and
// stays read-only while the machine runs; extension instruction sets
// attach through Table.Register before the first tick.
package vm
