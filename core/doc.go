// Package core defines the shared types used across logz.
//
// Level is an ordered severity with the conventional numeric ranks
// (DEBUG=10 through CRITICAL=50). Each level belongs to a Tier:
// everything below WARNING is informational, WARNING and above is an
// alert. Display tags are a table lookup on the level, never a string
// switch.
//
// Entry is one log event. Entries are pooled via sync.Pool; callers get
// one with GetEntry and return it with PutEntry once every handler has
// consumed it. Handlers in this module are synchronous, so the logger
// always recycles.
//
// Field encodes values into fixed-size numeric slots wherever possible
// so common types never escape to the heap.
package core
