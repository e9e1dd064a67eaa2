// Package filehandler provides append-mode file destinations and the
// file sinks of the informational and alert tiers.
//
// Open never creates the parent directory; a missing directory is
// reported as ErrDirNotFound. The file stays open until the destination
// is closed. With Rotation set, writes go through lumberjack and the
// file is rotated by size.
//
// File sinks always carry the level tag. NewTierHandlers returns both
// tiers over one shared destination.
package filehandler
