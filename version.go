// Package wren builds FlatBuffers schemas for the Firebird Suite.
//
// The wren binary stages .fbs schema trees, optionally rewrites file names,
// includes and namespaces into PascalCase, and drives the flatc compiler.
package wren

// Version is the current wren release.
const Version = "0.3.0"
