// Package filesystem provides the read-only filesystem view used by the
// glob engine.
//
// The engine only ever needs two operations: a Stat that follows symbolic
// links, and a ReadDir that lists one directory. NewOS serves them from the
// operating system; NewAferoFS serves them from any afero.Fs, which is how
// tests build in-memory trees.
package filesystem
