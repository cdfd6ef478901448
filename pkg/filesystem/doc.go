// Package filesystem provides filesystem implementations for runtimeup.
//
// This package contains implementations of the types.FS interface,
// the standard OS filesystem, a synthfs-backed one that runs file and
// directory creation as synthfs operations, and an afero-backed one used
// by tests.
package filesystem
