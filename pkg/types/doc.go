// Package types defines the core types and interfaces used throughout runtimeup.
// This includes the immutable runtime and extension specs loaded from
// configuration, the OS descriptor consumed by command synthesis, the outcome
// of a supervised subprocess and the filesystem abstraction.
package types
