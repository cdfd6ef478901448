// Package buildcmd synthesizes the version manager's "install version"
// command for a given operating system.
//
// The command is kept as a list of structured arguments until it reaches
// the process boundary. Only then is it serialized to shell text, with
// variable words quoted through mvdan.cc/sh so the result always parses
// as bash.
package buildcmd
