// Package logger builds the diagnostic logger used by the shell and its CLI.
//
// Diagnostics never go to the session's output streams; user-facing shell
// errors are written by the interpreter itself.
package logger
