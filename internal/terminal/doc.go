// Package terminal guards the controlling terminal for the lifetime of a
// full-screen session.
//
// A Session switches the terminal into raw mode, the alternate screen and
// mouse reporting, and switches all three back on Exit. The package level
// Reset performs the same restoration without touching any Session state so
// it can run from a recovered panic on any goroutine.
package terminal
