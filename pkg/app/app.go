// Package app defines the runtime contract shared by the cmd/* binaries
// (status server, migration runner, CLI).
package app

// Runner represents a runnable application component.
type Runner interface {
	Run() error
}
