// Package hoardtypes defines core interfaces shared across hoard packages.
// This file contains the service contract and the parameter resolution
// contract the collection manager delegates to.
package hoardtypes

// Service defines the interface for hoard services that provide specific functionality.
// Services are registered and initialized once at startup.
type Service interface {
	Name() string
	Initialize() error
}

// Resolver turns a stored command template into an executable command by
// filling in its parameter placeholders. Errors are returned unchanged to the
// caller of the collection manager.
type Resolver interface {
	Resolve(command Command) (Command, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(command Command) (Command, error)

// Resolve calls f(command).
func (f ResolverFunc) Resolve(command Command) (Command, error) {
	return f(command)
}
