// Package entities provides the core domain types of the callable surface.
// They carry no behavior beyond validation tags and error formatting, and
// are shared by the surface, the host adapters and the CLI.
package entities
