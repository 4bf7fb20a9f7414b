// Package ports defines the interfaces the CLI host depends on, so
// encodings can be swapped without touching command code.
package ports
