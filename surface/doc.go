// Package surface is the native callable surface: it holds named modules of
// functions and dispatches host calls to them.
//
// A host locates a module by name through the import table (Import), then
// calls its functions with dynamic arguments. The surface binds those
// arguments to the function's parameters the way the host calling
// convention does (positional-only parameters, keywords, defaults) before
// the function converts them to native types through Args.
//
// Modules are immutable once built, so lookups and calls need no locking.
package surface
