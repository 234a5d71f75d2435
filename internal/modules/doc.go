// Package modules contains the panel's self-contained features.
//
// Each subdirectory is a module that implements the `module.Module` interface.
// Modules are listed in `internal/app/modules.go` and are booted by the
// server at startup.
package modules
