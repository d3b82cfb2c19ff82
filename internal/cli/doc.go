// Package cli defines the Cobra command tree for the aip CLI. Each file
// in this package registers one top-level command (register, search,
// delete, etc.) with the root command. Command implementations delegate
// to pkg/aip for the registry protocol and only handle flag parsing,
// I/O formatting, and user interaction.
package cli
