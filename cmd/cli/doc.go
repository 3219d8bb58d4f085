// Package cli constructs the pycomply command-line interface, wiring the
// Cobra root command, configuration loader, and structured logging to the
// compliance checker. It exposes helpers to build reusable application
// instances and to execute the default command as a library.
package cli
