// Package application provides application initialization and dependency wiring.
// It builds the asset validator, handlers, router and HTTP server around a
// settings snapshot that the caller constructs once, keeping the main package
// focused on CLI parsing and orchestration.
package application
