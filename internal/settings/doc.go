// Package settings aggregates the operational configuration of the content
// studio into eight categories (ai, resource_monitor, cache, content, asset,
// monitoring, video, integration).
//
// A Manager is built once at startup from the compiled defaults, an optional
// YAML source and a fixed allow-list of environment overrides. It has no
// setters: every accessor is a pure read returning copies, so a single Manager
// can be shared by any number of goroutines without locking.
//
// Lookups never fail. Unknown categories or keys resolve to the caller's
// default, and the two validators (ValidateFileSize, ValidateFileType) reject
// whenever the relevant limit or allow-list is not configured.
package settings
