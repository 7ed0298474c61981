// Package app wires the framework together: logger construction, core
// model registration, plugin discovery and loading, and the operations the
// CLI exposes (listing providers and plugins, generating configuration
// files, running problems).
package app
