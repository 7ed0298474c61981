package app

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// PluginsPath is the root directory scanned for plugin distributions.
	// Empty disables plugin discovery.
	PluginsPath string

	LogFormat string
	LogLevel  string
}
