package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/oadframe/internal/bundle"
	"github.com/vk/oadframe/internal/ctxlog"
	"github.com/vk/oadframe/internal/plugins"
	"github.com/vk/oadframe/internal/registry"
)

// App encapsulates the framework's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	plugins  *plugins.Loader
	config   *Config
}

// NewApp is the constructor for the main application. A nil loader uses
// the process-wide shared bundle container; tests pass an isolated one.
// With no modules given, all compiled-in model packages are registered.
// Registration failures at startup are programmer errors and panic.
func NewApp(outW io.Writer, appConfig *Config, loader *bundle.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if loader == nil {
		loader = bundle.NewLoader()
	}
	reg := registry.New(loader)

	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		if err := mod.Register(reg); err != nil {
			// A registration conflict between compiled-in modules is a
			// programmer error, not an operator error.
			panic(fmt.Errorf("failed to register core modules: %w", err))
		}
	}
	logger.Debug("All model packages registered.", "count", len(modules))

	var pluginLoader *plugins.Loader
	if appConfig.PluginsPath != "" {
		pluginLoader = plugins.NewLoader(loader, appConfig.PluginsPath)
		if err := pluginLoader.Load(ctx); err != nil {
			panic(fmt.Errorf("failed to load plugins: %w", err))
		}
		logger.Debug("Plugin distributions loaded.",
			"distributions", len(pluginLoader.DistributionNames()),
			"failed_bundles", len(pluginLoader.FailedBundles()))
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		plugins:  pluginLoader,
		config:   appConfig,
	}
}

// Context returns a background context carrying the app's logger.
func (a *App) Context() context.Context {
	return ctxlog.WithLogger(context.Background(), a.logger)
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Plugins returns the plugin loader, nil when plugin discovery is disabled.
func (a *App) Plugins() *plugins.Loader {
	return a.plugins
}
