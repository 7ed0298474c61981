package bundle

import (
	"reflect"
	"sync"
)

// framework is the module container behind Loader handles. One shared
// instance is lazily created on first Loader construction and survives
// across Loader instances within the process; tests build isolated ones.
type framework struct {
	mu sync.Mutex

	// handlers holds the compiled-in Go builders, keyed by handler name.
	// Append-only; registering twice under one name is a programmer error.
	handlers map[string]*Handler

	// factories holds every registered provider factory, keyed by factory
	// (provider) name.
	factories map[string]*Factory

	// byService maps a service identifier to the factory names registered
	// against it, in registration order.
	byService map[string][]string

	// contracts maps a service identifier to the interface its factories'
	// products must implement. Checked on code-side registrations and on
	// bundle installs alike.
	contracts map[string]reflect.Type

	// bundles maps an installed bundle (manifest file) to the factory
	// names it contributed. Compiled-in factories have no bundle entry.
	bundles map[string][]string
}

func newFramework() *framework {
	return &framework{
		handlers:  make(map[string]*Handler),
		factories: make(map[string]*Factory),
		byService: make(map[string][]string),
		contracts: make(map[string]reflect.Type),
		bundles:   make(map[string][]string),
	}
}

var (
	sharedOnce sync.Once
	shared     *framework
)

// sharedFramework returns the process-wide container, creating it on first
// use.
func sharedFramework() *framework {
	sharedOnce.Do(func() {
		shared = newFramework()
	})
	return shared
}

// removeFactory drops one factory and its service index entries. Caller
// holds fw.mu.
func (fw *framework) removeFactory(name string) {
	factory, ok := fw.factories[name]
	if !ok {
		return
	}
	delete(fw.factories, name)
	for _, service := range factory.Services {
		names := fw.byService[service]
		for i, n := range names {
			if n == name {
				fw.byService[service] = append(names[:i], names[i+1:]...)
				break
			}
		}
		if len(fw.byService[service]) == 0 {
			delete(fw.byService, service)
		}
	}
}
