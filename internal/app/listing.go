package app

import (
	"fmt"
	"text/tabwriter"

	"github.com/vk/oadframe/internal/bundle"
)

// ListProviders writes a table of all registered services and their
// providers, with domain and description.
func (a *App) ListProviders() error {
	loader := a.registry.Loader()
	w := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tPROVIDER\tDOMAIN\tDESCRIPTION")

	for _, service := range loader.ServiceNames() {
		for _, providerID := range a.registry.GetProviderIDs(service) {
			props, err := loader.GetProperties(providerID)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%v\t%v\n",
				service, providerID,
				props[bundle.PropDomain], props[bundle.PropDescription])
		}
	}
	return w.Flush()
}

// ListPlugins writes a table of all discovered plugin distributions, their
// plugins, and the provided configuration and source data files.
func (a *App) ListPlugins() error {
	if a.plugins == nil {
		fmt.Fprintln(a.outW, "Plugin discovery is disabled (no plugins path).")
		return nil
	}

	w := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DISTRIBUTION\tPLUGIN\tCONFIGURATIONS\tSOURCE DATA FILES")

	for _, distName := range a.plugins.DistributionNames() {
		dist, err := a.plugins.Distribution(distName)
		if err != nil {
			return err
		}
		for _, plugin := range dist.Plugins() {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n",
				dist.Name, plugin.Name,
				len(dist.ConfigurationFiles()), len(dist.SourceDataFiles()))
		}
	}
	return w.Flush()
}
