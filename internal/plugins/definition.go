package plugins

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/oadframe/internal/fsutil"
)

// SubPackageKind names one of the four fixed sub-packages recognized under
// a plugin's root package.
type SubPackageKind string

const (
	SubPackageModels          SubPackageKind = "models"
	SubPackageNotebooks       SubPackageKind = "notebooks"
	SubPackageConfigurations  SubPackageKind = "configurations"
	SubPackageSourceDataFiles SubPackageKind = "source_data_files"
)

// subPackageKinds is the probe order for plugin sub-packages.
var subPackageKinds = []SubPackageKind{
	SubPackageModels,
	SubPackageNotebooks,
	SubPackageConfigurations,
	SubPackageSourceDataFiles,
}

// configurationFileExtensions filter a plugin's configurations sub-package.
var configurationFileExtensions = []string{".yml", ".yaml"}

// sourceDataFileExtensions filter a plugin's source_data_files sub-package.
var sourceDataFileExtensions = []string{".xml"}

// PluginDefinition is one named plugin inside one distribution: its root
// package directory and the fixed sub-packages that exist under it.
type PluginDefinition struct {
	Name         string
	Distribution string

	// PackagePath is the plugin's root package directory on disk.
	PackagePath string

	// SubPackages maps each present sub-package kind to its directory.
	SubPackages map[SubPackageKind]string
}

// detectSubPackages probes which of the fixed sub-package names exist under
// the plugin's package directory.
func (p *PluginDefinition) detectSubPackages() {
	p.SubPackages = make(map[SubPackageKind]string)
	for _, kind := range subPackageKinds {
		dir := filepath.Join(p.PackagePath, string(kind))
		if fsutil.DirExists(dir) {
			p.SubPackages[kind] = dir
		}
	}
}

// FileInfo locates one configuration or source data file provided by a
// plugin.
type FileInfo struct {
	Name         string
	Path         string
	Plugin       string
	Distribution string
}

// DistributionPluginDefinition maps plugin name to definition for one
// installed distribution. Plugin names are keyed case-insensitively.
type DistributionPluginDefinition struct {
	// Name is the distribution name as declared.
	Name string

	plugins map[string]*PluginDefinition
}

func newDistributionDefinition(name string) *DistributionPluginDefinition {
	return &DistributionPluginDefinition{
		Name:    name,
		plugins: make(map[string]*PluginDefinition),
	}
}

func (d *DistributionPluginDefinition) addPlugin(p *PluginDefinition) {
	d.plugins[normalizeName(p.Name)] = p
}

// Plugin returns the named plugin definition, matching case-insensitively.
func (d *DistributionPluginDefinition) Plugin(name string) (*PluginDefinition, bool) {
	p, ok := d.plugins[normalizeName(name)]
	return p, ok
}

// PluginNames returns the declared plugin names, sorted.
func (d *DistributionPluginDefinition) PluginNames() []string {
	names := make([]string, 0, len(d.plugins))
	for _, p := range d.plugins {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Plugins returns the plugin definitions sorted by name.
func (d *DistributionPluginDefinition) Plugins() []*PluginDefinition {
	out := make([]*PluginDefinition, 0, len(d.plugins))
	for _, p := range d.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// files enumerates the files of one kind across all plugins of the
// distribution, sorted by file name.
func (d *DistributionPluginDefinition) files(subPackage SubPackageKind, extensions []string) []FileInfo {
	var out []FileInfo
	for _, p := range d.Plugins() {
		dir, ok := p.SubPackages[subPackage]
		if !ok {
			continue
		}
		for _, name := range fsutil.ListFilesByExtensions(dir, extensions...) {
			out = append(out, FileInfo{
				Name:         name,
				Path:         filepath.Join(dir, name),
				Plugin:       p.Name,
				Distribution: d.Name,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ConfigurationFiles lists the configuration files provided by the
// distribution.
func (d *DistributionPluginDefinition) ConfigurationFiles() []FileInfo {
	return d.files(SubPackageConfigurations, configurationFileExtensions)
}

// SourceDataFiles lists the source data files provided by the distribution.
func (d *DistributionPluginDefinition) SourceDataFiles() []FileInfo {
	return d.files(SubPackageSourceDataFiles, sourceDataFileExtensions)
}

// ConfigurationFileInfo resolves "the configuration file" of the
// distribution: with an empty name, the single provided file; otherwise the
// file with the given name. Fails with a distinct error when none are
// available, when several are available and no name was given, or when the
// given name is unknown.
func (d *DistributionPluginDefinition) ConfigurationFileInfo(fileName string) (FileInfo, error) {
	return pickFile(KindConfigurationFile, d.Name, d.ConfigurationFiles(), fileName)
}

// SourceDataFileInfo resolves "the source data file" of the distribution,
// with the same rules as ConfigurationFileInfo.
func (d *DistributionPluginDefinition) SourceDataFileInfo(fileName string) (FileInfo, error) {
	return pickFile(KindSourceDataFile, d.Name, d.SourceDataFiles(), fileName)
}

func pickFile(kind FileKind, dist string, files []FileInfo, fileName string) (FileInfo, error) {
	if len(files) == 0 {
		return FileInfo{}, &NoFileError{Kind: kind, Distribution: dist}
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}

	if fileName == "" {
		if len(files) > 1 {
			return FileInfo{}, &SeveralFilesError{Kind: kind, Distribution: dist, Names: names}
		}
		return files[0], nil
	}

	for _, f := range files {
		if f.Name == fileName {
			return f, nil
		}
	}
	return FileInfo{}, &UnknownFileError{Kind: kind, Name: fileName, Distribution: dist, Names: names}
}

// normalizeName lowercases a distribution or plugin name and folds
// underscores to hyphens, per packaging convention.
func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}
