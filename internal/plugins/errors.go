package plugins

import (
	"fmt"
	"strings"
)

// FileKind names the category of distribution-provided files an accessor
// was asked for.
type FileKind string

const (
	KindConfigurationFile FileKind = "configuration file"
	KindSourceDataFile    FileKind = "source data file"
)

// NoDistributionError reports that no installed distribution declares any
// plugin.
type NoDistributionError struct{}

func (e *NoDistributionError) Error() string {
	return "no distribution with declared plugins is installed"
}

// SeveralDistributionsError reports that a distribution name is required
// because several plugin distributions are installed.
type SeveralDistributionsError struct {
	Known []string
}

func (e *SeveralDistributionsError) Error() string {
	return fmt.Sprintf("several plugin distributions are installed; please specify one of: %s",
		strings.Join(e.Known, ", "))
}

// UnknownDistributionError reports a distribution name that matches no
// installed plugin distribution.
type UnknownDistributionError struct {
	Name  string
	Known []string
}

func (e *UnknownDistributionError) Error() string {
	return fmt.Sprintf("distribution %q provides no plugin (installed plugin distributions: %s)",
		e.Name, strings.Join(e.Known, ", "))
}

// NoFileError reports that a distribution provides no file of the requested
// kind at all.
type NoFileError struct {
	Kind         FileKind
	Distribution string
}

func (e *NoFileError) Error() string {
	return fmt.Sprintf("distribution %q provides no %s", e.Distribution, e.Kind)
}

// SeveralFilesError reports that a file name is required because the
// distribution provides several files of the requested kind.
type SeveralFilesError struct {
	Kind         FileKind
	Distribution string
	Names        []string
}

func (e *SeveralFilesError) Error() string {
	return fmt.Sprintf("distribution %q provides several %ss; please specify one of: %s",
		e.Distribution, e.Kind, strings.Join(e.Names, ", "))
}

// UnknownFileError reports a requested file name the distribution does not
// provide.
type UnknownFileError struct {
	Kind         FileKind
	Name         string
	Distribution string
	Names        []string
}

func (e *UnknownFileError) Error() string {
	return fmt.Sprintf("distribution %q provides no %s named %q (available: %s)",
		e.Distribution, e.Kind, e.Name, strings.Join(e.Names, ", "))
}
