package registry

import (
	"fmt"
	"reflect"
	"strings"
)

// IncompatibleServiceClassError reports a provider whose product type does
// not satisfy the interface declared for its service. Raised at
// registration time so that a bad provider fails fast, not at use time.
type IncompatibleServiceClassError struct {
	ServiceID  string
	ProviderID string
	Required   reflect.Type
}

func (e *IncompatibleServiceClassError) Error() string {
	return fmt.Sprintf("provider %q does not implement %s required by service %q",
		e.ProviderID, e.Required, e.ServiceID)
}

// NoSubmodelFoundError reports a resolution request for a service with no
// registered provider at all. The fix is to register (or load) a provider.
type NoSubmodelFoundError struct {
	ServiceID string
}

func (e *NoSubmodelFoundError) Error() string {
	return fmt.Sprintf("no submodel registered for service %q", e.ServiceID)
}

// TooManySubmodelsError reports a resolution request that matched several
// providers with no explicit choice. The fix is to select one of the
// candidates in the configuration.
type TooManySubmodelsError struct {
	ServiceID  string
	Candidates []string
}

func (e *TooManySubmodelsError) Error() string {
	return fmt.Sprintf("service %q has several submodels; one must be selected among: %s",
		e.ServiceID, strings.Join(e.Candidates, ", "))
}

// UnknownSubmodelError reports an explicit submodel choice naming a
// provider that is not registered for the service. The fix is usually a
// typo in the configuration.
type UnknownSubmodelError struct {
	ServiceID  string
	ProviderID string
	Candidates []string
}

func (e *UnknownSubmodelError) Error() string {
	return fmt.Sprintf("submodel %q is not registered for service %q (registered submodels: %s)",
		e.ProviderID, e.ServiceID, strings.Join(e.Candidates, ", "))
}
