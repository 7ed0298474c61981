package bundle

import (
	"fmt"
	"reflect"
)

// DuplicateFactoryError reports a second registration under an already-used
// factory name. The first registration is never silently replaced.
type DuplicateFactoryError struct {
	FactoryName string
}

func (e *DuplicateFactoryError) Error() string {
	return fmt.Sprintf("factory %q is already registered", e.FactoryName)
}

// UnknownFactoryError reports a request for a factory name that was never
// registered.
type UnknownFactoryError struct {
	FactoryName string
}

func (e *UnknownFactoryError) Error() string {
	return fmt.Sprintf("no factory registered under name %q", e.FactoryName)
}

// IncompatibleProductError reports a bundle manifest binding a service to a
// handler whose product type does not satisfy the interface declared for
// that service. Raised at install time so a bad bundle fails fast, not at
// use time.
type IncompatibleProductError struct {
	ServiceID   string
	FactoryName string
	HandlerName string
	Required    reflect.Type
}

func (e *IncompatibleProductError) Error() string {
	return fmt.Sprintf("provider %q binds handler %q whose product does not implement %s required by service %q",
		e.FactoryName, e.HandlerName, e.Required, e.ServiceID)
}

// UnknownHandlerError reports a bundle manifest referencing a Go handler
// name that no compiled-in package registered.
type UnknownHandlerError struct {
	HandlerName string
	FactoryName string
}

func (e *UnknownHandlerError) Error() string {
	return fmt.Sprintf("provider %q references unknown handler %q", e.FactoryName, e.HandlerName)
}
