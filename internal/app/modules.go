package app

import (
	"github.com/vk/oadframe/internal/registry"
	"github.com/vk/oadframe/models/aerodynamics"
	"github.com/vk/oadframe/models/propulsion"
	"github.com/vk/oadframe/models/weight"
)

// coreModules is the definitive list of all model packages that are
// compiled into the oadframe binary.
var coreModules = []registry.Module{
	&aerodynamics.Module{},
	&weight.Module{},
	&propulsion.Module{},
}
