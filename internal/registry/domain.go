package registry

// Domain is the categorical tag attached to registered providers, used for
// grouped listings in the CLI.
type Domain string

const (
	DomainAerodynamics Domain = "aerodynamics"
	DomainGeometry     Domain = "geometry"
	DomainWeight       Domain = "weight"
	DomainPropulsion   Domain = "propulsion"
	DomainPerformance  Domain = "performance"
	DomainOther        Domain = "other"
	DomainUnspecified  Domain = "unspecified"
)
