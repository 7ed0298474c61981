package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/oadframe/internal/app"
	"github.com/vk/oadframe/internal/bundle"
	"github.com/vk/oadframe/internal/testutil"
	"github.com/vk/oadframe/internal/variables"

	"github.com/vk/oadframe/models/aerodynamics"
	"github.com/vk/oadframe/models/weight"
)

const sizingConfig = `
title: Sizing study
input_file: inputs.xml
output_file: outputs.xml

model:
  components:
    - service: service.aerodynamics.oswald_coefficient
    - service: service.aerodynamics.cd0
    - provider: oadframe.system.aerodynamics.polar
    - service: service.weight.payload
    - provider: oadframe.system.weight.mass_breakdown
    - provider: oadframe.system.propulsion.mission_fuel.breguet

solver:
  max_iterations: 100
  tolerance: 1.0e-8

submodels:
  service.aerodynamics.oswald_coefficient: oadframe.submodel.aerodynamics.oswald_coefficient.raymer
`

const sizingInputs = `<model>
  <data>
    <geometry>
      <wing>
        <aspect_ratio>9.0</aspect_ratio>
      </wing>
    </geometry>
    <TLAR>
      <range units="km">3500</range>
      <payload_mass units="kg">15000</payload_mass>
    </TLAR>
  </data>
</model>
`

func newTestApp(t *testing.T, out *testutil.SafeBuffer, pluginsPath string) *app.App {
	t.Helper()
	return app.NewApp(out, &app.Config{
		PluginsPath: pluginsPath,
		LogFormat:   "text",
		LogLevel:    "error",
	}, bundle.NewIsolatedLoader())
}

func TestRunProblem_SizingLoopConverges(t *testing.T) {
	t.Parallel()
	var out testutil.SafeBuffer

	root := testutil.WriteFiles(t, map[string]string{
		"problem.yml": sizingConfig,
		"inputs.xml":  sizingInputs,
	})

	oadApp := newTestApp(t, &out, "")
	require.NoError(t, oadApp.RunProblem(filepath.Join(root, "problem.yml")))
	assert.Contains(t, out.String(), "converged")

	results, err := variables.ReadXMLFile(filepath.Join(root, "outputs.xml"), nil)
	require.NoError(t, err)

	// The takeoff weight closed: MTOW equals OWE plus payload plus fuel.
	mtow := results.Float(weight.MTOWVar, 0)
	owe := results.Float(weight.OWEVar, 0)
	payload := results.Float(weight.PayloadVar, 0)
	fuel := results.Float(weight.FuelVar, 0)

	assert.Equal(t, 15000.0, payload)
	assert.Greater(t, fuel, 0.0)
	assert.InDelta(t, mtow, owe+payload+fuel, mtow*1e-6)
	assert.Greater(t, results.Float(aerodynamics.LOverDVar, 0), 10.0)
}

func TestRunProblem_MissingSubmodelChoice(t *testing.T) {
	t.Parallel()
	var out testutil.SafeBuffer

	// Two Oswald providers exist, so leaving the choice open must fail.
	root := testutil.WriteFiles(t, map[string]string{
		"problem.yml": `
title: Ambiguous
model:
  components:
    - service: service.aerodynamics.oswald_coefficient
`,
	})

	oadApp := newTestApp(t, &out, "")
	err := oadApp.RunProblem(filepath.Join(root, "problem.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.aerodynamics.oswald_coefficient")
}

func TestListProviders(t *testing.T) {
	t.Parallel()
	var out testutil.SafeBuffer

	oadApp := newTestApp(t, &out, "")
	require.NoError(t, oadApp.ListProviders())

	listing := out.String()
	assert.Contains(t, listing, "service.aerodynamics.oswald_coefficient")
	assert.Contains(t, listing, "oadframe.submodel.aerodynamics.oswald_coefficient.raymer")
	assert.Contains(t, listing, "oadframe.system.weight.mass_breakdown")
}

func TestListPlugins_DisabledDiscovery(t *testing.T) {
	t.Parallel()
	var out testutil.SafeBuffer

	oadApp := newTestApp(t, &out, "")
	require.NoError(t, oadApp.ListPlugins())
	assert.Contains(t, out.String(), "disabled")
}

func TestListPlugins_WithDistribution(t *testing.T) {
	t.Parallel()
	var out testutil.SafeBuffer

	pluginsRoot := testutil.WriteFiles(t, map[string]string{
		"demo-dist/plugin.hcl": `
distribution "demo-dist" {
  plugin "demo_plugin" {
    package = "pkg"
  }
}
`,
		"demo-dist/pkg/configurations/sample.yml": "title: Sample\n",
	})

	oadApp := newTestApp(t, &out, pluginsRoot)
	require.NoError(t, oadApp.ListPlugins())

	listing := out.String()
	assert.Contains(t, listing, "demo-dist")
	assert.Contains(t, listing, "demo_plugin")
}

func TestGenerateConfiguration(t *testing.T) {
	t.Parallel()
	var out testutil.SafeBuffer

	pluginsRoot := testutil.WriteFiles(t, map[string]string{
		"demo-dist/plugin.hcl": `
distribution "demo-dist" {
  plugin "demo_plugin" {
    package = "pkg"
  }
}
`,
		"demo-dist/pkg/configurations/sample.yml": "title: Sample\n",
	})

	oadApp := newTestApp(t, &out, pluginsRoot)
	target := filepath.Join(t.TempDir(), "my_problem.yml")
	require.NoError(t, oadApp.GenerateConfiguration("", "", target))

	copied, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "title: Sample\n", string(copied))
	assert.Contains(t, out.String(), "sample.yml")
}

func TestGenerateConfiguration_DisabledDiscovery(t *testing.T) {
	t.Parallel()
	var out testutil.SafeBuffer

	oadApp := newTestApp(t, &out, "")
	err := oadApp.GenerateConfiguration("", "", filepath.Join(t.TempDir(), "out.yml"))
	require.Error(t, err)
}

func TestNewApp_PluginProvidersResolvable(t *testing.T) {
	t.Parallel()
	var out testutil.SafeBuffer

	// A plugin distribution binding a manifest provider to a compiled-in
	// handler becomes resolvable after startup. The handler name reuses a
	// registered provider id, which the registry publishes as a handler.
	pluginsRoot := testutil.WriteFiles(t, map[string]string{
		"tuned-dist/plugin.hcl": `
distribution "tuned-dist" {
  plugin "tuned_models" {
    package = "pkg"
  }
}
`,
		"tuned-dist/pkg/models/oswald_tuned.hcl": `
provider "tuned.submodel.aerodynamics.oswald_coefficient" {
  service     = "service.aerodynamics.oswald_coefficient"
  handler     = "oadframe.submodel.aerodynamics.oswald_coefficient.raymer"
  description = "Raymer fit with a calibrated k factor."

  options {
    k_factor = 0.92
  }
}
`,
	})

	oadApp := newTestApp(t, &out, pluginsRoot)

	ids := oadApp.Registry().GetProviderIDs("service.aerodynamics.oswald_coefficient")
	assert.Contains(t, ids, "tuned.submodel.aerodynamics.oswald_coefficient")

	system, err := oadApp.Registry().GetProvider(oadApp.Context(),
		"tuned.submodel.aerodynamics.oswald_coefficient", nil)
	require.NoError(t, err)

	tuned, ok := system.(*aerodynamics.OswaldRaymer)
	require.True(t, ok)

	baseline, err := oadApp.Registry().GetProvider(oadApp.Context(),
		"oadframe.submodel.aerodynamics.oswald_coefficient.raymer", nil)
	require.NoError(t, err)
	base := baseline.(*aerodynamics.OswaldRaymer)

	// The manifest's calibrated k factor scales the baseline fit.
	assert.InDelta(t, 0.92*base.Coefficient(9.0), tuned.Coefficient(9.0), 1e-12)
}
