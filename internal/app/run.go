package app

import (
	"fmt"
	"os"

	"github.com/vk/oadframe/internal/configuration"
	"github.com/vk/oadframe/internal/problem"
	"github.com/vk/oadframe/internal/variables"
)

// RunProblem loads a problem configuration file, reads its input variable
// file when declared, assembles the model, sweeps it to convergence, and
// writes the output variable file when declared.
func (a *App) RunProblem(configPath string) error {
	ctx := a.Context()

	cfg, err := configuration.Load(configPath)
	if err != nil {
		return err
	}

	p, err := problem.Assemble(ctx, a.registry, cfg)
	if err != nil {
		return err
	}

	if inputPath := cfg.InputFilePath(); inputPath != "" {
		inputs, err := variables.ReadXMLFile(inputPath, nil)
		if err != nil {
			return err
		}
		p.Vars.Update(inputs, true)
		a.logger.Info("Input variables loaded.", "path", inputPath, "count", inputs.Len())
	}

	iterations, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if outputPath := cfg.OutputFilePath(); outputPath != "" {
		if err := p.Vars.WriteXMLFile(outputPath, nil); err != nil {
			return err
		}
		a.logger.Info("Output variables written.", "path", outputPath, "count", p.Vars.Len())
	}

	fmt.Fprintf(a.outW, "Problem %q converged in %d iteration(s).\n", p.Title, iterations)
	return nil
}

// GenerateConfiguration copies a distribution-provided configuration file
// to targetPath. With an empty fileName, the distribution must provide
// exactly one configuration file.
func (a *App) GenerateConfiguration(distName, fileName, targetPath string) error {
	if a.plugins == nil {
		return fmt.Errorf("plugin discovery is disabled; no configuration files are available")
	}

	dist, err := a.plugins.Distribution(distName)
	if err != nil {
		return err
	}
	info, err := dist.ConfigurationFileInfo(fileName)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(info.Path)
	if err != nil {
		return fmt.Errorf("cannot read configuration file %s: %w", info.Path, err)
	}
	if err := os.WriteFile(targetPath, raw, 0o644); err != nil {
		return fmt.Errorf("cannot write configuration file %s: %w", targetPath, err)
	}

	fmt.Fprintf(a.outW, "Configuration file %q from distribution %q written to %s\n",
		info.Name, dist.Name, targetPath)
	return nil
}
