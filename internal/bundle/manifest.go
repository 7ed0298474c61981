package bundle

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/oadframe/internal/api"
)

// manifestRoot is the top-level structure of a bundle manifest file,
// expecting one or more 'provider' blocks.
type manifestRoot struct {
	Providers []*providerBlock `hcl:"provider,block"`
}

// providerBlock declares one provider factory bound to a compiled-in
// handler by name.
type providerBlock struct {
	Name        string        `hcl:"name,label"`
	Service     string        `hcl:"service,optional"`
	Services    []string      `hcl:"services,optional"`
	Handler     string        `hcl:"handler"`
	Description string        `hcl:"description,optional"`
	Domain      string        `hcl:"domain,optional"`
	Options     *optionsBlock `hcl:"options,block"`
}

// optionsBlock carries arbitrary default option attributes.
type optionsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// parseManifest decodes one bundle manifest file into factory declarations.
func parseManifest(path string) ([]*Factory, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse bundle manifest %s: %w", path, diags)
	}

	var root manifestRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode bundle manifest %s: %w", path, diags)
	}

	factories := make([]*Factory, 0, len(root.Providers))
	for _, block := range root.Providers {
		factory, err := block.toFactory(path)
		if err != nil {
			return nil, err
		}
		factories = append(factories, factory)
	}
	return factories, nil
}

func (b *providerBlock) toFactory(path string) (*Factory, error) {
	services := append([]string(nil), b.Services...)
	if b.Service != "" {
		services = append(services, b.Service)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("provider %q in %s declares no service", b.Name, path)
	}

	opts, err := decodeOptions(b.Options)
	if err != nil {
		return nil, fmt.Errorf("provider %q in %s: %w", b.Name, path, err)
	}

	props := Properties{
		PropDescription: b.Description,
		PropOptions:     opts,
	}
	if b.Domain != "" {
		props[PropDomain] = b.Domain
	}

	return &Factory{
		Name:         b.Name,
		Services:     services,
		Properties:   props,
		SourceBundle: path,
		HandlerName:  b.Handler,
		// Build is bound to the referenced handler at installation time.
	}, nil
}

// decodeOptions evaluates all attributes of an options block into native Go
// values.
func decodeOptions(block *optionsBlock) (api.Options, error) {
	opts := api.Options{}
	if block == nil || block.Body == nil {
		return opts, nil
	}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid options block: %w", diags)
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid value for option %q: %w", name, diags)
		}
		native, err := ctyValueToInterface(val)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", name, err)
		}
		opts[name] = native
	}
	return opts, nil
}

// ctyValueToInterface converts a cty.Value to a Go interface{}.
func ctyValueToInterface(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	if val.Type().IsPrimitiveType() {
		switch val.Type() {
		case cty.String:
			return val.AsString(), nil
		case cty.Number:
			f, _ := val.AsBigFloat().Float64()
			return f, nil
		case cty.Bool:
			return val.True(), nil
		default:
			return nil, fmt.Errorf("unsupported primitive type: %s", val.Type().FriendlyName())
		}
	}
	if val.Type().IsObjectType() || val.Type().IsMapType() {
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			valInterface, err := ctyValueToInterface(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = valInterface
		}
		return out, nil
	}
	if val.Type().IsTupleType() || val.Type().IsListType() {
		var out []any
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			valInterface, err := ctyValueToInterface(v)
			if err != nil {
				return nil, err
			}
			out = append(out, valInterface)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported cty.Type for conversion: %s", val.Type().FriendlyName())
}
