package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// ConfigRenderer renders `mintmuse config` output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{out: out}
}

// RenderView prints one row per managed key: the stored override and the
// value commands will actually use.
func (r *ConfigRenderer) RenderView(view *usecase.LocalSettingsView) error {
	t := newTable(table.Row{"Key", "Local", "Effective"})
	for _, key := range config.ValidConfigKeys() {
		local := view.Overrides.Get(key)
		if local == "" {
			local = color.New(color.Faint).Sprint("-")
		}
		t.AppendRow(table.Row{string(key), local, effectiveValue(view.Effective, key)})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)

	if eff := view.Effective; eff != nil {
		fmt.Fprintf(r.out, "artifacts: %s\n", displayPath(eff.Deploy.ArtifactsDir))
		fmt.Fprintf(r.out, "output:    %s\n", displayPath(eff.Deploy.OutputPath))
	}

	path := displayPath(view.Path)
	if !view.Exists {
		path += " (not created yet)"
	}
	color.New(color.Faint).Fprintf(r.out, "local overrides: %s\n", path)
	return nil
}

// RenderChange reports a set or remove
func (r *ConfigRenderer) RenderChange(change *usecase.LocalSettingChange) error {
	switch {
	case !change.Changed() && change.Current == "":
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s was not set", change.Key)))
		return nil
	case !change.Changed():
		fmt.Fprintf(r.out, "%s already set to %s\n", change.Key, change.Current)
		return nil
	case change.Current == "":
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Removed %s (was %s)", change.Key, change.Previous)))
	case change.Previous == "":
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to %s", change.Key, change.Current)))
	default:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to %s (was %s)", change.Key, change.Current, change.Previous)))
	}
	color.New(color.Faint).Fprintf(r.out, "saved to %s\n", displayPath(change.Path))
	return nil
}

func effectiveValue(eff *config.RuntimeConfig, key config.ConfigKey) string {
	if eff == nil {
		return ""
	}
	switch key {
	case config.ConfigKeyNetwork:
		if eff.Network == nil {
			return ""
		}
		return fmt.Sprintf("%s (chain %d)", eff.Network.Name, eff.Network.ChainID)
	case config.ConfigKeyContract:
		return eff.Deploy.Contract
	case config.ConfigKeySender:
		if eff.Deploy.Sender == "" {
			return "first available"
		}
		return eff.Deploy.Sender
	case config.ConfigKeyConfirmationStrategy:
		return string(eff.Deploy.ConfirmationStrategy)
	case config.ConfigKeyGeneratorURL:
		return eff.Generator.URL
	default:
		return ""
	}
}
