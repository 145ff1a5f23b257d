package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, color bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		color: color,
	}
}

// RenderNetworksList renders the configured networks with their live status
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in deploy.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{PaddingLeft: "  ", PaddingRight: " "}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})

	for _, network := range result.Networks {
		name := network.Name
		if network.Selected {
			name += " *"
		}
		t.AppendRow(table.Row{r.statusIcon(network), r.bold(name), chainID(network.ChainID), r.detail(network)})
	}
	t.Render()

	return nil
}

func (r *NetworksRenderer) statusIcon(network usecase.NetworkStatus) string {
	switch {
	case network.Error != nil:
		return "❌"
	case network.RPCChainID == 0:
		return "•"
	default:
		return "✅"
	}
}

func (r *NetworksRenderer) detail(network usecase.NetworkStatus) string {
	switch {
	case network.Error != nil:
		return r.paint(color.FgRed, fmt.Sprintf("Error: %v", network.Error))
	case network.RPCChainID == 0:
		return r.paint(color.Faint, "not checked")
	default:
		return r.paint(color.FgGreen, fmt.Sprintf("Chain ID: %d", network.RPCChainID))
	}
}

func (r *NetworksRenderer) bold(s string) string {
	return r.paint(color.Bold, s)
}

func (r *NetworksRenderer) paint(attr color.Attribute, s string) string {
	if !r.color {
		return s
	}
	return color.New(attr).Sprint(s)
}

func chainID(id uint64) string {
	if id == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", id)
}
