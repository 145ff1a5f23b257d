package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gmonad/gmd-deploy/internal/domain/models"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out   io.Writer
	color bool
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer, color bool) *VerifyRenderer {
	return &VerifyRenderer{
		out:   out,
		color: color,
	}
}

// RenderVerifyResult renders per-contract, per-verifier statuses
func (r *VerifyRenderer) RenderVerifyResult(result *usecase.VerifyResult) error {
	if result.Proxy != nil && result.Proxy.IsProxy() {
		fmt.Fprintf(r.out, "🔍 %s proxy at %s on %s\n",
			cases.Title(language.English).String(string(result.Proxy.Kind())),
			result.Proxy.Proxy.Hex(), result.Network.Name)
	} else if len(result.Targets) > 0 {
		fmt.Fprintf(r.out, "🔍 Contract at %s on %s\n", result.Targets[0].Address.Hex(), result.Network.Name)
	}
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"Contract", "Address", "Verifier", "Status", "Details"})

	for _, target := range result.Targets {
		name := fmt.Sprintf("%s (%s)", target.ContractName, target.Label)
		if target.Error != nil {
			t.AppendRow(table.Row{name, target.Address.Hex(), "-", r.status(models.VerifierStatusFailed), target.Error.Error()})
			continue
		}

		verifiers := make([]string, 0, len(target.Statuses))
		for v := range target.Statuses {
			verifiers = append(verifiers, v)
		}
		sort.Strings(verifiers)

		for i, v := range verifiers {
			status := target.Statuses[v]
			details := status.URL
			if details == "" {
				details = status.Reason
			}
			if i > 0 {
				name = ""
			}
			t.AppendRow(table.Row{name, shortAddress(target.Address.Hex(), i), verifierName(v), r.status(status.Status), details})
		}
	}
	t.Render()
	fmt.Fprintln(r.out)

	if result.Failed() {
		fmt.Fprintln(r.out, FormatWarning("Some contracts could not be verified"))
	} else {
		fmt.Fprintln(r.out, FormatSuccess("Verification complete"))
	}
	return nil
}

// shortAddress prints the address on the first row of a target only
func shortAddress(address string, row int) string {
	if row > 0 {
		return ""
	}
	return address
}

func verifierName(v string) string {
	return cases.Title(language.English).String(v)
}

func (r *VerifyRenderer) status(status string) string {
	var icon string
	var attr color.Attribute
	switch status {
	case models.VerifierStatusVerified:
		icon, attr = "✓", color.FgGreen
	case models.VerifierStatusPartial:
		icon, attr = "◐", color.FgYellow
	case models.VerifierStatusSkipped:
		icon, attr = "⊘", color.Faint
	default:
		icon, attr = "✗", color.FgRed
	}

	s := icon + " " + status
	if !r.color {
		return s
	}
	return color.New(attr).Sprint(s)
}
