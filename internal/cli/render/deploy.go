package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/models"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// DeployRenderer renders the token deployment
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// RenderPlan echoes the deployment parameters before anything is sent
func (r *DeployRenderer) RenderPlan(plan *models.DeploymentPlan) error {
	fmt.Fprintf(r.out, "🚀 Deploying %s...\n", plan.Token.Contract)
	fmt.Fprintf(r.out, "Token Name: %s\n", plan.Token.Name)
	fmt.Fprintf(r.out, "Token Symbol: %s\n", plan.Token.Symbol)
	fmt.Fprintf(r.out, "Initial Supply: %s %s\n", domain.FormatUnits(plan.InitialSupply, plan.Token.Decimals), plan.Token.Symbol)
	fmt.Fprintf(r.out, "Cap: %s %s\n", domain.FormatUnits(plan.Cap, plan.Token.Decimals), plan.Token.Symbol)
	return nil
}

// RenderResult prints the proxy address read back from the deployment
func (r *DeployRenderer) RenderResult(result *usecase.DeployTokenResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s deployed at: %s",
		result.Plan.Token.Contract, result.Address.Hex())))

	if result.Deployment.Kind != "" && result.Network != nil {
		color.New(color.Faint).Fprintf(r.out, "   %s proxy on %s\n", result.Deployment.Kind, result.Network.Name)
	}
	return nil
}
