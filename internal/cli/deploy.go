package cli

import (
	"github.com/spf13/cobra"

	"github.com/gmonad/gmd-deploy/internal/cli/render"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the token behind an upgradeable proxy (default command)",
		Long: `Deploy the token implementation and its proxy, call the initializer with
the configured name, symbol, initial supply and cap, wait for confirmation and
print the proxy address.

Examples:
  gmd-deploy                          # deploy on the only/default network
  gmd-deploy deploy --network monadTestnet
  gmd-deploy deploy --timeout 5m`,
		Args: cobra.NoArgs,
		RunE: runDeploy,
	}
}

func runDeploy(cmd *cobra.Command, args []string) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	if _, err := a.SelectNetwork.Run(ctx); err != nil {
		return err
	}

	plan, err := a.DeployToken.Prepare()
	if err != nil {
		return err
	}

	renderer := render.NewDeployRenderer(cmd.OutOrStdout())
	if err := renderer.RenderPlan(plan); err != nil {
		return err
	}

	result, err := a.DeployToken.Run(ctx, plan)
	if err != nil {
		return err
	}

	return renderer.RenderResult(result)
}
