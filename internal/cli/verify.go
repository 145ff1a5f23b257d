package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmonad/gmd-deploy/internal/cli/render"
	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var contract string

	cmd := &cobra.Command{
		Use:   "verify <address>",
		Short: "Verify a deployed proxy and its implementation",
		Long: `Verify contracts on Sourcify and Etherscan, as enabled in deploy.toml.

For a proxy address the implementation is read from the ERC-1967 slot and both
the implementation and the proxy are verified.

Examples:
  gmd-deploy verify 0x1234... --network monadTestnet
  gmd-deploy verify 0x1234... --contract contracts/Token.sol:Token`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if _, err := a.SelectNetwork.Run(ctx); err != nil {
				return err
			}

			result, err := a.VerifyDeployment.Run(ctx, usecase.VerifyParams{
				Address:  args[0],
				Contract: contract,
			})
			if err != nil {
				return err
			}

			renderer := render.NewVerifyRenderer(cmd.OutOrStdout(), !a.Config.NonInteractive)
			if err := renderer.RenderVerifyResult(result); err != nil {
				return err
			}
			if result.Failed() {
				return fmt.Errorf("%w for %s", domain.ErrVerificationFailed, args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contract, "contract", "", "Implementation artifact name or sourceName:ContractName (defaults to [token].contract)")

	return cmd
}
