package cli

import (
	"github.com/spf13/cobra"

	"github.com/gmonad/gmd-deploy/internal/cli/render"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks from deploy.toml",
		Long: `List all networks configured in the [networks] section of deploy.toml.

Each RPC endpoint is asked for its chain ID, which is compared with the
configured chain_id. The selected network is marked with *.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Offline: offline})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), !a.Config.NonInteractive)
			return renderer.RenderNetworksList(result)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Do not query the RPC endpoints")

	return cmd
}
