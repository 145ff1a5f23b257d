package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmonad/gmd-deploy/internal/adapters/progress"
	"github.com/gmonad/gmd-deploy/internal/app"
	"github.com/gmonad/gmd-deploy/internal/cli/render"
	"github.com/gmonad/gmd-deploy/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// Run executes the CLI and returns the process exit code. Every error ends
// up here and is printed once to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, render.FormatError(err.Error()))
		return 1
	}
	return 0
}

// NewRootCmd creates the root command. Without a subcommand it deploys the token.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gmd-deploy",
		Short: "Deploy the GMonad token behind an upgradeable proxy",
		Long: `gmd-deploy deploys the GMonad (GMD) ERC-20 token behind an OpenZeppelin
upgradeable proxy and calls its initializer in the same deployment.

Networks, accounts and verifiers are read from deploy.toml; secrets are
referenced as ${VAR} and loaded from .env.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initApp,
		RunE:              runDeploy,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from deploy.toml to use")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the deployment after this long (0 waits forever)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	verifyCmd := NewVerifyCmd()
	verifyCmd.GroupID = "main"
	rootCmd.AddCommand(verifyCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initApp builds the App once per invocation and stores it in the command context
func initApp(cmd *cobra.Command, args []string) error {
	// Skip for help/version commands
	if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}
	if _, ok := appFromContext(cmd.Context()); ok {
		return nil
	}

	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	v := config.SetupViper(projectRoot, cmd)

	interactive := !v.GetBool("non_interactive") && !isNonInteractive()
	sink := progress.NewSpinnerSink(cmd.ErrOrStderr(), interactive)
	if !interactive {
		v.Set("non_interactive", true)
	}

	appInstance, err := app.InitApp(v, sink)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	for _, warning := range appInstance.Config.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning(warning))
	}

	cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
	return nil
}

func appFromContext(ctx context.Context) (*app.App, bool) {
	if ctx == nil {
		return nil, false
	}
	a, ok := ctx.Value(appKey).(*app.App)
	return a, ok
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	a, ok := appFromContext(cmd.Context())
	if !ok {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}

// isNonInteractive checks if the environment is non-interactive
func isNonInteractive() bool {
	return os.Getenv("CI") == "true" || os.Getenv("NO_COLOR") != ""
}
