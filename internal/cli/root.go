package cli

import (
	"github.com/aip-labs/aip/internal/branding"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Global overrides for the config-file values.
var (
	registryFlag string
	apiKeyFlag   string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` registers, discovers, and manages agent records in a
remote registry. Set defaults with '` + branding.CLIName() + ` config set' or override them
per invocation with --registry and --api-key.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&registryFlag, "registry", "r", "", "Registry URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&apiKeyFlag, "api-key", "k", "", "API key (overrides config)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
