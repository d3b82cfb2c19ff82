package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the registry's health endpoint",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	client := newClient()
	defer client.Close()

	h, err := client.HealthCheck(cmd.Context())
	if err != nil {
		return fmt.Errorf("registry unreachable at %s: %w", client.RegistryURL(), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Registry:  %s\n", client.RegistryURL())
	fmt.Fprintf(out, "Status:    %s\n", h.Status)
	if h.Database != "" {
		fmt.Fprintf(out, "Database:  %s\n", h.Database)
	}
	if h.Timestamp != "" {
		fmt.Fprintf(out, "Timestamp: %s\n", h.Timestamp)
	}
	return nil
}
