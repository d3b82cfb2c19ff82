package cli

import (
	"fmt"

	"github.com/aip-labs/aip/pkg/aip"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <file>",
	Short: "Register an agent from a YAML/JSON file",
	Long: `Register an agent profile with the registry.

Example agent.yaml:
  id: did:aip:my-agent
  name: MyAgent
  version: 1.0.0
  capabilities:
    - skill: text-generation
      confidence: 0.9`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	agent, err := aip.LoadAgentFile(args[0])
	if err != nil {
		return err
	}

	client := newClient()
	defer client.Close()

	result, err := client.Register(cmd.Context(), agent)
	if err != nil {
		return fmt.Errorf("registering agent %s: %w", agent.ID, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", result.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "  Registered at: %s\n", result.RegisteredAt)
	return nil
}
