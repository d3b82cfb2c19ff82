package cli

import (
	"fmt"

	"github.com/aip-labs/aip/internal/version"
	"github.com/aip-labs/aip/pkg/aip"
	"github.com/spf13/cobra"
)

var updateForce bool

var updateCmd = &cobra.Command{
	Use:   "update <agent-id> <file>",
	Short: "Update a registered agent profile",
	Long: `Replace a registered agent's profile with the contents of a file.

Version downgrades are refused unless --force is given.

Examples:
  aip update did:aip:my-agent agent.yaml
  aip update did:aip:my-agent agent.yaml --force`,
	Args: cobra.ExactArgs(2),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateForce, "force", false, "Allow version downgrades")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	agentID := args[0]
	path := args[1]

	profile, err := aip.LoadAgentFile(path)
	if err != nil {
		return err
	}

	client := newClient()
	defer client.Close()

	if !updateForce {
		current, err := client.Get(cmd.Context(), agentID)
		if err != nil {
			if aip.IsNotFound(err) {
				return fmt.Errorf("agent %q not found", agentID)
			}
			return fmt.Errorf("fetching current profile: %w", err)
		}
		// Downgrade detection is advisory: loose versions that are not
		// strict semver skip the check rather than blocking the update.
		down, err := version.IsDowngrade(current.Version, profile.Version)
		if err == nil && down {
			return fmt.Errorf("refusing to downgrade %s from %s to %s (use --force to override)",
				agentID, current.Version, profile.Version)
		}
	}

	resp, err := client.Update(cmd.Context(), agentID, profile)
	if err != nil {
		return fmt.Errorf("updating agent %s: %w", agentID, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", agentID)
	if resp.UpdatedAt != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  Updated at: %s\n", resp.UpdatedAt)
	}
	return nil
}
