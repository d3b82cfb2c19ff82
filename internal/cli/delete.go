package cli

import (
	"fmt"

	"github.com/aip-labs/aip/pkg/aip"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <agent-id>",
	Short: "Delete an agent from the registry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	agentID := args[0]

	if !deleteYes {
		ok := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("Delete agent %s?", agentID))
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}

	client := newClient()
	defer client.Close()

	if err := client.Delete(cmd.Context(), agentID); err != nil {
		if aip.IsNotFound(err) {
			return fmt.Errorf("agent %q not found", agentID)
		}
		return fmt.Errorf("deleting agent %s: %w", agentID, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", agentID)
	return nil
}
