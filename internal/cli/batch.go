package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aip-labs/aip/pkg/aip"
	"github.com/spf13/cobra"
)

var batchDeleteYes bool

var batchRegisterCmd = &cobra.Command{
	Use:   "batch-register <glob>",
	Short: "Register every agent file matching a glob pattern",
	Long: `Load every file matching the glob pattern and register each profile.

Failures are reported per file; the remaining files are still attempted.

Examples:
  aip batch-register 'agents/*.yaml'
  aip batch-register 'profiles/**.json'`,
	Args: cobra.ExactArgs(1),
	RunE: runBatchRegister,
}

var batchDeleteCmd = &cobra.Command{
	Use:   "batch-delete <agent-id>...",
	Short: "Delete multiple agents from the registry",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatchDelete,
}

func init() {
	batchDeleteCmd.Flags().BoolVarP(&batchDeleteYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(batchRegisterCmd)
	rootCmd.AddCommand(batchDeleteCmd)
}

func runBatchRegister(cmd *cobra.Command, args []string) error {
	pattern := args[0]

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files match %q", pattern)
	}
	sort.Strings(paths)

	var profiles []*aip.AgentProfile
	loadFailures := 0
	for _, path := range paths {
		profile, err := aip.LoadAgentFile(path)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  ✗ %s: %v\n", path, err)
			loadFailures++
			continue
		}
		profiles = append(profiles, profile)
	}

	client := newClient()
	defer client.Close()

	result, err := aip.BatchRegister(cmd.Context(), client, profiles)
	if err != nil {
		return err
	}

	printBatchResult(cmd, "Registered", result, loadFailures)
	return nil
}

func runBatchDelete(cmd *cobra.Command, args []string) error {
	if !batchDeleteYes {
		ok := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("Delete %d agents (%s)?", len(args), strings.Join(args, ", ")))
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}

	client := newClient()
	defer client.Close()

	result, err := aip.BatchDelete(cmd.Context(), client, args)
	if err != nil {
		return err
	}

	printBatchResult(cmd, "Deleted", result, 0)
	return nil
}

func printBatchResult(cmd *cobra.Command, verb string, result *aip.BatchResult, extraFailures int) {
	out := cmd.OutOrStdout()
	for _, be := range result.Errors {
		fmt.Fprintf(out, "  ✗ %s: %s\n", be.ID, be.Error)
	}
	fmt.Fprintf(out, "%s %d, failed %d\n", verb, result.Success, result.Failed+extraFailures)
}
