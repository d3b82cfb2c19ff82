package cli

import (
	"fmt"
	"os"

	"github.com/aip-labs/aip/internal/schema"
	"github.com/aip-labs/aip/internal/version"
	"github.com/aip-labs/aip/pkg/aip"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate agent profile files without registering them",
	Long: `Validate agent profile files against the profile schema.

Each file is checked structurally first, then loaded as a profile.
Nothing is sent to the registry.

Examples:
  aip validate agent.yaml
  aip validate agents/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		if !validateFile(cmd, path) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
	}
	return nil
}

// validateFile checks one file and prints its verdict. It returns
// false when the file is invalid or unreadable.
func validateFile(cmd *cobra.Command, path string) bool {
	out := cmd.OutOrStdout()

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "✗ %s: %v\n", path, err)
		return false
	}

	result, err := schema.Validate(data)
	if err != nil {
		fmt.Fprintf(out, "✗ %s: %v\n", path, err)
		return false
	}

	if !result.Valid {
		fmt.Fprintf(out, "✗ %s has %d issue(s):\n", path, len(result.Issues))
		for _, issue := range result.Issues {
			loc := issue.Path
			if loc == "" {
				loc = "/"
			}
			fmt.Fprintf(out, "  %s: %s\n", loc, issue.Message)
		}
		return false
	}

	// Schema and model checks agree on the constraints; loading catches
	// anything only the decoder sees, like an unsupported extension.
	profile, err := aip.LoadAgentFile(path)
	if err != nil {
		fmt.Fprintf(out, "✗ %s: %v\n", path, err)
		return false
	}

	fmt.Fprintf(out, "✓ %s is valid (%s)\n", path, profile.ID)
	if !version.IsCanonical(profile.Version) {
		fmt.Fprintf(out, "  warning: version %q is not canonical semver\n", profile.Version)
	}
	return true
}
