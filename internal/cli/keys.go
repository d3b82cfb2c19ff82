package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aip-labs/aip/pkg/aip"
	"github.com/spf13/cobra"
)

var (
	keysCreateDescription string
	keysCreatePerms       string
	keysCreateRateLimit   int
	keysCreateExpiresAt   string
	keysDeleteYes         bool
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage registry API keys",
	Long:  `Create, list, revoke, and delete registry API keys. These commands require an admin API key.`,
}

var keysCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new API key",
	Long: `Create a new API key. The key secret is printed exactly once;
store it somewhere safe.

Examples:
  aip keys create ci-bot --permissions read,write
  aip keys create reporting --permissions read --rate-limit 100`,
	Args: cobra.ExactArgs(1),
	RunE: runKeysCreate,
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API keys",
	Args:  cobra.NoArgs,
	RunE:  runKeysList,
}

var keysRevokeCmd = &cobra.Command{
	Use:   "revoke <key-id>",
	Short: "Revoke an API key without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysRevoke,
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete <key-id>",
	Short: "Permanently delete an API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysDelete,
}

func init() {
	keysCreateCmd.Flags().StringVar(&keysCreateDescription, "description", "", "Key description")
	keysCreateCmd.Flags().StringVar(&keysCreatePerms, "permissions", "read", "Comma-separated permissions (read, write, delete)")
	keysCreateCmd.Flags().IntVar(&keysCreateRateLimit, "rate-limit", 0, "Requests per minute (0 for the registry default)")
	keysCreateCmd.Flags().StringVar(&keysCreateExpiresAt, "expires-at", "", "Expiry timestamp (RFC 3339)")
	keysDeleteCmd.Flags().BoolVarP(&keysDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	keysCmd.AddCommand(keysCreateCmd)
	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysRevokeCmd)
	keysCmd.AddCommand(keysDeleteCmd)
	rootCmd.AddCommand(keysCmd)
}

func runKeysCreate(cmd *cobra.Command, args []string) error {
	perms, err := parsePermissions(keysCreatePerms)
	if err != nil {
		return err
	}

	client := newClient()
	defer client.Close()

	key, err := client.CreateAPIKey(cmd.Context(), aip.APIKeyRequest{
		Name:        args[0],
		Description: keysCreateDescription,
		Permissions: perms,
		RateLimit:   keysCreateRateLimit,
		ExpiresAt:   keysCreateExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("creating API key: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created key %s (%s)\n", key.Name, key.ID)
	fmt.Fprintf(out, "  Secret: %s\n", key.Key)
	fmt.Fprintln(out, "  The secret is shown only once. Store it now.")
	return nil
}

func runKeysList(cmd *cobra.Command, args []string) error {
	client := newClient()
	defer client.Close()

	keys, err := client.ListAPIKeys(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing API keys: %w", err)
	}

	if len(keys) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No API keys")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKEY\tPERMISSIONS\tACTIVE\tLAST USED")
	for _, k := range keys {
		lastUsed := k.LastUsedAt
		if lastUsed == "" {
			lastUsed = "-"
		}
		preview := k.KeyPreview
		if preview == "" {
			preview = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%s\n",
			k.ID, k.Name, preview, formatPermissions(k.Permissions), k.IsActive, lastUsed)
	}
	return w.Flush()
}

func runKeysRevoke(cmd *cobra.Command, args []string) error {
	client := newClient()
	defer client.Close()

	if err := client.RevokeAPIKey(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("revoking API key %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Revoked %s\n", args[0])
	return nil
}

func runKeysDelete(cmd *cobra.Command, args []string) error {
	keyID := args[0]

	if !keysDeleteYes {
		ok := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("Permanently delete API key %s?", keyID))
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}

	client := newClient()
	defer client.Close()

	if err := client.DeleteAPIKey(cmd.Context(), keyID); err != nil {
		return fmt.Errorf("deleting API key %s: %w", keyID, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", keyID)
	return nil
}

func parsePermissions(s string) (aip.APIKeyPermissions, error) {
	var perms aip.APIKeyPermissions
	for _, p := range strings.Split(s, ",") {
		switch strings.TrimSpace(strings.ToLower(p)) {
		case "read":
			perms.Read = true
		case "write":
			perms.Write = true
		case "delete":
			perms.Delete = true
		case "":
		default:
			return perms, fmt.Errorf("unknown permission %q (valid: read, write, delete)", strings.TrimSpace(p))
		}
	}
	return perms, nil
}

func formatPermissions(p aip.APIKeyPermissions) string {
	var parts []string
	if p.Read {
		parts = append(parts, "read")
	}
	if p.Write {
		parts = append(parts, "write")
	}
	if p.Delete {
		parts = append(parts, "delete")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
