package cli

import (
	"encoding/json"
	"fmt"

	"github.com/aip-labs/aip/pkg/aip"
	"github.com/spf13/cobra"
)

var (
	getJSON bool
	getSave string
)

var getCmd = &cobra.Command{
	Use:   "get <agent-id>",
	Short: "Get an agent profile by ID",
	Long: `Fetch a single agent profile from the registry.

Examples:
  aip get did:aip:my-agent
  aip get did:aip:my-agent --save agent.yaml
  aip get did:aip:my-agent --json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Output as JSON")
	getCmd.Flags().StringVar(&getSave, "save", "", "Save the profile to a file (.yaml/.yml/.json)")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	agentID := args[0]

	client := newClient()
	defer client.Close()

	agent, err := client.Get(cmd.Context(), agentID)
	if err != nil {
		if aip.IsNotFound(err) {
			return fmt.Errorf("agent %q not found", agentID)
		}
		return fmt.Errorf("fetching agent %s: %w", agentID, err)
	}

	if getSave != "" {
		if err := aip.SaveAgentFile(agent, getSave, aip.FormatForPath(getSave)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", getSave)
	}

	if getJSON {
		data, err := json.MarshalIndent(agent, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling profile: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printProfile(cmd, agent)
	return nil
}

func printProfile(cmd *cobra.Command, agent *aip.AgentProfile) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Agent: %s\n", agent.ID)
	fmt.Fprintf(out, "  Name:        %s\n", agent.Name)
	fmt.Fprintf(out, "  Version:     %s\n", agent.Version)
	if agent.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", agent.Description)
	}

	fmt.Fprintln(out, "  Capabilities:")
	for _, c := range agent.Capabilities {
		fmt.Fprintf(out, "    - %s (confidence: %g)\n", c.Skill, c.Confidence)
	}

	if agent.Endpoints != nil && agent.Endpoints.API != "" {
		fmt.Fprintf(out, "  API:         %s\n", agent.Endpoints.API)
	}
	if agent.Pricing != nil {
		fmt.Fprintf(out, "  Pricing:     %s", agent.Pricing.Model)
		if agent.Pricing.BasePrice != nil {
			fmt.Fprintf(out, " (%g %s)", *agent.Pricing.BasePrice, agent.Pricing.Currency)
		}
		fmt.Fprintln(out)
	}
	if m := agent.Metrics; m != nil {
		fmt.Fprintln(out, "  Metrics:")
		if m.TasksCompleted != nil {
			fmt.Fprintf(out, "    Tasks completed:   %d\n", *m.TasksCompleted)
		}
		if m.SuccessRate != nil {
			fmt.Fprintf(out, "    Success rate:      %g\n", *m.SuccessRate)
		}
		if m.AvgResponseTimeMS != nil {
			fmt.Fprintf(out, "    Avg response time: %dms\n", *m.AvgResponseTimeMS)
		}
		if m.Uptime30d != nil {
			fmt.Fprintf(out, "    Uptime (30d):      %g\n", *m.Uptime30d)
		}
	}
}
