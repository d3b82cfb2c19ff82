package cli

import (
	"fmt"

	"github.com/aip-labs/aip/pkg/aip"
	"github.com/spf13/cobra"
)

var (
	metricsTasks        int
	metricsResponseTime int
	metricsSuccessRate  float64
	metricsUptime       float64
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <agent-id>",
	Short: "Report performance metrics for an agent",
	Long: `Report performance metrics for a registered agent.

Only the flags you set are sent; omitted metrics stay unchanged on the
registry side.

Examples:
  aip metrics did:aip:my-agent --tasks 1500 --success-rate 0.98
  aip metrics did:aip:my-agent --response-time 230 --uptime 0.999`,
	Args: cobra.ExactArgs(1),
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().IntVar(&metricsTasks, "tasks", 0, "Total tasks completed")
	metricsCmd.Flags().IntVar(&metricsResponseTime, "response-time", 0, "Average response time in milliseconds")
	metricsCmd.Flags().Float64Var(&metricsSuccessRate, "success-rate", 0, "Success rate between 0 and 1")
	metricsCmd.Flags().Float64Var(&metricsUptime, "uptime", 0, "30-day uptime between 0 and 1")
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	agentID := args[0]

	var m aip.Metrics
	set := false
	if cmd.Flags().Changed("tasks") {
		m.TasksCompleted = &metricsTasks
		set = true
	}
	if cmd.Flags().Changed("response-time") {
		m.AvgResponseTimeMS = &metricsResponseTime
		set = true
	}
	if cmd.Flags().Changed("success-rate") {
		m.SuccessRate = &metricsSuccessRate
		set = true
	}
	if cmd.Flags().Changed("uptime") {
		m.Uptime30d = &metricsUptime
		set = true
	}
	if !set {
		return fmt.Errorf("no metrics given: set at least one of --tasks, --response-time, --success-rate, --uptime")
	}

	client := newClient()
	defer client.Close()

	resp, err := client.ReportMetrics(cmd.Context(), agentID, m)
	if err != nil {
		if aip.IsNotFound(err) {
			return fmt.Errorf("agent %q not found", agentID)
		}
		return fmt.Errorf("reporting metrics for %s: %w", agentID, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Metrics recorded for %s\n", agentID)
	if resp.RecordedAt != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  Recorded at: %s\n", resp.RecordedAt)
	}
	return nil
}
