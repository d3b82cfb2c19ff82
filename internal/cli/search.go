package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/aip-labs/aip/pkg/aip"
	"github.com/spf13/cobra"
)

var (
	searchMinConfidence float64
	searchLimit         int
	searchOffset        int
	searchAll           bool
	searchJSON          bool
)

var searchCmd = &cobra.Command{
	Use:   "search [skill]",
	Short: "Search the registry for agents",
	Long: `Search the registry for agents by skill and minimum confidence.

By default one page of results is fetched. Use --all to page through
the whole result set.

Examples:
  aip search text-generation
  aip search translation --min-confidence 0.9 --limit 50
  aip search --all --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Float64Var(&searchMinConfidence, "min-confidence", aip.DefaultMinConfidence, "Minimum capability confidence")
	searchCmd.Flags().IntVar(&searchLimit, "limit", aip.DefaultPageSize, "Results per page")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "Result offset")
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "Fetch every matching agent, paging as needed")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	searchSkill := ""
	if len(args) > 0 {
		searchSkill = args[0]
	}

	client := newClient()
	defer client.Close()

	var (
		results []aip.AgentProfile
		err     error
	)
	if searchAll {
		results, err = client.SearchAll(cmd.Context(), &aip.SearchAllOptions{
			Skill:         searchSkill,
			MinConfidence: searchMinConfidence,
			PageSize:      searchLimit,
		})
		var limitErr *aip.SafetyLimitError
		if errors.As(err, &limitErr) {
			return fmt.Errorf("result set too large: %w (narrow the filter or page manually)", err)
		}
	} else {
		results, err = client.Search(cmd.Context(), &aip.SearchOptions{
			Skill:         searchSkill,
			MinConfidence: searchMinConfidence,
			Limit:         searchLimit,
			Offset:        searchOffset,
		})
	}
	if err != nil {
		return fmt.Errorf("searching registry: %w", err)
	}

	if len(results) == 0 {
		msg := "No agents found"
		if searchSkill != "" {
			msg += fmt.Sprintf(" with skill %q", searchSkill)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	if searchJSON {
		return printAgentsJSON(cmd, results)
	}
	return printAgentsTable(cmd, results)
}

func printAgentsTable(cmd *cobra.Command, agents []aip.AgentProfile) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVERSION\tSKILLS\tDESCRIPTION")
	for _, a := range agents {
		skills := ""
		for i, c := range a.Capabilities {
			if i > 0 {
				skills += ","
			}
			skills += c.Skill
		}
		desc := a.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Version, skills, desc)
	}
	return w.Flush()
}

func printAgentsJSON(cmd *cobra.Command, agents []aip.AgentProfile) error {
	data, err := json.MarshalIndent(agents, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
