package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/allocations-engine/internal/correlate"
	"github.com/pdiddy/allocations-engine/internal/engine"
	"github.com/pdiddy/allocations-engine/internal/search"
)

var correlateCmd = &cobra.Command{
	Use:   "correlate [project-id]",
	Short: "Find funding awards held by a project's PI",
	Long: `Correlate queries the awards service for every name variant of a
project's PI and keeps only awards whose PI and institution match the project.
With --institution it correlates every loaded project at that institution.

Without an awards service (--awards-url or awards.base_url) the result is
reported as collaborator_unavailable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCorrelate,
}

func init() {
	correlateCmd.Flags().String("institution", "", "correlate all projects at this institution")
	correlateCmd.Flags().Int("limit", 0, "maximum projects to correlate with --institution (default 10)")
	correlateCmd.Flags().Bool("json", false, "output the correlation as JSON")

	rootCmd.AddCommand(correlateCmd)
}

func runCorrelate(cmd *cobra.Command, args []string) error {
	institution, _ := cmd.Flags().GetString("institution")
	if institution == "" && len(args) == 0 {
		return fmt.Errorf("provide a project id or --institution")
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	eng, err := newEngine(loadEngineConfig())
	if err != nil {
		return err
	}
	defer eng.Release()

	if institution != "" {
		limit, _ := cmd.Flags().GetInt("limit")
		agg, err := eng.CorrelateInstitution(cmd.Context(), institution, limit)
		if err != nil {
			return err
		}
		if asJSON {
			return search.FormatJSON(agg, cmd.OutOrStdout())
		}
		writeInstitutionCorrelation(agg, cmd.OutOrStdout())
		return unavailable(agg.Status)
	}

	id, err := parseProjectID(args[0])
	if err != nil {
		return err
	}
	corr, err := eng.CorrelateFunding(cmd.Context(), id)
	if err != nil {
		return err
	}
	if asJSON {
		return search.FormatJSON(corr, cmd.OutOrStdout())
	}
	writeCorrelation(corr, cmd.OutOrStdout())
	return unavailable(corr.Status)
}

// unavailable turns the collaborator_unavailable marker into a non-zero
// exit for table output. JSON output carries the status instead.
func unavailable(s correlate.Status) error {
	if s == correlate.StatusUnavailable {
		return fmt.Errorf("%w: set --awards-url or awards.base_url", engine.ErrCollaboratorUnavailable)
	}
	return nil
}

func writeCorrelation(c correlate.Correlation, w io.Writer) {
	fmt.Fprintf(w, "Project %d: %s\n", c.Project.ID, c.Project.Title)
	fmt.Fprintf(w, "PI: %s, %s\n", c.Project.PI, c.Project.Institution)
	fmt.Fprintf(w, "Status: %s\n", c.Status)
	d := c.Diagnostics
	fmt.Fprintf(w, "Variants: %d queried, %d skipped; candidates: %d raw, %d name-matched, %d validated\n",
		d.VariantsQueried, d.VariantsSkipped, d.RawCandidates, d.NameMatched, d.InstitutionValidated)
	for _, a := range c.Awards {
		fmt.Fprintf(w, "  %s  %s  $%s\n", a.AwardNumber, search.Column(a.Title, 50), search.FormatAmount(a.Amount))
	}
	if c.Validated {
		fmt.Fprintf(w, "Temporal overlap: %t\n", c.TemporalOverlap)
	}
}

func writeInstitutionCorrelation(agg correlate.InstitutionCorrelation, w io.Writer) {
	fmt.Fprintf(w, "Institution: %s\n", agg.Institution)
	fmt.Fprintf(w, "Status: %s\n", agg.Status)
	fmt.Fprintf(w, "Projects: %d matched, %d with validated funding\n", agg.ProjectsMatched, agg.ValidatedProjects)
	fmt.Fprintf(w, "Awards: %d distinct, $%s total\n", agg.DistinctAwards, search.FormatAmount(agg.TotalAwardAmount))
	for _, c := range agg.Correlations {
		fmt.Fprintf(w, "  %-8d %s  %s (%d awards)\n", c.Project.ID, search.Column(c.Project.PI, 24), c.Status, len(c.Awards))
	}
}
