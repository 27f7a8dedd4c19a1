package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/allocations-engine/internal/engine"
	"github.com/pdiddy/allocations-engine/internal/search"
)

var similarCmd = &cobra.Command{
	Use:   "similar [project-id]",
	Short: "Recommend projects similar to a project or to keywords",
	Long: `Similar ranks loaded projects by how closely they resemble a reference
project (given by id) or a set of free keywords (--keywords). Similarity
combines keyword overlap, field of science, and resource usage cues.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimilar,
}

func init() {
	f := similarCmd.Flags()
	f.String("keywords", "", "reference keywords instead of a project id")
	f.String("field", "", "reference field of science in keyword mode")
	f.Float64("threshold", 0, "minimum similarity in [0, 1] (default 0.4)")
	f.Bool("same-field", true, "reward candidates in exactly the same field of science")
	f.Int("limit", 0, "maximum number of results (default 10)")
	f.Bool("json", false, "output results as JSON")

	bindFlag("similar.threshold", f.Lookup("threshold"))
	bindFlag("similar.include_same_field", f.Lookup("same-field"))
	bindFlag("similar.limit", f.Lookup("limit"))

	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	req := engine.SimilarRequest{
		Threshold:        viper.GetFloat64("similar.threshold"),
		IncludeSameField: viper.GetBool("similar.include_same_field"),
		Limit:            viper.GetInt("similar.limit"),
	}
	req.Keywords, _ = cmd.Flags().GetString("keywords")
	req.Field, _ = cmd.Flags().GetString("field")
	if len(args) == 1 {
		id, err := parseProjectID(args[0])
		if err != nil {
			return err
		}
		req.ProjectID = id
	}

	eng, err := newEngine(loadEngineConfig())
	if err != nil {
		return err
	}
	defer eng.Release()

	out, err := eng.FindSimilar(cmd.Context(), req)
	if err != nil {
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return search.FormatJSON(out, cmd.OutOrStdout())
	}
	writeSimilar(out, cmd.OutOrStdout())
	return nil
}

func parseProjectID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid project id %q", s)
	}
	return id, nil
}

func writeSimilar(out engine.SimilarOutput, w io.Writer) {
	if out.Project != nil {
		fmt.Fprintf(w, "Reference: %d %s (%s)\n", out.Project.ID, out.Project.Title, out.Project.FieldOfScience)
	} else {
		fmt.Fprintf(w, "Reference keywords: %s\n", out.Reference.Signature)
	}
	if len(out.Results) == 0 {
		fmt.Fprintf(w, "No similar projects found (%d considered).\n", out.Considered)
	}
	for i, r := range out.Results {
		fmt.Fprintf(w, "%3d. [%-8s %.2f] %d %s (%s, %s)\n",
			i+1, r.Band, r.Similarity, r.Project.ID, r.Project.Title, r.Project.PI, r.Project.FieldOfScience)
	}
	if out.Degraded {
		fmt.Fprintf(w, "warning: results are partial, pages %v could not be loaded\n", out.FailedPages)
	}
}
