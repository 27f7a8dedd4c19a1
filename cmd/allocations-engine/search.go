package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/allocations-engine/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search allocations projects with a boolean query",
	Long: `Search scores every loaded project against a free-text query and prints
the ranked matches. Terms may be combined with AND, OR, NOT and double-quoted
phrases, for example:

  allocations-engine search 'climate AND "neural network" NOT review'

Use --save to write the query and results to a YAML file, and --load to rerun
a saved query.`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.String("field", "", "filter by field of science (substring)")
	f.String("allocation-type", "", "filter by allocation type (substring)")
	f.String("from", "", "earliest project start date (YYYY-MM-DD)")
	f.String("to", "", "latest project start date (YYYY-MM-DD)")
	f.String("sort", "", "sort key: relevance, date_desc, date_asc, allocation_desc, allocation_asc, pi_name")
	f.Int("limit", 0, "maximum number of results (default 20)")
	f.Bool("json", false, "output results as JSON")
	f.String("save", "", "write query and results to this YAML file")
	f.String("load", "", "rerun the query stored in this YAML file")

	bindFlag("search.sort_by", f.Lookup("sort"))
	bindFlag("search.limit", f.Lookup("limit"))

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	req, err := searchRequest(cmd, args)
	if err != nil {
		return err
	}

	eng, err := newEngine(loadEngineConfig())
	if err != nil {
		return err
	}
	defer eng.Release()

	out, err := eng.Search(cmd.Context(), req)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := search.WriteQueryFile(path, req, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d results to %s\n", len(out.Results), path)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return search.FormatJSON(out, cmd.OutOrStdout())
	}
	search.FormatTable(out, cmd.OutOrStdout())
	return nil
}

// searchRequest builds a request from a saved query file or from the
// positional query and flags.
func searchRequest(cmd *cobra.Command, args []string) (search.Request, error) {
	if path, _ := cmd.Flags().GetString("load"); path != "" {
		qf, err := search.ReadQueryFile(path)
		if err != nil {
			return search.Request{}, err
		}
		return qf.Query.ToRequest()
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return search.Request{}, fmt.Errorf("provide a query or --load a saved query file")
	}

	field, _ := cmd.Flags().GetString("field")
	allocType, _ := cmd.Flags().GetString("allocation-type")
	req := search.Request{
		Query: query,
		Filters: search.Filters{
			FieldOfScience: field,
			AllocationType: allocType,
		},
		SortBy: search.SortBy(viper.GetString("search.sort_by")),
		Limit:  viper.GetInt("search.limit"),
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	var err error
	if req.Filters.StartFrom, err = parseDay("from", from); err != nil {
		return req, err
	}
	if req.Filters.StartTo, err = parseDay("to", to); err != nil {
		return req, err
	}
	return req, nil
}

// parseDay parses a YYYY-MM-DD flag value. Empty yields the zero time.
func parseDay(flag, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q: %w", flag, s, err)
	}
	return t, nil
}
