// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pdiddy/allocations-engine/internal/engine"
	"github.com/pdiddy/allocations-engine/internal/search"
	"github.com/pdiddy/allocations-engine/internal/variants"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run queries interactively against one warm engine",
	Long: `Repl reads one command per line and answers it with a single engine, so
catalog pages fetched by one query are reused by the next until they expire.
Expired pages are swept in the background. Type "help" for the commands.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

const replHelp = `Commands:
  search <query>           boolean search (AND, OR, NOT, "phrases")
  similar <project-id>     projects similar to a project
  keywords <words...>      projects similar to free keywords
  variants <name>          person-name variants
  ivariants <institution>  institution-name variants
  correlate <project-id>   validated funding awards of a project's PI
  icorrelate <institution> funding for every project at an institution
  cache                    evict expired pages and show the cache size
  help                     show this help
  quit                     exit`

func runRepl(cmd *cobra.Command, args []string) error {
	cfg := loadEngineConfig()
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Release()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	go eng.Cache().Sweep(ctx, eng.Config().Allocations.SweepInterval, func(n int) {
		slog.Debug("evicted expired pages", "count", n)
	})

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	return repl(ctx, eng, cmd.InOrStdin(), cmd.OutOrStdout(), interactive)
}

// repl runs the read-eval loop until quit, end of input, or ctx is done.
// Command errors are printed and do not end the loop.
func repl(ctx context.Context, eng *engine.Engine, in io.Reader, out io.Writer, prompt bool) error {
	if prompt {
		fmt.Fprintln(out, `allocations-engine repl. Type "help" for commands.`)
	}
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		err := evalLine(ctx, eng, line, out)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

var errQuit = errors.New("quit")

func evalLine(ctx context.Context, eng *engine.Engine, line string, out io.Writer) error {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprintln(out, replHelp)
	case "search":
		res, err := eng.Search(ctx, search.Request{Query: rest})
		if err != nil {
			return err
		}
		search.FormatTable(res, out)
	case "similar":
		id, err := parseProjectID(rest)
		if err != nil {
			return err
		}
		res, err := eng.FindSimilar(ctx, similarDefaults(eng, engine.SimilarRequest{ProjectID: id}))
		if err != nil {
			return err
		}
		writeSimilar(res, out)
	case "keywords":
		res, err := eng.FindSimilar(ctx, similarDefaults(eng, engine.SimilarRequest{Keywords: rest}))
		if err != nil {
			return err
		}
		writeSimilar(res, out)
	case "variants":
		writeLines(variants.PersonNames(rest), out)
	case "ivariants":
		writeLines(variants.Institutions(rest), out)
	case "correlate":
		id, err := parseProjectID(rest)
		if err != nil {
			return err
		}
		corr, err := eng.CorrelateFunding(ctx, id)
		if err != nil {
			return err
		}
		writeCorrelation(corr, out)
	case "icorrelate":
		agg, err := eng.CorrelateInstitution(ctx, rest, 0)
		if err != nil {
			return err
		}
		writeInstitutionCorrelation(agg, out)
	case "cache":
		n := eng.EvictExpired()
		fmt.Fprintf(out, "evicted %d expired pages, %d cached\n", n, eng.Cache().Len())
	default:
		return fmt.Errorf("unknown command %q, type help", verb)
	}
	return nil
}

// similarDefaults fills threshold and same-field from the engine config.
func similarDefaults(eng *engine.Engine, req engine.SimilarRequest) engine.SimilarRequest {
	cfg := eng.Config().Similar
	req.Threshold = cfg.Threshold
	req.IncludeSameField = cfg.IncludeSameField
	return req
}

func writeLines(lines []string, out io.Writer) {
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
}
