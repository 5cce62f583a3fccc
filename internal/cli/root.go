// Package cli provides the command-line interface of the sqlite-collate demo.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sqlite "go.riyazali.net/sqlite-collate"
	"go.riyazali.net/sqlite-collate/internal/config"
	"go.riyazali.net/sqlite-collate/internal/demo"
)

// Version information (set at build time).
var Version = "0.1.0"

// Exit codes, one per error kind.
const (
	ExitOK                    = 0
	ExitFailure               = 1
	ExitConnectionOpen        = 2
	ExitStatementExecution    = 3
	ExitQueryExecution        = 4
	ExitCollatorInit          = 5
	ExitCollationRegistration = 6
)

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch sqlite.KindOf(err) {
	case sqlite.ConnectionOpen:
		return ExitConnectionOpen
	case sqlite.StatementExecution:
		return ExitStatementExecution
	case sqlite.QueryExecution:
		return ExitQueryExecution
	case sqlite.CollatorInit:
		return ExitCollatorInit
	case sqlite.CollationRegistration:
		return ExitCollationRegistration
	default:
		return ExitFailure
	}
}

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
	newLog  func(verbose bool) (*zap.Logger, error)
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command { return newRootCmd(newLogger) }

func newRootCmd(newLog func(verbose bool) (*zap.Logger, error)) *cobra.Command {
	var a = &app{newLog: newLog}

	var rootCmd = &cobra.Command{
		Use:   "sqlite-collate",
		Short: "Demonstrates locale-aware collations in SQLite",
		Long: `sqlite-collate creates a small SQLite table, inserts sample text and prints
query results. The collate command registers a locale-aware comparison
function as a named collation so ORDER BY and WHERE use linguistic rather
than byte-wise comparison.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			if a.cfg, err = config.Load(a.cfgFile, cmd.Flags()); err != nil {
				return err
			}
			if a.log, err = a.newLog(a.cfg.Verbose); err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var flags = rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML config file")
	flags.String("database", config.DefaultDatabase, "Path to the database file (deleted at start)")
	flags.Int("width", sqlite.DefaultColumnWidth, "Column width of the result table")
	flags.String("locale", config.DefaultLocale, "BCP 47 locale of the custom collation")
	flags.String("strength", config.DefaultStrength, "Collation strength (primary|secondary|tertiary|quaternary|identical)")
	flags.Bool("ignore-whitespace", true, "Ignore white space in custom collation comparisons")
	flags.Bool("numeric", false, "Compare digit runs by numeric value")
	flags.String("collation", sqlite.CollationName, "Name of the custom collation")
	flags.StringP("output", "o", config.DefaultOutput, "Output format (table|pretty)")
	flags.BoolP("verbose", "v", false, "Verbose logging")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputTable, config.OutputPretty}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("strength", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"primary", "secondary", "tertiary", "quaternary", "identical"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newBootstrapCommand(a))
	rootCmd.AddCommand(newCollateCommand(a))
	rootCmd.AddCommand(newCompareCommand(a))
	return rootCmd
}

func (a *app) runner(w io.Writer) *demo.Runner {
	return &demo.Runner{Out: w, Log: a.log, Config: a.cfg}
}

func newBootstrapCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the example table and list it in byte order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runner(cmd.OutOrStdout()).Bootstrap(cmd.Context())
		},
	}
}

func newCollateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collate",
		Short: "Query the example table through the locale-aware collation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runner(cmd.OutOrStdout()).Collate(cmd.Context())
		},
	}
}

func newCompareCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two strings with the locale-aware collation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var coll, err = sqlite.NewCollator(a.cfg.CollatorOptions())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), coll.CompareString(args[0], args[1]))
			return err
		},
	}
}

// newLogger builds a production (JSON) logger, or a development one when verbose.
// Both write to stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	var rootCmd = NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitCode(err)
	}
	return ExitOK
}
