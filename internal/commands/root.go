// Package commands builds the payday-calendar command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/payday-calendar/internal/app"
	"github.com/klabast/wb-services/payday-calendar/internal/log"
	"github.com/klabast/wb-services/payday-calendar/internal/shell"
)

const (
	usage   = "payday-calendar"
	short   = "Payday and reminder dates on Estonian business days"
	long    = "Paydays fall on the 10th of each month, moved back to the previous business day. A reminder is due 3 business days earlier. Without a subcommand an interactive shell prints year tables and saves them as CSV."
	example = "payday-calendar table 2024 --save"
)

// options are shared by all subcommands
type options struct {
	cfg       *app.Config
	tablesDir string
	logLevel  string
	logFormat string
}

// Execute builds the command tree and executes commands.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	opts := &options{}

	c := &cobra.Command{
		Use:          usage,
		Short:        short,
		Long:         long + "\n\n" + app.ConfigUsage(),
		Example:      example,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.runShell(cmd)
		},
	}

	c.PersistentFlags().StringVar(&opts.tablesDir, "tables-dir", "", "directory for saved CSV tables (overrides TABLES_DIR)")
	c.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn, error or fatal (overrides LOG_LEVEL)")
	c.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "console or json (overrides LOG_FORMAT)")

	c.AddCommand(
		newTableCmd(opts),
		newHolidaysCmd(opts),
		newServeCmd(opts),
		newHashPasswordCmd(opts),
	)
	return c
}

// load reads the configuration, applies flag overrides and sets up logging
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("tables-dir") {
		cfg.TablesDir = o.tablesDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}

	if err := log.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return fmt.Errorf("invalid logging configuration: %w", err)
	}
	o.cfg = cfg
	return nil
}

func (o *options) store() *app.TableStore {
	return app.NewTableStore(o.cfg.TablesDir)
}

func (o *options) runShell(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	var (
		reader shell.LineReader
		err    error
	)
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		reader, err = shell.NewReader(f, out)
		if err != nil {
			return err
		}
	} else {
		reader = shell.NewBufferedReader(cmd.InOrStdin(), out)
	}
	defer reader.Close()

	log.Debug("starting payday calendar in %s mode, tables directory: %s", app.ModeShell, o.cfg.TablesDir)
	return shell.New(reader, out, o.store()).Run()
}
