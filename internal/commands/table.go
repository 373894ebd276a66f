package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/payday-calendar/internal/app"
	"github.com/klabast/wb-services/payday-calendar/internal/payday"
)

func newTableCmd(opts *options) *cobra.Command {
	var (
		format string
		save   bool
	)

	c := &cobra.Command{
		Use:     "table <year>",
		Short:   "Print the payday table of a year",
		Example: "payday-calendar table 2024 --format yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%s: %q", app.ErrInvalidYear, args[0])
			}

			entries, err := payday.Year(year)
			if err != nil {
				return err
			}
			csv := payday.NewTable(entries).CSV()

			out := cmd.OutOrStdout()
			if format == app.FormatCSV {
				fmt.Fprintln(out, csv)
			} else {
				data := app.NewYearData(year, entries)
				if err := app.Export(out, format, data, app.EventsFromEntries(entries), app.ICSOptions{}); err != nil {
					return err
				}
			}

			if !save {
				return nil
			}
			path, err := opts.store().Save(year, csv)
			if err != nil {
				return fmt.Errorf("%s: %w", app.ErrFailedToSave, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", path)
			return nil
		},
	}

	c.Flags().StringVarP(&format, "format", "f", app.FormatCSV, "output format: csv, json, yaml or ics")
	c.Flags().BoolVarP(&save, "save", "s", false, "also save the CSV table to the tables directory")
	return c
}
