package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/payday-calendar/internal/app"
	"github.com/klabast/wb-services/payday-calendar/internal/payday"
)

func newHolidaysCmd(_ *options) *cobra.Command {
	var audit bool

	c := &cobra.Command{
		Use:   "holidays <year>",
		Short: "List the holidays that block paydays",
		Long:  "List the holidays that block paydays. With --audit, also list official Estonian holidays on weekdays that the set does not contain.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%s: %q", app.ErrInvalidYear, args[0])
			}
			if _, err := payday.NewDate(year, 1, 1); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printHolidays(cmd, payday.Holidays(year))

			if !audit {
				return nil
			}
			missing, err := payday.Audit(year)
			if err != nil {
				return err
			}
			if len(missing) == 0 {
				fmt.Fprintln(out, "\nNo official weekday holidays are missing.")
				return nil
			}
			fmt.Fprintln(out, "\nOfficial weekday holidays not in the set:")
			printHolidays(cmd, missing)
			return nil
		},
	}

	c.Flags().BoolVar(&audit, "audit", false, "compare with the official Estonian calendar")
	return c
}

func printHolidays(cmd *cobra.Command, set payday.HolidaySet) {
	for _, h := range set {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s  %s\n", h.Date, h.Date.Weekday(), h.Name)
	}
}
