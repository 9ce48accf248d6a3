package cmd

import (
	"context"

	"github.com/caley/caley/internal/app"
	"github.com/caley/caley/internal/rest"
	"github.com/spf13/cobra"
)

var (
	monthDate  string
	monthShift int
)

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show the month calendar with workout days highlighted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(cmd, func(ctx context.Context, deps *app.Dependencies) error {
			reference := deps.Clock.Now()
			if monthDate != "" {
				date, err := rest.ParseDate(monthDate, deps.Calendar.Location)
				if err != nil {
					return err
				}
				reference = date
			}
			view, err := deps.CalendarService.GetMonthView(ctx, reference, monthShift)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(deps.TextRenderer.RenderMonth(view)))
			return err
		})
	},
}

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "List the workouts of a day (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(cmd, func(ctx context.Context, deps *app.Dependencies) error {
			day := deps.Clock.Now()
			if len(args) == 1 {
				date, err := rest.ParseDate(args[0], deps.Calendar.Location)
				if err != nil {
					return err
				}
				day = date
			}
			view, err := deps.CalendarService.GetDayView(ctx, day)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(deps.TextRenderer.RenderDay(view)))
			return err
		})
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Count the workouts of the current week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(cmd, func(ctx context.Context, deps *app.Dependencies) error {
			summary, err := deps.CalendarService.GetWeekSummary(ctx)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(deps.TextRenderer.RenderWeek(summary)))
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(weekCmd)
	monthCmd.Flags().StringVarP(&monthDate, "date", "d", "", "Any day of the month to show, YYYY-MM-DD (default today)")
	monthCmd.Flags().IntVarP(&monthShift, "shift", "s", 0, "Number of months to move forward (negative for back)")
}
