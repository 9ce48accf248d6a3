package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/caley/caley/internal/app"
	"github.com/caley/caley/internal/rest"
	"github.com/caley/caley/pkg/workout"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	workoutTitle       string
	workoutDescription string
	workoutRating      int
	workoutDate        string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a workout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(cmd, func(ctx context.Context, deps *app.Dependencies) error {
			date, err := parseWorkoutDate(deps)
			if err != nil {
				return err
			}
			draft := workout.NewDraft(date)
			draft.Title = workoutTitle
			draft.Description = workoutDescription
			draft.Rating = workoutRating

			saved, err := deps.WorkoutService.Save(ctx, nil, draft)
			if err != nil {
				return err
			}
			printSaved(cmd, deps, saved)
			return nil
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a recorded workout",
	Long:  "Change a recorded workout. Only the given flags are changed.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid workout id %q: %w", args[0], err)
		}
		return withApplication(cmd, func(ctx context.Context, deps *app.Dependencies) error {
			existing, err := deps.WorkoutService.Get(ctx, id)
			if err != nil {
				return err
			}

			draft := workout.DraftFrom(existing)
			flags := cmd.Flags()
			if flags.Changed("title") {
				draft.Title = workoutTitle
			}
			if flags.Changed("description") {
				draft.Description = workoutDescription
			}
			if flags.Changed("rating") {
				draft.Rating = workoutRating
			}
			if flags.Changed("date") {
				if draft.Date, err = parseWorkoutDate(deps); err != nil {
					return err
				}
			}

			saved, err := deps.WorkoutService.Save(ctx, &existing, draft)
			if err != nil {
				return err
			}
			printSaved(cmd, deps, saved)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a workout permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid workout id %q: %w", args[0], err)
		}
		return withApplication(cmd, func(ctx context.Context, deps *app.Dependencies) error {
			if err := deps.WorkoutService.Delete(ctx, id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted workout %s\n", id)
			return nil
		})
	},
}

func parseWorkoutDate(deps *app.Dependencies) (time.Time, error) {
	if workoutDate == "" {
		return deps.Clock.Now(), nil
	}
	return rest.ParseDate(workoutDate, deps.Calendar.Location)
}

func printSaved(cmd *cobra.Command, deps *app.Dependencies, saved workout.Workout) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved workout %s: %s (rating %d) on %s\n",
		saved.Id, saved.DisplayTitle(), saved.Rating, deps.Calendar.StartOfDay(saved.Date).Format(time.DateOnly))
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVarP(&workoutTitle, "title", "t", "", "Workout title")
		c.Flags().StringVar(&workoutDescription, "description", "", "Free text notes")
		c.Flags().IntVarP(&workoutRating, "rating", "r", workout.MinRating, "Rating from 1 to 5")
		c.Flags().StringVarP(&workoutDate, "date", "d", "", "Workout date, YYYY-MM-DD or RFC3339 (default now)")
	}
}
