package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mbarrett/shiftroster/internal/config"
	"github.com/mbarrett/shiftroster/pkg/core/model"
	"github.com/mbarrett/shiftroster/pkg/core/roster"
	"github.com/mbarrett/shiftroster/pkg/core/services"
	"github.com/mbarrett/shiftroster/pkg/postgres"
	"github.com/mbarrett/shiftroster/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	locks    *services.MonthLocks
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftroster",
		Short: "Shiftroster CLI - Generate and manage monthly staff rosters",
		Long:  `A CLI tool for generating monthly shift rosters, validating and editing assignments, and managing schedule lifecycle.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.logger != nil {
					app.logger.Sync()
				}
				if app.database != nil {
					app.database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(applyShiftCmd())
	rootCmd.AddCommand(publishCmd())
	rootCmd.AddCommand(archiveCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(listPeopleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app = &App{
		ctx:   context.Background(),
		locks: services.NewMonthLocks(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Info("Database initialized successfully")

	return nil
}

func generateCmd() *cobra.Command {
	var optionID string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "generate <month>",
		Short: "Generate a roster for a month (YYYY-MM), optionally with a relaxation option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.GenerateSchedule(app.ctx, app.database, app.locks, app.cfg, app.logger, args[0], optionID, dryRun)
			if err != nil {
				if errors.Is(err, roster.ErrConcurrentGeneration) {
					return fmt.Errorf("a generation for %s is already running", args[0])
				}
				return err
			}

			printGenerationResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&optionID, "option", "", "Apply a relaxation option from a previous run")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run generation without saving the schedule")
	return cmd
}

func printGenerationResult(result *services.GenerateScheduleResult) {
	gen := result.Result

	switch gen.Outcome {
	case roster.OutcomeSuccess:
		fmt.Printf("\n✓ Roster generated with no violations\n\n")
	case roster.OutcomePartial:
		fmt.Printf("\n! Best roster found carries %d violation(s) after %d attempt(s)\n\n", gen.BestErrorCount, gen.Iterations)
	case roster.OutcomeFailure:
		fmt.Printf("\n✗ No usable roster could be produced (%d attempt(s))\n\n", gen.Iterations)
	}

	if result.ScheduleID != "" {
		fmt.Printf("Schedule ID: %s\n", result.ScheduleID)
	}
	fmt.Printf("Month:       %s\n", result.Month)
	if result.Saved {
		fmt.Printf("Status:      draft (saved)\n")
	} else {
		fmt.Printf("Status:      not saved\n")
	}
	fmt.Println()

	if len(gen.Violations) > 0 {
		fmt.Printf("Violations:\n")
		for _, v := range gen.Violations {
			fmt.Printf("  [%s] %s\n", v.Code, v.Message)
		}
		fmt.Println()
	}

	if len(gen.Options) > 0 {
		fmt.Printf("Options:\n")
		for _, opt := range gen.Options {
			fmt.Printf("  %s - %s\n", opt.ID, opt.Title)
			fmt.Printf("      %s\n", opt.Impact)
		}
		fmt.Println()
	}
}

func applyShiftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "applyShift <schedule_id> <person_id> <date> <kind>",
		Short: "Replace a single cell in a draft schedule",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ApplyShift(app.ctx, app.database, app.cfg, app.logger, args[0], args[1], args[2], model.ShiftKind(args[3]))
			if err != nil {
				if errors.Is(err, roster.ErrScheduleImmutable) {
					return fmt.Errorf("schedule %s is not editable: %w", args[0], err)
				}
				return err
			}

			if len(result.Violations) == 0 {
				fmt.Printf("\n✓ Cell updated, no violations in the affected scope\n\n")
				return nil
			}

			fmt.Printf("\n! Cell updated with %d violation(s) in the affected scope:\n\n", len(result.Violations))
			for _, v := range result.Violations {
				fmt.Printf("  [%s] %s\n", v.Code, v.Message)
			}
			fmt.Println()
			return nil
		},
	}
}

func publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <schedule_id>",
		Short: "Publish a draft schedule, recording its violation snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			violations, err := services.PublishSchedule(app.ctx, app.database, app.cfg, app.logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Schedule published\n\n")
			if len(violations) > 0 {
				fmt.Printf("Published with %d outstanding violation(s):\n", len(violations))
				for _, v := range violations {
					fmt.Printf("  [%s] %s\n", v.Code, v.Message)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func archiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <schedule_id>",
		Short: "Archive a published schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.ArchiveSchedule(app.ctx, app.database, app.logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Schedule archived\n\n")
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <schedule_id>",
		Short: "Delete a draft schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteSchedule(app.ctx, app.database, app.logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Schedule deleted\n\n")
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <schedule_id>",
		Short: "Re-run full validation for a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			violations, err := services.ValidateSchedule(app.ctx, app.database, app.cfg, app.logger, args[0])
			if err != nil {
				return err
			}

			if len(violations) == 0 {
				fmt.Printf("\n✓ Schedule is valid\n\n")
				return nil
			}

			fmt.Printf("\n%d violation(s):\n\n", len(violations))
			for _, v := range violations {
				fmt.Printf("  [%s] %s\n", v.Code, v.Message)
			}
			fmt.Println()
			return nil
		},
	}
}

func listPeopleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listPeople",
		Short: "List the active schedulable population",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := services.ListPeople(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d active people:\n\n", len(people))
			for _, p := range people {
				flags := ""
				if p.IsFloater {
					flags += " [floater]"
				}
				if p.InTraining {
					flags += " [training]"
				}
				fmt.Printf("  %-24s %-8s %s%s\n", p.FullName(), p.Tier, p.State, flags)
			}
			fmt.Println()
			return nil
		},
	}
}
