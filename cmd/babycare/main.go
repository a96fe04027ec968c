package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/state"
	"github.com/vladimiradmaev/babycare-helper/internal/config"
	"github.com/vladimiradmaev/babycare-helper/internal/database"
	"github.com/vladimiradmaev/babycare-helper/internal/database/migrations"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/growth"
	"github.com/vladimiradmaev/babycare-helper/internal/reminders"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
	"github.com/vladimiradmaev/babycare-helper/internal/services"
	"gorm.io/gorm"
)

var envFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "babycare",
		Short:         "Operator tools for the Baby Care Helper bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(percentileCmd())
	rootCmd.AddCommand(remindersCmd())
	rootCmd.AddCommand(growthCmd())
	rootCmd.AddCommand(importTummyNotesCmd())
	rootCmd.AddCommand(migrateCmd())
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return config.LoadOperator()
}

func openDB() (*config.Config, *gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func parseSex(s string) (domain.Sex, error) {
	sex := domain.Sex(strings.ToLower(s))
	if !sex.Valid() {
		return "", fmt.Errorf("sex must be %q or %q", domain.SexMale, domain.SexFemale)
	}
	return sex, nil
}

func percentileCmd() *cobra.Command {
	var (
		metric    string
		sex       string
		ageMonths float64
		value     float64
	)

	cmd := &cobra.Command{
		Use:   "percentile",
		Short: "Estimate the WHO percentile of a single measurement",
		Example: "  babycare percentile --metric weight --sex female --age-months 3 --value 6.1\n" +
			"  babycare percentile --metric head_circumference --age-months 1.5 --value 38",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := growth.Metric(metric)
			if growth.Table(m, domain.SexMale) == nil {
				names := make([]string, 0, len(growth.Metrics()))
				for _, known := range growth.Metrics() {
					names = append(names, string(known))
				}
				return fmt.Errorf("unknown metric %q, use one of: %s", metric, strings.Join(names, ", "))
			}
			s, err := parseSex(sex)
			if err != nil {
				return err
			}
			if ageMonths < 0 || value <= 0 {
				return fmt.Errorf("--age-months must be >= 0 and --value > 0")
			}

			p := growth.EstimatePercentile(value, ageMonths, m, s)
			fmt.Fprintf(cmd.OutOrStdout(), "P%.1f (%s)\n", p, growth.Classify(p))
			return nil
		},
	}

	cmd.Flags().StringVar(&metric, "metric", string(growth.MetricWeight), "weight (kg), length (cm) or head_circumference (cm)")
	cmd.Flags().StringVar(&sex, "sex", string(domain.SexMale), "male or female")
	cmd.Flags().Float64Var(&ageMonths, "age-months", 0, "age in months at the time of measurement")
	cmd.Flags().Float64Var(&value, "value", 0, "measured value")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func remindersCmd() *cobra.Command {
	var (
		profileID string
		at        string
	)

	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Evaluate every care reminder for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			now, err := parseAt(at)
			if err != nil {
				return err
			}

			profile, err := repository.NewProfileRepository(db).Get(cmd.Context(), profileID)
			if err != nil {
				return fmt.Errorf("profile %s: %w", profileID, err)
			}
			engine := reminders.NewEngine(cfg.Reminders(), cfg.IronDosing())
			svc := services.NewReminderService(engine, repository.NewEntryRepository(db), cfg.Location())
			statuses, err := svc.Statuses(cmd.Context(), *profile, now)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s, evaluated at %s\n\n", profile.Name, now.In(cfg.Location()).Format(time.RFC3339))
			fmt.Fprintln(w, "REMINDER\tDUE\tSTATUS\tTARGET")
			for _, st := range statuses {
				fmt.Fprintf(w, "%s\t%v\t%s\t%s\n", st.Title, st.Due, st.CurrentStatus, st.TargetDescription)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "baby profile id")
	cmd.Flags().StringVar(&at, "at", "", "evaluate at this RFC 3339 time instead of now")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func parseAt(at string) (time.Time, error) {
	if at == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at: %w", err)
	}
	return t, nil
}

func growthCmd() *cobra.Command {
	var (
		profileID string
		sex       string
	)

	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Show percentiles of a profile's latest measurements",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseSex(sex)
			if err != nil {
				return err
			}
			_, db, err := openDB()
			if err != nil {
				return err
			}
			profile, err := repository.NewProfileRepository(db).Get(cmd.Context(), profileID)
			if err != nil {
				return fmt.Errorf("profile %s: %w", profileID, err)
			}

			report, err := services.NewGrowthService(repository.NewMeasurementRepository(db)).Report(cmd.Context(), *profile, s, time.Now())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s, %.1f months\n\n", profile.Name, report.AgeMonths)
			fmt.Fprintln(w, "METRIC\tVALUE\tMEASURED\tPERCENTILE\tBAND")
			for _, r := range report.Results {
				fmt.Fprintf(w, "%s\t%.2f %s\t%s\tP%.1f\t%s\n", r.Metric, r.Value, r.Unit, r.MeasuredAt.Format("2006-01-02"), r.Percentile, r.Label)
			}
			for _, m := range report.Missing {
				fmt.Fprintf(w, "%s\t-\t-\t-\tnot measured\n", m)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "baby profile id")
	cmd.Flags().StringVar(&sex, "sex", string(domain.SexMale), "male or female")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func importTummyNotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-tummy-notes",
		Short: "Back-fill tummy-time durations from legacy \"X min Y sek\" notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			entries := services.NewEntryService(repository.NewEntryRepository(db), state.NewManager(), cfg.Care.UndoWindow)
			result, err := entries.BackfillTummyDurations(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d entries, %d without a readable duration\n", result.Updated, result.Skipped)
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			// opening the database migrates it
			if _, _, err := openDB(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database is up to date (%d migrations registered)\n", len(migrations.Registered()))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB()
			if err != nil {
				return err
			}
			id, err := migrations.Rollback(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %s\n", id)
			return nil
		},
	})
	return cmd
}
