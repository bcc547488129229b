// Command valuate is the cap value CLI. It runs the valuation pipeline over
// a league export and prints the resulting boards.
//
// Usage:
//
//	valuate run --export league.json --out panel.json
//	valuate draft --export league.json
//	valuate prospects --team TOR --pos D
//	valuate teams
//	valuate teams --prospects
//	valuate market --filter upcoming-fa
//	valuate sign --pid 42 --years 3 --salary 6.5
//	valuate player --pid 42
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/capvalue/internal/config"
	"github.com/albapepper/capvalue/internal/model"
	"github.com/albapepper/capvalue/internal/pipeline"
	"github.com/albapepper/capvalue/internal/views"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// sourceFlags override the matching environment settings when set.
type sourceFlags struct {
	export         string
	source         string
	progression    string
	positionModels string
	salaryModel    string
}

var flags sourceFlags

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "valuate",
		Short:         "League export valuation CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.export, "export", "", "League export JSON (overrides LEAGUE_EXPORT_PATH)")
	pf.StringVar(&flags.source, "source", "", "Reference source: files or postgres (overrides REFERENCE_SOURCE)")
	pf.StringVar(&flags.progression, "progression", "", "Progression curve CSV (overrides PROGRESSION_PATH)")
	pf.StringVar(&flags.positionModels, "position-models", "", "Position value models JSON (overrides POSITION_MODELS_PATH)")
	pf.StringVar(&flags.salaryModel, "salary-model", "", "Salary model JSON (overrides SALARY_MODEL_PATH)")

	root.AddCommand(runCmd())
	root.AddCommand(draftCmd())
	root.AddCommand(prospectsCmd())
	root.AddCommand(teamsCmd())
	root.AddCommand(marketCmd())
	root.AddCommand(signCmd())
	root.AddCommand(playerCmd())

	if err := root.Execute(); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, cfg *config.Config, panel *pipeline.Panel, stats pipeline.RunStats) error {
				fmt.Fprintln(cmd.OutOrStdout(), stats.Summary())
				if team, ok := views.UserTeam(panel); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "user_team=%s run_id=%s\n", team.Abbrev, panel.RunID())
				}
				if out == "" {
					return nil
				}
				data, err := json.MarshalIndent(panel.Rows(), "", "  ")
				if err != nil {
					return fmt.Errorf("encode panel: %w", err)
				}
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fmt.Errorf("write panel: %w", err)
				}
				logger.Info("Panel written", "path", out, "rows", panel.Len())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write panel rows as JSON to this file")
	return cmd
}

// --------------------------------------------------------------------------
// board commands
// --------------------------------------------------------------------------

func draftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draft",
		Short: "Print the draft board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, cfg *config.Config, panel *pipeline.Panel, stats pipeline.RunStats) error {
				return writeRows(cmd.OutOrStdout(), views.DraftBoard(panel))
			})
		},
	}
}

func prospectsCmd() *cobra.Command {
	var team, pos string
	var draftYear int
	cmd := &cobra.Command{
		Use:   "prospects",
		Short: "Print the prospect board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, cfg *config.Config, panel *pipeline.Panel, stats pipeline.RunStats) error {
				var f views.ProspectFilter
				var err error
				if f.TeamID, err = resolveTeam(panel, team); err != nil {
					return err
				}
				if f.Position, err = parsePosition(pos); err != nil {
					return err
				}
				if draftYear != 0 {
					f.DraftYear = model.Int(draftYear)
				}
				return writeRows(cmd.OutOrStdout(), views.Prospects(panel, f))
			})
		},
	}
	cmd.Flags().StringVar(&team, "team", "", "Team abbreviation")
	cmd.Flags().StringVar(&pos, "pos", "", "Position (C, W, D, G)")
	cmd.Flags().IntVar(&draftYear, "draft-year", 0, "Draft class")
	return cmd
}

func teamsCmd() *cobra.Command {
	var prospects bool
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Print team value or prospect depth summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, cfg *config.Config, panel *pipeline.Panel, stats pipeline.RunStats) error {
				if prospects {
					return writeTeamProspects(cmd.OutOrStdout(), views.TeamProspectDepth(panel))
				}
				return writeTeamValues(cmd.OutOrStdout(), views.TeamValues(panel))
			})
		},
	}
	cmd.Flags().BoolVar(&prospects, "prospects", false, "Show prospect depth instead of contract value")
	return cmd
}

func marketCmd() *cobra.Command {
	var filter, team, pos string
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Print next season's contract market",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, cfg *config.Config, panel *pipeline.Panel, stats pipeline.RunStats) error {
				var q views.MarketQuery
				var err error
				if q.Filter, err = views.ParseMarketFilter(filter); err != nil {
					return err
				}
				if q.TeamID, err = resolveTeam(panel, team); err != nil {
					return err
				}
				if q.Position, err = parsePosition(pos); err != nil {
					return err
				}
				return writeRows(cmd.OutOrStdout(), views.Market(panel, q))
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "all, upcoming-fa or dead-weight")
	cmd.Flags().StringVar(&team, "team", "", "Team abbreviation")
	cmd.Flags().StringVar(&pos, "pos", "", "Position (C, W, D, G)")
	return cmd
}

// --------------------------------------------------------------------------
// player commands
// --------------------------------------------------------------------------

func signCmd() *cobra.Command {
	var pid, years int
	var salary float64
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Evaluate a flat-salary contract offer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, cfg *config.Config, panel *pipeline.Panel, stats pipeline.RunStats) error {
				limits := views.SigningLimits{MaxYears: cfg.ContractYears, MaxSalary: cfg.SalaryCeiling}
				s, err := views.EvaluateSigning(panel, pid, years, salary, limits)
				if err != nil {
					return err
				}
				return writeSigning(cmd.OutOrStdout(), s)
			})
		},
	}
	cmd.Flags().IntVar(&pid, "pid", 0, "Player id")
	cmd.Flags().IntVar(&years, "years", 1, "Contract length in seasons")
	cmd.Flags().Float64Var(&salary, "salary", 0, "Salary per season, millions")
	_ = cmd.MarkFlagRequired("pid")
	return cmd
}

func playerCmd() *cobra.Command {
	var pid int
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Print one player's horizon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(func(ctx context.Context, cfg *config.Config, panel *pipeline.Panel, stats pipeline.RunStats) error {
				rows, err := views.PlayerHistory(panel, pid)
				if err != nil {
					return err
				}
				return writeRows(cmd.OutOrStdout(), rows)
			})
		},
	}
	cmd.Flags().IntVar(&pid, "pid", 0, "Player id")
	_ = cmd.MarkFlagRequired("pid")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

type pipelineFn func(ctx context.Context, cfg *config.Config, panel *pipeline.Panel, stats pipeline.RunStats) error

func runPipeline(fn pipelineFn) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	in, err := pipeline.LoadInputs(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer in.Close()

	panel, stats, err := pipeline.Run(ctx, in.Artifacts, in.Dataset, pipeline.OptionsFromConfig(cfg), logger)
	if err != nil {
		return err
	}
	return fn(ctx, cfg, panel, stats)
}

func (f sourceFlags) apply(cfg *config.Config) {
	if f.export != "" {
		cfg.ExportPath = f.export
	}
	if f.source != "" {
		cfg.ReferenceSource = strings.ToLower(f.source)
	}
	if f.progression != "" {
		cfg.ProgressionPath = f.progression
	}
	if f.positionModels != "" {
		cfg.PositionModelsPath = f.positionModels
	}
	if f.salaryModel != "" {
		cfg.SalaryModelPath = f.salaryModel
	}
}

func resolveTeam(panel *pipeline.Panel, abbrev string) (*int, error) {
	if abbrev == "" {
		return nil, nil
	}
	for _, t := range panel.Teams() {
		if strings.EqualFold(t.Abbrev, abbrev) {
			return model.Int(t.ID), nil
		}
	}
	return nil, fmt.Errorf("unknown team %q", abbrev)
}

func parsePosition(s string) (model.Position, error) {
	if s == "" {
		return model.PositionUnknown, nil
	}
	return model.ParsePosition(strings.ToUpper(s))
}
