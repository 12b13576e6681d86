// Package cli is the game's command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tatianab/researcher-life/internal/catalog"
	"github.com/tatianab/researcher-life/internal/config"
	"github.com/tatianab/researcher-life/internal/engine"
	"github.com/tatianab/researcher-life/internal/models"
	"github.com/tatianab/researcher-life/internal/random"
	"github.com/tatianab/researcher-life/internal/scenario"
	"github.com/tatianab/researcher-life/internal/sim"
	"github.com/tatianab/researcher-life/internal/tui"
)

type flags struct {
	seed    int64
	saveDir string
}

// app is everything a subcommand needs, built from config and flags.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	seed    int64
	catalog *catalog.Catalog
	names   *models.NameStore
	close   func() error
}

func (f *flags) setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("save-dir") {
		cfg.SaveDir = f.saveDir
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}

	logger, closeFn, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			_ = closeFn()
			return nil, err
		}
	}
	cat, err := catalog.Load()
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	logger.Info("starting", "command", cmd.Name(), "seed", seed, "save_dir", cfg.SaveDir)
	return &app{
		cfg:     cfg,
		log:     logger,
		seed:    seed,
		catalog: cat,
		names:   models.NewNameStore(cfg.SaveDir),
		close:   closeFn,
	}, nil
}

func (a *app) engine(salt int64) *engine.Engine {
	return engine.New(a.catalog, random.New(a.seed+salt), a.log).WithGoalWeeks(a.cfg.GoalWeeks)
}

// NewRootCmd builds the command tree. Running it without a subcommand plays
// the game.
func NewRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "game",
		Short:        "Researcher Life: train a researcher one week at a time",
		SilenceUsage: true,
	}
	root.PersistentFlags().Int64Var(&f.seed, "seed", 0, "random seed (0 draws a fresh one)")
	root.PersistentFlags().StringVar(&f.saveDir, "save-dir", ".saves", "directory holding the researcher name")

	play := newPlayCmd(f)
	root.RunE = play.RunE
	root.AddCommand(
		play,
		newScenarioCmd(f),
		newSimulateCmd(f),
		newCatalogCmd(),
		newNameCmd(f),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newPlayCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the weekly training game",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := f.setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			return tui.Run(tui.Options{Engine: a.engine(0), Names: a.names, Logger: a.log})
		},
	}
}

func newScenarioCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "scenario",
		Short: "Play the branching story mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := f.setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			g, err := scenario.LoadGraph()
			if err != nil {
				return err
			}
			return tui.RunScenario(scenario.NewMachine(g, a.log))
		},
	}
}

func newSimulateCmd(f *flags) *cobra.Command {
	var (
		weeks  int
		policy string
		runs   int
		quiet  bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Let a bot play and report the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := f.setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			if weeks <= 0 {
				weeks = a.cfg.GoalWeeks
			}
			out := cmd.OutOrStdout()
			for i := 0; i < runs; i++ {
				var p sim.Policy
				switch strings.ToLower(policy) {
				case "greedy":
					p = sim.Greedy{Reserve: 10}
				case "random":
					p = sim.Random{Rng: random.New(a.seed + int64(i) + 1000)}
				default:
					return fmt.Errorf("unknown policy %q (want greedy or random)", policy)
				}
				report, err := sim.Run(a.engine(int64(i)), p, weeks)
				if err != nil {
					return err
				}
				printReport(out, i+1, report, quiet)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&weeks, "weeks", 0, "weeks to play (defaults to the goal length)")
	cmd.Flags().StringVar(&policy, "policy", "greedy", "bot policy: greedy or random")
	cmd.Flags().IntVar(&runs, "runs", 1, "number of games to play")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the final summary")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List actions, items and random events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), cat)
			return nil
		},
	}
}

func newNameCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name",
		Short: "Show the stored researcher name",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := f.setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			name, ok, err := a.names.Load()
			if err != nil {
				return err
			}
			if !ok {
				printWarn(cmd.OutOrStdout(), "No researcher name stored yet.")
				return nil
			}
			printInfo(cmd.OutOrStdout(), name)
			return nil
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <name>",
			Short: "Store the researcher name",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := f.setup(cmd)
				if err != nil {
					return err
				}
				defer a.close()
				name, err := a.names.Save(strings.Join(args, " "))
				if err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Researcher name set to "+name+".")
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget the researcher name",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := f.setup(cmd)
				if err != nil {
					return err
				}
				defer a.close()
				if err := a.names.Clear(); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Researcher name cleared.")
				return nil
			},
		},
	)
	return cmd
}
