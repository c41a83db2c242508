package main

import (
	"context"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ArmsDealer/internal/shared/logs"
	"ArmsDealer/internal/shared/simconfig"
	waractor "ArmsDealer/internal/war/actor"
	"ArmsDealer/internal/war/actors"
	"ArmsDealer/modules/kit/tracex"
)

type runOptions struct {
	turns    int
	scenario string
	quiet    bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation headless for a number of turns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd.Context(), root, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.turns, "turns", "n", 10, "number of turns to process")
	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "configs/scenario.yml", "scenario file with initial units and wars")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "only print the final summary")
	return cmd
}

func runSimulation(ctx context.Context, root *rootOptions, opts *runOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := bootstrap("warsim-run", root)
	if err != nil {
		return err
	}
	defer func() { _ = logs.Sync() }()

	world, err := a.buildWorld(opts.scenario)
	if err != nil {
		return err
	}
	repo, closeRepo, err := a.openRepository(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	rt := waractor.NewRuntime(actors.Deps{
		World:  world,
		Tuning: a.cfg.Sim,
		Repo:   repo,
		Log:    a.log,
	}, a.cfg.Logic.AskTimeout)
	defer rt.Shutdown()

	if a.cfg.Sim.Watch {
		watchTuning(root.configPath, rt)
	}

	title := color.New(color.FgCyan, color.Bold)
	title.Printf("\n== %s: %d turns from turn %d ==\n", a.atlas.Title(), opts.turns, world.Turn())

	for i := 0; i < opts.turns; i++ {
		tctx := tracex.WithTraceID(ctx, tracex.NewTraceID())
		res, err := rt.AdvanceTurn(tctx, 1)
		if err != nil {
			return err
		}
		if !opts.quiet {
			for _, r := range res.Reports {
				renderTurn(os.Stdout, r)
			}
		}
		wars, err := rt.Wars(tctx, true)
		if err != nil {
			return err
		}
		if len(wars.Wars) == 0 {
			color.New(color.FgGreen).Println("\nno active wars left")
			break
		}
	}

	wars, err := rt.Wars(ctx, false)
	if err != nil {
		return err
	}
	renderWars(os.Stdout, wars.Turn, wars.Wars)
	return nil
}

// watchTuning sim.watch=true 时把配置变更转成 ApplyTuning 消息。
func watchTuning(path string, rt *waractor.Runtime) {
	_, err := simconfig.WatchSim(path, func(sim simconfig.SimConfig, err error) {
		if err != nil {
			logs.Warn("reload sim config failed", zap.Error(err))
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if _, err := rt.ApplyTuning(ctx, sim); err != nil {
			logs.Warn("apply sim config failed, keep previous", zap.Error(err))
			return
		}
		logs.Info("sim config reloaded", zap.Any("sim", sim))
	})
	if err != nil {
		logs.Warn("watch sim config failed", zap.Error(err))
	}
}
