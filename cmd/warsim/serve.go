package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ArmsDealer/internal/shared/logs"
	shttp "ArmsDealer/internal/shared/transport/http"
	waractor "ArmsDealer/internal/war/actor"
	"ArmsDealer/internal/war/actors"
	warhttp "ArmsDealer/internal/war/interfaces/http"
)

type serveOptions struct {
	scenario string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the war query API and advance turns on demand or on a timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(root, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "scenario file with initial units and wars")
	return cmd
}

func serve(root *rootOptions, opts *serveOptions) error {
	a, err := bootstrap("warsim", root)
	if err != nil {
		return err
	}
	defer func() { _ = logs.Sync() }()

	world, err := a.buildWorld(opts.scenario)
	if err != nil {
		return err
	}
	repo, closeRepo, err := a.openRepository(context.Background())
	if err != nil {
		return err
	}
	defer closeRepo()

	rt := waractor.NewRuntime(actors.Deps{
		World:     world,
		Tuning:    a.cfg.Sim,
		Repo:      repo,
		Log:       a.log,
		TickEvery: a.cfg.Logic.TickInterval,
	}, a.cfg.Logic.AskTimeout)
	defer rt.Shutdown()

	if a.cfg.Sim.Watch {
		watchTuning(root.configPath, rt)
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.HTTPServer.Host, a.cfg.HTTPServer.Port)
	server := shttp.NewHttpServer(shttp.Options{
		Addr: addr,
		Ready: func(ctx context.Context) error {
			_, err := rt.Wars(ctx, true)
			return err
		},
	}, nil, a.log)
	warhttp.NewHttpHandler(rt, a.log).RegisterRoutes(server.Engine().Group("/api"))

	errCh := make(chan error, 1)
	go func() {
		logs.Info("http server started", zap.String("addr", addr), zap.Duration("tick", a.cfg.Logic.TickInterval))
		if err := server.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err, ok := <-errCh:
		if ok && err != nil {
			logs.Error("http server failed", zap.Error(err))
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Warn("http server shutdown failed", zap.Error(err))
	}
	return nil
}
