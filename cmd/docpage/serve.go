package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docpage/internal/fileutil"
	"github.com/alnah/go-docpage/internal/server"
)

func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printServeUsage(env.Stdout)
		return err
	}
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, &flags.common)

	// Load once up front so a bad config fails before listening.
	loaded, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}
	applyRenderFlags(&flags.render, loaded.cfg)
	override(&loaded.cfg.Serve.Addr, flags.addr)
	watch := flags.watch || loaded.cfg.Serve.Watch

	srv, err := server.New(serveRenderFunc(flags, env, logger), server.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := srv.Reload(ctx); err != nil {
		return err
	}

	if watch {
		paths := watchPaths(loaded)
		if len(paths) == 0 {
			logger.Warn("nothing to watch, using built-in config and assets")
		} else {
			go func() {
				if err := srv.Watch(ctx, paths...); err != nil {
					logger.Error("watch stopped", slog.Any("error", err))
				}
			}()
		}
	}

	return srv.ListenAndServe(ctx, loaded.cfg.Serve.Addr, func(addr net.Addr) {
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "serving on http://%s\n", addr)
		}
	})
}

// serveRenderFunc reloads the config on every call so edits made while
// serving show up on the next reload.
func serveRenderFunc(flags *serveCmdFlags, env *Environment, logger *slog.Logger) server.RenderFunc {
	return func(ctx context.Context) (string, error) {
		loaded, err := loadConfig(&flags.common, env)
		if err != nil {
			return "", err
		}
		applyRenderFlags(&flags.render, loaded.cfg)
		res, err := renderPage(ctx, loaded.cfg, logger)
		if err != nil {
			return "", err
		}
		return res.HTML, nil
	}
}

// watchPaths lists the config file and asset directory in use.
func watchPaths(loaded *loadedConfig) []string {
	var paths []string
	if loaded.path != "" {
		paths = append(paths, loaded.path)
	}
	if p := loaded.cfg.Assets.BasePath; p != "" {
		paths = append(paths, p)
	}
	if p := loaded.cfg.Render.Style; fileutil.IsFilePath(p) {
		paths = append(paths, p)
	}
	return paths
}
