// Package app wires configuration, stores, and gateways into the bb command
// line front-end. Commands are thin: they collect input, validate it at the
// boundary, dispatch a store action, and render the resulting snapshot.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/eddiesosera/bb-frontend/internal/config"
	"github.com/eddiesosera/bb-frontend/internal/logging"
)

const usage = "expected command: register, login, logout, whoami, articles, read, post, delete, or upload"

// Run bootstraps the bb client and dispatches the requested command.
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	ctx = logging.WithLogger(ctx, logger)

	deps, err := buildDependencies(cfg, logger)
	if err != nil {
		return err
	}

	if err := deps.Session.Hydrate(ctx); err != nil {
		logger.Warn("hydrate session from stored credentials", "error", err)
	}

	ctx, span := logging.StartSpan(ctx, args[0])
	defer span.End()

	switch args[0] {
	case "register":
		return runRegister(ctx, deps, args[1:])
	case "login":
		return runLogin(ctx, deps, args[1:])
	case "logout":
		return runLogout(ctx, deps)
	case "whoami":
		return runWhoami(ctx, deps)
	case "articles":
		return runArticles(ctx, deps)
	case "read":
		return runRead(ctx, deps, args[1:])
	case "post":
		return runPost(ctx, deps, args[1:])
	case "delete":
		return runDelete(ctx, deps, args[1:])
	case "upload":
		return runUpload(ctx, deps, args[1:])
	default:
		return fmt.Errorf("unknown command %q: %s", args[0], usage)
	}
}
