package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUsage marks command-line mistakes: unknown commands, bad flags, extra arguments.
var ErrUsage = errors.New("usage error")

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// notifyContext returns a context canceled on the platform's shutdown signals.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}

// runMain dispatches args[1] and returns the process exit code.
func runMain(args []string, env *Environment) (code int) {
	defer func() {
		if p := recover(); p != nil {
			fmt.Fprintf(env.Stderr, "internal error: %v\n", p)
			code = ExitGeneral
		}
	}()

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	err := dispatch(ctx, cmd, rest, env)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func dispatch(ctx context.Context, cmd string, args []string, env *Environment) error {
	switch cmd {
	case "render":
		return runRender(ctx, args, env)
	case "pdf":
		return runPDF(ctx, args, env)
	case "serve":
		return runServe(ctx, args, env)
	case "catalog":
		return runCatalog(args, env)
	case "doctor":
		return runDoctorCmd(args, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "docpage %s\n", Version)
		return nil
	case "help", "-h", "--help":
		return runHelp(args, env)
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	switch s {
	case "render", "pdf", "serve", "catalog", "doctor", "version", "help":
		return true
	}
	return false
}
