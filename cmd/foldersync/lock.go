package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dothezz/foldersync/cmd"
	"github.com/dothezz/foldersync/pkg/lock"
	"github.com/dothezz/foldersync/pkg/logging"
)

var lockConfiguration struct {
	logLevel string
}

// lockMain acquires a directory lock and holds it until interrupted,
// exercising the wait/heartbeat/abandoned-lock-recovery protocol in
// isolation from a full plan run (useful for manually testing two
// instances racing for the same base-pair).
func lockMain(_ *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errors.New("lock requires exactly one path argument")
	}
	path := arguments[0]

	level, ok := logging.NameToLevel(lockConfiguration.logLevel)
	if !ok {
		return errors.Errorf("unknown log level: %q", lockConfiguration.logLevel)
	}
	logger := logging.NewRootLogger(level)

	held, err := lock.Acquire(context.Background(), path, lock.CurrentIdentity(), lock.DefaultConfig(), logger)
	if err != nil {
		return errors.Wrap(err, "unable to acquire lock")
	}

	fmt.Printf("lock acquired: %s\n", path)
	fmt.Println("holding until interrupted (Ctrl-C)...")

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, cmd.TerminationSignals...)
	<-signals

	fmt.Println("releasing lock...")
	return held.Release()
}

var lockCommand = &cobra.Command{
	Use:   "lock <path>",
	Short: "Acquire and hold a directory lock until interrupted",
	Args:  cobra.ExactArgs(1),
	Run:   cmd.Mainify(lockMain),
}

func init() {
	flags := lockCommand.Flags()
	flags.StringVar(&lockConfiguration.logLevel, "log-level", "info", "Logging level (disabled|error|warn|info|debug|trace)")
}
