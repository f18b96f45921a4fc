package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dothezz/foldersync/cmd"
	"github.com/dothezz/foldersync/pkg/config"
	"github.com/dothezz/foldersync/pkg/core"
	"github.com/dothezz/foldersync/pkg/database"
	"github.com/dothezz/foldersync/pkg/lock"
	"github.com/dothezz/foldersync/pkg/logging"
	"github.com/dothezz/foldersync/pkg/scan"
)

// lockFileName is the directory-lock's file name within each side of a
// base-pair, mirroring the teacher's convention of a dotfile sentinel
// living alongside the content it guards. Its .ffs_lock extension is what
// keeps traversal from pairing it.
const lockFileName = ".foldersync.ffs_lock"

var planConfiguration struct {
	configPath string
	logLevel   string
	maxConflicts int
	simulateExecution bool
}

// planMain loads a configuration file, resolves every base-pair it
// describes, and prints the resulting operation stream and statistics. It
// never performs the byte-level copies/deletes/moves the resolved stream
// describes; a separate executor owns that (spec's own contract: "the core
// produces a stream of operations; a separate executor carries them out").
func planMain(_ *cobra.Command, _ []string) error {
	level, ok := logging.NameToLevel(planConfiguration.logLevel)
	if !ok {
		return errors.Errorf("unknown log level: %q", planConfiguration.logLevel)
	}
	logger := logging.NewRootLogger(level)

	file, err := config.Load(planConfiguration.configPath)
	if err != nil {
		return errors.Wrap(err, "unable to load configuration")
	}
	variant, err := file.ResolveVariant()
	if err != nil {
		return errors.Wrap(err, "unable to resolve synchronization variant")
	}

	identity := lock.CurrentIdentity()
	lockConfig := lock.DefaultConfig()

	for i := range file.BasePairs {
		if err := planBasePair(&file.BasePairs[i], variant, identity, lockConfig, logger); err != nil {
			return err
		}
	}
	return nil
}

func planBasePair(configured *config.BasePair, variant core.SyncVariant, identity lock.Identity, lockConfig lock.Config, logger *logging.Logger) error {
	base, err := configured.ToCore()
	if err != nil {
		return errors.Wrap(err, "invalid base-pair configuration")
	}
	base.Variant = variant

	fmt.Printf("%s <-> %s\n", base.LeftPath, base.RightPath)

	leftLock, err := lock.Acquire(context.Background(), lockPath(base.LeftPath), identity, lockConfig, logger)
	if err != nil {
		return errors.Wrap(err, "unable to acquire left lock")
	}
	defer leftLock.Release()

	rightLock, err := lock.Acquire(context.Background(), lockPath(base.RightPath), identity, lockConfig, logger)
	if err != nil {
		return errors.Wrap(err, "unable to acquire right lock")
	}
	defer rightLock.Release()

	leftDBPath, rightDBPath := database.PathsForBase(base.LeftPath, base.RightPath, baseName(base))
	previous, found, err := database.Load(leftDBPath, rightDBPath)
	if err != nil {
		cmd.Warning(fmt.Sprintf("unable to load prior database, treating as first sync: %v", err))
		found = false
	}

	table := core.NewTable[any]()
	report, err := scan.Scan(context.Background(), base, table, scan.CompareFileContent)
	if err != nil {
		return errors.Wrap(err, "scan failed")
	}
	for _, failure := range report.FailedDirReads {
		cmd.Warning(fmt.Sprintf("failed to read directory %q: %v", failure.RelativePath, failure.Err))
	}
	for _, failure := range report.FailedItemReads {
		cmd.Warning(fmt.Sprintf("failed to read %q: %v", failure.RelativePath, failure.Err))
	}

	core.ApplySoftFilter(base)

	var dbLookup *core.DBLookup
	if found {
		dbLookup = database.BuildIndex(previous).DBLookup(base.ToleranceSeconds, base.IgnoredShiftMinutes)
	}
	core.ResolveBasePair(base, dbLookup, nil)
	core.PropagateContainers(base)
	base.PruneEmpty(table)

	records := core.BuildOperationStream(base)
	printOperations(records)

	stats := core.ComputeStatistics(records)
	fmt.Println(stats.String())
	for _, conflict := range stats.Conflicts(planConfiguration.maxConflicts) {
		color.Yellow("  conflict: %s (%s)", conflict.RelativePath, conflict.Description)
	}

	if planConfiguration.simulateExecution {
		updated := database.BuildUpdatedTree(base, previous)
		if err := database.Save(leftDBPath, rightDBPath, updated); err != nil {
			return errors.Wrap(err, "unable to save updated database")
		}
	}

	return nil
}

func printOperations(records []core.OperationRecord) {
	for _, record := range records {
		if record.Operation == core.OpEqual || record.Operation == core.OpDoNothing {
			continue
		}
		fmt.Printf("  %-20s %s\n", record.Operation, record.RelativePath)
	}
}

func lockPath(root string) string {
	return root + string(os.PathSeparator) + lockFileName
}

func baseName(base *core.BasePair) string {
	return base.LeftPath + "::" + base.RightPath
}

var planCommand = &cobra.Command{
	Use:   "plan",
	Short: "Compare two directory trees and print the resolved operation stream",
	Args:  cmd.DisallowArguments,
	Run:   cmd.Mainify(planMain),
}

func init() {
	flags := planCommand.Flags()
	flags.StringVarP(&planConfiguration.configPath, "config", "c", "", "Path to a TOML or YAML configuration file")
	flags.StringVar(&planConfiguration.logLevel, "log-level", "info", "Logging level (disabled|error|warn|info|debug|trace)")
	flags.IntVar(&planConfiguration.maxConflicts, "max-conflicts", 10, "Maximum number of conflicts to print (0 for all)")
	flags.BoolVar(&planConfiguration.simulateExecution, "assume-executed", false, "Persist the resolved tree as the new in-sync database, as if an executor had just carried out every operation")
}
