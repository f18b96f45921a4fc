package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dothezz/foldersync/cmd"
)

// version is the tool's own release identifier, distinct from the in-sync
// database's FormatVersion gate.
const version = "0.1.0"

func rootMain(command *cobra.Command, _ []string) {
	if rootConfiguration.version {
		fmt.Println(version)
		return
	}
	if rootConfiguration.bashCompletionScript != "" {
		if err := command.GenBashCompletionFile(rootConfiguration.bashCompletionScript); err != nil {
			cmd.Fatal(errors.Wrap(err, "unable to generate bash completion script"))
		}
		return
	}
	command.Help()
}

var rootCommand = &cobra.Command{
	Use:   "foldersync",
	Short: "foldersync compares and synchronizes two directory trees",
	Run:   rootMain,
}

var rootConfiguration struct {
	help                 bool
	version              bool
	bashCompletionScript string
}

func init() {
	flags := rootCommand.Flags()
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.version, "version", "V", false, "Show version information")
	flags.StringVar(&rootConfiguration.bashCompletionScript, "generate-bash-completion", "", "Generate bash completion script")
	flags.MarkHidden("generate-bash-completion")

	cobra.EnableCommandSorting = false
	cobra.MousetrapHelpText = ""

	rootCommand.AddCommand(
		versionCommand,
		planCommand,
		lockCommand,
	)
}

func main() {
	cmd.HandleTerminalCompatibility()

	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
