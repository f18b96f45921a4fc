package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dothezz/foldersync/cmd"
)

func versionMain(_ *cobra.Command, _ []string) error {
	fmt.Println(version)
	return nil
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cmd.DisallowArguments,
	Run:   cmd.Mainify(versionMain),
}
