package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/effective-digital/flowkit"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flowkit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flowkit version %s\n", strings.TrimSpace(flowkit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
