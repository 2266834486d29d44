package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flowkit",
	Short: "flowkit drives remote multi-step business processes from the client side",
	Long: `flowkit is a client-side flow continuation engine. The run command drives a
scripted flow against an in-process stub of the remote process engine, which
is useful for demoing handlers and smoke-testing integrations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}
