package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

const version = "0.1.0"

var rootFlags = struct {
	verbose *int
	logPath *string
}{}

var rootCmd = &cobra.Command{
	Use:   "minic",
	Short: "Compile minic programs into three-address code",
	Long: `minic provides the following features:
- Compiles a program into three-address code driven by an SLR(1) parser.
- Generates and prints the parsing tables of the grammar.
- Runs golden tests and serves diagnostics over the Language Server Protocol.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var path *string
		if *rootFlags.logPath != "" {
			path = rootFlags.logPath
		}
		commonlog.Configure(*rootFlags.verbose, path)
	},
}

func init() {
	rootFlags.verbose = rootCmd.PersistentFlags().CountP("verbose", "v", "add verbosity (-v for info, -vv for debug)")
	rootFlags.logPath = rootCmd.PersistentFlags().String("log", "", "log file path (default stderr)")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
