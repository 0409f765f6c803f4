package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd is the command-line entry point
var rootCmd = &cobra.Command{
	Use:   "skulabel",
	Short: "Overlay SKU summary tables onto shipping labels",
	Long: `skulabel reads combined shipping-label/packing-slip PDF documents,
extracts the SKU identifiers and quantities from each packing slip, and
writes a label-only document with a summary table stamped onto each label.

Pages must alternate: shipping label first, then the packing slip that
describes it.`,
	SilenceUsage: true,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the logger shared by all subcommands
func newLogger() *logrus.Logger {
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
