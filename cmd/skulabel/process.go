package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pppGg/pdf-sku-label-tool/pkg/layout"
	"github.com/pppGg/pdf-sku-label-tool/pkg/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process <input.pdf>",
	Short: "Process a combined label/slip document into a label-only PDF",
	Long: `Process extracts SKU records from each packing-slip page, stamps a
summary table onto the paired shipping-label page and writes a document
containing only the label pages.

Examples:
  skulabel process orders.pdf
  skulabel process orders.pdf -o labels.pdf --whitelist skus.txt
  skulabel process orders.pdf --table-y -1`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

var (
	processOutput    string
	processWhitelist string
	processTableY    float64
	processRows      int
	processRowHeight float64
)

func init() {
	defaults := layout.DefaultConfig()
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "output file (default: <input>_processed.pdf)")
	processCmd.Flags().StringVar(&processWhitelist, "whitelist", "", "known-identifier list, one entry per line")
	processCmd.Flags().Float64Var(&processTableY, "table-y", defaults.TableYPosition,
		"table top offset from page top in points (negative: search for the anchor text)")
	processCmd.Flags().IntVar(&processRows, "rows", defaults.Rows, "grid row count")
	processCmd.Flags().Float64Var(&processRowHeight, "row-height", defaults.RowHeight, "grid row height in points")
}

func runProcess(cmd *cobra.Command, args []string) error {
	input := args[0]
	if !strings.EqualFold(filepath.Ext(input), ".pdf") {
		return errors.New("input must be a .pdf file")
	}

	output := processOutput
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "_processed.pdf"
	}

	cfg := layout.DefaultConfig()
	cfg.TableYPosition = processTableY
	cfg.Rows = processRows
	cfg.RowHeight = processRowHeight

	proc := pipeline.New(pipeline.Options{
		WhitelistPath: processWhitelist,
		Layout:        cfg,
		Logger:        newLogger(),
	})

	labels, err := proc.Process(input, output)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d label page(s) to %s\n", labels, output)
	return nil
}
