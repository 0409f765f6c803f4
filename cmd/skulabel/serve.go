package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pppGg/pdf-sku-label-tool/pkg/layout"
	"github.com/pppGg/pdf-sku-label-tool/pkg/pipeline"
	"github.com/pppGg/pdf-sku-label-tool/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload web service",
	Long: `Serve starts an HTTP service that accepts PDF uploads, processes them
and offers the label-only result for download.

Examples:
  skulabel serve
  skulabel serve --addr :9000 --whitelist skus.txt`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr      string
	serveUploads   string
	serveOutputs   string
	serveHistory   string
	serveWhitelist string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveUploads, "uploads", "uploads", "upload work directory")
	serveCmd.Flags().StringVar(&serveOutputs, "outputs", "outputs", "processed-file directory")
	serveCmd.Flags().StringVar(&serveHistory, "history", "history.json", "processing-history file")
	serveCmd.Flags().StringVar(&serveWhitelist, "whitelist", "", "known-identifier list, one entry per line")
}

func runServe(_ *cobra.Command, _ []string) error {
	log := newLogger()

	proc := pipeline.New(pipeline.Options{
		WhitelistPath: serveWhitelist,
		Layout:        layout.DefaultConfig(),
		Logger:        log,
	})

	srv, err := web.NewServer(web.Config{
		Processor:   proc,
		UploadDir:   serveUploads,
		OutputDir:   serveOutputs,
		HistoryPath: serveHistory,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	log.WithField("addr", serveAddr).Info("listening")
	return http.ListenAndServe(serveAddr, srv.Handler())
}
