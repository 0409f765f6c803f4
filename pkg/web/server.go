// Package web provides the file-upload front end: upload a combined
// shipping-label/packing-slip PDF, download the processed label-only
// document, with processing history and work-directory cleanup.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/sirupsen/logrus"

	"github.com/pppGg/pdf-sku-label-tool/pkg/pipeline"
)

// keepRecentFiles is how many files per work directory survive the pruning
// that runs before each upload
const keepRecentFiles = 5

// Config configures the web server
type Config struct {
	Processor   *pipeline.Processor
	UploadDir   string
	OutputDir   string
	HistoryPath string
	Logger      *logrus.Logger
}

// Server handles uploads, downloads, cleanup and health
type Server struct {
	processor *pipeline.Processor
	uploadDir string
	outputDir string
	history   *historyStore
	log       *logrus.Logger
	mux       *http.ServeMux
}

// NewServer creates the server and its work directories
func NewServer(cfg Config) (*Server, error) {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	s := &Server{
		processor: cfg.Processor,
		uploadDir: cfg.UploadDir,
		outputDir: cfg.OutputDir,
		history:   newHistoryStore(cfg.HistoryPath),
		log:       log,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /upload", s.handleUpload)
	s.mux.HandleFunc("GET /download/{name}", s.handleDownload)
	s.mux.HandleFunc("POST /cleanup", s.handleCleanup)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	return s, nil
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

type uploadResponse struct {
	Status     string  `json:"status"`
	LabelCount int     `json:"label_count,omitempty"`
	Download   string  `json:"download,omitempty"`
	Error      string  `json:"error,omitempty"`
	History    History `json:"history"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Free disk space before accepting new work
	s.pruneWorkDirs()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	name := sanitizeFilename(header.Filename)
	if name == "" || !strings.EqualFold(filepath.Ext(name), ".pdf") {
		s.fail(w, http.StatusBadRequest, "only PDF files are accepted")
		return
	}

	inputPath := filepath.Join(s.uploadDir, name)
	size, err := saveUpload(file, inputPath)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer os.Remove(inputPath)

	sizeMB := float64(size) / (1024 * 1024)
	pages, err := api.PageCountFile(inputPath)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "not a readable PDF")
		return
	}

	outputName := strings.TrimSuffix(name, filepath.Ext(name)) + "_processed.pdf"
	outputPath := filepath.Join(s.outputDir, outputName)
	os.Remove(outputPath)

	s.log.WithFields(logrus.Fields{
		"file":    name,
		"size_mb": fmt.Sprintf("%.1f", sizeMB),
		"pages":   pages,
	}).Info("upload received")

	labelCount, err := s.processor.Process(inputPath, outputPath)
	if err != nil {
		s.log.WithError(err).WithField("file", name).Error("processing failed")
		s.fail(w, http.StatusInternalServerError, fmt.Sprintf("processing failed: %v", err))
		return
	}

	history := s.history.Update(sizeMB, pages)

	writeJSON(w, http.StatusOK, uploadResponse{
		Status:     "ok",
		LabelCount: labelCount,
		Download:   outputName,
		History:    history,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := sanitizeFilename(r.PathValue("name"))
	if name == "" {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.outputDir, name)
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

func (s *Server) handleCleanup(w http.ResponseWriter, _ *http.Request) {
	count := 0
	for _, dir := range []string{s.uploadDir, s.outputDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if os.Remove(filepath.Join(dir, e.Name())) == nil {
				count++
			}
		}
	}

	s.log.WithField("removed", count).Info("cleanup complete")
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "removed": count})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"history": s.history.Load(),
	})
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, uploadResponse{
		Status:  "error",
		Error:   msg,
		History: s.history.Load(),
	})
}

// pruneWorkDirs keeps only the most recent files in each work directory
func (s *Server) pruneWorkDirs() {
	for _, dir := range []string{s.uploadDir, s.outputDir} {
		pruneDir(dir, keepRecentFiles)
	}
}

// pruneDir removes all but the keep most recently modified files in dir
func pruneDir(dir string, keep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	type fileAge struct {
		name string
		mod  int64
	}
	var files []fileAge
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, fileAge{name: e.Name(), mod: info.ModTime().UnixNano()})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].mod > files[j].mod
	})

	for _, f := range files[min(keep, len(files)):] {
		_ = os.Remove(filepath.Join(dir, f.name))
	}
}

// sanitizeFilename reduces a client-supplied name to a safe base name
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return ""
	}
	return name
}

func saveUpload(src io.Reader, path string) (int64, error) {
	dst, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer dst.Close()
	return io.Copy(dst, src)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
