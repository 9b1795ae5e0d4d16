// control-tower/cmd/ingest/main.go

// The ingest service receives dataset CSV drops over HTTP and mirrors them
// from object storage or Google Drive into the dataset directory that
// cmd/server reads.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/nexgenlogistics/control-tower/internal/config"
	"github.com/nexgenlogistics/control-tower/internal/drive"
	"github.com/nexgenlogistics/control-tower/internal/ingest"
	"github.com/nexgenlogistics/control-tower/internal/storage"
	"github.com/nexgenlogistics/control-tower/pkg/logger"
)

const maxUploadBytes = 64 << 20

type server struct {
	cfg      *config.Config
	pipeline *ingest.Pipeline
	drive    *drive.Service
}

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)
	log := logger.WithComponent("ingest")

	srv := &server{cfg: cfg}

	if cfg.Storage.Enabled {
		store, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
		srv.pipeline = ingest.NewPipeline(store, cfg.App.DataDir, 4)
	}

	if cfg.Drive.Enabled {
		driveSvc, err := drive.NewService(context.Background(), cfg.Drive.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize drive client")
		}
		srv.drive = driveSvc
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", srv.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/datasets", srv.handleListDatasets).Methods(http.MethodGet)
	router.HandleFunc("/datasets/upload", srv.handleUpload).Methods(http.MethodPost)
	router.HandleFunc("/datasets/sync/storage", srv.handleStorageSync).Methods(http.MethodPost)
	router.HandleFunc("/datasets/sync/drive", srv.handleDriveSync).Methods(http.MethodPost)

	httpSrv := &http.Server{
		Addr:         ":" + ingestPort(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	go func() {
		log.Info().Str("addr", httpSrv.Addr).Msg("ingest service listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ingest service failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down ingest service")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

func ingestPort() string {
	if port := os.Getenv("INGEST_PORT"); port != "" {
		return port
	}
	return "8081"
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.cfg.App.DataDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	type fileInfo struct {
		Name     string    `json:"name"`
		Size     int64     `json:"size"`
		Modified time.Time `json:"modified"`
	}
	files := make([]fileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			Name:     entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	writeJSON(w, http.StatusOK, files)
}

// handleUpload accepts multipart CSV uploads under the "files" field and
// writes them into the dataset directory.
func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form data"})
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no files provided"})
		return
	}

	log := logger.WithComponent("ingest")
	var saved []string
	for _, header := range files {
		name := filepath.Base(header.Filename)
		if !strings.HasSuffix(strings.ToLower(name), ".csv") {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("%s is not a csv file", name),
			})
			return
		}

		if err := s.saveUpload(header, filepath.Join(s.cfg.App.DataDir, name)); err != nil {
			log.Error().Err(err).Str("filename", name).Msg("failed to save uploaded file")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save failed"})
			return
		}
		saved = append(saved, name)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"saved": saved,
		"count": len(saved),
	})
}

func (s *server) saveUpload(header *multipart.FileHeader, destPath string) error {
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// handleStorageSync drains the configured bucket prefix into the dataset
// directory.
func (s *server) handleStorageSync(w http.ResponseWriter, r *http.Request) {
	if s.pipeline == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "object storage not configured"})
		return
	}

	prefix := r.URL.Query().Get("prefix")
	result, err := s.pipeline.Run(r.Context(), prefix)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleDriveSync mirrors the configured Drive folder into the dataset
// directory.
func (s *server) handleDriveSync(w http.ResponseWriter, r *http.Request) {
	if s.drive == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "drive not configured"})
		return
	}

	result, err := s.drive.SyncFolder(r.Context(), s.cfg.Drive.FolderPath, s.cfg.App.DataDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
