// control-tower/internal/drive/sync.go
package drive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// SyncResult summarizes one folder sync.
type SyncResult struct {
	Downloaded []string `json:"downloaded"`
	Skipped    []string `json:"skipped"`
}

// SyncFolder downloads every CSV file in the Drive folder at folderPath into
// destDir. Non-CSV files are skipped. Downloads go through a temp file so a
// partial download never clobbers a good dataset file.
func (s *Service) SyncFolder(ctx context.Context, folderPath, destDir string) (*SyncResult, error) {
	folderID, err := s.FindFolderByPath(folderPath)
	if err != nil {
		return nil, err
	}

	files, err := s.ListFiles(folderID)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create dataset dir: %w", err)
	}

	result := &SyncResult{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			result.Skipped = append(result.Skipped, f.Name)
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		if err := s.downloadTo(f.ID, destPath); err != nil {
			return nil, fmt.Errorf("sync %s: %w", f.Name, err)
		}
		result.Downloaded = append(result.Downloaded, f.Name)
		log.Info().Str("file", f.Name).Str("dest", destPath).Msg("drive file synced")
	}
	return result, nil
}

func (s *Service) downloadTo(fileID, destPath string) error {
	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".sync-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := s.DownloadFile(fileID, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, destPath)
}
