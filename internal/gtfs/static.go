package gtfs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jamespfennell/gtfs"

	"busplanner.dev/internal/logging"
)

const defaultRefreshInterval = 24 * time.Hour

func rawGtfsData(ctx context.Context, source string, isLocalFile bool, logger *slog.Logger) ([]byte, error) {
	if isLocalFile {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error building GTFS request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, "gtfs_response_body")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading GTFS data: status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

// loadGTFSData loads and parses GTFS data from either a URL or a local file
func loadGTFSData(ctx context.Context, source string, isLocalFile bool, logger *slog.Logger) (*gtfs.Static, error) {
	b, err := rawGtfsData(ctx, source, isLocalFile, logger)
	if err != nil {
		return nil, err
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	return staticData, nil
}

// updateStaticGTFS refreshes a remote feed on a fixed schedule until shutdown.
func (manager *Manager) updateStaticGTFS() {
	defer manager.wg.Done()

	interval := manager.config.RefreshInterval
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			staticData, err := loadGTFSData(ctx, manager.config.Source, false, manager.logger)
			cancel()

			if err != nil {
				logging.LogError(manager.logger, "GTFS refresh failed", err)
				manager.addWarning(fmt.Sprintf("%s: refresh failed: %v", time.Now().Format(time.RFC3339), err))
				continue
			}

			manager.setStaticGTFS(staticData)
		case <-manager.shutdownChan:
			logging.LogOperation(manager.logger, "gtfs_refresh_stopped")
			return
		}
	}
}
