package champion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// Syncer refreshes the champion catalog from the public Data Dragon manifest.
type Syncer struct {
	httpClient *http.Client
	catalog    Catalog
	BaseURL    string
}

// NewSyncer creates a new Data Dragon syncer.
func NewSyncer(catalog Catalog, baseURL string) *Syncer {
	return &Syncer{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		catalog:    catalog,
		BaseURL:    baseURL,
	}
}

type ddragonChampion struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Image struct {
		Full string `json:"full"`
	} `json:"image"`
}

type ddragonManifest struct {
	Data map[string]ddragonChampion `json:"data"`
}

// Sync fetches the latest champion manifest and upserts it into the catalog.
// It returns the number of champions synced.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	version, err := s.latestVersion(ctx)
	if err != nil {
		return 0, err
	}
	log.Info("Syncing champion catalog", "version", version)

	url := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", s.BaseURL, version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create champion manifest request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch champion manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("champion manifest returned status %d", resp.StatusCode)
	}

	var manifest ddragonManifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return 0, fmt.Errorf("failed to decode champion manifest: %w", err)
	}

	champions := make([]Champion, 0, len(manifest.Data))
	for name, entry := range manifest.Data {
		id, err := strconv.Atoi(entry.Key)
		if err != nil {
			log.Warn("Skipping champion with non-numeric key", "champion", name, "key", entry.Key)
			continue
		}
		champions = append(champions, Champion{
			ID:    id,
			Name:  entry.Name,
			Image: entry.Image.Full,
		})
	}

	if err := s.catalog.Upsert(champions); err != nil {
		return 0, fmt.Errorf("failed to store champions: %w", err)
	}
	log.Info("Champion catalog synced", "count", len(champions))
	return len(champions), nil
}

func (s *Syncer) latestVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/api/versions.json", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create versions request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch versions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("versions endpoint returned status %d", resp.StatusCode)
	}

	var versions []string
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return "", fmt.Errorf("failed to decode versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("versions endpoint returned an empty list")
	}
	return versions[0], nil
}
