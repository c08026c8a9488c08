// Package config provides configuration loading for scheduled dataset syncs.
package config

import (
	"fmt"
	"os"

	"github.com/flowdeck/flowdeck/pkg/chunker"
	"github.com/flowdeck/flowdeck/pkg/ingest"
	"github.com/flowdeck/flowdeck/pkg/sources"
	"gopkg.in/yaml.v3"
)

// SyncConfigFile represents the structure of the sync.yaml file.
type SyncConfigFile struct {
	Schedules []ScheduleConfig `yaml:"schedules"`
}

// ScheduleConfig describes one recurring collection sync.
type ScheduleConfig struct {
	CollectionID string       `yaml:"collection_id"`
	Spec         string       `yaml:"spec"` // cron expression or @every / @hourly shortcut
	Source       SourceConfig `yaml:"source"`
	ChunkLen     int          `yaml:"chunk_len"`
	Overlap      int          `yaml:"overlap"`
	QAMode       bool         `yaml:"qa_mode"`
}

// SourceConfig mirrors sources.Source in YAML form.
type SourceConfig struct {
	Kind      string           `yaml:"kind"`
	FileID    string           `yaml:"file_id"`
	URL       string           `yaml:"url"`
	APIServer *APIServerConfig `yaml:"api_server"`
}

type APIServerConfig struct {
	Kind    string `yaml:"kind"`
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// LoadSyncConfig loads the scheduled sync definitions from a YAML file.
func LoadSyncConfig(path string) (*SyncConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var configFile SyncConfigFile
	if err := yaml.Unmarshal(data, &configFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	for i, schedule := range configFile.Schedules {
		if schedule.CollectionID == "" {
			return nil, fmt.Errorf("schedule %d is missing a collection_id", i)
		}

		if schedule.Spec == "" {
			return nil, fmt.Errorf("schedule for %s is missing a cron spec", schedule.CollectionID)
		}
	}

	return &configFile, nil
}

// Request converts a schedule entry into the ingest request it runs.
func (s ScheduleConfig) Request() ingest.Request {
	req := ingest.Request{
		CollectionID: s.CollectionID,
		Source: sources.Source{
			Kind:   sources.SourceKind(s.Source.Kind),
			FileID: s.Source.FileID,
			URL:    s.Source.URL,
		},
		ChunkOptions: chunker.Options{
			ChunkLen: s.ChunkLen,
			Overlap:  s.Overlap,
		},
		QAMode: s.QAMode,
	}

	if s.Source.APIServer != nil {
		req.Source.APIServer = &sources.APIServer{
			Kind:    s.Source.APIServer.Kind,
			BaseURL: s.Source.APIServer.BaseURL,
			Token:   s.Source.APIServer.Token,
		}
	}

	return req
}
