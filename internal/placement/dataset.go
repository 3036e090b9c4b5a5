package placement

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"bl2bids/internal/sidecar"
)

// DatasetDescriptionFile is the name of the dataset description at the root.
const DatasetDescriptionFile = "dataset_description.json"

// DatasetDescription is the content of dataset_description.json.
type DatasetDescription struct {
	Name        string   `json:"Name"`
	BIDSVersion string   `json:"BIDSVersion"`
	Authors     []string `json:"Authors"`
}

// DatasetDescription returns the description for the configured run.
func (e *Engine) DatasetDescription() DatasetDescription {
	authors := e.cfg.Authors
	if authors == nil {
		authors = []string{}
	}

	return DatasetDescription{
		Name:        e.cfg.DatasetName(),
		BIDSVersion: e.cfg.BIDSVersion,
		Authors:     authors,
	}
}

// WriteDatasetDescription writes dataset_description.json at the tree root,
// creating the root if needed, and returns its path.
func (e *Engine) WriteDatasetDescription() (string, error) {
	root := e.builder.Root()
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", root, err)
	}

	desc := e.DatasetDescription()
	path := filepath.Join(root, DatasetDescriptionFile)

	log.WithFields(log.Fields{"path": path, "name": desc.Name}).Info("writing dataset_description.json")

	if err := sidecar.Write(path, desc); err != nil {
		return "", err
	}

	return path, nil
}
