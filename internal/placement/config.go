package placement

import (
	"bl2bids/internal/install"
	"bl2bids/internal/layout"
)

// Config controls a placement run.
type Config struct {
	// OutputRoot is the root of the BIDS tree.
	OutputRoot string
	// Mode selects linking or copying when Installer is not supplied.
	Mode install.Mode
	// TaskID is appended to the dataset name when set.
	TaskID      string
	Authors     []string
	BIDSVersion string
	// CheckRepetitionTime compares sidecar RepetitionTime against the image
	// header and reports mismatches.
	CheckRepetitionTime bool
}

// DefaultConfig returns the configuration used by the command line tool.
func DefaultConfig() Config {
	return Config{
		OutputRoot:          layout.DefaultRoot,
		Mode:                install.ModeLink,
		Authors:             []string{"Brainlife <brlife@iu.edu>"},
		BIDSVersion:         "1.4.0",
		CheckRepetitionTime: true,
	}
}

// DatasetName returns "brainlife", suffixed with " task:<id>" when TaskID is set.
func (c Config) DatasetName() string {
	if c.TaskID == "" {
		return "brainlife"
	}

	return "brainlife task:" + c.TaskID
}
