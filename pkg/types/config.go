// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SplitConfig holds settings for the split stage.
type SplitConfig struct {
	// Source is the path of the PDF to split.
	Source string `json:"source" yaml:"source"`

	// OutputDir receives one file per valid range (created if absent).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// NameTemplate is a fmt pattern taking the 1-based range position
	// (default "split_%d.pdf").
	NameTemplate string `json:"name_template,omitempty" yaml:"name_template,omitempty"`

	// Ranges lists the page ranges in output order.
	Ranges []PageRange `json:"ranges" yaml:"ranges"`
}

// SamplingMode selects how candidate files are drawn for names.
type SamplingMode string

const (
	// SampleWithReplacement draws every name independently; a candidate
	// may be used several times while others are never used.
	SampleWithReplacement SamplingMode = "with-replacement"

	// SampleWithoutReplacement deals candidates from a shuffled deck and
	// reshuffles once the deck runs out.
	SampleWithoutReplacement SamplingMode = "without-replacement"
)

// AssignConfig holds settings for the assign stage.
type AssignConfig struct {
	// NamesFile is a UTF-8 text file with one name per line.
	NamesFile string `json:"names_file" yaml:"names_file"`

	// SourceDir holds the candidate files.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// TargetDir receives the renamed copies. It is cleared before each run.
	TargetDir string `json:"target_dir" yaml:"target_dir"`

	// LogPath is the results log written during the run.
	LogPath string `json:"log_path" yaml:"log_path"`

	// Extension filters candidates by suffix, case-insensitively (default ".jpg").
	Extension string `json:"extension" yaml:"extension"`

	// Mode selects the sampling strategy (default with-replacement).
	Mode SamplingMode `json:"mode" yaml:"mode"`
}

// HistoryConfig holds settings for the assignment history store.
type HistoryConfig struct {
	// DBPath is the SQLite database file (default ".pdftask/history.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults bounds history listings (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations as read from pdftask.yaml.
type PipelineConfig struct {
	Split   SplitConfig   `json:"split" yaml:"split"`
	Assign  AssignConfig  `json:"assign" yaml:"assign"`
	History HistoryConfig `json:"history" yaml:"history"`
}
