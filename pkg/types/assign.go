// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AssignmentRecord pairs a name with the candidate file drawn for it.
type AssignmentRecord struct {
	// Name is the entry from the name list.
	Name string `json:"name" yaml:"name"`

	// Source is the candidate's filename within the source directory.
	Source string `json:"source" yaml:"source"`

	// Target is the filename the copy was saved under in the target directory.
	Target string `json:"target" yaml:"target"`
}

// AssignmentRun summarizes one assignment run for the history store.
type AssignmentRun struct {
	ID        string             `json:"id" yaml:"id"`
	StartedAt time.Time          `json:"started_at" yaml:"started_at"`
	NamesFile string             `json:"names_file" yaml:"names_file"`
	SourceDir string             `json:"source_dir" yaml:"source_dir"`
	TargetDir string             `json:"target_dir" yaml:"target_dir"`
	LogPath   string             `json:"log_path" yaml:"log_path"`
	Mode      SamplingMode       `json:"mode" yaml:"mode"`
	Assigned  int                `json:"assigned" yaml:"assigned"`
	Failed    int                `json:"failed" yaml:"failed"`
	Records   []AssignmentRecord `json:"records,omitempty" yaml:"records,omitempty"`
}
