package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Split cuts a PDF into numbered parts using the plan in plan.yaml.
// Set PLAN to use a different plan file.
func Split() error {
	mg.Deps(Build)
	plan := envOr("PLAN", "plan.yaml")
	fmt.Printf("[split] plan: %s\n", plan)
	return sh.RunV(binPath, "split", "--plan", plan)
}

// Assign distributes the split parts to the names in name_list.txt and
// records the run in the history database.
func Assign() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "assign",
		"--names", envOr("NAMES", "name_list.txt"),
		"--source-dir", envOr("SOURCE_DIR", "split_pdfs"),
		"--ext", envOr("EXT", ".pdf"),
		"--history",
	)
}
