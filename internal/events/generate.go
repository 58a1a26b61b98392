package events

import "time"

// GenerateStart is emitted before descriptors are compiled into artifacts.
type GenerateStart struct {
	Files   []string
	Targets []string
	Lang    string
}

// ArtifactRendered is emitted once per generated file.
type ArtifactRendered struct {
	Name  string
	Bytes int
}

// GenerateFinish is emitted after generation completes or fails.
type GenerateFinish struct {
	Artifacts int
	Err       error
	Duration  time.Duration
}
