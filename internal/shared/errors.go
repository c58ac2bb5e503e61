// Package shared holds cross-module sentinels.
package shared

import "errors"

var (
	// ErrConfigurationUnavailable indicates the mapping tables could not be
	// read; the whole export fails, no partial output is produced.
	ErrConfigurationUnavailable = errors.New("configuration unavailable")
	// ErrArtifactExists occurs when an export artifact was already stored
	// for the same filing and target.
	ErrArtifactExists = errors.New("artifact already exists")
)
