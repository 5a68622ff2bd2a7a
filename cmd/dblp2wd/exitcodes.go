package main

import (
	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/mapping"
)

const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, missing workspace)
	ExitDataError   = 3 // Data error (unreadable or malformed mapping file)
	ExitRemoteError = 4 // dblp query failed (network, HTTP status, bad response)
)

// exitCodeFor classifies an error from the pipeline or mapping loader.
func exitCodeFor(err error) int {
	switch {
	case dblp.IsRemoteQueryError(err):
		return ExitRemoteError
	case mapping.IsMappingFileError(err):
		return ExitDataError
	}
	return ExitError
}
