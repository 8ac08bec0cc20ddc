package gtfs

import (
	"strings"
	"time"
)

type Config struct {
	// Source is a local path or an http(s) URL to a GTFS zip.
	Source          string
	RefreshInterval time.Duration
	Verbose         bool
}

func (config Config) isLocalFile() bool {
	return !strings.HasPrefix(config.Source, "http://") && !strings.HasPrefix(config.Source, "https://")
}
