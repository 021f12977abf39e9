package loader

import (
	"fmt"
	"log/slog"
	"time"
)

// MaxQuarantineProbes bounds the numeric suffixes tried when a quarantine
// name is already taken.
const MaxQuarantineProbes = 100

// QuarantineTimeFormat is the UTC timestamp layout used in quarantine names.
const QuarantineTimeFormat = "20060102T150405Z"

// QuarantineName returns the candidate name for attempt n: n == 0 yields
// <path>.bad.<timestamp>, later attempts append .<n>.
func QuarantineName(path string, now time.Time, n int) string {
	name := path + ".bad." + now.UTC().Format(QuarantineTimeFormat)
	if n > 0 {
		name = fmt.Sprintf("%s.%d", name, n)
	}
	return name
}

// Quarantine renames a bad file aside so it is preserved but no longer
// loaded. It is best-effort: failures are logged and reported through the
// boolean only.
func Quarantine(fsys FileSystem, path string, now time.Time, logger *slog.Logger) (string, bool) {
	if logger == nil {
		logger = slog.Default()
	}

	for n := 0; n <= MaxQuarantineProbes; n++ {
		target := QuarantineName(path, now, n)
		if Exists(fsys, target) {
			continue
		}
		if err := fsys.Rename(path, target); err != nil {
			logger.Error("failed to quarantine settings file", "path", path, "target", target, "error", err)
			return "", false
		}
		logger.Warn("quarantined settings file", "path", path, "target", target)
		return target, true
	}

	logger.Error("failed to quarantine settings file: no free name", "path", path, "probes", MaxQuarantineProbes)
	return "", false
}
