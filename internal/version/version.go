// Package version carries build metadata set with -ldflags -X.
package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	Version   = "dev"                           // ex: v0.1.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-03-01T18:42:00Z
	GoVersion = runtime.Version()               // go version
)

// Details formats the build metadata after the version.
func Details() string {
	return fmt.Sprintf("commit=%s, built=%s, go=%s", Commit, BuildDate, GoVersion)
}
