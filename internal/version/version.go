package version

import (
	"runtime"
	"time"
)

// Set at build time with -ldflags "-X github.com/smash-proyect/bff/internal/version.Version=..."
var (
	Version   = "dev"                           // ex: v0.1.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version()               // go version
)

// UserAgent identifies the gateway on outbound calls.
func UserAgent() string {
	return "smash-bff/" + Version
}
