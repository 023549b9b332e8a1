// Package version reports the build stamped into the binaries
package version

// BuildInfo is the build identity of a binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Service is the name reported by Info
const Service = "gitscout"

// Info returns the build information, stamped with
// -ldflags "-X github.com/predator4hack/gitscout/internal/core/version.version=v0.1.0"
func Info() BuildInfo {
	return BuildInfo{
		Service: Service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String is the one line form printed by the CLI
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
