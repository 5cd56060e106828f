// Package version reports what build of crimecast is running
package version

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Service is the name reported by the web process
const Service = "crimecast-web"

// Info returns the build information
func Info() BuildInfo {
	// -ldflags "-X 'crimecast/internal/core/version.version=v0.1.0' -X 'crimecast/internal/core/version.commit=abcd'"
	return BuildInfo{
		Service: Service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
