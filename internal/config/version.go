package config

// Build information reported by `mintmuse version`
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// SetBuildFlags records the build information injected into main
func SetBuildFlags(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
}
