package version

// Values for these are injected by the build
var (
	version string
	commit  string
)

// Version returns the compute client version. This is typically a semantic
// version, but in the case of unreleased code, could be another descriptor
// such as "edge". Unset values are reported as "devel".
func Version() string {
	if version == "" {
		return "devel"
	}
	return version
}

// Commit returns the git commit SHA for the code the client was built from.
func Commit() string {
	return commit
}
