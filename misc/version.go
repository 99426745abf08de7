// Package misc keeps program identity stamped at link time.
package misc

// Set with -ldflags "-X docxgen/misc.version=... -X docxgen/misc.gitHash=...".
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "docxgen"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
