package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun checks if the current process is running via `go run` or `go test`.
// Both build their binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveDatabasePath returns the database file to use. With forceTemp the
// file is re-rooted under <tmp>/jurnalo-dev so development runs never touch
// the real journal; paths already inside the temp directory are trusted.
func ResolveDatabasePath(path string, forceTemp bool) string {
	if !forceTemp {
		return path
	}

	clean := filepath.Clean(path)
	rel, err := filepath.Rel(os.TempDir(), clean)
	if err == nil && filepath.IsAbs(clean) && !strings.HasPrefix(rel, "..") {
		return clean
	}

	name := filepath.Base(clean)
	if path == "" || name == "." || name == string(os.PathSeparator) {
		name = "jurnalo.db"
	}
	return filepath.Join(os.TempDir(), "jurnalo-dev", name)
}
