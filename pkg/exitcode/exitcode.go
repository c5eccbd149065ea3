// Package exitcode provides standardized exit codes for hooktier
package exitcode

// Exit codes for the hooktier CLI. Hooktier performs no network I/O and
// runs no external tools, so the set stays filesystem-centered.
const (
	Success           = 0
	GeneralError      = 1
	ConfigError       = 2
	ValidationError   = 3
	FileSystemError   = 4
	BackupError       = 5
	PermissionError   = 6
	UnsupportedFormat = 7
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case ValidationError:
		return "Validation error"
	case FileSystemError:
		return "File system error"
	case BackupError:
		return "Backup error"
	case PermissionError:
		return "Permission error"
	case UnsupportedFormat:
		return "Unsupported format"
	default:
		return "Unknown error"
	}
}
