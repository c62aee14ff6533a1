// Package brand provides centralized identity constants for the tool.
package brand

const (
	// Name is the product name.
	Name = "icingactl"

	// BinaryName is the name of the installed binary.
	BinaryName = "icingactl"

	// Description is the one-line description shown in usage output.
	Description = "Edit Icinga2 object configuration files from the command line"

	// BackupDirName is the directory (next to the config file) that holds
	// versioned backups.
	BackupDirName = "backups"
)

// Version is set at build time via -ldflags.
var Version = "dev"
