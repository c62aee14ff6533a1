package cmd

import (
	"icingactl/internal/icinga"
)

// RunBackups lists the versioned backups of a config file, or restores one
// when restore is a positive version number.
func RunBackups(file string, restore int) error {
	bm := icinga.NewBackupManager(file, 0)

	if restore > 0 {
		if err := bm.Restore(restore); err != nil {
			return err
		}
		Printer.Printf("Restored backup v%d to %s\n", restore, file)
		return nil
	}

	backups, err := bm.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		Printer.Println("No backups found.")
		return nil
	}
	for _, b := range backups {
		Printer.Printf("v%-4d %s %7d bytes  %s\n",
			b.Version, b.Timestamp.Format("2006-01-02 15:04:05"), b.Size, b.Description)
	}
	return nil
}
