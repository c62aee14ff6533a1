package icinga

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"icingactl/internal/brand"
	"icingactl/internal/clock"
)

// BackupManager handles versioned backups of a config file, kept in a
// "backups" directory next to it.
type BackupManager struct {
	configPath string
	backupDir  string
	maxBackups int
}

// BackupInfo contains metadata about a backup.
type BackupInfo struct {
	Version     int       `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Path        string    `json:"path"`
	Size        int64     `json:"size"`
}

// NewBackupManager creates a new backup manager for the given config file.
func NewBackupManager(configPath string, maxBackups int) *BackupManager {
	if maxBackups <= 0 {
		maxBackups = 20 // Keep last 20 backups by default
	}
	return &BackupManager{
		configPath: configPath,
		backupDir:  filepath.Join(filepath.Dir(configPath), brand.BackupDirName),
		maxBackups: maxBackups,
	}
}

func (b *BackupManager) ensureBackupDir() error {
	return os.MkdirAll(b.backupDir, 0755)
}

// Create creates a new versioned backup of the current config.
func (b *BackupManager) Create(description string) (*BackupInfo, error) {
	if err := b.ensureBackupDir(); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := os.ReadFile(b.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	backups, _ := b.List()
	version := 1
	if len(backups) > 0 {
		version = backups[0].Version + 1
	}

	timestamp := clock.Now()
	base := filepath.Base(b.configPath)
	filename := fmt.Sprintf("%s.%d.%s", base, version, timestamp.Format("20060102-150405"))
	backupPath := filepath.Join(b.backupDir, filename)

	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}

	info := &BackupInfo{
		Version:     version,
		Timestamp:   timestamp,
		Description: description,
		Path:        backupPath,
		Size:        int64(len(data)),
	}

	metaData, _ := json.MarshalIndent(info, "", "  ")
	os.WriteFile(backupPath+".meta.json", metaData, 0644)

	b.prune()

	return info, nil
}

// List returns all backups sorted by version (newest first).
func (b *BackupManager) List() ([]BackupInfo, error) {
	if err := b.ensureBackupDir(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(b.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	base := filepath.Base(b.configPath)
	var backups []BackupInfo

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, base+".") || strings.HasSuffix(name, ".meta.json") {
			continue
		}

		backupPath := filepath.Join(b.backupDir, name)

		var info BackupInfo
		if metaData, err := os.ReadFile(backupPath + ".meta.json"); err == nil {
			json.Unmarshal(metaData, &info)
		}

		if info.Path == "" {
			info.Path = backupPath
		}
		if fileInfo, err := entry.Info(); err == nil {
			if info.Timestamp.IsZero() {
				info.Timestamp = fileInfo.ModTime()
			}
			if info.Size == 0 {
				info.Size = fileInfo.Size()
			}
		}
		if info.Version == 0 {
			var v int
			fmt.Sscanf(strings.TrimPrefix(name, base+"."), "%d.", &v)
			info.Version = v
		}

		backups = append(backups, info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Version > backups[j].Version
	})

	return backups, nil
}

// Get returns a specific backup by version.
func (b *BackupManager) Get(version int) (*BackupInfo, error) {
	backups, err := b.List()
	if err != nil {
		return nil, err
	}
	for _, backup := range backups {
		if backup.Version == version {
			return &backup, nil
		}
	}
	return nil, fmt.Errorf("backup version %d not found", version)
}

// Content returns the raw content of a specific backup.
func (b *BackupManager) Content(version int) ([]byte, error) {
	backup, err := b.Get(version)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(backup.Path)
}

// Restore replaces the config file with the content of a backup.
// The restored content must parse; a corrupt backup is rejected before the
// config is touched. The current config is backed up first.
func (b *BackupManager) Restore(version int) error {
	content, err := b.Content(version)
	if err != nil {
		return err
	}

	if _, err := Parse(content, b.configPath); err != nil {
		return fmt.Errorf("backup is not valid config: %w", err)
	}

	if _, err := b.Create(fmt.Sprintf("auto-backup before restoring v%d", version)); err != nil {
		return err
	}

	return WriteFileAtomic(b.configPath, content)
}

// prune removes backups beyond maxBackups, oldest first.
func (b *BackupManager) prune() {
	backups, err := b.List()
	if err != nil || len(backups) <= b.maxBackups {
		return
	}
	for i := b.maxBackups; i < len(backups); i++ {
		os.Remove(backups[i].Path)
		os.Remove(backups[i].Path + ".meta.json")
	}
}
