package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"

	"icingactl/internal/audit"
	"icingactl/internal/clock"
	"icingactl/internal/i18n"
	"icingactl/internal/icinga"
	"icingactl/internal/logging"
)

// Printer is the global message printer for the CLI.
var Printer = i18n.NewCLIPrinter()

// RunApply executes the edit pipeline: read, parse, mutate, then rewrite the
// file atomically. Nothing is written before parsing and every mutation have
// succeeded, so a malformed file is never clobbered.
func RunApply(opts *Options) error {
	logger := logging.WithComponent("edit")

	original, err := os.ReadFile(opts.File)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	doc, err := icinga.Parse(original, opts.File)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	now := clock.Now()
	var events []audit.Event
	record := func(action string, details map[string]any) {
		events = append(events, audit.Event{
			RunID:     runID,
			Timestamp: now,
			Action:    action,
			Kind:      opts.Kind,
			File:      opts.File,
			Details:   details,
		})
	}

	switch {
	case opts.RemoveType:
		if !opts.Yes && !opts.DryRun {
			ok, err := confirmRemoveType(opts.Kind, opts.File)
			if err != nil {
				return err
			}
			if !ok {
				Printer.Println("Aborted.")
				return nil
			}
		}
		n := doc.RemoveKind(opts.Kind)
		if n == 0 {
			logger.Warn("no objects of this type found", "kind", opts.Kind)
		} else {
			logger.Info("removed objects", "kind", opts.Kind, "count", n)
		}
		record("remove-type", map[string]any{"removed": n})

	case opts.WriteObject:
		// --set and --imports apply to the new object only; pre-existing
		// objects of the same kind are left alone.
		obj := &icinga.Object{Kind: opts.Kind, Name: opts.Name}
		for _, kv := range opts.Sets {
			obj.SetAttr(kv[0], normalizeValue(kv[1]))
		}
		for _, tmpl := range opts.Imports {
			obj.AddImport(tmpl)
		}
		doc.Append(obj)
		logger.Info("created object", "kind", opts.Kind, "name", opts.Name)
		record("write-object", map[string]any{
			"name":       opts.Name,
			"attributes": len(opts.Sets),
			"imports":    len(opts.Imports),
		})

	default:
		matched := len(doc.OfKind(opts.Kind))
		if matched == 0 {
			logger.Warn("no objects of this type found", "kind", opts.Kind)
		}
		for _, kv := range opts.Sets {
			doc.SetAttr(opts.Kind, kv[0], normalizeValue(kv[1]))
			record("set", map[string]any{"key": kv[0]})
		}
		for _, key := range opts.Removes {
			n := doc.RemoveAttr(opts.Kind, key)
			record("remove", map[string]any{"key": key, "removed_from": n})
		}
		for _, tmpl := range opts.Imports {
			doc.AddImport(opts.Kind, tmpl)
			record("import", map[string]any{"template": tmpl})
		}
		if matched > 0 {
			logger.Info("updated objects", "kind", opts.Kind, "count", matched)
		}
	}

	out := icinga.Serialize(doc)

	if opts.Diff {
		printDiff(string(original), string(out), opts.File)
	}

	if opts.DryRun {
		Printer.Println("Dry run - no changes written.")
		return nil
	}

	if !opts.NoBackup && len(original) > 0 {
		bm := icinga.NewBackupManager(opts.File, 0)
		if _, err := bm.Create("auto-backup before edit"); err != nil {
			logger.Warn("backup failed", "error", err)
		}
	}

	if err := icinga.WriteFileAtomic(opts.File, out); err != nil {
		return err
	}
	logger.Debug("wrote config", "file", opts.File, "bytes", len(out))

	if opts.AuditDB != "" {
		store, err := audit.NewStore(opts.AuditDB)
		if err != nil {
			logger.Warn("audit store unavailable", "error", err)
			return nil
		}
		defer store.Close()
		for _, evt := range events {
			if err := store.Write(evt); err != nil {
				logger.Warn("audit write failed", "error", err)
				break
			}
		}
	}
	return nil
}

func printDiff(before, after, path string) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (updated)",
		Context:  3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	if text == "" {
		Printer.Println("No changes.")
		return
	}
	fmt.Print(text)
}

// confirmRemoveType asks before deleting a whole object type. Without a
// terminal there is nobody to ask, so --yes is required there.
func confirmRemoveType(kind, file string) (bool, error) {
	if fi, err := os.Stdin.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return false, usageErrorf("refusing to remove all %s objects without confirmation; pass --yes to proceed", kind)
	}

	confirmed := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Remove all %s objects from %s?", kind, file)).
		Affirmative("Remove").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
