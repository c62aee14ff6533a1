// Package cmd implements the CLI commands.
package cmd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// UsageError reports a problem with the command line itself: a missing or
// conflicting flag. It maps to exit code 2 and never touches the file.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func usageErrorf(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// Options is the parsed edit-mode command line.
type Options struct {
	File string
	Kind string

	Sets        [][2]string // ordered key/value pairs from --set
	Removes     []string
	RemoveType  bool
	WriteObject bool
	Name        string
	Imports     []string

	Diff     bool
	DryRun   bool
	NoBackup bool
	Yes      bool
	AuditDB  string
	Verbose  bool
}

// ParseArgs parses the edit-mode flag surface. Long and short forms are both
// accepted; --flag=value works for single-value flags. --set consumes two
// arguments (key, value) and is repeatable, as are --remove and --imports.
func ParseArgs(args []string) (*Options, error) {
	opts := &Options{}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			return nil, usageErrorf("unexpected argument %q", arg)
		}

		name := strings.TrimLeft(arg, "-")
		inline := ""
		hasInline := false
		if j := strings.Index(name, "="); j >= 0 {
			inline = name[j+1:]
			name = name[:j]
			hasInline = true
		}

		value := func(flag string) (string, error) {
			if hasInline {
				hasInline = false
				return inline, nil
			}
			i++
			if i >= len(args) {
				return "", usageErrorf("flag --%s requires a value", flag)
			}
			return args[i], nil
		}

		var err error
		switch name {
		case "f", "file":
			opts.File, err = value("file")
		case "t", "type":
			opts.Kind, err = value("type")
		case "w", "set":
			var key string
			key, err = value("set")
			if err != nil {
				break
			}
			i++
			if i >= len(args) {
				return nil, usageErrorf("flag --set requires a key and a value")
			}
			opts.Sets = append(opts.Sets, [2]string{key, args[i]})
		case "r", "remove":
			var key string
			key, err = value("remove")
			if err != nil {
				break
			}
			opts.Removes = append(opts.Removes, key)
		case "rt", "remove-type":
			opts.RemoveType = true
		case "wo", "write-object":
			opts.WriteObject = true
		case "n", "name":
			opts.Name, err = value("name")
		case "i", "imports":
			var tmpl string
			tmpl, err = value("imports")
			if err != nil {
				break
			}
			opts.Imports = append(opts.Imports, tmpl)
		case "diff":
			opts.Diff = true
		case "dry-run":
			opts.DryRun = true
		case "no-backup":
			opts.NoBackup = true
		case "y", "yes":
			opts.Yes = true
		case "audit-db":
			opts.AuditDB, err = value("audit-db")
		case "v", "verbose":
			opts.Verbose = true
		default:
			return nil, usageErrorf("unknown flag %q", arg)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (o *Options) validate() error {
	if o.File == "" {
		return usageErrorf("flag --file is required")
	}
	hasOp := len(o.Sets) > 0 || len(o.Removes) > 0 || len(o.Imports) > 0 ||
		o.RemoveType || o.WriteObject
	if !hasOp {
		return usageErrorf("no operation requested: use --set, --remove, --remove-type, --write-object, or --imports")
	}
	if o.Kind == "" {
		return usageErrorf("flag --type is required")
	}
	if o.RemoveType && (len(o.Sets) > 0 || len(o.Removes) > 0 || len(o.Imports) > 0 || o.WriteObject) {
		return usageErrorf("flag --remove-type cannot be combined with --set, --remove, --imports, or --write-object")
	}
	if o.WriteObject {
		if o.Name == "" {
			return usageErrorf("flag --name is required with --write-object")
		}
		if len(o.Removes) > 0 {
			return usageErrorf("flag --remove cannot be combined with --write-object")
		}
	} else if o.Name != "" {
		return usageErrorf("flag --name requires --write-object")
	}
	return nil
}

var durationRe = regexp.MustCompile(`^\d+(\.\d+)?(ms|s|m|h|d)$`)

// normalizeValue turns a raw --set value into Icinga value text. Booleans,
// numbers, durations, and bracketed literals pass through raw; anything else
// is quoted. This happens once at the CLI boundary; the document model treats
// values as opaque text from here on.
func normalizeValue(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return `""`
	}
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		return s
	}
	switch s {
	case "true", "false", "null":
		return s
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}
	if durationRe.MatchString(s) {
		return s
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
