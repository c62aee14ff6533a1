package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"icingactl/cmd"
	"icingactl/internal/brand"
	"icingactl/internal/i18n"
	"icingactl/internal/icinga"
	"icingactl/internal/logging"
)

var printer = i18n.NewCLIPrinter()

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	switch args[0] {
	case "list":
		listFlags := flag.NewFlagSet("list", flag.ExitOnError)
		file := listFlags.String("file", "", "Configuration file")
		listFlags.StringVar(file, "f", "", "Configuration file (short)")
		kind := listFlags.String("type", "", "Only show objects of this type")
		listFlags.StringVar(kind, "t", "", "Object type (short)")
		format := listFlags.String("format", "text", "Output format: text, json, or yaml")
		listFlags.Parse(args[1:])

		if *file == "" {
			fail(&cmd.UsageError{Msg: "flag --file is required"})
		}
		exitOn(cmd.RunList(*file, *kind, *format))
		return

	case "backups":
		backupFlags := flag.NewFlagSet("backups", flag.ExitOnError)
		file := backupFlags.String("file", "", "Configuration file")
		backupFlags.StringVar(file, "f", "", "Configuration file (short)")
		restore := backupFlags.Int("restore", 0, "Restore the given backup version")
		backupFlags.Parse(args[1:])

		if *file == "" {
			fail(&cmd.UsageError{Msg: "flag --file is required"})
		}
		exitOn(cmd.RunBackups(*file, *restore))
		return

	case "version":
		printer.Printf("%s %s\n", brand.Name, brand.Version)
		return

	case "help", "-h", "--help":
		printUsage()
		return
	}

	// Default mode: edit the file per the flat flag surface.
	opts, err := cmd.ParseArgs(args)
	if err != nil {
		fail(err)
	}
	if opts.Verbose {
		logging.SetDefault(logging.New(logging.Config{Level: logging.LevelDebug}))
	}
	exitOn(cmd.RunApply(opts))
}

func exitOn(err error) {
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	var usageErr *cmd.UsageError
	var parseErr *icinga.ParseError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(os.Stderr, "%s: %v\n", brand.BinaryName, err)
		fmt.Fprintf(os.Stderr, "Run '%s help' for usage.\n", brand.BinaryName)
		os.Exit(2)
	case errors.As(err, &parseErr):
		fmt.Fprintf(os.Stderr, "%s: parse error: %v\n", brand.BinaryName, err)
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", brand.BinaryName, err)
		os.Exit(1)
	}
}

func printUsage() {
	printer.Printf(`%s - %s

Usage:
  %s -f <file> -t <Kind> [operations...]   edit objects in a config file
  %s list -f <file> [-t Kind] [--format text|json|yaml]
  %s backups -f <file> [--restore N]
  %s version

Operations (repeatable where it makes sense):
  -w, --set <key> <value>   set an attribute on all objects of the type
  -r, --remove <key>        remove an attribute (key "import" clears imports)
  -rt, --remove-type        delete all objects of the type
  -wo, --write-object       create a new object (requires --name)
  -n, --name <name>         name for the created object
  -i, --imports <template>  add an import

Modifiers:
  --diff                    print a unified diff of the pending changes
  --dry-run                 do everything except write the file
  --no-backup               skip the automatic pre-write backup
  -y, --yes                 skip the --remove-type confirmation
  --audit-db <path>         record this run in a sqlite history store
  -v, --verbose             debug logging

Examples:
  %s -f hosts.conf -t Host -w check_interval 90s
  %s -f hosts.conf -t Host -wo -n web3 -w address 10.0.0.3 -i generic-host
  %s -f hosts.conf -t Service -rt --diff
`, brand.Name, brand.Description,
		brand.BinaryName, brand.BinaryName, brand.BinaryName, brand.BinaryName,
		brand.BinaryName, brand.BinaryName, brand.BinaryName)
}
