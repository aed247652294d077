package options

import (
	"io"
	"os"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/napalu/goopt/v2"
	"github.com/napalu/goopt/v2/i18n"
)

// EnvPrefix is the prefix of environment variables mapped onto flags
const EnvPrefix = "DARTMIGRATE_"

// CallsCmd configures the call site pass
type CallsCmd struct {
	HelperImport   string `goopt:"desc:Import line target providing the tr(ref) extension;descKey:dartmigrate.flag.helper_import_desc"`
	RiverpodImport string `goopt:"desc:Import line target for flutter_riverpod;descKey:dartmigrate.flag.riverpod_import_desc"`
	Backup         bool   `goopt:"short:b;desc:Back up every modified file before writing;descKey:dartmigrate.flag.backup_desc"`
	BackupDir      string `goopt:"desc:Directory for backup sessions;default:.dartmigrate-backup;descKey:dartmigrate.flag.backup_dir_desc"`
	PostCheck      string `goopt:"desc:Command to run after the migration;descKey:dartmigrate.flag.post_check_desc"`
	Exec           goopt.CommandFunc
}

// WidgetsCmd configures the widget conversion pass
type WidgetsCmd struct {
	HelperImport   string `goopt:"desc:Import line target providing the tr(ref) extension;descKey:dartmigrate.flag.helper_import_desc"`
	RiverpodImport string `goopt:"desc:Import line target for flutter_riverpod;descKey:dartmigrate.flag.riverpod_import_desc"`
	Backup         bool   `goopt:"short:b;desc:Back up every modified file before writing;descKey:dartmigrate.flag.backup_desc"`
	BackupDir      string `goopt:"desc:Directory for backup sessions;default:.dartmigrate-backup;descKey:dartmigrate.flag.backup_dir_desc"`
	PostCheck      string `goopt:"desc:Command to run after the migration;descKey:dartmigrate.flag.post_check_desc"`
	Exec           goopt.CommandFunc
}

// ExtractCmd configures translation key extraction
type ExtractCmd struct {
	Output   string `goopt:"short:o;desc:Directory for the generated locale files;default:assets/lang;descKey:dartmigrate.flag.output_desc"`
	Locales  string `goopt:"desc:Comma separated locale tags to generate (en, hi and te when empty);descKey:dartmigrate.flag.locales_desc"`
	Accessor string `goopt:"desc:Name of the localization accessor;default:tr;descKey:dartmigrate.flag.accessor_desc"`
	Merge    bool   `goopt:"short:m;desc:Keep existing translations for keys that are still used;descKey:dartmigrate.flag.merge_desc"`
	Exec     goopt.CommandFunc
}

// AppConfig main application configuration
type AppConfig struct {
	Root    string          `goopt:"short:r;desc:Root directory of the Dart sources;default:lib;descKey:dartmigrate.flag.root_desc"`
	Ext     string          `goopt:"desc:Comma separated file extensions to process;default:.dart;descKey:dartmigrate.flag.ext_desc"`
	Exclude string          `goopt:"short:x;desc:Comma separated glob patterns of files to skip;descKey:dartmigrate.flag.exclude_desc"`
	Since   string          `goopt:"desc:Only process files modified after this date;descKey:dartmigrate.flag.since_desc"`
	DryRun  bool            `goopt:"short:n;desc:Show what would change without writing files;descKey:dartmigrate.flag.dry_run_desc"`
	Verbose bool            `goopt:"short:v;desc:Enable verbose output;descKey:dartmigrate.flag.verbose_desc"`
	Help    bool            `goopt:"short:h;desc:Show help;descKey:dartmigrate.flag.help_desc"`
	Calls   CallsCmd        `goopt:"kind:command;name:calls;desc:Rewrite .tr call sites to .tr(ref);descKey:dartmigrate.cmd.calls_desc"`
	Widgets WidgetsCmd      `goopt:"kind:command;name:widgets;desc:Convert widgets to Consumer base types;descKey:dartmigrate.cmd.widgets_desc"`
	Extract ExtractCmd      `goopt:"kind:command;name:extract;desc:Extract translation keys into seed locale files;descKey:dartmigrate.cmd.extract_desc"`
	TR      i18n.Translator `ignore:"true"` // Translator for messages
	Out     io.Writer       `ignore:"true"` // Progress and report output, stdout when nil
	ErrOut  io.Writer       `ignore:"true"` // Per-file errors, stderr when nil
}

// Stdout returns the writer for regular output
func (c *AppConfig) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Stderr returns the writer for per-file errors
func (c *AppConfig) Stderr() io.Writer {
	if c.ErrOut == nil {
		return os.Stderr
	}
	return c.ErrOut
}

// EnvNameConverter maps DARTMIGRATE_DRY_RUN to dry-run. Variables without the prefix are ignored.
func EnvNameConverter(name string) string {
	if !strings.HasPrefix(name, EnvPrefix) {
		return ""
	}
	return strcase.ToKebab(strings.TrimPrefix(name, EnvPrefix))
}

// SplitList splits a comma separated flag value, dropping empty items
func SplitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
