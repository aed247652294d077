package messages

import (
	"embed"

	"github.com/napalu/goopt/v2/i18n"
)

const (
	prefixKey   = "dartmigrate"
	ErrorPrefix = prefixKey + ".error"
	RunPrefix   = prefixKey + ".run"
	StatPrefix  = prefixKey + ".stat"
)

// Run output
const (
	MsgScanning          = RunPrefix + ".scanning"
	MsgFoundFiles        = RunPrefix + ".found_files"
	MsgModified          = RunPrefix + ".modified"
	MsgWouldModify       = RunPrefix + ".would_modify"
	MsgFileError         = RunPrefix + ".file_error"
	MsgSummary           = RunPrefix + ".summary"
	MsgComplete          = RunPrefix + ".complete"
	MsgDryRunComplete    = RunPrefix + ".dry_run_complete"
	MsgBackupLocation    = RunPrefix + ".backup_location"
	MsgNextSteps         = RunPrefix + ".next_steps"
	MsgStepAnalyze       = RunPrefix + ".step_analyze"
	MsgStepLanguage      = RunPrefix + ".step_language"
	MsgStepManual        = RunPrefix + ".step_manual"
	MsgRunningPostCheck  = RunPrefix + ".running_post_check"
	MsgFoundKeys         = RunPrefix + ".found_keys"
	MsgKeyOccurrences    = RunPrefix + ".key_occurrences"
	MsgCreatedLocale     = RunPrefix + ".created_locale"
	MsgNeedsTranslation  = RunPrefix + ".needs_translation"
	MsgExtractDone       = RunPrefix + ".extract_done"
	MsgTotalKeys         = RunPrefix + ".total_keys"
	MsgCallsTitle        = RunPrefix + ".calls_title"
	MsgWidgetsTitle      = RunPrefix + ".widgets_title"
	MsgExtractTitle      = RunPrefix + ".extract_title"
	MsgParseError        = RunPrefix + ".parse_error"
	MsgCommandFailed     = RunPrefix + ".command_failed"
	MsgExtractFileFailed = RunPrefix + ".extract_file_failed"
	MsgKeptTranslations  = RunPrefix + ".kept_translations"
	MsgFileCounts        = RunPrefix + ".file_counts"
)

// StatKey returns the label key of a migration counter
func StatKey(counter string) string {
	return StatPrefix + "." + counter
}

// Errors
const (
	ErrFailedToGetConfigKey    = ErrorPrefix + ".failed_to_get_config"
	ErrRootNotFoundKey         = ErrorPrefix + ".root_not_found"
	ErrRootNotDirKey           = ErrorPrefix + ".root_not_dir"
	ErrInvalidExcludeKey       = ErrorPrefix + ".invalid_exclude"
	ErrInvalidSinceKey         = ErrorPrefix + ".invalid_since"
	ErrInvalidLocaleKey        = ErrorPrefix + ".invalid_locale"
	ErrNoLocalesKey            = ErrorPrefix + ".no_locales"
	ErrNotUTF8Key              = ErrorPrefix + ".not_utf8"
	ErrFailedToReadFileKey     = ErrorPrefix + ".failed_to_read_file"
	ErrFailedToWriteFileKey    = ErrorPrefix + ".failed_to_write_file"
	ErrFailedToBackupKey       = ErrorPrefix + ".failed_to_backup"
	ErrFailedToCreateDirKey    = ErrorPrefix + ".failed_to_create_dir"
	ErrFailedToParseLocaleKey  = ErrorPrefix + ".failed_to_parse_locale"
	ErrFailedToEncodeLocaleKey = ErrorPrefix + ".failed_to_encode_locale"
	ErrInvalidPostCheckKey     = ErrorPrefix + ".invalid_post_check"
	ErrPostCheckFailedKey      = ErrorPrefix + ".post_check_failed"
)

//go:embed locales/*.json
var localesFS embed.FS

// NewBundle loads the tool's own message catalog.
func NewBundle() (*i18n.Bundle, error) {
	return i18n.NewBundleWithFS(localesFS, "locales")
}
