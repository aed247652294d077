package errs

import (
	"sync"

	"github.com/markwave/dartmigrate/internal/messages"
	"github.com/napalu/goopt/v2/i18n"
)

// Configuration errors
var (
	ErrFailedToGetConfig = i18n.NewError(messages.ErrFailedToGetConfigKey)
	ErrInvalidExclude    = i18n.NewError(messages.ErrInvalidExcludeKey)
	ErrInvalidSince      = i18n.NewError(messages.ErrInvalidSinceKey)
	ErrInvalidLocale     = i18n.NewError(messages.ErrInvalidLocaleKey)
	ErrNoLocales         = i18n.NewError(messages.ErrNoLocalesKey)
	ErrInvalidPostCheck  = i18n.NewError(messages.ErrInvalidPostCheckKey)
)

// Filesystem errors
var (
	// ErrRootNotFound is returned when the source root cannot be stat'ed
	ErrRootNotFound = i18n.NewError(messages.ErrRootNotFoundKey)
	// ErrRootNotDir is returned when the source root is a regular file
	ErrRootNotDir = i18n.NewError(messages.ErrRootNotDirKey)
	// ErrNotUTF8 is returned for files that cannot be decoded as text
	ErrNotUTF8              = i18n.NewError(messages.ErrNotUTF8Key)
	ErrFailedToReadFile     = i18n.NewError(messages.ErrFailedToReadFileKey)
	ErrFailedToWriteFile    = i18n.NewError(messages.ErrFailedToWriteFileKey)
	ErrFailedToBackup       = i18n.NewError(messages.ErrFailedToBackupKey)
	ErrFailedToCreateDir    = i18n.NewError(messages.ErrFailedToCreateDirKey)
	ErrFailedToParseLocale  = i18n.NewError(messages.ErrFailedToParseLocaleKey)
	ErrFailedToEncodeLocale = i18n.NewError(messages.ErrFailedToEncodeLocaleKey)
)

// Run errors
var (
	ErrPostCheckFailed = i18n.NewError(messages.ErrPostCheckFailedKey)
)

type registeredErrors struct {
	mu  sync.Mutex
	All []i18n.TranslatableError
}

var appErrors = &registeredErrors{
	All: []i18n.TranslatableError{
		ErrFailedToGetConfig,
		ErrInvalidExclude,
		ErrInvalidSince,
		ErrInvalidLocale,
		ErrNoLocales,
		ErrInvalidPostCheck,
		ErrRootNotFound,
		ErrRootNotDir,
		ErrNotUTF8,
		ErrFailedToReadFile,
		ErrFailedToWriteFile,
		ErrFailedToBackup,
		ErrFailedToCreateDir,
		ErrFailedToParseLocale,
		ErrFailedToEncodeLocale,
		ErrPostCheckFailed,
	},
}

// UpdateMessageProvider points every error of this package at provider, typically
// i18n.NewBundleMessageProvider over the bundle returned by messages.NewBundle.
func UpdateMessageProvider(provider i18n.MessageProvider) {
	appErrors.mu.Lock()
	for _, e := range appErrors.All {
		e.SetProvider(provider)
	}
	appErrors.mu.Unlock()
}
