package migration

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/markwave/dartmigrate/errs"
	"github.com/pmezard/go-difflib/difflib"
)

const DefaultBackupDir = ".dartmigrate-backup"

// Options controls how a Migrator touches the filesystem
type Options struct {
	// Root is the source root; file paths in diffs and backups are made relative to it
	Root   string
	DryRun bool
	// Backup copies every file into a fresh session directory under BackupDir before it is rewritten
	Backup    bool
	BackupDir string
	// OnFile is called for every file whose content changed (or would change in a dry run)
	OnFile func(*FileResult)
	// OnError is called for every file that could not be processed
	OnError func(FileError)
}

// FileResult describes what a pass did to one file
type FileResult struct {
	Path    string
	Changed bool
	Counts  *Stats
	// Diff is a unified diff of the change, only set in dry runs
	Diff string
}

// FileError is a per-file failure. It never aborts a run.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Report aggregates the per-file results of a run
type Report struct {
	Stats  *Stats
	Files  []*FileResult
	Errors []FileError
}

// Migrator applies a Pass to files on disk
type Migrator struct {
	pass       *Pass
	opts       Options
	sessionDir string
	write      func(filename string, data []byte) error
}

// NewMigrator creates a Migrator for pass
func NewMigrator(pass *Pass, opts Options) *Migrator {
	if opts.BackupDir == "" {
		opts.BackupDir = DefaultBackupDir
	}
	return &Migrator{pass: pass, opts: opts, write: writeFileAtomic}
}

// SessionDir returns the backup session directory, empty until the first backup was taken
func (m *Migrator) SessionDir() string {
	return m.sessionDir
}

// Run migrates files in order, collecting per-file results into a Report. A file that
// fails is recorded and skipped.
func (m *Migrator) Run(files []string) *Report {
	names := append([]string{FilesScanned, FilesModified}, m.pass.Counters...)
	report := &Report{Stats: NewStats(append(names, FilesFailed)...)}

	for _, file := range files {
		report.Stats.Add(FilesScanned, 1)

		result, err := m.MigrateFile(file)
		if err != nil {
			fe := FileError{Path: file, Err: err}
			report.Errors = append(report.Errors, fe)
			report.Stats.Add(FilesFailed, 1)
			if m.opts.OnError != nil {
				m.opts.OnError(fe)
			}
			continue
		}
		if !result.Changed {
			continue
		}

		report.Files = append(report.Files, result)
		report.Stats.Add(FilesModified, 1)
		report.Stats.Merge(result.Counts)
		if m.opts.OnFile != nil {
			m.opts.OnFile(result)
		}
	}

	return report
}

// MigrateFile applies the pass to a single file and writes it back when its content changed
func (m *Migrator) MigrateFile(filename string) (*FileResult, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errs.ErrFailedToReadFile.WithArgs(filename).Wrap(err)
	}
	if !utf8.Valid(data) {
		return nil, errs.ErrNotUTF8.WithArgs(filename)
	}

	original := string(data)
	res := m.pass.Apply(original)
	result := &FileResult{Path: filename, Changed: res.Changed, Counts: res.Counts}
	if !res.Changed {
		return result, nil
	}

	if m.opts.DryRun {
		diff, err := m.diff(filename, original, res.Content)
		if err != nil {
			log.Printf("warning: failed to diff %s: %v", filename, err)
		}
		result.Diff = diff
		return result, nil
	}

	if m.opts.Backup {
		if err := m.backup(filename); err != nil {
			return nil, errs.ErrFailedToBackup.WithArgs(filename).Wrap(err)
		}
	}

	if err := m.write(filename, []byte(res.Content)); err != nil {
		return nil, errs.ErrFailedToWriteFile.WithArgs(filename).Wrap(err)
	}

	return result, nil
}

func (m *Migrator) relative(filename string) string {
	if m.opts.Root != "" {
		if rel, err := filepath.Rel(m.opts.Root, filename); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(filename)
}

func (m *Migrator) diff(filename, before, after string) (string, error) {
	rel := m.relative(filename)
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + rel,
		ToFile:   "b/" + rel,
		Context:  3,
	})
}

// backup copies filename into the session directory, keeping its path relative to the root
func (m *Migrator) backup(filename string) error {
	if m.sessionDir == "" {
		sessionDir, err := createSessionDir(m.opts.BackupDir)
		if err != nil {
			return err
		}
		m.sessionDir = sessionDir
	}

	dst := filepath.Join(m.sessionDir, filepath.FromSlash(m.relative(filename)))
	if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return err
	}
	return copyFile(filename, dst)
}

func createSessionDir(baseDir string) (string, error) {
	sessionDir := filepath.Join(baseDir, "session_"+uuid.NewString())
	if err := os.MkdirAll(sessionDir, 0700); err != nil {
		return "", errs.ErrFailedToCreateDir.WithArgs(sessionDir).Wrap(err)
	}
	return sessionDir, nil
}

// writeFileAtomic replaces filename through a temporary file in the same directory so an
// interrupted run never leaves a truncated source file behind.
func writeFileAtomic(filename string, data []byte) error {
	info, err := os.Stat(filename)
	if err != nil {
		return err
	}

	tempFile, err := os.CreateTemp(filepath.Dir(filename), ".dartmigrate-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tempName := tempFile.Name()
	defer func() {
		tempFile.Close()
		if err := cleanup(tempName); err != nil {
			log.Printf("warning: failed to cleanup temporary file: %v", err)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("syncing temporary file: %w", err)
	}
	tempFile.Close()

	if err := os.Chmod(tempName, info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting file mode: %w", err)
	}

	if err := os.Rename(tempName, filename); err != nil {
		if err := copyFile(tempName, filename); err != nil {
			return fmt.Errorf("failed to update file: %w", err)
		}
	}

	return nil
}

// cleanup removes a leftover file; a missing file is not an error
func cleanup(file string) error {
	if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	return dstFile.Sync()
}
