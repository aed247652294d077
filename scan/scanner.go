package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ef-ds/deque"
	"github.com/gobwas/glob"
	"github.com/markwave/dartmigrate/errs"
)

// Options filters the files a Scanner yields
type Options struct {
	// Extensions to accept, with or without the leading dot; empty accepts every file
	Extensions []string
	// Exclude holds glob patterns matched against the slash separated path relative to the root.
	// `*` stops at a slash, `**` does not.
	Exclude []string
	// ModifiedAfter, when set, drops files whose modification time is not after it
	ModifiedAfter time.Time
	// IncludeHidden descends into directories starting with a dot
	IncludeHidden bool
}

// Scanner walks a directory tree breadth first
type Scanner struct {
	extensions    map[string]bool
	exclude       []glob.Glob
	modifiedAfter time.Time
	includeHidden bool
}

// NewScanner compiles opts into a Scanner
func NewScanner(opts Options) (*Scanner, error) {
	s := &Scanner{
		extensions:    make(map[string]bool),
		modifiedAfter: opts.ModifiedAfter,
		includeHidden: opts.IncludeHidden,
	}
	for _, ext := range opts.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extensions[ext] = true
	}
	for _, pattern := range opts.Exclude {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errs.ErrInvalidExclude.WithArgs(pattern).Wrap(err)
		}
		s.exclude = append(s.exclude, g)
	}
	return s, nil
}

// Scan returns every matching file below root. Entries are visited in sorted order, so the
// result is stable from one run to the next.
func (s *Scanner) Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errs.ErrRootNotFound.WithArgs(root).Wrap(err)
	}
	if !info.IsDir() {
		return nil, errs.ErrRootNotDir.WithArgs(root)
	}

	var files []string
	pending := deque.New()
	pending.PushBack(root)

	for pending.Len() > 0 {
		v, _ := pending.PopFront()
		dir := v.(string)

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Name() < entries[j].Name()
		})

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				if !s.includeHidden && strings.HasPrefix(entry.Name(), ".") {
					continue
				}
				if s.excluded(root, path) {
					continue
				}
				pending.PushBack(path)
				continue
			}
			if !entry.Type().IsRegular() {
				continue
			}
			ok, err := s.accept(root, path, entry)
			if err != nil {
				return nil, err
			}
			if ok {
				files = append(files, path)
			}
		}
	}

	return files, nil
}

func (s *Scanner) accept(root, path string, entry os.DirEntry) (bool, error) {
	if len(s.extensions) > 0 && !s.extensions[filepath.Ext(path)] {
		return false, nil
	}
	if s.excluded(root, path) {
		return false, nil
	}
	if !s.modifiedAfter.IsZero() {
		info, err := entry.Info()
		if err != nil {
			return false, err
		}
		if !info.ModTime().After(s.modifiedAfter) {
			return false, nil
		}
	}
	return true, nil
}

func (s *Scanner) excluded(root, path string) bool {
	if len(s.exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range s.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
