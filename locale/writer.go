package locale

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/markwave/dartmigrate/errs"
	"github.com/tailscale/hujson"
	"golang.org/x/text/language"
)

// DefaultTags are the locales seeded when none are given
var DefaultTags = []string{"en", "hi", "te"}

// Dictionary maps translation keys to translated strings for one locale
type Dictionary map[string]string

// Identity returns a dictionary mapping every key to itself
func Identity(keys []string) Dictionary {
	d := make(Dictionary, len(keys))
	for _, key := range keys {
		d[key] = key
	}
	return d
}

// Encode renders d as 4-space indented JSON with sorted keys. Non-ASCII text and HTML
// characters are written as is, and the output ends with a newline.
func Encode(d Dictionary) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if d == nil {
		d = Dictionary{}
	}
	if err := enc.Encode(map[string]string(d)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a dictionary, tolerating comments and trailing commas left by hand editing
func Decode(data []byte) (Dictionary, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	var d Dictionary
	if err := json.Unmarshal(std, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseTags validates locale tags. The tags are returned as given, since they name the files.
func ParseTags(tags []string) ([]string, error) {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := language.Parse(tag); err != nil {
			return nil, errs.ErrInvalidLocale.WithArgs(tag).Wrap(err)
		}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil, errs.ErrNoLocales
	}
	return out, nil
}

// Writer writes one placeholder dictionary per locale into Dir
type Writer struct {
	Dir string
	// Merge keeps translations already present in the target file for keys that are still
	// used. Keys that are no longer used are dropped either way.
	Merge bool
}

// FileResult tells what happened to one locale file
type FileResult struct {
	Tag  string
	Path string
	// Kept is the number of existing translations (other than placeholders) carried over in merge mode
	Kept int
}

// Write writes <tag>.json for every tag, creating Dir if needed
func (w *Writer) Write(tags []string, keys []string) ([]FileResult, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return nil, errs.ErrFailedToCreateDir.WithArgs(w.Dir).Wrap(err)
	}

	var results []FileResult
	for _, tag := range tags {
		path := filepath.Join(w.Dir, tag+".json")
		dict := Identity(keys)

		kept := 0
		if w.Merge {
			n, err := mergeExisting(path, dict)
			if err != nil {
				return results, err
			}
			kept = n
		}

		data, err := Encode(dict)
		if err != nil {
			return results, errs.ErrFailedToEncodeLocale.WithArgs(tag).Wrap(err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return results, errs.ErrFailedToWriteFile.WithArgs(path).Wrap(err)
		}
		results = append(results, FileResult{Tag: tag, Path: path, Kept: kept})
	}

	return results, nil
}

// mergeExisting copies translations from the file at path into dict for keys dict already has
func mergeExisting(path string, dict Dictionary) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.ErrFailedToReadFile.WithArgs(path).Wrap(err)
	}

	existing, err := Decode(data)
	if err != nil {
		return 0, errs.ErrFailedToParseLocale.WithArgs(path).Wrap(err)
	}

	kept := 0
	for key, value := range existing {
		if _, used := dict[key]; used && value != "" {
			dict[key] = value
			if value != key {
				kept++
			}
		}
	}
	return kept, nil
}
