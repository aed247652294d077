package extract

import (
	"os"
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/markwave/dartmigrate/errs"
	"github.com/markwave/dartmigrate/internal/dartlex"
)

const DefaultAccessor = "tr"

// KeySet is a set of translation keys. Keys are case sensitive.
type KeySet map[string]int

// Add records one occurrence of key
func (k KeySet) Add(key string) {
	k[key]++
}

// Merge adds the occurrences of other to k
func (k KeySet) Merge(other KeySet) {
	for key, n := range other {
		k[key] += n
	}
}

// Len returns the number of distinct keys
func (k KeySet) Len() int {
	return len(k)
}

// Count returns how many times key was seen
func (k KeySet) Count(key string) int {
	return k[key]
}

// Sorted returns the distinct keys in ascending order
func (k KeySet) Sorted() []string {
	keys := make([]string, 0, len(k))
	for key := range k {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Extractor finds the string literals used as receiver of a localization accessor,
// as in 'key'.tr or "key".tr(ref)
type Extractor struct {
	accessor *regexp.Regexp
}

// NewExtractor creates an Extractor for accessor, DefaultAccessor when empty
func NewExtractor(accessor string) *Extractor {
	if accessor == "" {
		accessor = DefaultAccessor
	}
	return &Extractor{
		accessor: regexp.MustCompile(`^\s*\.` + regexp.QuoteMeta(accessor) + `\b`),
	}
}

// Collect returns the keys used in text. Only whole literals count: a quote inside another
// literal never starts a key, and the accessor must end on a word boundary so that
// 'c'.training is not a call site. Empty literals are ignored.
func (e *Extractor) Collect(text string) KeySet {
	keys := make(KeySet)
	for _, lit := range dartlex.Literals(text) {
		if lit.Body == "" {
			continue
		}
		if !e.accessor.MatchString(text[lit.End:]) {
			continue
		}
		keys.Add(lit.Value())
	}
	return keys
}

// CollectFile reads filename as UTF-8 text and collects its keys
func (e *Extractor) CollectFile(filename string) (KeySet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errs.ErrFailedToReadFile.WithArgs(filename).Wrap(err)
	}
	if !utf8.Valid(data) {
		return nil, errs.ErrNotUTF8.WithArgs(filename)
	}
	return e.Collect(string(data)), nil
}
