package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/markwave/dartmigrate/errs"
	"github.com/markwave/dartmigrate/internal/messages"
	"github.com/markwave/dartmigrate/options"
	"github.com/markwave/dartmigrate/scan"
	"github.com/napalu/goopt/v2"
	"github.com/napalu/goopt/v2/i18n"
	"golang.org/x/term"
)

const (
	defaultRoot = "lib"
	defaultExt  = ".dart"
	ruleWidth   = 70
)

// config fetches the application configuration bound to parser
func config(parser *goopt.Parser) (*options.AppConfig, error) {
	cfg, ok := goopt.GetStructCtxAs[*options.AppConfig](parser)
	if !ok {
		return nil, errs.ErrFailedToGetConfig
	}
	if cfg.TR == nil {
		bundle, err := messages.NewBundle()
		if err != nil {
			return nil, err
		}
		cfg.TR = bundle
		errs.UpdateMessageProvider(i18n.NewBundleMessageProvider(bundle))
	}
	return cfg, nil
}

func rootDir(cfg *options.AppConfig) string {
	if cfg.Root == "" {
		return defaultRoot
	}
	return cfg.Root
}

// scanFiles lists the source files selected by the global flags
func scanFiles(cfg *options.AppConfig) ([]string, error) {
	ext := cfg.Ext
	if ext == "" {
		ext = defaultExt
	}
	opts := scan.Options{
		Extensions: options.SplitList(ext),
		Exclude:    options.SplitList(cfg.Exclude),
	}
	if cfg.Since != "" {
		since, err := dateparse.ParseAny(cfg.Since)
		if err != nil {
			return nil, errs.ErrInvalidSince.WithArgs(cfg.Since).Wrap(err)
		}
		opts.ModifiedAfter = since
	}

	scanner, err := scan.NewScanner(opts)
	if err != nil {
		return nil, err
	}
	return scanner.Scan(rootDir(cfg))
}

// relPath shortens path for display
func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// console prints translated progress messages
type console struct {
	out    io.Writer
	errOut io.Writer
	tr     i18n.Translator
}

func newConsole(cfg *options.AppConfig) *console {
	return &console{out: cfg.Stdout(), errOut: cfg.Stderr(), tr: cfg.TR}
}

func (c *console) println(key string, args ...interface{}) {
	fmt.Fprintln(c.out, c.tr.T(key, args...))
}

func (c *console) errorln(key string, args ...interface{}) {
	fmt.Fprintln(c.errOut, c.tr.T(key, args...))
}

func (c *console) blank() {
	fmt.Fprintln(c.out)
}

// rule prints a separator as wide as the terminal allows
func (c *console) rule() {
	width := ruleWidth
	if f, ok := c.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 && cols < width {
			width = cols
		}
	}
	fmt.Fprintln(c.out, strings.Repeat("=", width))
}

func (c *console) header(key string) {
	c.rule()
	c.println(key)
	c.rule()
	c.blank()
}
