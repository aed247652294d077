package commands

import (
	"github.com/markwave/dartmigrate/extract"
	"github.com/markwave/dartmigrate/internal/messages"
	"github.com/markwave/dartmigrate/locale"
	"github.com/markwave/dartmigrate/options"
	"github.com/napalu/goopt/v2"
)

const defaultOutput = "assets/lang"

// Extract collects the translation keys used in the sources and seeds one locale file per tag
func Extract(parser *goopt.Parser, _ *goopt.Command) error {
	cfg, err := config(parser)
	if err != nil {
		return err
	}
	return runExtract(cfg)
}

func runExtract(cfg *options.AppConfig) error {
	con := newConsole(cfg)
	root := rootDir(cfg)

	tagList := options.SplitList(cfg.Extract.Locales)
	if len(tagList) == 0 {
		tagList = locale.DefaultTags
	}
	tags, err := locale.ParseTags(tagList)
	if err != nil {
		return err
	}

	con.header(messages.MsgExtractTitle)
	con.println(messages.MsgScanning, root)
	files, err := scanFiles(cfg)
	if err != nil {
		return err
	}

	extractor := extract.NewExtractor(cfg.Extract.Accessor)
	keys := make(extract.KeySet)
	for _, file := range files {
		found, err := extractor.CollectFile(file)
		if err != nil {
			con.errorln(messages.MsgExtractFileFailed, relPath(root, file), err)
			continue
		}
		keys.Merge(found)
	}

	sorted := keys.Sorted()
	con.println(messages.MsgFoundKeys, keys.Len(), len(files))
	if cfg.Verbose || cfg.DryRun {
		for _, key := range sorted {
			con.println(messages.MsgKeyOccurrences, key, keys.Count(key))
		}
	}
	con.blank()

	if cfg.DryRun {
		con.println(messages.MsgDryRunComplete)
		return nil
	}

	output := cfg.Extract.Output
	if output == "" {
		output = defaultOutput
	}
	writer := &locale.Writer{Dir: output, Merge: cfg.Extract.Merge}
	results, err := writer.Write(tags, sorted)
	if err != nil {
		return err
	}
	for i, r := range results {
		if i == 0 {
			con.println(messages.MsgCreatedLocale, r.Path)
		} else {
			con.println(messages.MsgNeedsTranslation, r.Path)
		}
		if writer.Merge && r.Kept > 0 {
			con.println(messages.MsgKeptTranslations, r.Kept)
		}
	}

	con.blank()
	con.println(messages.MsgExtractDone)
	con.println(messages.MsgTotalKeys, keys.Len())
	return nil
}
