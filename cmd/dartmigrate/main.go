package main

import (
	"fmt"
	"log"
	"os"

	"github.com/markwave/dartmigrate/commands"
	"github.com/markwave/dartmigrate/errs"
	"github.com/markwave/dartmigrate/internal/messages"
	"github.com/markwave/dartmigrate/options"
	"github.com/napalu/goopt/v2"
	"github.com/napalu/goopt/v2/i18n"
)

func main() {
	cfg := &options.AppConfig{}

	// Assign command functions
	cfg.Calls.Exec = commands.Calls
	cfg.Widgets.Exec = commands.Widgets
	cfg.Extract.Exec = commands.Extract

	bundle, err := messages.NewBundle()
	if err != nil {
		log.Fatalf("Failed to create i18n bundle: %v", err)
	}
	cfg.TR = bundle
	errs.UpdateMessageProvider(i18n.NewBundleMessageProvider(bundle))

	parser, err := goopt.NewParserFromStruct(cfg,
		goopt.WithFlagNameConverter(goopt.ToKebabCase),
		goopt.WithEnvNameConverter(options.EnvNameConverter),
		goopt.WithCommandNameConverter(goopt.ToKebabCase),
		goopt.WithUserBundle(bundle))
	if err != nil {
		log.Fatalf("Failed to create parser: %v", err)
	}

	success := parser.Parse(os.Args)

	if cfg.Help {
		parser.PrintUsageWithGroups(os.Stdout)
		os.Exit(0)
	}

	if !success {
		for _, err := range parser.GetErrors() {
			fmt.Fprintln(os.Stderr, cfg.TR.T(messages.MsgParseError, err))
			fmt.Fprintln(os.Stderr)
		}
		parser.PrintUsageWithGroups(os.Stderr)
		os.Exit(1)
	}

	errCount := parser.ExecuteCommands()
	if errCount > 0 {
		for _, cmdErr := range parser.GetCommandExecutionErrors() {
			fmt.Fprintln(os.Stderr, cfg.TR.T(messages.MsgCommandFailed, cmdErr.Key, cmdErr.Value))
			fmt.Fprintln(os.Stderr)
		}
		os.Exit(1)
	}
}
