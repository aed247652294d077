package commands

import (
	"fmt"
	"os/exec"

	"github.com/google/shlex"
	"github.com/markwave/dartmigrate/errs"
	"github.com/markwave/dartmigrate/internal/messages"
	"github.com/markwave/dartmigrate/migration"
	"github.com/markwave/dartmigrate/options"
	"github.com/napalu/goopt/v2"
)

type migrateSettings struct {
	backup    bool
	backupDir string
	postCheck string
}

// Calls rewrites .tr call sites to .tr(ref)
func Calls(parser *goopt.Parser, _ *goopt.Command) error {
	cfg, err := config(parser)
	if err != nil {
		return err
	}

	c := cfg.Calls
	pass := migration.CallSitePass(migration.Imports{Helper: c.HelperImport, Riverpod: c.RiverpodImport})
	return runMigration(cfg, messages.MsgCallsTitle, pass, migrateSettings{
		backup:    c.Backup,
		backupDir: c.BackupDir,
		postCheck: c.PostCheck,
	})
}

// Widgets converts the widgets of already migrated files to Consumer base types
func Widgets(parser *goopt.Parser, _ *goopt.Command) error {
	cfg, err := config(parser)
	if err != nil {
		return err
	}

	c := cfg.Widgets
	pass := migration.WidgetPass(migration.Imports{Helper: c.HelperImport, Riverpod: c.RiverpodImport})
	return runMigration(cfg, messages.MsgWidgetsTitle, pass, migrateSettings{
		backup:    c.Backup,
		backupDir: c.BackupDir,
		postCheck: c.PostCheck,
	})
}

func runMigration(cfg *options.AppConfig, title string, pass *migration.Pass, s migrateSettings) error {
	con := newConsole(cfg)
	root := rootDir(cfg)

	con.header(title)
	con.println(messages.MsgScanning, root)
	files, err := scanFiles(cfg)
	if err != nil {
		return err
	}
	con.println(messages.MsgFoundFiles, len(files))
	con.blank()

	migrator := migration.NewMigrator(pass, migration.Options{
		Root:      root,
		DryRun:    cfg.DryRun,
		Backup:    s.backup,
		BackupDir: s.backupDir,
		OnFile: func(r *migration.FileResult) {
			if cfg.DryRun {
				con.println(messages.MsgWouldModify, relPath(root, r.Path))
				if cfg.Verbose && r.Diff != "" {
					fmt.Fprint(con.out, r.Diff)
				}
				return
			}
			con.println(messages.MsgModified, relPath(root, r.Path))
			if cfg.Verbose {
				r.Counts.Each(func(name string, n int) {
					if n > 0 {
						con.println(messages.MsgFileCounts, con.tr.T(messages.StatKey(name)), n)
					}
				})
			}
		},
		OnError: func(fe migration.FileError) {
			con.errorln(messages.MsgFileError, relPath(root, fe.Path), fe.Err)
		},
	})
	report := migrator.Run(files)

	con.summary(report.Stats)
	if dir := migrator.SessionDir(); dir != "" {
		con.println(messages.MsgBackupLocation, dir)
	}
	if cfg.DryRun {
		con.println(messages.MsgDryRunComplete)
		return nil
	}

	con.println(messages.MsgComplete)
	if s.postCheck != "" {
		return runPostCheck(con, s.postCheck)
	}
	con.blank()
	con.println(messages.MsgNextSteps)
	for i, step := range []string{messages.MsgStepAnalyze, messages.MsgStepLanguage, messages.MsgStepManual} {
		fmt.Fprintf(con.out, "%d. %s\n", i+1, con.tr.T(step))
	}

	return nil
}

func (c *console) summary(stats *migration.Stats) {
	c.blank()
	c.rule()
	c.println(messages.MsgSummary)
	c.rule()
	stats.Each(func(name string, n int) {
		fmt.Fprintf(c.out, "%-28s %d\n", c.tr.T(messages.StatKey(name))+":", n)
	})
	c.rule()
}

// runPostCheck runs command, split like a shell would, with its output forwarded
func runPostCheck(con *console, command string) error {
	args, err := shlex.Split(command)
	if err != nil {
		return errs.ErrInvalidPostCheck.WithArgs(command).Wrap(err)
	}
	if len(args) == 0 {
		return errs.ErrInvalidPostCheck.WithArgs(command)
	}

	con.blank()
	con.println(messages.MsgRunningPostCheck, command)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = con.out
	cmd.Stderr = con.errOut
	if err := cmd.Run(); err != nil {
		return errs.ErrPostCheckFailed.WithArgs(command).Wrap(err)
	}
	return nil
}
