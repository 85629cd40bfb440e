package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"stickview/internal/loader"
	"stickview/internal/logger"
	"stickview/internal/viewer"
)

var strict bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [source]",
	Short: "Load a source without opening a window and print what would be drawn",
	Long: `Load the source exactly as the viewer does and print a summary followed
by every row or reference that would be skipped.

With --strict the command fails when anything is skipped, which makes it
usable as a check for spreadsheets before they are shared.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&strict, "strict", false, "fail when any row or reference is skipped")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	prefs, warnings, err := loadPrefs(cmd, args)
	if err != nil {
		return err
	}
	log := logger.NewTo(prefs.LogLevel, os.Stderr)
	for _, w := range warnings {
		log.Warn().Err(w).Msg("using default preferences")
	}

	l := viewer.NewLoader(prefs)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	res, err := l.Load(ctx)
	if err != nil {
		loader.LogFailure(log, l.Source, err)
		return err
	}
	return printReport(cmd, res.Report)
}

func printReport(cmd *cobra.Command, rep loader.Report) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", rep.Source, rep.Summary())
	for _, line := range rep.Lines() {
		fmt.Fprintf(out, "  %s\n", line)
	}
	if strict && rep.Skipped() > 0 {
		return fmt.Errorf("inspect: %d record(s) skipped", rep.Skipped())
	}
	return nil
}
