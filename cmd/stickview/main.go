package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stickview/internal/config"
	"stickview/internal/env"
	"stickview/internal/graphics"
	"stickview/internal/logger"
	"stickview/internal/viewer"
)

var (
	configPath string
	envPath    string
	logLevel   string
	watchFile  bool
)

var rootCmd = &cobra.Command{
	Use:   "stickview [source]",
	Short: "3D viewer for stick models stored in a spreadsheet",
	Long: `Open a spreadsheet of members, nodes and supports and show it in 3D.

The source is a local .xlsx file or an http(s) URL. Sheet A lists members
(number, start node, end node), sheet B nodes (id, x, y, z) and sheet C
supports (node id, type). The first row of each sheet is a header.

Press ESC for the terminal; "cmd help" lists commands.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runViewer,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultPath, "preferences file")
	pf.StringVar(&envPath, "env", ".env", "dotenv file read before the preferences")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides preferences)")
	rootCmd.Flags().BoolVar(&watchFile, "watch", false, "reload when a local source file changes")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadPrefs reads .env and the preferences file, then applies arguments and flags.
// Problems with either file are returned as warnings; the defaults are used instead.
func loadPrefs(cmd *cobra.Command, args []string) (config.Prefs, []error, error) {
	var warnings []error
	if err := env.Load(envPath); err != nil {
		warnings = append(warnings, fmt.Errorf("env: %w", err))
	}
	prefs, err := config.Load(configPath)
	if err != nil {
		warnings = append(warnings, err)
	}
	if len(args) == 1 {
		prefs.Source = args[0]
	}
	if logLevel != "" {
		prefs.LogLevel = logLevel
	}
	if f := cmd.Flags().Lookup("watch"); f != nil && f.Changed {
		prefs.Watch = watchFile
	}
	if err := prefs.Validate(); err != nil {
		return prefs, warnings, err
	}
	return prefs, warnings, nil
}

func runViewer(cmd *cobra.Command, args []string) error {
	prefs, warnings, err := loadPrefs(cmd, args)
	if err != nil {
		return err
	}
	log := logger.New(prefs.LogLevel)
	defer log.Close()
	for _, w := range warnings {
		log.Warn().Err(w).Msg("using default preferences")
	}

	v := viewer.New(prefs, configPath, log)
	graphics.Run(graphics.Options{
		Width:      prefs.Window.Width,
		Height:     prefs.Window.Height,
		Title:      prefs.Window.Title,
		Fullscreen: prefs.Window.Fullscreen,
		TargetFPS:  prefs.Window.TargetFPS,
		Background: v.Background(),
	}, v.Start, v.Update, v.Draw, v.Close)
	return nil
}
