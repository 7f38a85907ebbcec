/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/josephgoksu/FocusFlow/internal/config"
	"github.com/josephgoksu/FocusFlow/internal/logger"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// jsonLogs switches the log encoder to JSON.
	jsonLogs bool
	// version is the application version.
	version = "0.3.0"

	// Set by loadConfig before any command runs.
	appConfig *config.Config
	log       = zap.NewNop()
	logLevel  = zap.NewAtomicLevel()
)

// Command annotations read by loadConfig.
const (
	// annotationSkipConfig marks commands that must work with a broken or missing config.
	annotationSkipConfig = "focusflow/skip-config"
	// annotationLogToFile marks commands that own the terminal, so logs go to a file.
	annotationLogToFile = "focusflow/log-to-file"
	// annotationQuietLogs marks one-shot commands: info logs are hidden unless --verbose.
	annotationQuietLogs = "focusflow/quiet-logs"
)

// logFileName is used by annotationLogToFile commands when log.file is unset.
const logFileName = "focusflow.log"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "focusflow",
	Short: "FocusFlow - a task list that plans with you",
	Long: `FocusFlow keeps a simple task list and uses a generative model to help:

  plan       turn today's theme into a timetable of tasks
  breakdown  split a goal into a few concrete steps
  advise     ask which open task to tackle first

Run 'focusflow tui' for the interactive screen, 'focusflow serve' for the
browser UI, or 'focusflow mcp' to expose the list to AI assistants.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// In-flight flows finish after the first signal; a second one kills the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(friendlyMessage(err), err)
		stop()
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.focusflow.yaml or ~/.focusflow/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "write logs as JSON")
	bindFlags()
}

// bindFlags binds persistent flags to Viper.
func bindFlags() {
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// loadConfig reads and validates the configuration and builds the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath())

	v := viper.GetViper()
	if err := config.Init(v, cfgFile); err != nil {
		return err
	}
	logger.SetBasePath(config.DataDir())
	if cmd.Annotations[annotationSkipConfig] == "true" {
		return nil
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	appConfig = cfg

	opts := logger.Options{Level: cfg.Log.Level, Verbose: verbose, JSON: jsonLogs, File: cfg.Log.File}
	if opts.File == "" && cmd.Annotations[annotationLogToFile] == "true" {
		opts.File = filepath.Join(config.DataDir(), logFileName)
	}
	l, level, err := logger.New(opts)
	if err != nil {
		return err
	}
	log, logLevel = l, level
	if cmd.Annotations[annotationQuietLogs] == "true" && !verbose && level.Level() < zap.WarnLevel {
		logLevel.SetLevel(zap.WarnLevel)
	}

	if verbose {
		if used := v.ConfigFileUsed(); used != "" {
			log.Debug("using config file", zap.String("path", used))
		}
	}
	return nil
}
