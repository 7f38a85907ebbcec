/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/josephgoksu/FocusFlow/internal/config"
	"github.com/josephgoksu/FocusFlow/internal/logger"
	"github.com/josephgoksu/FocusFlow/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser UI and the JSON API",
	Long: `Start an HTTP server with the browser UI at / and the JSON API under /api.

Editing the config file while the server runs applies a new log.level
without a restart; other settings take effect on the next start.

Examples:
  focusflow serve
  focusflow serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, appConfig, true)
	if err != nil {
		return err
	}
	defer s.Close()

	addr := appConfig.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	srv := server.New(s.flows, server.Options{
		Addr:    addr,
		Origins: appConfig.Server.Origins,
		Version: version,
		Logger:  log,
	})

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return srv.Run(ctx)
	})
	if path := viper.ConfigFileUsed(); path != "" {
		g.Go(func() error {
			return watchFile(ctx, path, func() { reloadLogLevel(viper.GetViper()) })
		})
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "FocusFlow is serving on %s\n", displayAddr(addr))
	return g.Wait()
}

// reloadLogLevel re-reads the config file and applies its log.level.
// An invalid file keeps the current level.
func reloadLogLevel(v *viper.Viper) {
	l := logger.Component(log, "config")
	if err := v.ReadInConfig(); err != nil {
		l.Warn("reload config", zap.Error(err))
		return
	}
	cfg, err := config.Load(v)
	if err != nil {
		l.Warn("reload config", zap.Error(err))
		return
	}
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil || verbose {
		return
	}
	if level != logLevel.Level() {
		logLevel.SetLevel(level)
		l.Info("log level changed", zap.Stringer("level", level))
	}
}

// displayAddr turns ":8787" into a clickable URL.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
