package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"ukeview/config"
	"ukeview/dataview"
	"ukeview/mappers"
	"ukeview/render"
	"ukeview/runner"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if cliErr, ok := runner.AsCLIError(err); ok && cliErr.Stderr != "" {
			fmt.Fprintln(os.Stderr, cliErr.Stderr)
		}
		os.Exit(1)
	}
}

// app は各コマンドが共有する設定・ロガー・サービスです。
type app struct {
	cfgPath string
	cfg     config.Config
	logger  *zap.Logger
	service *dataview.Service
}

func newApp(cfgPath string, verbose bool) (*app, error) {
	logger, err := newLogger(verbose)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfigFrom(cfgPath)
	if err != nil {
		logger.Warn("failed to load config file, using defaults", zap.String("path", cfgPath), zap.Error(err))
		cfg = config.Defaults()
	}

	renderer, err := render.NewDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	cliRunner := runner.New(runner.Config{
		Executable: cfg.Executable,
		Args:       cfg.Args,
		Cwd:        cfg.Cwd,
		Timeout:    cfg.CommandTimeout(),
	}, logger)

	svc := dataview.NewService(cliRunner, renderer, logger, dataview.Options{
		Layout:                mappers.ParseLayout(cfg.Layout),
		NormalizeTekiyouASCII: cfg.NormalizeTekiyouASCII,
		NormalizeHokenASCII:   cfg.NormalizeHokenASCII,
		Theme:                 render.ParseTheme(cfg.Theme),
	})

	logger.Debug("config loaded",
		zap.String("executable", cfg.Executable),
		zap.String("layout", cfg.Layout),
		zap.String("theme", cfg.Theme),
	)
	return &app{cfgPath: cfgPath, cfg: cfg, logger: logger, service: svc}, nil
}

func openBrowser(url string, logger *zap.Logger) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		logger.Warn("failed to open browser", zap.String("url", url), zap.Error(err))
	}
}
