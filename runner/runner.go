// Package runner は receiptisan CLI を起動して出力を受け取ります。
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"ukeview/parsers"
)

// Config はCLIの起動設定です。
type Config struct {
	Executable string
	Args       []string
	Cwd        string
	Env        []string
	Timeout    time.Duration
}

// Result はCLIの実行結果です。
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

type Runner struct {
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Runner {
	if cfg.Executable == "" {
		cfg.Executable = "receiptisan"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// BuildArgs はプレビュー出力用の引数を作ります。
func BuildArgs(filePath string, format parsers.Format) []string {
	return []string{"--preview", "--format=" + string(format), filePath}
}

// Run はCLIを実行します。終了コードが0以外でも標準出力があれば結果として返します。
// 失敗は *CLIError で返します。
func (r *Runner) Run(ctx context.Context, filePath string, format parsers.Format) (Result, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, r.cfg.Args...), BuildArgs(filePath, format)...)
	cmd := exec.CommandContext(ctx, r.cfg.Executable, args...)
	cmd.Dir = r.cfg.Cwd
	if len(r.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), r.cfg.Env...)
	}
	cmd.WaitDelay = 2 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   parsers.DecodeText(stderr.Bytes()),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
	log := r.logger.With(
		zap.String("file", filePath),
		zap.String("format", string(format)),
		zap.Duration("duration", time.Since(start)),
	)

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			log.Warn("receiptisan timed out")
			return res, &CLIError{
				Type:    ExecutionError,
				Message: fmt.Sprintf("コマンドがタイムアウトしました (%s)", r.cfg.Timeout),
				Stderr:  Truncate(res.Stderr, MaxStderrRunes),
				Err:     ctxErr,
			}
		}
		log.Info("receiptisan cancelled")
		return res, &CLIError{Type: Cancelled, Message: "キャンセルされました", Err: ctxErr}
	}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist):
			log.Error("receiptisan not found", zap.String("executable", r.cfg.Executable), zap.Error(err))
			return res, &CLIError{
				Type: CommandNotFound,
				Message: fmt.Sprintf(`receiptisanコマンドが見つかりません。設定 "executable" / "args" を確認してください (現在の設定: %q %q)`,
					r.cfg.Executable, r.cfg.Args),
				Err: err,
			}
		case errors.As(err, &exitErr):
			if strings.TrimSpace(res.Stdout) == "" {
				log.Error("receiptisan failed", zap.Int("exitCode", res.ExitCode))
				return res, &CLIError{
					Type:    ExecutionError,
					Message: fmt.Sprintf("プレビューの生成に失敗しました (終了コード: %d)", res.ExitCode),
					Stderr:  Truncate(res.Stderr, MaxStderrRunes),
					Err:     err,
				}
			}
			log.Warn("receiptisan exited with non-zero status, using partial output", zap.Int("exitCode", res.ExitCode))
			return res, nil
		default:
			log.Error("receiptisan could not be started", zap.Error(err))
			return res, &CLIError{Type: ExecutionError, Message: "コマンド実行エラー: " + err.Error(), Err: err}
		}
	}

	log.Debug("receiptisan finished", zap.Int("stdoutBytes", len(res.Stdout)))
	return res, nil
}
