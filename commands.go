package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ukeview/automation"
	"ukeview/config"
	"ukeview/mappers"
	"ukeview/parsers"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
		a       *app
	)

	root := &cobra.Command{
		Use:           "ukeview",
		Short:         "UKE(レセプト電算)ファイルのデータビューア",
		Long:          "receiptisan の出力を読み込み、摘要欄カレンダー付きのデータビューをHTML/Excel/PDFで出力します。",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(cfgFile, verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFilePath, "設定ファイルのパス")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "詳細なログを出力します")

	appRef := func() *app { return a }
	root.AddCommand(
		newDataViewCmd(appRef),
		newPreviewCmd(appRef),
		newExportCmd(appRef),
		newPDFCmd(appRef),
		newServeCmd(appRef),
	)
	return root
}

func newDataViewCmd(appRef func() *app) *cobra.Command {
	var layout, input, format, out string
	cmd := &cobra.Command{
		Use:   "dataview [file...]",
		Short: "データビューHTMLを生成します",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()
			l := layoutFlag(layout)

			if input != "" {
				doc, err := renderSavedOutput(a, input, format, l)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), out, []byte(doc))
			}

			switch len(args) {
			case 0:
				return errors.New("UKEファイルか --input を指定してください")
			case 1:
				doc, err := a.service.GenerateHTML(cmd.Context(), args[0], l)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), out, []byte(doc))
			}

			paths, err := outputPaths(args, out, ".html")
			if err != nil {
				return err
			}
			docs, err := a.service.GenerateMany(cmd.Context(), args, l)
			if err != nil {
				return err
			}
			if out != "" {
				if err := os.MkdirAll(out, 0755); err != nil {
					return err
				}
			}
			for i, d := range docs {
				if err := os.WriteFile(paths[i], []byte(d.HTML), 0644); err != nil {
					return err
				}
				a.logger.Info("written", zap.String("path", paths[i]))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&layout, "layout", "", "レイアウト (vertical|horizontal)")
	cmd.Flags().StringVar(&input, "input", "", "保存済みのCLI出力 (json/yaml) を読み込みます")
	cmd.Flags().StringVar(&format, "format", "", "--input の形式 (json|yaml)。省略時は拡張子で判定します")
	cmd.Flags().StringVarP(&out, "out", "o", "", "出力先 (複数ファイル時はディレクトリ)")
	return cmd
}

func renderSavedOutput(a *app, input, format string, layout mappers.Layout) (string, error) {
	f, err := os.Open(input)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(input)), ".")
		if format == "yml" {
			format = string(parsers.FormatYAML)
		}
	}
	parsed, err := parsers.ParseFormat(format)
	if err != nil {
		return "", err
	}
	out, err := a.service.Read(parsed, f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", input, err)
	}
	return a.service.RenderPage(out, layout, uuid.NewString())
}

func newPreviewCmd(appRef func() *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "CLIのSVGプレビューをHTMLにします",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := appRef().service.GeneratePreview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out, []byte(doc))
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "出力先")
	return cmd
}

func newExportCmd(appRef func() *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "摘要欄をExcelブックに書き出します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()
			path := out
			if path == "" {
				path = siblingPath(args[0], "", "_摘要.xlsx")
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := a.service.ExportWorkbook(cmd.Context(), args[0], f); err != nil {
				f.Close()
				os.Remove(path)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			a.logger.Info("written", zap.String("path", path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "出力先 (.xlsx)")
	return cmd
}

func newPDFCmd(appRef func() *app) *cobra.Command {
	var layout, out, chrome string
	cmd := &cobra.Command{
		Use:   "pdf <file>",
		Short: "データビューをPDFに印刷します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()
			l := layoutFlag(layout)
			if l == "" {
				l = a.service.Options().Layout
			}
			doc, err := a.service.GenerateHTML(cmd.Context(), args[0], l)
			if err != nil {
				return err
			}
			data, err := automation.PrintPDF(cmd.Context(), doc, automation.PDFOptions{
				Landscape:  l == mappers.LayoutHorizontal,
				ChromePath: chrome,
				MarginInch: 0.2,
			})
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = siblingPath(args[0], "", ".pdf")
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return err
			}
			a.logger.Info("written", zap.String("path", path), zap.Int("bytes", len(data)))
			return nil
		},
	}
	cmd.Flags().StringVar(&layout, "layout", "", "レイアウト (vertical|horizontal)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "出力先 (.pdf)")
	cmd.Flags().StringVar(&chrome, "chrome", "", "Chrome/Chromium の実行ファイル")
	return cmd
}

func newServeCmd(appRef func() *app) *cobra.Command {
	var addr string
	var noBrowser bool
	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "データビューをブラウザで表示するサーバーを起動します",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appRef()
			if addr == "" {
				addr = a.cfg.ListenAddr
			}

			router := chi.NewRouter()
			SetupRoutes(router, a.service, a.cfgPath, a.logger)
			server := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("starting server", zap.String("addr", addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			if !noBrowser {
				openBrowser(browserURL(addr, args), a.logger)
			}

			select {
			case err, ok := <-errCh:
				if ok {
					return fmt.Errorf("server start error: %w", err)
				}
				return nil
			case <-cmd.Context().Done():
			}

			a.logger.Info("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "待ち受けアドレス (既定は設定の listenAddr)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "ブラウザを開きません")
	return cmd
}

func layoutFlag(s string) mappers.Layout {
	if s == "" {
		return ""
	}
	return mappers.ParseLayout(s)
}

func browserURL(addr string, args []string) string {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	u := "http://" + host + "/"
	if len(args) > 0 {
		u += "dataview?file=" + url.QueryEscape(args[0])
	}
	return u
}

// siblingPath は入力ファイルと同じ名前で拡張子を suffix に替えたパスです。dir があればそこに置きます。
func siblingPath(input, dir, suffix string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + suffix
	if dir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	return filepath.Join(dir, name)
}

// outputPaths は各入力の出力先を返します。同じ出力先になる入力があればエラーです。
func outputPaths(inputs []string, dir, suffix string) ([]string, error) {
	paths := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, input := range inputs {
		path := siblingPath(input, dir, suffix)
		if prev, ok := seen[path]; ok {
			return nil, fmt.Errorf("出力先 %s が重複しています: %s と %s", path, prev, input)
		}
		seen[path] = input
		paths[i] = path
	}
	return paths, nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
