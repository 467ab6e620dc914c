// Package dataview はCLI実行、読み込み、表示データ作成、HTML生成をつなぎます。
package dataview

import (
	"context"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ukeview/export"
	"ukeview/mappers"
	"ukeview/model"
	"ukeview/parsers"
	"ukeview/render"
	"ukeview/runner"
)

// Runner はCLIの実行です。*runner.Runner が実装します。
type Runner interface {
	Run(ctx context.Context, filePath string, format parsers.Format) (runner.Result, error)
}

type Options struct {
	Layout                mappers.Layout
	NormalizeTekiyouASCII bool
	NormalizeHokenASCII   bool
	Theme                 render.Theme
}

type Service struct {
	runner   Runner
	renderer *render.Renderer
	logger   *zap.Logger
	opts     Options
	newNonce func() string
}

func NewService(r Runner, renderer *render.Renderer, logger *zap.Logger, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Layout == "" {
		opts.Layout = mappers.LayoutVertical
	}
	if opts.Theme == "" {
		opts.Theme = render.ThemeAuto
	}
	return &Service{
		runner:   r,
		renderer: renderer,
		logger:   logger,
		opts:     opts,
		newNonce: uuid.NewString,
	}
}

// Options は現在の表示設定を返します。
func (s *Service) Options() Options { return s.opts }

// DefaultLayout は layout 指定が無いときに使うレイアウトです。
func (s *Service) DefaultLayout() mappers.Layout { return s.opts.Layout }

// Load はCLIを --format=json で実行してレセプトを読み込みます。
// 出力が読めない場合は標準エラーを添えた execution_error を返します。
func (s *Service) Load(ctx context.Context, filePath string) (model.ReceiptisanOutput, error) {
	res, err := s.runner.Run(ctx, filePath, parsers.FormatJSON)
	if err != nil {
		return nil, err
	}
	out, err := parsers.DecodeJSON(strings.NewReader(res.Stdout))
	if err != nil {
		s.logger.Error("failed to decode receiptisan output", zap.String("file", filePath), zap.Error(err))
		return nil, &runner.CLIError{
			Type:    runner.ExecutionError,
			Message: "レセプトデータの読み込みに失敗しました: " + err.Error(),
			Stderr:  runner.Truncate(res.Stderr, runner.MaxStderrRunes),
			Err:     err,
		}
	}
	return out, nil
}

// Read は保存済みのCLI出力(json/yaml)を読み込みます。
func (s *Service) Read(format parsers.Format, r io.Reader) (model.ReceiptisanOutput, error) {
	return parsers.Decode(format, r)
}

func (s *Service) pageOptions(layout mappers.Layout) mappers.Options {
	if layout == "" {
		layout = s.opts.Layout
	}
	return mappers.Options{
		Layout:                layout,
		NormalizeTekiyouASCII: s.opts.NormalizeTekiyouASCII,
		NormalizeHokenASCII:   s.opts.NormalizeHokenASCII,
	}
}

// RenderPage は読み込み済みのレセプトをHTML文書にします。nonce は呼び出し側が用意します。
func (s *Service) RenderPage(out model.ReceiptisanOutput, layout mappers.Layout, nonce string) (string, error) {
	page := mappers.BuildPage(out, s.pageOptions(layout))
	return s.renderer.Document(page, nonce, s.opts.Theme)
}

// GenerateHTML はUKEファイル1件のデータビューを生成します。
func (s *Service) GenerateHTML(ctx context.Context, filePath string, layout mappers.Layout) (string, error) {
	start := time.Now()
	out, err := s.Load(ctx, filePath)
	if err != nil {
		return "", err
	}
	doc, err := s.RenderPage(out, layout, s.newNonce())
	if err != nil {
		return "", err
	}
	s.logger.Info("data view generated",
		zap.String("file", filePath),
		zap.String("layout", string(s.pageOptions(layout).Layout)),
		zap.Int("receipts", countReceipts(out)),
		zap.Duration("duration", time.Since(start)),
	)
	return doc, nil
}

// Page は読み込み済みレセプトの表示データです。
func (s *Service) Page(out model.ReceiptisanOutput, layout mappers.Layout) mappers.Page {
	return mappers.BuildPage(out, s.pageOptions(layout))
}

// Document は1ファイル分の生成結果です。
type Document struct {
	FilePath string
	HTML     string
}

// GenerateMany は複数ファイルを並行して生成します。結果は files と同じ順です。
// 1件でも失敗すれば残りを取り消してエラーを返します。
func (s *Service) GenerateMany(ctx context.Context, files []string, layout mappers.Layout) ([]Document, error) {
	docs := make([]Document, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			doc, err := s.GenerateHTML(ctx, file, layout)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(file), err)
			}
			docs[i] = Document{FilePath: file, HTML: doc}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// GeneratePreview はCLIのSVG出力をプレビュー文書にします。
func (s *Service) GeneratePreview(ctx context.Context, filePath string) (string, error) {
	res, err := s.runner.Run(ctx, filePath, parsers.FormatSVG)
	if err != nil {
		return "", err
	}
	return s.renderer.PreviewDocument(res.Stdout, s.newNonce(), filepath.Base(filePath))
}

// ErrorHTML はエラー表示用の文書を生成します。
func (s *Service) ErrorHTML(err error) string {
	message, stderr := err.Error(), ""
	if cliErr, ok := runner.AsCLIError(err); ok {
		message, stderr = cliErr.Message, cliErr.Stderr
	}
	doc, renderErr := s.renderer.ErrorDocument(message, stderr)
	if renderErr != nil {
		s.logger.Error("failed to render error document", zap.Error(renderErr))
		return "<!DOCTYPE html><pre>" + html.EscapeString(message) + "</pre>"
	}
	return doc
}

// ExportWorkbook はUKEファイル1件の摘要欄をExcelブックにして w に書き出します。
func (s *Service) ExportWorkbook(ctx context.Context, filePath string, w io.Writer) error {
	out, err := s.Load(ctx, filePath)
	if err != nil {
		return err
	}
	if err := export.WriteTekiyouWorkbook(w, out, export.Options{NormalizeASCII: s.opts.NormalizeTekiyouASCII}); err != nil {
		return err
	}
	s.logger.Info("tekiyou workbook exported", zap.String("file", filePath), zap.Int("receipts", countReceipts(out)))
	return nil
}

func countReceipts(out model.ReceiptisanOutput) int {
	n := 0
	for _, dr := range out {
		n += len(dr.Receipts)
	}
	return n
}
