// Package automation はヘッドレスChromiumでデータビューをPDFに印刷します。
package automation

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ErrEmptyHTML は空の文書を印刷しようとしたときのエラーです。
var ErrEmptyHTML = errors.New("印刷する文書が空です")

// A4 (inch)
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// PDFOptions は印刷設定です。
type PDFOptions struct {
	// Landscape は横向きで印刷します。横型レイアウトで使います。
	Landscape bool
	// ChromePath が空なら rod が見つけたブラウザ(無ければ自動取得)を使います。
	ChromePath string
	// MarginInch は上下左右の余白です。
	MarginInch float64
}

func (o PDFOptions) printParams() *proto.PagePrintToPDF {
	width, height := a4Width, a4Height
	margin := o.MarginInch
	return &proto.PagePrintToPDF{
		Landscape:         o.Landscape,
		PrintBackground:   true,
		PaperWidth:        &width,
		PaperHeight:       &height,
		MarginTop:         &margin,
		MarginBottom:      &margin,
		MarginLeft:        &margin,
		MarginRight:       &margin,
		PreferCSSPageSize: false,
	}
}

// PrintPDF は HTML 文書をヘッドレスブラウザで開いてPDFにします。
func PrintPDF(ctx context.Context, html string, opts PDFOptions) ([]byte, error) {
	if html == "" {
		return nil, ErrEmptyHTML
	}

	// 1. ブラウザ起動
	// Leakless(false) でセキュリティソフト対策
	l := launcher.New().
		Context(ctx).
		Headless(true).
		Leakless(false)
	if opts.ChromePath != "" {
		l = l.Bin(opts.ChromePath)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("ブラウザの起動に失敗しました: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("ブラウザへの接続に失敗しました: %w", err)
	}
	defer browser.Close()

	// 2. 文書を読み込む
	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("ページの作成に失敗しました: %w", err)
	}
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("文書の読み込みに失敗しました: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("文書の読み込み待ちに失敗しました: %w", err)
	}

	// 3. 印刷
	stream, err := page.PDF(opts.printParams())
	if err != nil {
		return nil, fmt.Errorf("PDFの作成に失敗しました: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("PDFの読み出しに失敗しました: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("PDFが空です")
	}
	return data, nil
}
