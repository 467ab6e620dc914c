// Package render はデータビューのHTMLをテンプレートから生成します。
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"ukeview/mappers"
)

//go:embed templates/*.html assets/data-view.css
var embedded embed.FS

const (
	templatePattern = "templates/*.html"
	cssPath         = "assets/data-view.css"
)

var (
	ErrTemplateNotFound = errors.New("render: template not found")
	ErrEmptyOutput      = errors.New("render: template produced no output")
)

// Renderer はテンプレートとCSSを起動時に読み込んで保持します。
// 読み込み後は変更しないので、複数のゴルーチンから同時に使えます。
type Renderer struct {
	tmpl *template.Template
	css  template.CSS
}

// New は fsys の templates/*.html と assets/data-view.css から Renderer を作ります。
func New(fsys fs.FS) (*Renderer, error) {
	tmpl, err := template.ParseFS(fsys, templatePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	css, err := fs.ReadFile(fsys, cssPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cssPath, err)
	}
	return &Renderer{tmpl: tmpl, css: template.CSS(css)}, nil
}

// NewDefault はバイナリに埋め込んだテンプレートで Renderer を作ります。
func NewDefault() (*Renderer, error) {
	return New(embedded)
}

// Render は id のテンプレートを data で実行します。
// テンプレートが無い場合と出力が空の場合はエラーを返します。
func (r *Renderer) Render(id string, data any) (string, error) {
	t := r.tmpl.Lookup(id)
	if t == nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", id, err)
	}
	if strings.TrimSpace(buf.String()) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyOutput, id)
	}
	return buf.String(), nil
}

type documentData struct {
	Title       string
	Nonce       string
	CSS         template.CSS
	BodyClass   string
	ThemeConfig ThemeConfig
	Page        mappers.Page
}

// Document はデータビュー全体のHTML文書を生成します。nonce は呼び出し側が用意します。
func (r *Renderer) Document(page mappers.Page, nonce string, theme Theme) (string, error) {
	return r.Render("document", documentData{
		Title:       "レセプトデータビュー",
		Nonce:       nonce,
		CSS:         r.css,
		BodyClass:   theme.BodyClass(),
		ThemeConfig: NewThemeConfig(theme),
		Page:        page,
	})
}

type errorData struct {
	CSS     template.CSS
	Message string
	Stderr  string
}

// ErrorDocument はエラー表示用のHTML文書を生成します。stderr はエスケープして出力します。
func (r *Renderer) ErrorDocument(message, stderr string) (string, error) {
	return r.Render("error", errorData{CSS: r.css, Message: message, Stderr: stderr})
}

type previewData struct {
	Title string
	Nonce string
	SVG   template.HTML
}

// PreviewDocument はCLIが出力したSVGをプレビュー用の文書に埋め込みます。
func (r *Renderer) PreviewDocument(svg, nonce, title string) (string, error) {
	return r.Render("preview", previewData{Title: title, Nonce: nonce, SVG: template.HTML(svg)})
}

type indexData struct {
	Title   string
	CSS     template.CSS
	Layout  mappers.Layout
	Layouts []mappers.Layout
}

// IndexDocument はファイル指定画面を生成します。
func (r *Renderer) IndexDocument(layout mappers.Layout) (string, error) {
	return r.Render("index", indexData{
		Title:   "レセプトデータビュー",
		CSS:     r.css,
		Layout:  layout,
		Layouts: []mappers.Layout{mappers.LayoutVertical, mappers.LayoutHorizontal},
	})
}
