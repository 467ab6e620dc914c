package automation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"ukeview/mappers"
)

// HTMLSource はPDFにするデータビュー文書を作ります。*dataview.Service が実装します。
type HTMLSource interface {
	GenerateHTML(ctx context.Context, filePath string, layout mappers.Layout) (string, error)
	DefaultLayout() mappers.Layout
}

// PrintFunc は PrintPDF と同じ形の印刷関数です。
type PrintFunc func(ctx context.Context, html string, opts PDFOptions) ([]byte, error)

// PDFFileName はUKEファイル名からPDFのファイル名を作ります。
func PDFFileName(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
}

// PDFHandler は ?file= のデータビューをPDFで返します。横型レイアウトは横向きに印刷します。
// layout が無いときは設定のレイアウトを使います。
func PDFHandler(src HTMLSource, printPDF PrintFunc, opts PDFOptions, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file := r.URL.Query().Get("file")
		if file == "" {
			http.Error(w, "file パラメータでUKEファイルを指定してください", http.StatusBadRequest)
			return
		}
		layout := src.DefaultLayout()
		if v := r.URL.Query().Get("layout"); v != "" {
			layout = mappers.ParseLayout(v)
		}

		doc, err := src.GenerateHTML(r.Context(), file, layout)
		if err != nil {
			logger.Error("pdf source failed", zap.String("file", file), zap.Error(err))
			http.Error(w, "データビューの作成に失敗しました: "+err.Error(), http.StatusBadGateway)
			return
		}

		printOpts := opts
		printOpts.Landscape = layout == mappers.LayoutHorizontal
		data, err := printPDF(r.Context(), doc, printOpts)
		if err != nil {
			logger.Error("pdf print failed", zap.String("file", file), zap.Error(err))
			http.Error(w, "PDFの作成に失敗しました: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(PDFFileName(file)))
		w.Header().Set("Content-Length", fmt.Sprint(len(data)))
		w.Write(data)
	}
}
