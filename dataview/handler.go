package dataview

import (
	"bytes"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"ukeview/mappers"
	"ukeview/parsers"
	"ukeview/runner"
)

const maxUploadBytes = 64 << 20

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func statusFor(err error) int {
	cliErr, ok := runner.AsCLIError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch cliErr.Type {
	case runner.ExecutionError:
		return http.StatusBadGateway
	case runner.Cancelled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func layoutParam(r *http.Request, fallback mappers.Layout) mappers.Layout {
	if v := r.URL.Query().Get("layout"); v != "" {
		return mappers.ParseLayout(v)
	}
	return fallback
}

// DataViewHandler は ?file= のUKEファイルをCLIで読み込んでデータビューを返します。
func DataViewHandler(svc *Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file := r.URL.Query().Get("file")
		if file == "" {
			writeHTML(w, http.StatusBadRequest, svc.ErrorHTML(errMissingFile))
			return
		}
		doc, err := svc.GenerateHTML(r.Context(), file, layoutParam(r, svc.Options().Layout))
		if err != nil {
			logger.Error("data view failed", zap.String("file", file), zap.Error(err))
			writeHTML(w, statusFor(err), svc.ErrorHTML(err))
			return
		}
		writeHTML(w, http.StatusOK, doc)
	}
}

// RenderHandler はPOSTされたCLI出力(json/yaml)からデータビューを返します。
func RenderHandler(svc *Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := parsers.FormatJSON
		if v := r.URL.Query().Get("format"); v != "" {
			format = parsers.Format(v)
		} else if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
			format = parsers.FormatYAML
		}

		out, err := svc.Read(format, http.MaxBytesReader(w, r.Body, maxUploadBytes))
		if err != nil {
			logger.Warn("invalid receipt data posted", zap.String("format", string(format)), zap.Error(err))
			writeHTML(w, http.StatusBadRequest, svc.ErrorHTML(err))
			return
		}
		doc, err := svc.RenderPage(out, layoutParam(r, svc.Options().Layout), svc.newNonce())
		if err != nil {
			logger.Error("render failed", zap.Error(err))
			writeHTML(w, http.StatusInternalServerError, svc.ErrorHTML(err))
			return
		}
		writeHTML(w, http.StatusOK, doc)
	}
}

// PreviewHandler は ?file= のUKEファイルのSVGプレビューを返します。
func PreviewHandler(svc *Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file := r.URL.Query().Get("file")
		if file == "" {
			writeHTML(w, http.StatusBadRequest, svc.ErrorHTML(errMissingFile))
			return
		}
		doc, err := svc.GeneratePreview(r.Context(), file)
		if err != nil {
			logger.Error("preview failed", zap.String("file", file), zap.Error(err))
			writeHTML(w, statusFor(err), svc.ErrorHTML(err))
			return
		}
		writeHTML(w, http.StatusOK, doc)
	}
}

// ExportHandler は ?file= のUKEファイルの摘要欄をExcelブックで返します。
func ExportHandler(svc *Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file := r.URL.Query().Get("file")
		if file == "" {
			writeHTML(w, http.StatusBadRequest, svc.ErrorHTML(errMissingFile))
			return
		}
		var buf bytes.Buffer
		if err := svc.ExportWorkbook(r.Context(), file, &buf); err != nil {
			logger.Error("export failed", zap.String("file", file), zap.Error(err))
			writeHTML(w, statusFor(err), svc.ErrorHTML(err))
			return
		}
		base := filepath.Base(file)
		fileName := strings.TrimSuffix(base, filepath.Ext(base)) + "_摘要.xlsx"
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(fileName))
		w.Write(buf.Bytes())
	}
}

// IndexHandler はファイル指定画面を返します。
func IndexHandler(svc *Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := svc.renderer.IndexDocument(svc.Options().Layout)
		if err != nil {
			logger.Error("index render failed", zap.Error(err))
			writeHTML(w, http.StatusInternalServerError, svc.ErrorHTML(err))
			return
		}
		writeHTML(w, http.StatusOK, doc)
	}
}
