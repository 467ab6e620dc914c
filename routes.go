package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ukeview/automation"
	"ukeview/dataview"
)

// SetupRoutes はデータビューアのルートを登録します。
func SetupRoutes(r chi.Router, svc *dataview.Service, cfgPath string, logger *zap.Logger) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/", dataview.IndexHandler(svc, logger))
	r.Get("/dataview", dataview.DataViewHandler(svc, logger))
	r.Post("/dataview/render", dataview.RenderHandler(svc, logger))
	r.Get("/dataview/export", dataview.ExportHandler(svc, logger))
	r.Get("/dataview/pdf", automation.PDFHandler(svc, automation.PrintPDF, automation.PDFOptions{MarginInch: 0.2}, logger))
	r.Get("/preview", dataview.PreviewHandler(svc, logger))

	r.Route("/api/config", func(r chi.Router) {
		r.Get("/", GetConfigHandler())
		r.Post("/", SaveConfigHandler(cfgPath, logger))
	})
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
