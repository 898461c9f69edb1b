// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gateway implements the HTTP surface of the conversion service:
// a bearer-authenticated upload-and-convert endpoint plus unauthenticated
// service-info and health endpoints. Each request is an independent,
// linear pipeline: authenticate, validate, stage to a scratch file,
// invoke the engine, respond. The scratch file is released on every exit
// path.
package gateway

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/markitdown-gateway/internal/convert"
	"github.com/pdiddy/markitdown-gateway/internal/httputil"
	"github.com/pdiddy/markitdown-gateway/pkg/types"
)

const (
	serviceName    = "markitdown-api"
	serviceMessage = "MarkItDown API"
	serviceDesc    = "Convert various file formats to Markdown"
	serviceVersion = "1.0.0"
)

// supportedFormats lists the human-readable format labels reported by
// the service descriptor. The engine decides what it can actually parse;
// this list is informational.
var supportedFormats = []string{
	"PowerPoint (.pptx)",
	"Word (.docx)",
	"Excel (.xlsx, .xls)",
	"PDF (.pdf)",
	"Images (with OCR)",
	"Audio files (with transcription)",
	"HTML",
	"Text-based formats (CSV, JSON, XML)",
	"ZIP files",
	"EPubs",
	"And more...",
}

// Gateway handles conversion requests. All fields are set at construction
// and read-only afterwards; concurrent requests share no mutable state.
type Gateway struct {
	token      string
	converter  convert.Converter
	scratchDir string
	maxUpload  int64
	logger     *logrus.Logger
}

// New creates a Gateway with the given configuration and converter.
func New(cfg types.GatewayConfig, conv convert.Converter, logger *logrus.Logger) *Gateway {
	return &Gateway{
		token:      cfg.Auth.Token,
		converter:  conv,
		scratchDir: cfg.Server.ScratchDir,
		maxUpload:  cfg.Server.MaxUploadBytes,
		logger:     logger,
	}
}

// Handler returns the gateway's HTTP handler with request logging applied.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", g.handleRoot)
	mux.HandleFunc("GET /health", g.handleHealth)
	mux.HandleFunc("POST /convert", g.handleConvert)
	return httputil.LogRequests(g.logger, mux)
}

// handleRoot serves the static service descriptor.
func (g *Gateway) handleRoot(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, types.ServiceInfo{
		Message:          serviceMessage,
		Description:      serviceDesc,
		Version:          serviceVersion,
		SupportedFormats: supportedFormats,
	})
}

// handleHealth serves the static health probe.
func (g *Gateway) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, types.HealthStatus{
		Status:  "healthy",
		Service: serviceName,
	})
}

// handleConvert runs the conversion pipeline for one upload. Guards run
// in order: bearer token first (before any body processing), then
// filename presence. The scratch file is removed by a deferred release,
// so success, engine failure, and panics all clean up.
func (g *Gateway) handleConvert(w http.ResponseWriter, r *http.Request) {
	if !g.authorized(r) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		httputil.WriteError(w, http.StatusUnauthorized, "Invalid authentication token")
		return
	}

	if g.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, g.maxUpload)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if tooLarge(err) {
			httputil.WriteError(w, http.StatusBadRequest, "File exceeds the maximum upload size")
			return
		}
		httputil.WriteError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	// Backstop: Go's multipart parser files empty-filename parts under
	// form values, so FormFile already fails for them above. Kept so a
	// nameless upload can never reach staging through a parser change.
	if header.Filename == "" {
		httputil.WriteError(w, http.StatusBadRequest, "No file provided")
		return
	}

	g.logger.WithFields(logrus.Fields{
		"filename":     header.Filename,
		"content_type": header.Header.Get("Content-Type"),
	}).Info("converting file")

	// FormFile has already buffered the full body through the
	// MaxBytesReader, so a size violation cannot surface here.
	content, err := io.ReadAll(file)
	if err != nil {
		g.logger.WithField("filename", header.Filename).WithError(err).Error("reading upload")
		httputil.WriteError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}

	scratchPath, err := g.stage(header.Filename, content)
	if err != nil {
		g.logger.WithField("filename", header.Filename).WithError(err).Error("staging upload")
		httputil.WriteError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}
	defer g.discard(scratchPath, header.Filename)

	result, err := g.converter.Convert(r.Context(), scratchPath)
	if err != nil {
		g.logger.WithField("filename", header.Filename).WithError(err).Error("conversion failed")
		httputil.WriteError(w, http.StatusUnprocessableEntity, "Failed to convert file: "+err.Error())
		return
	}

	var title *string
	if result.Title != "" {
		title = &result.Title
	}

	httputil.WriteJSON(w, http.StatusOK, types.ConversionResponse{
		Success:  true,
		Filename: header.Filename,
		FileSize: len(content),
		Markdown: result.Markdown,
		Metadata: types.ConversionMetadata{
			Title: title,
			// Character count, not byte count: multi-byte output from
			// OCR or transcription must not inflate the length.
			ContentLength: utf8.RuneCountInString(result.Markdown),
		},
	})
}

// authorized checks the Authorization header against the configured
// token by exact string equality.
func (g *Gateway) authorized(r *http.Request) bool {
	cred, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return ok && cred == g.token
}

// tooLarge reports whether err came from http.MaxBytesReader. The
// multipart reader does not always wrap the error, so the message is
// checked as a fallback.
func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "request body too large")
}
