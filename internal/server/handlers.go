package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"time"

	_ "golang.org/x/image/bmp"

	"github.com/glint-vision/chromafind/internal/detector"
	"github.com/glint-vision/chromafind/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ver, _, _ := version.Info()
	response := HealthResponse{
		Status:  "healthy",
		Version: ver,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logEncodeError("health", err)
	}
}

// detectHandler runs marker detection on an uploaded frame.
func (s *Server) detectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Set content length limit
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeErrorResponse(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > s.maxUploadMB*1024*1024 {
		s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}
	uploadSizeBytes.Observe(float64(header.Size))

	imageData, err := io.ReadAll(file)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read image data", http.StatusInternalServerError)
		return
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		s.writeErrorResponse(w, "Invalid image format", http.StatusBadRequest)
		return
	}

	cfg := s.store.Snapshot()
	finder, err := detector.NewFinder(cfg)
	if err != nil {
		detectRequestsTotal.WithLabelValues("http", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("Detector setup failed: %v", err), http.StatusInternalServerError)
		return
	}

	start := time.Now()
	result, err := finder.Find(img)
	detectDuration.WithLabelValues("http").Observe(time.Since(start).Seconds())
	if err != nil {
		detectRequestsTotal.WithLabelValues("http", "error").Inc()
		status := http.StatusInternalServerError
		if errors.Is(err, detector.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		s.writeErrorResponse(w, fmt.Sprintf("Detection failed: %v", err), status)
		return
	}
	detectRequestsTotal.WithLabelValues("http", "success").Inc()
	detectionsAccepted.WithLabelValues("http").Observe(float64(result.AcceptedCount))

	bounds := img.Bounds()

	// Determine output format: default json; allow 'format' in query or form
	format := r.FormValue("format")
	if format == "" {
		format = r.URL.Query().Get("format")
	}
	if format == "overlay" {
		s.handleOverlayOutput(w, img, result, cfg)
		return
	}

	payload, err := result.ToJSON(bounds.Dx(), bounds.Dy())
	if err != nil {
		s.writeErrorResponse(w, "Failed to encode result", http.StatusInternalServerError)
		return
	}

	var resultJSON detector.RunResultJSON
	if err := json.Unmarshal(payload, &resultJSON); err != nil {
		s.writeErrorResponse(w, "Failed to encode result", http.StatusInternalServerError)
		return
	}

	response := DetectResponse{Success: true, Result: &resultJSON}
	if s.overlayEnabled && r.FormValue("overlay") == "1" {
		if encoded, err := s.encodeOverlay(img, result, cfg); err == nil {
			response.Overlay = encoded
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logEncodeError("detect", err)
	}
}

// handleOverlayOutput streams the annotated scene back as a PNG.
func (s *Server) handleOverlayOutput(w http.ResponseWriter, img image.Image, result *detector.RunResult, cfg detector.Config) {
	if !s.overlayEnabled {
		s.writeErrorResponse(w, "Overlay output is disabled", http.StatusForbidden)
		return
	}
	debug := detector.RenderDebug(img, result, cfg.Debug)
	if debug == nil {
		s.writeErrorResponse(w, "Overlay rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, debug.Overlay); err != nil {
		s.logEncodeError("overlay", err)
	}
}

// encodeOverlay renders the annotated scene and returns it as a base64
// PNG suitable for embedding in a JSON response.
func (s *Server) encodeOverlay(img image.Image, result *detector.RunResult, cfg detector.Config) (string, error) {
	debug := detector.RenderDebug(img, result, cfg.Debug)
	if debug == nil {
		return "", errors.New("overlay rendering failed")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, debug.Overlay); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// configHandler serves the live detection configuration. GET returns the
// current snapshot, PUT replaces it after validation, DELETE restores
// the defaults.
func (s *Server) configHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.store.Snapshot()); err != nil {
			s.logEncodeError("config", err)
		}
	case http.MethodPut:
		// Decode onto the current snapshot so a partial document only
		// overrides the fields it names.
		cfg := s.store.Snapshot()
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			s.writeConfigResponse(w, http.StatusBadRequest, ConfigUpdateResponse{
				Error: fmt.Sprintf("Invalid configuration document: %v", err),
			})
			return
		}
		if err := s.store.Replace(cfg); err != nil {
			configUpdatesTotal.WithLabelValues("rejected").Inc()
			resp := ConfigUpdateResponse{Error: err.Error()}
			var verr *detector.ValidationError
			if errors.As(err, &verr) {
				resp.Rule = verr.Rule
			}
			s.writeConfigResponse(w, http.StatusUnprocessableEntity, resp)
			return
		}
		configUpdatesTotal.WithLabelValues("applied").Inc()
		s.writeConfigResponse(w, http.StatusOK, ConfigUpdateResponse{Success: true})
	case http.MethodDelete:
		s.store.Reset()
		configUpdatesTotal.WithLabelValues("applied").Inc()
		s.writeConfigResponse(w, http.StatusOK, ConfigUpdateResponse{Success: true})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) writeConfigResponse(w http.ResponseWriter, status int, resp ConfigUpdateResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logEncodeError("config", err)
	}
}

func (s *Server) logEncodeError(endpoint string, err error) {
	slog.Error("Failed to encode response", "endpoint", endpoint, "error", err)
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	response := DetectResponse{Success: false, Error: message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logEncodeError("error", err)
	}
}
