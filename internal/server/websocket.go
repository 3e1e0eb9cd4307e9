package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/glint-vision/chromafind/internal/detector"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks are delegated to the CORS configuration of the
		// surrounding deployment.
		return true
	},
}

// WebSocketDetectRequest is a detection request sent over a WebSocket
// stream. The frame travels as base64-encoded PNG, JPEG or BMP bytes.
type WebSocketDetectRequest struct {
	Type      string `json:"type"`
	Image     string `json:"image,omitempty"`
	Overlay   bool   `json:"overlay,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// WebSocketDetectResponse is the reply for one streamed frame.
type WebSocketDetectResponse struct {
	Type      string                  `json:"type"`
	Status    string                  `json:"status"` // "completed" or "error"
	Result    *detector.RunResultJSON `json:"result,omitempty"`
	Overlay   string                  `json:"overlay,omitempty"`
	Error     string                  `json:"error,omitempty"`
	RequestID string                  `json:"request_id,omitempty"`
}

// detectWebSocketHandler handles WebSocket connections for streaming
// frame detection.
func (s *Server) detectWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.handleWebSocketConnection(conn)
}

// handleWebSocketConnection processes messages from a WebSocket connection.
func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	// Read deadline prevents hanging connections
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Periodic pings keep the connection alive through idle stretches
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			s.handleWebSocketMessage(conn, data)
		}
	}
}

// handleWebSocketMessage decodes one request, runs detection and writes
// the reply.
func (s *Server) handleWebSocketMessage(conn *websocket.Conn, data []byte) {
	var req WebSocketDetectRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWebSocketError(conn, "", "Invalid request document")
		return
	}
	if req.Type != "detect" {
		s.sendWebSocketError(conn, req.RequestID, "Unsupported request type")
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		s.sendWebSocketError(conn, req.RequestID, "Invalid base64 frame data")
		return
	}
	if int64(len(raw)) > s.maxUploadMB*1024*1024 {
		s.sendWebSocketError(conn, req.RequestID, "Frame too large")
		return
	}
	uploadSizeBytes.Observe(float64(len(raw)))

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		s.sendWebSocketError(conn, req.RequestID, "Invalid image format")
		return
	}

	cfg := s.store.Snapshot()
	finder, err := detector.NewFinder(cfg)
	if err != nil {
		detectRequestsTotal.WithLabelValues("websocket", "error").Inc()
		s.sendWebSocketError(conn, req.RequestID, "Detector setup failed")
		return
	}

	start := time.Now()
	result, err := finder.Find(img)
	detectDuration.WithLabelValues("websocket").Observe(time.Since(start).Seconds())
	if err != nil {
		detectRequestsTotal.WithLabelValues("websocket", "error").Inc()
		s.sendWebSocketError(conn, req.RequestID, "Detection failed: "+err.Error())
		return
	}
	detectRequestsTotal.WithLabelValues("websocket", "success").Inc()
	detectionsAccepted.WithLabelValues("websocket").Observe(float64(result.AcceptedCount))

	bounds := img.Bounds()
	payload, err := result.ToJSON(bounds.Dx(), bounds.Dy())
	if err != nil {
		s.sendWebSocketError(conn, req.RequestID, "Failed to encode result")
		return
	}
	var resultJSON detector.RunResultJSON
	if err := json.Unmarshal(payload, &resultJSON); err != nil {
		s.sendWebSocketError(conn, req.RequestID, "Failed to encode result")
		return
	}

	resp := WebSocketDetectResponse{
		Type:      "result",
		Status:    "completed",
		Result:    &resultJSON,
		RequestID: req.RequestID,
	}
	if s.overlayEnabled && req.Overlay {
		if encoded, err := s.encodeOverlay(img, result, cfg); err == nil {
			resp.Overlay = encoded
		}
	}
	s.sendWebSocketResponse(conn, resp)
}

func (s *Server) sendWebSocketError(conn *websocket.Conn, requestID, message string) {
	s.sendWebSocketResponse(conn, WebSocketDetectResponse{
		Type:      "result",
		Status:    "error",
		Error:     message,
		RequestID: requestID,
	})
}

func (s *Server) sendWebSocketResponse(conn *websocket.Conn, resp WebSocketDetectResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("Failed to encode WebSocket response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to write WebSocket response", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
