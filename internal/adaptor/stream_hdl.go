package adaptor

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"movie-match/internal/dto/response"
	"movie-match/internal/session"
	"movie-match/internal/usecase"
	"movie-match/pkg/metrics"
	"movie-match/pkg/utils"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamPingInterval = 30 * time.Second
	// updates the client has not drained yet; when it overflows the oldest
	// snapshot is dropped so the newest state always gets through
	streamBuffer = 16
)

// streamFrame is the payload pushed over the websocket on every state change.
type streamFrame struct {
	Type  string                  `json:"type"`
	State *response.StateResponse `json:"state,omitempty"`
}

type StreamHandler struct {
	service  usecase.SessionService
	upgrader websocket.Upgrader
	log      *zap.Logger
}

func NewStreamHandler(service usecase.SessionService, allowedOrigins []string, log *zap.Logger) *StreamHandler {
	return &StreamHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: log.With(zap.String("handler", "stream")),
	}
}

// originChecker admits requests without an Origin header (non-browser
// clients) and browser requests from the configured origins.
func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

// Stream handles GET /api/sessions/{id}/stream. It upgrades the connection
// to a websocket and pushes a state frame for every change until the client
// disconnects or the session is closed.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	// subscribe before upgrading so an unknown session is a plain 404
	updates := make(chan session.State, streamBuffer)
	cancel, err := h.service.Subscribe(sessionID, func(state session.State) {
		select {
		case updates <- state:
		default:
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- state:
			default:
			}
		}
	})
	if err != nil {
		if errors.Is(err, usecase.ErrSessionNotFound) {
			utils.ResponseNotFound(w, err.Error())
			return
		}
		h.log.Error("Failed to subscribe to session", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		h.log.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	defer cancel()

	metrics.StreamClients.Inc()
	defer metrics.StreamClients.Dec()
	h.log.Info("Stream client connected", zap.String("session_id", sessionID))

	// the read loop only exists to notice the client hanging up
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// first frame carries the state as of connect
	if state, err := h.service.Get(sessionID); err == nil {
		if err := h.writeFrame(conn, state); err != nil {
			return
		}
	}

	ticker := time.NewTicker(streamPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			h.log.Info("Stream client disconnected", zap.String("session_id", sessionID))
			return

		case state := <-updates:
			resp := response.StateToResponse(state)
			if err := h.writeFrame(conn, &resp); err != nil {
				h.log.Debug("Stream write failed", zap.String("session_id", sessionID), zap.Error(err))
				return
			}

		case <-ticker.C:
			// pinging doubles as a liveness probe for the session itself;
			// reading its state also keeps the idle timer from expiring it
			// while a client is still watching
			if _, err := h.service.Get(sessionID); err != nil {
				conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *StreamHandler) writeFrame(conn *websocket.Conn, state *response.StateResponse) error {
	conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(streamFrame{Type: "state", State: state})
}
