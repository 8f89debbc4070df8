package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"vocab-quiz-service/internal/app"
	"vocab-quiz-service/internal/domain"
)

// WSHandler exposes the game loop over a websocket: the client starts a
// level, receives one question at a time, answers, and gets the level result
// after the last answer. One connection drives one player; disconnecting
// mid-level abandons the session without emitting a record.
type WSHandler struct {
	service  *app.GameService
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, log *logrus.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Level int `json:"level"`
}

type answerPayload struct {
	Option string `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type questionPayload struct {
	domain.Question
	Position int `json:"position"`
	Total    int `json:"total"`
}

type answerResultPayload struct {
	QuestionID int  `json:"questionId"`
	Correct    bool `json:"correct"`
	Complete   bool `json:"complete"`
	Position   int  `json:"position"`
	Total      int  `json:"total"`
}

type levelResultPayload struct {
	Record        domain.SessionRecord `json:"record"`
	Passed        bool                 `json:"passed"`
	Advanced      bool                 `json:"advanced"`
	UnlockedLevel int                  `json:"unlockedLevel"`
}

// ServeWS upgrades the request and runs the game loop for one player. The
// loop is strictly request/response, so all writes happen on this goroutine.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "missing playerId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade failed")
		return
	}
	defer conn.Close()
	defer h.service.Abandon(playerID)

	h.sendLevels(r.Context(), conn, playerID)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "start":
			h.handleStart(r.Context(), conn, playerID, inbound.Payload)
		case "answer":
			h.handleAnswer(r.Context(), conn, playerID, inbound.Payload)
		default:
			h.sendError(conn, "unsupported message type")
		}
	}
}

func (h *WSHandler) handleStart(ctx context.Context, conn *websocket.Conn, playerID string, raw json.RawMessage) {
	var payload startPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.sendError(conn, "invalid start payload")
		return
	}

	session, err := h.service.StartLevel(ctx, playerID, payload.Level)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLevelLocked):
			h.sendError(conn, "level is locked")
		case errors.Is(err, domain.ErrSourceUnavailable):
			h.sendError(conn, "failed to load words for level")
		default:
			h.sendError(conn, err.Error())
		}
		return
	}
	h.sendCurrentQuestion(conn, session)
}

func (h *WSHandler) handleAnswer(ctx context.Context, conn *websocket.Conn, playerID string, raw json.RawMessage) {
	var payload answerPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.sendError(conn, "invalid answer payload")
		return
	}

	result, err := h.service.SubmitAnswer(ctx, playerID, payload.Option)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	_ = conn.WriteJSON(outboundMessage[answerResultPayload]{Type: "answerResult", Payload: answerResultPayload{
		QuestionID: result.Outcome.QuestionID,
		Correct:    result.Outcome.IsCorrect,
		Complete:   result.Outcome.IsSessionComplete,
		Position:   result.Position,
		Total:      result.Total,
	}})

	if result.Result != nil {
		_ = conn.WriteJSON(outboundMessage[levelResultPayload]{Type: "levelResult", Payload: levelResultPayload{
			Record:        result.Result.Record,
			Passed:        result.Result.Passed,
			Advanced:      result.Result.Advanced,
			UnlockedLevel: result.Result.UnlockedLevel,
		}})
		h.sendLevels(ctx, conn, playerID)
		return
	}

	if session, ok := h.service.Session(playerID); ok {
		h.sendCurrentQuestion(conn, session)
	}
}

func (h *WSHandler) sendCurrentQuestion(conn *websocket.Conn, session *app.Session) {
	question, ok := session.CurrentQuestion()
	if !ok {
		return
	}
	_ = conn.WriteJSON(outboundMessage[questionPayload]{Type: "question", Payload: questionPayload{
		Question: question,
		Position: session.Position(),
		Total:    session.TotalQuestions(),
	}})
}

func (h *WSHandler) sendLevels(ctx context.Context, conn *websocket.Conn, playerID string) {
	statuses, err := h.service.Levels(ctx, playerID)
	if err != nil {
		h.sendError(conn, "failed to load levels")
		return
	}
	_ = conn.WriteJSON(outboundMessage[[]domain.LevelStatus]{Type: "levels", Payload: statuses})
}

func (h *WSHandler) sendError(conn *websocket.Conn, message string) {
	_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: message}})
}
