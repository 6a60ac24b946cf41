package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"quiz-runner/internal/app"
	"quiz-runner/internal/domain"
	"quiz-runner/internal/export"
)

var errUnsupportedMessage = errors.New("unsupported message type")

// WSHandler drives one quiz session per WebSocket connection. The client
// sends start/answer/next/quit/export events; the server answers with the
// question to present (including its display order), the grading verdict,
// and finally the session summary.
type WSHandler struct {
	service  *app.QuizService
	defaults domain.Settings
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, defaults domain.Settings, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		service:  service,
		defaults: defaults,
		log:      log.With().Str("component", "ws_handler").Logger(),
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

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type startPayload struct {
	Filter   domain.FilterCriteria `json:"filter"`
	Settings settingsPayload       `json:"settings"`
}

// settingsPayload overrides the configured defaults field by field.
type settingsPayload struct {
	Count          *int    `json:"count"`
	Mode           *string `json:"mode"`
	ShuffleOptions *bool   `json:"shuffleOptions"`
	ShowExplain    *bool   `json:"showExplain"`
	AllowReview    *bool   `json:"allowReview"`
}

type answerPayload struct {
	Chosen []int `json:"chosen"`
}

type sourcesPayload struct {
	Sources []string `json:"sources"`
}

// questionPayload carries everything needed to render a question, and nothing
// that would give the answer away. Options stay in canonical order; the
// display order tells the client how to lay them out.
type questionPayload struct {
	Index        int                 `json:"index"`
	Total        int                 `json:"total"`
	ID           string              `json:"id"`
	Source       string              `json:"source"`
	Difficulty   string              `json:"difficulty"`
	Tags         []string            `json:"tags,omitempty"`
	Type         domain.QuestionType `json:"type"`
	Stem         string              `json:"stem"`
	Options      []string            `json:"options"`
	DisplayOrder []int               `json:"displayOrder"`
}

type verdictPayload struct {
	Correct bool                `json:"correct"`
	Options []app.OptionVerdict `json:"options"`
	Explain *domain.Explain     `json:"explain,omitempty"`
}

type summaryPayload struct {
	domain.SessionSummary
	ElapsedText string `json:"elapsedText"`
}

// ServeWS upgrades the connection and runs the session event loop. All events
// are handled synchronously in arrival order, so a single writer suffices.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	sources, err := h.service.Sources(r.Context())
	if err != nil {
		h.writeError(conn, err)
		return
	}
	h.write(conn, "sources", sourcesPayload{Sources: append([]string{domain.FilterAll}, sources...)})

	var session *app.QuizSession
	defer func() {
		if session != nil {
			session.Abort()
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "start":
			var payload startPayload
			if len(inbound.Payload) > 0 {
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					h.writeError(conn, err)
					continue
				}
			}
			started, err := h.service.StartSession(r.Context(), payload.Filter, h.mergeSettings(payload.Settings))
			if err != nil {
				h.writeError(conn, err)
				continue
			}
			session = started
			h.sendCurrent(conn, session)

		case "answer":
			if session == nil {
				h.writeError(conn, domain.ErrNoActiveSession)
				continue
			}
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.writeError(conn, err)
				continue
			}
			verdict, err := session.SubmitAnswer(payload.Chosen)
			if err != nil {
				h.writeError(conn, err)
				continue
			}
			h.sendVerdict(conn, session, verdict)

		case "next":
			if session == nil {
				h.writeError(conn, domain.ErrNoActiveSession)
				continue
			}
			done, err := session.Advance()
			if err != nil {
				h.writeError(conn, err)
				continue
			}
			if done {
				h.sendSummary(conn, session)
				continue
			}
			h.sendCurrent(conn, session)

		case "quit":
			if session == nil {
				h.writeError(conn, domain.ErrNoActiveSession)
				continue
			}
			session.Abort()
			h.sendSummary(conn, session)

		case "export":
			if session == nil || !session.Completed() {
				h.writeError(conn, domain.ErrNothingToExport)
				continue
			}
			snapshot, err := export.NewSnapshot(session.Summary(), time.Now())
			if err != nil {
				h.writeError(conn, err)
				continue
			}
			h.write(conn, "export", snapshot)

		default:
			h.writeError(conn, errUnsupportedMessage)
		}
	}
}

func (h *WSHandler) mergeSettings(p settingsPayload) domain.Settings {
	s := h.defaults
	if p.Count != nil {
		s.Count = *p.Count
	}
	if p.Mode != nil {
		s.Mode = domain.SelectionMode(*p.Mode)
	}
	if p.ShuffleOptions != nil {
		s.ShuffleOptions = *p.ShuffleOptions
	}
	if p.ShowExplain != nil {
		s.ShowExplain = *p.ShowExplain
	}
	if p.AllowReview != nil {
		s.AllowReview = *p.AllowReview
	}
	return s.Normalized()
}

func (h *WSHandler) sendCurrent(conn *websocket.Conn, session *app.QuizSession) {
	pres, err := session.PresentCurrent()
	if err != nil {
		h.writeError(conn, err)
		return
	}
	q := pres.Question
	h.write(conn, "question", questionPayload{
		Index:        pres.Index,
		Total:        pres.Total,
		ID:           q.ID,
		Source:       q.SourceLabel(),
		Difficulty:   q.DifficultyLabel(),
		Tags:         q.Tags,
		Type:         q.Type,
		Stem:         q.Stem,
		Options:      q.Options,
		DisplayOrder: pres.DisplayOrder,
	})
}

func (h *WSHandler) sendVerdict(conn *websocket.Conn, session *app.QuizSession, verdict app.Verdict) {
	payload := verdictPayload{Correct: verdict.Correct, Options: verdict.Options}
	if session.Settings().ShowExplain {
		if pres, err := session.PresentCurrent(); err == nil {
			payload.Explain = pres.Question.Explain
		}
	}
	h.write(conn, "verdict", payload)
}

func (h *WSHandler) sendSummary(conn *websocket.Conn, session *app.QuizSession) {
	summary := session.Summary()
	h.write(conn, "summary", summaryPayload{
		SessionSummary: summary,
		ElapsedText:    summary.ElapsedText(),
	})
}

func (h *WSHandler) write(conn *websocket.Conn, msgType string, payload any) {
	if err := conn.WriteJSON(outboundMessage[any]{Type: msgType, Payload: payload}); err != nil {
		h.log.Error().Err(err).Msg("ws write error")
	}
}

func (h *WSHandler) writeError(conn *websocket.Conn, err error) {
	h.write(conn, "error", errorPayload{Message: err.Error()})
}
