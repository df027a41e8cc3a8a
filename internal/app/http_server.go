package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"timesheet-bot/internal/interaction"
	"timesheet-bot/internal/signature"
	"timesheet-bot/internal/usecase"
)

// maxBodyBytes bounds every signed request body.
const maxBodyBytes = 1 << 20

// HTTPServer returns a configured http.Server exposing the Slack endpoints.
// Call ListenAndServe on the returned server in a goroutine and Shutdown it on exit.
func (a *App) HTTPServer(addr string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.log.Info("http server configured", slog.String("addr", addr))
	return srv
}

// Handler builds the routed, logged handler tree.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	events := a.verifySignature(http.HandlerFunc(a.handleEvents))
	interactions := a.verifySignature(http.HandlerFunc(a.handleInteractions))
	commands := a.verifySignature(http.HandlerFunc(a.handleCommand))
	for _, prefix := range []string{"/slack", ""} {
		mux.Handle("POST "+prefix+"/events", events)
		mux.Handle("POST "+prefix+"/interactions", interactions)
		mux.Handle("POST "+prefix+"/commands/{name}", commands)
	}

	return loggingMiddleware(a.log, mux)
}

// verifySignature rejects requests whose body is not signed with the
// signing secret. The body is restored for the next handler.
func (a *App) verifySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Unreadable body"})
			return
		}
		err = a.verifier.Verify(body, r.Header.Get(signature.HeaderTimestamp), r.Header.Get(signature.HeaderSignature))
		if err != nil {
			a.log.Warn("rejected unsigned request",
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
			writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Invalid signature"})
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (a *App) handleCommand(w http.ResponseWriter, r *http.Request) {
	sc, err := slack.SlashCommandParse(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed form body"})
		return
	}
	cmd := usecase.Command{
		Name:      r.PathValue("name"),
		UserID:    sc.UserID,
		UserName:  sc.UserName,
		ChannelID: sc.ChannelID,
		Text:      sc.Text,
		TriggerID: sc.TriggerID,
	}
	writeJSON(w, http.StatusOK, a.commands.Handle(r.Context(), cmd))
}

func (a *App) handleInteractions(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed form body"})
		return
	}
	p, err := interaction.Decode([]byte(r.PostForm.Get("payload")))
	if errors.Is(err, interaction.ErrEmptyPayload) {
		writeJSON(w, http.StatusOK, usecase.StatusOK())
		return
	}
	if err != nil {
		a.log.Warn("undecodable interaction payload", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, a.interactions.Handle(r.Context(), p))
}

func (a *App) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed event body"})
		return
	}
	ev, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if ev.Type == slackevents.URLVerification {
		var ch slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &ch); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed challenge"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"challenge": ch.Challenge})
		return
	}
	if err != nil {
		// Inner event types slack-go does not model still get acknowledged.
		a.log.Debug("event not fully parsed", slog.String("error", err.Error()))
	}
	a.log.Info("event received",
		slog.String("type", ev.Type),
		slog.String("event", ev.InnerEvent.Type),
		slog.String("team", ev.TeamID),
	)
	writeJSON(w, http.StatusOK, usecase.StatusOK())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the response code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs each request with a request id, recovering panics
// that escape the handlers.
func loggingMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				if err, ok := p.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(p)
				}
				log.Error("panic in handler", slog.String("request_id", reqID), slog.Any("panic", p))
				writeJSON(rec, http.StatusInternalServerError, map[string]string{"detail": "Internal error"})
			}
			log.Info("http request",
				slog.String("request_id", reqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.String("remote", r.RemoteAddr),
				slog.Duration("dur", time.Since(start)),
			)
		}()
		next.ServeHTTP(rec, r)
	})
}
