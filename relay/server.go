// Package relay serves POST /api/chat: it forwards a transcript to the
// configured upstream provider and answers with a provider-agnostic
// {choices:[{message}]} envelope.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"peermind/config"
	"peermind/model"
	"peermind/provider"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	msgUpstreamFailed = "Failed to get response from AI"
	msgInternal       = "Internal server error"

	maxBodyBytes = 4 << 20
)

// BackgroundArchiver receives the finished transcript after each reply.
type BackgroundArchiver interface {
	SaveAsync(messages []model.Message)
	Wait()
}

// Server is the HTTP transport for the relay.
type Server struct {
	// Provider is nil when the upstream credential is missing; ConfigErr
	// then explains why and every chat request fails fast with it.
	Provider  model.Provider
	ConfigErr error

	// Archiver is optional.
	Archiver BackgroundArchiver
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/api/chat", s.handleChat).Methods(http.MethodPost)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"ok":   s.Provider != nil,
		"time": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if s.Provider != nil {
		body["provider"] = s.Provider.Name()
		body["model"] = s.Provider.GetModel()
	} else if s.ConfigErr != nil {
		body["error"] = s.ConfigErr.Error()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()
	w.Header().Set("X-Request-Id", reqID)

	if s.Provider == nil {
		err := s.ConfigErr
		if err == nil {
			err = errors.New("no upstream provider configured")
		}
		config.Log.Printf("[Relay] %s configuration error: %v", reqID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var req model.ChatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		config.Log.Printf("[Relay] %s chat API error: invalid body: %v", reqID, err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	config.Debugf("[Relay] %s forwarding %d messages to %s", reqID, len(req.Messages), s.Provider.Name())

	reply, err := s.Provider.Complete(r.Context(), req.Messages)
	if err != nil {
		var upErr *provider.UpstreamError
		if errors.As(err, &upErr) {
			config.Log.Printf("[Relay] %s %s: %s", reqID, upErr.Error(), upErr.Body)
			writeError(w, upErr.StatusCode, msgUpstreamFailed)
			return
		}
		config.Log.Printf("[Relay] %s chat API error: %v", reqID, err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	resp := model.NewChatResponse(reply)

	if s.Archiver != nil {
		transcript := make([]model.Message, 0, len(req.Messages)+1)
		transcript = append(transcript, req.Messages...)
		transcript = append(transcript, resp.Choices[0].Message)
		s.Archiver.SaveAsync(transcript)
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListenAndServe serves until ctx is cancelled, then shuts down and waits
// for in-flight background uploads.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	config.Log.Printf("[Relay] Listening on http://%s", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("relay server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("relay shutdown failed: %w", err)
	}
	if s.Archiver != nil {
		s.Archiver.Wait()
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
