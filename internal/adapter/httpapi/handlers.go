package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/vrcrush/ai-interview-clone/internal/domain"
	"github.com/vrcrush/ai-interview-clone/internal/usecase/chat"
)

type turnPayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message             string          `json:"message"`
	ConversationHistory json.RawMessage `json:"conversationHistory"`
}

type contactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedIn"`
	Company  string `json:"company"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	welcome := chat.NewWelcome(s.deps.KB)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"welcome":            welcome.Message,
		"suggestedQuestions": welcome.SuggestedQuestions,
	})
}

// handleProfile exposes only the public subset of the knowledge base.
// Personality, practical details, and everything else stay server-side.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	info := s.deps.KB.PersonalInfo
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": map[string]interface{}{
			"name":      info.Name,
			"title":     info.Title,
			"location":  info.Location,
			"linkedin":  info.LinkedIn,
			"github":    info.GitHub,
			"portfolio": info.Portfolio,
			"summary":   s.deps.KB.ProfessionalSummary,
			"skills":    s.deps.KB.TechnicalSkills,
		},
	})
}

func (s *Server) handleCounter(w http.ResponseWriter, r *http.Request) {
	var count int64
	if s.deps.Counter != nil {
		value, err := s.deps.Counter.Value(r.Context())
		if err != nil {
			s.warn(r.Context(), "counter read failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			count = value
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"count": count})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Message is required and must be a non-empty string")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "Message is required and must be a non-empty string")
		return
	}

	if len(req.Message) > 2000 {
		s.writeError(w, http.StatusBadRequest, "Message is too long. Please keep messages under 2000 characters.")
		return
	}

	history, ok := parseHistory(req.ConversationHistory)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "conversationHistory must be an array")
		return
	}

	// A first message carries at most the welcome turn; that is the
	// moment a new conversation starts.
	if len(history) <= 1 {
		s.hitCounter(r.Context())
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	reply, err := s.deps.Guard.Respond(ctx, req.Message, domain.CapHistory(history))
	if err != nil {
		var failure *chat.ProviderFailure
		if errors.As(err, &failure) {
			s.error(ctx, "model call failed", map[string]interface{}{
				"request_id": RequestID(r.Context()),
				"kind":       failure.Kind.String(),
				"detail":     failure.Message,
			})
			s.writeError(w, http.StatusInternalServerError, failure.Kind.UserMessage())
			return
		}
		s.error(ctx, "chat request failed", map[string]interface{}{
			"request_id": RequestID(r.Context()),
			"error":      err.Error(),
		})
		s.writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	s.info(ctx, "chat interaction", map[string]interface{}{
		"request_id":    RequestID(r.Context()),
		"blocked":       reply.Blocked,
		"filtered":      reply.Filtered,
		"input_tokens":  reply.InputTokens,
		"output_tokens": reply.OutputTokens,
	})

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   reply.Text,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRecruiterContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false})
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false})
		return
	}

	s.info(r.Context(), "new recruiter contact", map[string]interface{}{
		"name":    req.Name,
		"email":   req.Email,
		"company": orNotProvided(req.Company),
	})

	if s.deps.Contacts != nil {
		err := s.deps.Contacts.SaveContact(r.Context(), Contact{
			Name:     req.Name,
			Email:    req.Email,
			Company:  req.Company,
			LinkedIn: req.LinkedIn,
		})
		if err != nil {
			s.error(r.Context(), "contact save failed", map[string]interface{}{
				"error": err.Error(),
			})
			s.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false})
			return
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// parseHistory decodes the optional conversationHistory field. A missing
// or null field is an empty history; any non-array shape is rejected.
func parseHistory(raw json.RawMessage) ([]domain.ConversationTurn, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}

	var payload []turnPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}

	turns := make([]domain.ConversationTurn, len(payload))
	for i, t := range payload {
		turns[i] = domain.ConversationTurn{
			Role:    domain.NormalizeRole(t.Role),
			Content: t.Content,
		}
	}
	return turns, true
}

// hitCounter bumps the conversation counter without blocking or failing
// the chat request.
func (s *Server) hitCounter(ctx context.Context) {
	if s.deps.Counter == nil {
		return
	}
	requestID := RequestID(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		count, err := s.deps.Counter.Hit(ctx)
		if err != nil {
			s.warn(ctx, "counter increment failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return
		}
		s.info(ctx, "conversation counted", map[string]interface{}{
			"request_id": requestID,
			"count":      count,
		})
	}()
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}
