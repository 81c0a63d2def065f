package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"log/slog"

	"github.com/gorilla/mux"

	"github.com/mightytheif/sakany/api"
	"github.com/mightytheif/sakany/internal/chat"
	"github.com/mightytheif/sakany/pkg/models"
)

type stubMessageRepo struct {
	created []models.Message
}

func (s *stubMessageRepo) CreateMessage(ctx context.Context, m *models.Message) (int64, error) {
	s.created = append(s.created, *m)
	return int64(len(s.created)), nil
}

func (s *stubMessageRepo) ListBetween(ctx context.Context, a, b int64, limit, offset int) ([]models.Message, error) {
	var out []models.Message
	for _, m := range s.created {
		if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubMessageRepo) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]models.Message, error) {
	var out []models.Message
	for _, m := range s.created {
		if m.SenderID == userID || m.RecipientID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestSendMessage(t *testing.T) {
	repo := &stubMessageRepo{}
	hub := chat.NewHub(repo, slog.Default())
	h := api.NewMessagesHandler(repo, hub)

	body, _ := json.Marshal(map[string]any{"recipient_id": 2, "body": "hello there"})
	req := authedRequest(http.MethodPost, "/v1/messages", body, 1, false)
	w := httptest.NewRecorder()
	h.Send(w, req)

	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Result().StatusCode, w.Body.String())
	}
	if len(repo.created) != 1 {
		t.Fatalf("message not persisted")
	}
	if repo.created[0].SenderID != 1 {
		t.Fatalf("sender not taken from token: %+v", repo.created[0])
	}

	var msg models.Message
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.ID == 0 {
		t.Fatalf("response missing assigned message id")
	}
}

func TestSendMessageValidation(t *testing.T) {
	repo := &stubMessageRepo{}
	hub := chat.NewHub(repo, slog.Default())
	h := api.NewMessagesHandler(repo, hub)

	cases := []struct {
		name string
		body string
	}{
		{"MissingRecipient", `{"body": "hi"}`},
		{"EmptyBody", `{"recipient_id": 2}`},
		{"TooLong", `{"recipient_id": 2, "body": "` + strings.Repeat("x", 2001) + `"}`},
		{"NotJSON", `not json`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "/v1/messages", []byte(c.body), 1, false)
			w := httptest.NewRecorder()
			h.Send(w, req)
			if w.Result().StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", w.Result().StatusCode)
			}
		})
	}
	if len(repo.created) != 0 {
		t.Fatalf("invalid requests must not persist messages")
	}
}

func TestConversationAndInbox(t *testing.T) {
	repo := &stubMessageRepo{
		created: []models.Message{
			{ID: 1, SenderID: 1, RecipientID: 2, Body: "a"},
			{ID: 2, SenderID: 2, RecipientID: 1, Body: "b"},
			{ID: 3, SenderID: 1, RecipientID: 9, Body: "c"},
		},
	}
	hub := chat.NewHub(repo, slog.Default())
	h := api.NewMessagesHandler(repo, hub)

	req := authedRequest(http.MethodGet, "/v1/messages/2", nil, 1, false)
	req = mux.SetURLVars(req, map[string]string{"user_id": "2"})
	w := httptest.NewRecorder()
	h.Conversation(w, req)

	var resp struct {
		Items []models.Message `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("conversation: expected 2 messages, got %d", len(resp.Items))
	}

	req = authedRequest(http.MethodGet, "/v1/messages", nil, 1, false)
	w = httptest.NewRecorder()
	h.Inbox(w, req)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("inbox: expected 3 messages, got %d", len(resp.Items))
	}
}
