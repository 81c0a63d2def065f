package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/qri-io/jsonschema"

	"github.com/mightytheif/sakany/internal/lifestyle"
	"github.com/mightytheif/sakany/internal/visibility"
	"github.com/mightytheif/sakany/pkg/models"
	"github.com/mightytheif/sakany/pkg/repository"
)

//go:embed quiz_schema.json
var quizSchemaJSON []byte

// matchCandidateLimit bounds how many listings the simple quiz considers.
const matchCandidateLimit = 500

type QuizHandler struct {
	matcher  *lifestyle.Matcher
	propRepo repository.PropertyRepo
	schema   *jsonschema.Schema
}

func NewQuizHandler(matcher *lifestyle.Matcher, pr repository.PropertyRepo) (*QuizHandler, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(quizSchemaJSON, rs); err != nil {
		return nil, fmt.Errorf("compile quiz schema: %w", err)
	}

	return &QuizHandler{matcher: matcher, propRepo: pr, schema: rs}, nil
}

// Lifestyle scores a full quiz submission and returns the archetype result.
// The schema check only rejects structurally broken payloads (wrong types);
// missing answers are fine, scoring is total over partial input.
func (h *QuizHandler) Lifestyle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if errs := h.validate(r.Context(), body, w); errs {
		return
	}

	var prefs models.QuizPreferences
	if err := json.Unmarshal(body, &prefs); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	writeJSON(w, h.matcher.Result(prefs), http.StatusOK)
}

// Match runs the simplified quiz: the candidate listings pass the public
// visibility gate first, then the strict conjunctive preference filter.
func (h *QuizHandler) Match(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if errs := h.validate(r.Context(), body, w); errs {
		return
	}

	var prefs models.SimpleQuizPreferences
	if err := json.Unmarshal(body, &prefs); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	props, err := h.propRepo.ListProperties(r.Context(), models.PropertyFilter{}, matchCandidateLimit, 0)
	if err != nil {
		http.Error(w, "failed to list properties", http.StatusInternalServerError)
		return
	}

	matched := lifestyle.FilterProperties(prefs, visibility.Filter(props))

	writeJSON(w, map[string]any{
		"items": matched,
		"total": len(matched),
	}, http.StatusOK)
}

// validate runs the structural schema check and writes the 400 response on
// violation. Returns true when the request has been handled.
func (h *QuizHandler) validate(ctx context.Context, body []byte, w http.ResponseWriter) bool {
	if len(body) == 0 {
		body = []byte("{}")
	}
	verrs, err := h.schema.ValidateBytes(ctx, body)
	if err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return true
	}
	if len(verrs) > 0 {
		writeJSON(w, map[string]any{"error": "invalid quiz payload", "violations": verrs}, http.StatusBadRequest)
		return true
	}
	return false
}
