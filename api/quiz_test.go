package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mightytheif/sakany/api"
	"github.com/mightytheif/sakany/internal/lifestyle"
	"github.com/mightytheif/sakany/pkg/models"
	"github.com/mightytheif/sakany/pkg/repository/mock"
)

func newQuizHandler(t *testing.T, m *mock.Mocks) *api.QuizHandler {
	t.Helper()
	h, err := api.NewQuizHandler(lifestyle.NewMatcher(""), m.PropertyRepo)
	if err != nil {
		t.Fatalf("new quiz handler: %v", err)
	}
	return h
}

func TestQuizLifestyle(t *testing.T) {
	h := newQuizHandler(t, mock.NewMocks())

	body := `{
		"familyStatus": "family_with_children",
		"pets": true,
		"bedrooms": 3,
		"amenities": ["parks", "schools"],
		"environment": "suburban"
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/quiz/lifestyle", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Lifestyle(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Result().StatusCode, w.Body.String())
	}

	var res models.QuizResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !res.Completed {
		t.Fatalf("result not marked completed")
	}
	if res.LifestyleScore.Family != 80 {
		t.Fatalf("family score: got %d want 80", res.LifestyleScore.Family)
	}
	if res.Lifestyle != "suburban" {
		t.Fatalf("lifestyle: got %q want suburban", res.Lifestyle)
	}
}

func TestQuizLifestyleRejectsWrongTypes(t *testing.T) {
	h := newQuizHandler(t, mock.NewMocks())

	req := httptest.NewRequest(http.MethodPost, "/v1/quiz/lifestyle", strings.NewReader(`{"budget": "a lot"}`))
	w := httptest.NewRecorder()
	h.Lifestyle(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong budget type, got %d", w.Result().StatusCode)
	}
}

func TestQuizLifestyleEmptyBody(t *testing.T) {
	h := newQuizHandler(t, mock.NewMocks())

	req := httptest.NewRequest(http.MethodPost, "/v1/quiz/lifestyle", nil)
	w := httptest.NewRecorder()
	h.Lifestyle(w, req)

	// Nothing answered is a valid quiz: no points anywhere, default archetype.
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for empty quiz, got %d", w.Result().StatusCode)
	}
	var res models.QuizResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Lifestyle != "urban" {
		t.Fatalf("default archetype: got %q want urban", res.Lifestyle)
	}
}

func TestQuizMatch(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.PropertyRepo.Stored = []models.Property{
		{ID: 1, Title: "fits", PropertyType: "apartment", Bedrooms: 3, Price: 190000, Published: true, Verified: true, Status: models.StatusActive},
		{ID: 2, Title: "too small", PropertyType: "apartment", Bedrooms: 1, Price: 150000, Published: true, Verified: true, Status: models.StatusActive},
		{ID: 3, Title: "too dear", PropertyType: "apartment", Bedrooms: 2, Price: 500000, Published: true, Verified: true, Status: models.StatusActive},
		{ID: 4, Title: "wrong type", PropertyType: "villa", Bedrooms: 4, Price: 180000, Published: true, Verified: true, Status: models.StatusActive},
		{ID: 5, Title: "not visible", PropertyType: "apartment", Bedrooms: 3, Price: 100000, Published: true, Verified: false, Status: models.StatusPending},
	}
	h := newQuizHandler(t, mocks)

	body := `{"residenceType": "Apartment", "familyStatus": "family_with_children", "budget": 200000}`
	req := httptest.NewRequest(http.MethodPost, "/v1/quiz/match", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Match(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Result().StatusCode, w.Body.String())
	}

	var resp struct {
		Items []models.Property `json:"items"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 {
		t.Fatalf("expected exactly one match, got %d", resp.Total)
	}
	if resp.Items[0].ID != 1 {
		t.Fatalf("wrong listing matched: %d", resp.Items[0].ID)
	}
}
