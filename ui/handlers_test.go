package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"crimerisk/app"
	"crimerisk/domain/encoding"
	"crimerisk/internal/config"
	"crimerisk/ports"
)

type stubClassifier struct {
	pPos float64
}

func (s *stubClassifier) PredictProbability(v encoding.FeatureVector) (float64, float64, error) {
	return 1 - s.pPos, s.pPos, nil
}

func (s *stubClassifier) Info() ports.ModelInfo {
	return ports.ModelInfo{
		Name:          "crime_predictor_model",
		Version:       "test",
		ModelType:     "random_forest",
		TreeCount:     1,
		FeatureNames:  encoding.FeatureNames[:],
		PositiveClass: "Violent Crime",
	}
}

func testServer(t *testing.T, pPos float64) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Model:  config.ModelConfig{Path: "unused", CardPath: "unused"},
		Server: config.ServerConfig{Port: "0", GinMode: gin.TestMode},
		Batch:  config.BatchConfig{MaxRows: 100, Concurrency: 2},
	}
	service := app.NewPredictionService(&stubClassifier{pPos: pPos}, 2)

	server, err := NewServer(service, cfg)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"latitude":        28.70,
		"longitude":       77.10,
		"report_date":     "2023-06-14",
		"report_time":     "10:30",
		"victim_age":      35,
		"police_deployed": 15,
		"victim_gender":   "Female",
		"weapon_used":     "Firearm",
		"case_closed":     "No",
	}
}

func postJSON(t *testing.T, server *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func TestAPIPredict_OK(t *testing.T) {
	server := testServer(t, 0.85)
	w := postJSON(t, server, "/api/predict", validBody())

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Score float64 `json:"probability_percent"`
		Tier  string  `json:"tier"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if resp.Score != 85.0 {
		t.Errorf("probability_percent = %v, want 85", resp.Score)
	}
	if resp.Tier != "HIGH" {
		t.Errorf("tier = %q, want HIGH", resp.Tier)
	}
}

func TestAPIPredict_SchemaMismatchIs422(t *testing.T) {
	server := testServer(t, 0.85)

	body := validBody()
	body["weapon_used"] = "Slingshot"
	w := postJSON(t, server, "/api/predict", body)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "SCHEMA_MISMATCH") {
		t.Errorf("body does not carry the error code: %s", w.Body.String())
	}
}

func TestAPIPredict_MalformedBodyIs400(t *testing.T) {
	server := testServer(t, 0.5)
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestFormPredict_RendersResultPanel(t *testing.T) {
	server := testServer(t, 0.55)

	form := url.Values{}
	form.Set("latitude", "28.70")
	form.Set("longitude", "77.10")
	form.Set("report_date", "2023-06-14")
	form.Set("report_time", "10:30")
	form.Set("victim_age", "35")
	form.Set("police_deployed", "15")
	form.Set("victim_gender", "Female")
	form.Set("weapon_used", "Firearm")
	form.Set("case_closed", "No")

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	page := w.Body.String()
	if !strings.Contains(page, "55.00%") {
		t.Errorf("result panel missing score: %s", page)
	}
	if !strings.Contains(page, "MODERATE") {
		t.Error("result panel missing tier")
	}
}

func TestFormPredict_ErrorBanner(t *testing.T) {
	server := testServer(t, 0.55)

	form := url.Values{}
	form.Set("latitude", "28.70")
	form.Set("longitude", "77.10")
	form.Set("report_date", "not-a-date")
	form.Set("report_time", "10:30")
	form.Set("victim_age", "35")
	form.Set("police_deployed", "15")
	form.Set("victim_gender", "Female")
	form.Set("weapon_used", "Firearm")
	form.Set("case_closed", "No")

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "SCHEMA_MISMATCH") {
		t.Error("error banner missing")
	}
}

func TestIndex_RendersForm(t *testing.T) {
	server := testServer(t, 0.5)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	page := w.Body.String()
	for _, field := range []string{"latitude", "victim_age", "weapon_used", "Predict Risk"} {
		if !strings.Contains(page, field) {
			t.Errorf("form page missing %q", field)
		}
	}
}

func TestAPIModel(t *testing.T) {
	server := testServer(t, 0.5)

	req := httptest.NewRequest(http.MethodGet, "/api/model", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "crime_predictor_model") {
		t.Errorf("model info missing: %s", w.Body.String())
	}
}

func TestAPIHealth(t *testing.T) {
	server := testServer(t, 0.5)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
