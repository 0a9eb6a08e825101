package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGeminiClient("test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL
	return client
}

func candidateBody(text string) string {
	resp := generateResponse{}
	resp.Candidates = []struct {
		Content content `json:"content"`
	}{
		{Content: content{Parts: []part{{Text: text}}}},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	if _, err := NewGeminiClient("  "); err == nil {
		t.Fatalf("expected error for blank api key")
	}
}

func TestGenerateText(t *testing.T) {
	var gotPath string
	var gotBody generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(candidateBody("🌧️")))
	})

	out, err := client.GenerateText(context.Background(), "models/test-model", "weather please")
	if err != nil {
		t.Fatalf("generate text: %v", err)
	}
	if out != "🌧️" {
		t.Fatalf("unexpected output: %q", out)
	}
	// The models/ prefix is normalized away and the key travels as a query param.
	if !strings.Contains(gotPath, "/models/test-model:generateContent?key=test-key") {
		t.Fatalf("unexpected request path: %q", gotPath)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "weather please" {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
	if gotBody.GenerationConfig != nil {
		t.Fatalf("plain text request must not carry a generation config")
	}
}

func TestGenerateJSONCarriesSchema(t *testing.T) {
	var gotBody generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(candidateBody(`{"vibe":"Calm"}`)))
	})

	schema := &Schema{Type: "OBJECT", Properties: map[string]*Schema{"vibe": {Type: "STRING"}}}
	out, err := client.GenerateJSON(context.Background(), "test-model", "mood please", schema)
	if err != nil {
		t.Fatalf("generate json: %v", err)
	}
	if out != `{"vibe":"Calm"}` {
		t.Fatalf("unexpected output: %q", out)
	}
	if gotBody.GenerationConfig == nil || gotBody.GenerationConfig.ResponseMimeType != "application/json" {
		t.Fatalf("expected json generation config, got %+v", gotBody.GenerationConfig)
	}
	if gotBody.GenerationConfig.ResponseSchema == nil || gotBody.GenerationConfig.ResponseSchema.Type != "OBJECT" {
		t.Fatalf("schema missing from request")
	}
}

func TestGenerateWithImageSendsInlineData(t *testing.T) {
	var gotBody generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(candidateBody("A fern.")))
	})

	out, err := client.GenerateWithImage(context.Background(), "test-model", "what is this", "image/jpeg", "QUJD")
	if err != nil {
		t.Fatalf("generate with image: %v", err)
	}
	if out != "A fern." {
		t.Fatalf("unexpected output: %q", out)
	}
	parts := gotBody.Contents[0].Parts
	if len(parts) != 2 || parts[1].InlineData == nil {
		t.Fatalf("expected text part plus inline data, got %+v", parts)
	}
	if parts[1].InlineData.MimeType != "image/jpeg" || parts[1].InlineData.Data != "QUJD" {
		t.Fatalf("unexpected inline data: %+v", parts[1].InlineData)
	}
}

func TestGenerateSurfacesAPIErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	})

	_, err := client.GenerateText(context.Background(), "test-model", "hi")
	if err == nil || !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("expected api error message, got %v", err)
	}
}

func TestGenerateEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.GenerateText(context.Background(), "test-model", "hi")
	if err == nil || !strings.Contains(err.Error(), "empty response") {
		t.Fatalf("expected empty-response error, got %v", err)
	}
}
