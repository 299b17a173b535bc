package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"string-mcp/internal/stringdb"
)

var pngPayload = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0x01}

// newTestServer wires a Server to a fake STRING backend.
func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/json/get_string_ids", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"queryIndex":0,"stringId":"9606.ENSP00000269305","ncbiTaxonId":9606,"taxonName":"Homo sapiens","preferredName":"TP53"}]`))
	})
	mux.HandleFunc("/json/enrichment", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/image/network", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(pngPayload)
	})
	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)

	bridge := stringdb.New(stringdb.Config{
		BaseURL:      backend.URL,
		VersionURL:   backend.URL,
		RequestDelay: -1,
	}, backend.Client())
	return New(cfg, bridge)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestAuth(t *testing.T) {
	s := newTestServer(t, Config{Token: "x"})

	// Unauthorized
	req := httptest.NewRequest(http.MethodGet, "/mcp/tools", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	// Authorized
	req = httptest.NewRequest(http.MethodGet, "/mcp/tools", nil)
	req.Header.Set("Authorization", "Bearer x")
	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestListTools(t *testing.T) {
	s := newTestServer(t, Config{})
	req := httptest.NewRequest(http.MethodGet, "/mcp/tools", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Tools []Tool `json:"tools"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Tools) != 7 {
		t.Fatalf("expected 7 tools, got %d", len(resp.Tools))
	}
	for _, tool := range resp.Tools {
		if len(tool.InputSchema) == 0 {
			t.Fatalf("tool %s has no input schema", tool.Name)
		}
	}
}

func TestCallMapIdentifiers(t *testing.T) {
	s := newTestServer(t, Config{})
	body, _ := json.Marshal(map[string]any{
		"name":      "map_identifiers",
		"arguments": map[string]any{"identifiers": []string{"TP53"}, "species": 9606},
	})
	req := httptest.NewRequest(http.MethodPost, "/mcp/call", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		IsError bool `json:"isError"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.IsError {
		t.Fatal("expected isError false")
	}
	if len(resp.Content) != 1 || resp.Content[0].Type != "text" {
		t.Fatalf("unexpected content: %+v", resp.Content)
	}
	if !strings.Contains(resp.Content[0].Text, "9606.ENSP00000269305") {
		t.Fatalf("result text missing mapped id: %s", resp.Content[0].Text)
	}
}

func TestCallBridgeErrorIsToolError(t *testing.T) {
	s := newTestServer(t, Config{})
	body, _ := json.Marshal(map[string]any{
		"name":      "get_functional_enrichment",
		"arguments": map[string]any{"identifiers": []string{"TP53"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/mcp/call", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["isError"] != true {
		t.Fatalf("expected isError true, got %v", resp["isError"])
	}
}

func TestCallNetworkImageBase64(t *testing.T) {
	s := newTestServer(t, Config{})
	body, _ := json.Marshal(map[string]any{
		"name":      "get_network_image",
		"arguments": map[string]any{"identifiers": []string{"TP53", "MDM2"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/mcp/call", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp CallResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.IsError {
		t.Fatal("expected isError false")
	}
	if len(resp.Content) != 1 || resp.Content[0].Type != "image" {
		t.Fatalf("unexpected content: %+v", resp.Content)
	}
	if resp.Content[0].MIMEType != "image/png" {
		t.Fatalf("unexpected mime type %q", resp.Content[0].MIMEType)
	}
	decoded, err := base64.StdEncoding.DecodeString(resp.Content[0].Data)
	if err != nil {
		t.Fatalf("bad base64: %v", err)
	}
	if !bytes.Equal(decoded, pngPayload) {
		t.Fatal("decoded image differs from backend payload")
	}
}

func TestCallUnknownTool(t *testing.T) {
	s := newTestServer(t, Config{})
	body, _ := json.Marshal(map[string]any{"name": "get_coffee"})
	req := httptest.NewRequest(http.MethodPost, "/mcp/call", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestCallInvalidJSON(t *testing.T) {
	s := newTestServer(t, Config{})
	req := httptest.NewRequest(http.MethodPost, "/mcp/call", bytes.NewReader([]byte("{")))
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
