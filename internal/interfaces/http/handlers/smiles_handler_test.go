package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestSmilesHandler_Canonicalize(t *testing.T) {
	h := NewSmilesHandler()

	body, _ := json.Marshal(canonicalizeRequest{SMILES: "OCC"})
	req := httptest.NewRequest("POST", "/smiles/canonicalize", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.Canonicalize(w, req)

	if w.Code != 200 {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp canonicalizeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Canonical != "CCO" {
		t.Errorf("expected canonical=CCO, got %q", resp.Canonical)
	}
}

func TestSmilesHandler_CanonicalizeInvalid(t *testing.T) {
	h := NewSmilesHandler()

	body, _ := json.Marshal(canonicalizeRequest{SMILES: "C(("})
	req := httptest.NewRequest("POST", "/smiles/canonicalize", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.Canonicalize(w, req)

	if w.Code != 422 {
		t.Errorf("expected status 422, got %d", w.Code)
	}
}

func TestSmilesHandler_CanonicalizeEmpty(t *testing.T) {
	h := NewSmilesHandler()

	body, _ := json.Marshal(canonicalizeRequest{SMILES: ""})
	req := httptest.NewRequest("POST", "/smiles/canonicalize", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.Canonicalize(w, req)

	if w.Code != 200 {
		t.Fatalf("expected status 200 for empty SMILES, got %d: %s", w.Code, w.Body.String())
	}
}
