package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/turtacn/molgraph/pkg/errors"
	"github.com/turtacn/molgraph/pkg/smiles"
)

// SmilesHandler exposes stateless SMILES parsing/canonicalization: no
// molecule is persisted, unlike MoleculeHandler.Create.
type SmilesHandler struct{}

// NewSmilesHandler creates a new SmilesHandler.
func NewSmilesHandler() *SmilesHandler {
	return &SmilesHandler{}
}

type canonicalizeRequest struct {
	SMILES string `json:"smiles"`
}

type canonicalizeResponse struct {
	Input     string   `json:"input"`
	Canonical string   `json:"canonical"`
	Fragments int      `json:"fragments"`
	Errors    []string `json:"errors,omitempty"`
}

// Canonicalize handles POST /smiles/canonicalize.
func (h *SmilesHandler) Canonicalize(w http.ResponseWriter, r *http.Request) {
	var req canonicalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.InvalidParam("invalid request body"))
		return
	}

	result := smiles.Parse(req.SMILES)
	if len(result.Errors) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, canonicalizeResponse{
			Input:  req.SMILES,
			Errors: result.Errors,
		})
		return
	}

	writeJSON(w, http.StatusOK, canonicalizeResponse{
		Input:     req.SMILES,
		Canonical: smiles.GenerateAll(result.Molecules, true),
		Fragments: len(result.Molecules),
	})
}
