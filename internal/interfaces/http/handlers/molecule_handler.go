package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"

	domainMol "github.com/turtacn/molgraph/internal/domain/molecule"
	"github.com/turtacn/molgraph/pkg/errors"
	"github.com/turtacn/molgraph/pkg/types/common"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// MoleculeHandler serves the molecule resource endpoints. It holds molecules
// in memory, keyed by ID; a persistence-backed implementation would satisfy
// the same method set against a real repository.
type MoleculeHandler struct {
	mu        sync.RWMutex
	molecules map[common.ID]*domainMol.Molecule
}

// NewMoleculeHandler creates an empty MoleculeHandler.
func NewMoleculeHandler() *MoleculeHandler {
	return &MoleculeHandler{
		molecules: make(map[common.ID]*domainMol.Molecule),
	}
}

type createMoleculeRequest struct {
	SMILES string              `json:"smiles"`
	Type   mtypes.MoleculeType `json:"type"`
	Name   string              `json:"name"`
}

// Create handles POST /molecules: parses the SMILES, canonicalises it via
// the smiles engine, and stores the resulting molecule.
func (h *MoleculeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMoleculeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.InvalidParam("invalid request body"))
		return
	}
	if req.Type == "" {
		req.Type = mtypes.TypeSmallMolecule
	}

	mol, err := domainMol.NewMolecule(req.SMILES, req.Type)
	if err != nil {
		writeAppError(w, err)
		return
	}
	mol.Name = req.Name
	if err := mol.CalculateProperties(); err != nil {
		writeAppError(w, err)
		return
	}

	h.mu.Lock()
	h.molecules[mol.ID] = mol
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, mol)
}

// List handles GET /molecules: returns a page of stored molecules.
func (h *MoleculeHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	h.mu.RLock()
	all := make([]*domainMol.Molecule, 0, len(h.molecules))
	for _, m := range h.molecules {
		all = append(all, m)
	}
	h.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"molecules": all[start:end],
		"total":     len(all),
		"page":      page,
		"page_size": pageSize,
	})
}

// Get handles GET /molecules/{moleculeID}.
func (h *MoleculeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "moleculeID"))

	h.mu.RLock()
	mol, ok := h.molecules[id]
	h.mu.RUnlock()
	if !ok {
		writeAppError(w, errors.NotFound("molecule not found"))
		return
	}
	writeJSON(w, http.StatusOK, mol)
}

type updateMoleculeRequest struct {
	Name string `json:"name"`
}

// Update handles PUT /molecules/{moleculeID}.
func (h *MoleculeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "moleculeID"))

	var req updateMoleculeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.InvalidParam("invalid request body"))
		return
	}

	h.mu.Lock()
	mol, ok := h.molecules[id]
	if ok {
		mol.Name = req.Name
	}
	h.mu.Unlock()

	if !ok {
		writeAppError(w, errors.NotFound("molecule not found"))
		return
	}
	writeJSON(w, http.StatusOK, mol)
}

// Delete handles DELETE /molecules/{moleculeID}.
func (h *MoleculeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "moleculeID"))

	h.mu.Lock()
	_, ok := h.molecules[id]
	delete(h.molecules, id)
	h.mu.Unlock()

	if !ok {
		writeAppError(w, errors.NotFound("molecule not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type searchSimilarRequest struct {
	SMILES          string                 `json:"smiles"`
	FingerprintType mtypes.FingerprintType `json:"fingerprint_type"`
	Threshold       float64                `json:"threshold"`
	MaxResults      int                    `json:"max_results"`
}

type similarityMatch struct {
	Molecule   *domainMol.Molecule `json:"molecule"`
	Similarity float64             `json:"similarity"`
}

// SearchSimilar handles POST /molecules/search/similar: ranks stored
// molecules by Tanimoto similarity to the query SMILES's fingerprint.
func (h *MoleculeHandler) SearchSimilar(w http.ResponseWriter, r *http.Request) {
	var req searchSimilarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.InvalidParam("invalid request body"))
		return
	}
	if req.FingerprintType == "" {
		req.FingerprintType = mtypes.FPMorgan
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 20
	}

	query, err := domainMol.NewMolecule(req.SMILES, mtypes.TypeSmallMolecule)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := query.CalculateFingerprint(req.FingerprintType); err != nil {
		writeAppError(w, err)
		return
	}

	h.mu.RLock()
	candidates := make([]*domainMol.Molecule, 0, len(h.molecules))
	for _, m := range h.molecules {
		candidates = append(candidates, m)
	}
	h.mu.RUnlock()

	matches := make([]similarityMatch, 0, len(candidates))
	for _, m := range candidates {
		if _, ok := m.Fingerprints[req.FingerprintType]; !ok {
			if err := m.CalculateFingerprint(req.FingerprintType); err != nil {
				continue
			}
		}
		sim, err := query.SimilarityTo(m, req.FingerprintType)
		if err != nil || sim < req.Threshold {
			continue
		}
		matches = append(matches, similarityMatch{Molecule: m, Similarity: sim})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Similarity > matches[j].Similarity })
	if len(matches) > req.MaxResults {
		matches = matches[:req.MaxResults]
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches, "total": len(matches)})
}

type predictPropertiesRequest struct {
	SMILES string `json:"smiles"`
}

// PredictProperties handles POST /molecules/predict/properties: computes
// physicochemical descriptors for a SMILES string without persisting it.
func (h *MoleculeHandler) PredictProperties(w http.ResponseWriter, r *http.Request) {
	var req predictPropertiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.InvalidParam("invalid request body"))
		return
	}

	mol, err := domainMol.NewMolecule(req.SMILES, mtypes.TypeSmallMolecule)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := mol.CalculateProperties(); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"smiles":     mol.CanonicalSMILES,
		"properties": mol.Properties,
	})
}
