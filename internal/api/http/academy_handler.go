package http

import (
	"net/http"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/service"
)

type AcademyHandler struct {
	academies service.AcademyService
	batches   service.BatchService
}

func NewAcademyHandler(academies service.AcademyService, batches service.BatchService) *AcademyHandler {
	return &AcademyHandler{academies: academies, batches: batches}
}

type createAcademyRequest struct {
	Name string `json:"name"`
}

func (h *AcademyHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	var req createAcademyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	academy, err := h.academies.Create(r.Context(), p.Role, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, academy)
}

func (h *AcademyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	academy, err := h.academies.Get(r.Context(), p.UserID, p.Role, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, academy)
}

func (h *AcademyHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	page, limit := pagination(r)

	academies, total, err := h.academies.List(r.Context(), p.UserID, p.Role, page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listEnvelope{Items: academies, Total: total, Page: page, Limit: limit})
}

type updateAcademyRequest struct {
	Name   string               `json:"name,omitempty"`
	Status domain.AcademyStatus `json:"status,omitempty"`
}

func (h *AcademyHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateAcademyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	academy, err := h.academies.Get(r.Context(), p.UserID, p.Role, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if req.Name != "" {
		academy.Name = req.Name
	}
	if req.Status != "" {
		academy.Status = req.Status
	}

	if err := h.academies.Update(r.Context(), p.UserID, p.Role, academy); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, academy)
}

func (h *AcademyHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	var in service.CreateBatchInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	batch, err := h.batches.Create(r.Context(), p.UserID, p.Role, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, batch)
}

func (h *AcademyHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	batch, err := h.batches.Get(r.Context(), p.UserID, p.Role, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, batch)
}

func (h *AcademyHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	batches, err := h.batches.List(r.Context(), p.UserID, p.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, batches)
}
