package http

import (
	"net/http"
	"strings"

	"agriledger/internal/core"
)

type landPayload struct {
	LandOwnerID int64   `json:"landOwnerId"`
	Name        string  `json:"name"`
	Area        string  `json:"area"`
	Place       string  `json:"place"`
	Varient     string  `json:"varient"`
	Trees       int64   `json:"trees"`
	Amount      float64 `json:"amount"`
}

func (s *Server) handleListLands(w http.ResponseWriter, r *http.Request) {
	lands, err := s.store.ListLands(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]landView, 0, len(lands))
	for _, l := range lands {
		out = append(out, toLandView(l))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateLand(w http.ResponseWriter, r *http.Request) {
	var p landPayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	land := core.Land{
		LandOwnerID: p.LandOwnerID,
		Name:        p.Name,
		Area:        p.Area,
		Place:       p.Place,
		Variant:     p.Varient,
		Trees:       p.Trees,
		Amount:      p.Amount,
	}
	if err := land.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	saved, err := s.store.CreateLand(r.Context(), land)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLandView(saved))
}

func (s *Server) handleListLandsByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathID(r, "landOwnerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	lands, err := s.store.ListLandsByOwner(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]landView, 0, len(lands))
	for _, l := range lands {
		out = append(out, toLandView(l))
	}
	writeJSON(w, http.StatusOK, out)
}

type landAvailablePayload struct {
	Name    string `json:"name"`
	Area    string `json:"area"`
	Place   string `json:"place"`
	Varient string `json:"varient"`
	Trees   int64  `json:"trees"`
}

func (s *Server) handleListLandAvailable(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))

	lands, err := s.store.ListLandAvailable(r.Context(), name)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]landAvailableView, 0, len(lands))
	for _, l := range lands {
		out = append(out, toLandAvailableView(l))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateLandAvailable(w http.ResponseWriter, r *http.Request) {
	var p landAvailablePayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	land := core.LandAvailable{
		Name:    p.Name,
		Area:    p.Area,
		Place:   p.Place,
		Variant: p.Varient,
		Trees:   p.Trees,
	}
	if err := land.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	saved, err := s.store.CreateLandAvailable(r.Context(), land)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLandAvailableView(saved))
}

func (s *Server) handleGetLandAvailable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	land, err := s.store.GetLandAvailable(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLandAvailableView(land))
}

func (s *Server) handleUpdateLandAvailable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	var p landAvailablePayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	land := core.LandAvailable{
		ID:      id,
		Name:    p.Name,
		Area:    p.Area,
		Place:   p.Place,
		Variant: p.Varient,
		Trees:   p.Trees,
	}
	if err := land.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.store.UpdateLandAvailable(r.Context(), land); err != nil {
		writeDomainError(w, err)
		return
	}

	updated, err := s.store.GetLandAvailable(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLandAvailableView(updated))
}

func (s *Server) handleDeleteLandAvailable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := s.store.DeleteLandAvailable(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
