package http

import (
	"net/http"
	"strings"

	"agriledger/internal/core"
)

type buyerPayload struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Amount   float64 `json:"amount"`
}

func (s *Server) handleListBuyers(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	location := strings.TrimSpace(r.URL.Query().Get("location"))

	buyers, err := s.store.ListBuyers(r.Context(), name, location)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]buyerView, 0, len(buyers))
	for _, b := range buyers {
		out = append(out, toBuyerView(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateBuyer(w http.ResponseWriter, r *http.Request) {
	var p buyerPayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	buyer := core.Buyer{Name: p.Name, Location: p.Location, Amount: p.Amount}
	if err := buyer.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	saved, err := s.store.CreateBuyer(r.Context(), buyer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBuyerView(saved))
}

func (s *Server) handleGetBuyer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	buyer, err := s.store.GetBuyer(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBuyerView(buyer))
}

func (s *Server) handleUpdateBuyer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	var p buyerPayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	buyer := core.Buyer{ID: id, Name: p.Name, Location: p.Location, Amount: p.Amount}
	if err := buyer.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.store.UpdateBuyer(r.Context(), buyer); err != nil {
		writeDomainError(w, err)
		return
	}

	updated, err := s.store.GetBuyer(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBuyerView(updated))
}

func (s *Server) handleDeleteBuyer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := s.store.DeleteBuyer(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummaries()
	writeJSON(w, http.StatusNoContent, nil)
}
