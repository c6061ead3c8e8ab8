package http

import (
	"net/http"

	"agriledger/internal/core"
)

type cutoffRecordPayload struct {
	LandID  int64   `json:"landId"`
	Name    string  `json:"name"`
	Area    string  `json:"area"`
	Varient string  `json:"varient"`
	Trees   int64   `json:"trees"`
	Ship    string  `json:"ship"`
	Weight  float64 `json:"weight"`
	Amount  float64 `json:"amount"`
}

func (s *Server) handleCreateCutoffRecord(w http.ResponseWriter, r *http.Request) {
	var p cutoffRecordPayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	rec := core.CutoffRecord{
		LandID:  p.LandID,
		Name:    p.Name,
		Area:    p.Area,
		Variant: p.Varient,
		Trees:   p.Trees,
		Ship:    p.Ship,
		Weight:  p.Weight,
		Amount:  p.Amount,
	}

	saved, err := s.records.CreateCutoffRecord(r.Context(), rec)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummaries()
	writeJSON(w, http.StatusCreated, toCutoffRecordView(saved))
}

func (s *Server) handleListCutoffRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListCutoffRecords(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]cutoffRecordView, 0, len(records))
	for _, rec := range records {
		out = append(out, toCutoffRecordView(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListCutoffByLand(w http.ResponseWriter, r *http.Request) {
	landID, err := pathID(r, "landId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	records, err := s.store.ListCutoffRecordsByLand(r.Context(), landID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]cutoffRecordView, 0, len(records))
	for _, rec := range records {
		out = append(out, toCutoffRecordView(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCutoffSummary covers the full cutoff history; per-land narrowing
// goes through the land route instead.
func (s *Server) handleCutoffSummary(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListCutoffRecords(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSummary(w, r, s, "cutoff", 0, records, toCutoffRecordView)
}

func (s *Server) handleDeleteCutoffRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := s.store.DeleteCutoffRecord(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummaries()
	writeJSON(w, http.StatusNoContent, nil)
}
