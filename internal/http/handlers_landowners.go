package http

import (
	"net/http"
	"strings"

	"agriledger/internal/core"
)

type landOwnerPayload struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Amount   float64 `json:"amount"`
}

func (s *Server) handleListLandOwners(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	location := strings.TrimSpace(r.URL.Query().Get("location"))

	owners, err := s.store.ListLandOwners(r.Context(), name, location)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]landOwnerView, 0, len(owners))
	for _, o := range owners {
		out = append(out, toLandOwnerView(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateLandOwner(w http.ResponseWriter, r *http.Request) {
	var p landOwnerPayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	owner := core.LandOwner{Name: p.Name, Location: p.Location, Amount: p.Amount}
	if err := owner.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	saved, err := s.store.CreateLandOwner(r.Context(), owner)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLandOwnerView(saved))
}

func (s *Server) handleGetLandOwner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	owner, err := s.store.GetLandOwner(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLandOwnerView(owner))
}

func (s *Server) handleUpdateLandOwner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	var p landOwnerPayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	owner := core.LandOwner{ID: id, Name: p.Name, Location: p.Location, Amount: p.Amount}
	if err := owner.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.store.UpdateLandOwner(r.Context(), owner); err != nil {
		writeDomainError(w, err)
		return
	}

	updated, err := s.store.GetLandOwner(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLandOwnerView(updated))
}

func (s *Server) handleDeleteLandOwner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := s.store.DeleteLandOwner(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummaries()
	writeJSON(w, http.StatusNoContent, nil)
}

type ownerRecordPayload struct {
	LandOwnerID     int64    `json:"landOwnerId"`
	VisitDate       flexDate `json:"visitDate"`
	VisitDateLegacy flexDate `json:"visit_date"`
	Amount          float64  `json:"amount"`
	Reason          string   `json:"reason"`
}

func (s *Server) handleCreateOwnerRecord(w http.ResponseWriter, r *http.Request) {
	var p ownerRecordPayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	rec := core.OwnerRecord{
		LandOwnerID: p.LandOwnerID,
		VisitDate:   pickDate(p.VisitDate, p.VisitDateLegacy),
		Amount:      p.Amount,
		Reason:      p.Reason,
	}

	saved, err := s.records.CreateOwnerRecord(r.Context(), rec)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummaries()
	writeJSON(w, http.StatusCreated, toOwnerRecordView(saved))
}

func (s *Server) handleListOwnerRecords(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathID(r, "ownerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	records, err := s.store.ListOwnerRecordsByOwner(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]ownerRecordView, 0, len(records))
	for _, rec := range records {
		out = append(out, toOwnerRecordView(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOwnerSummary(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathID(r, "ownerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	records, err := s.store.ListOwnerRecordsByOwner(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSummary(w, r, s, "owner", ownerID, records, toOwnerRecordView)
}

func (s *Server) handleDeleteOwnerRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := s.store.DeleteOwnerRecord(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummaries()
	writeJSON(w, http.StatusNoContent, nil)
}
