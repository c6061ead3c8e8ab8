package http

import (
	"net/http"

	"agriledger/internal/core"
	applog "agriledger/internal/log"
)

type incomeRecordPayload struct {
	BuyerID         int64    `json:"buyerId"`
	VisitDate       flexDate `json:"visitDate"`
	VisitDateLegacy flexDate `json:"visit_date"`
	Amount          float64  `json:"amount"`
}

func (s *Server) handleCreateIncomeRecord(w http.ResponseWriter, r *http.Request) {
	var p incomeRecordPayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	rec := core.IncomeRecord{
		BuyerID:   p.BuyerID,
		VisitDate: pickDate(p.VisitDate, p.VisitDateLegacy),
		Amount:    p.Amount,
	}

	saved, err := s.records.CreateIncomeRecord(r.Context(), rec)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummaries()

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Income record created",
		applog.FieldRecordID, saved.ID,
		applog.FieldBuyerID, saved.BuyerID,
		applog.FieldAmount, saved.Amount)

	writeJSON(w, http.StatusCreated, toIncomeRecordView(saved))
}

func (s *Server) handleListIncomeRecords(w http.ResponseWriter, r *http.Request) {
	buyerID, err := pathID(r, "buyerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	records, err := s.store.ListIncomeRecordsByBuyer(r.Context(), buyerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]incomeRecordView, 0, len(records))
	for _, rec := range records {
		out = append(out, toIncomeRecordView(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleIncomeSummary(w http.ResponseWriter, r *http.Request) {
	buyerID, err := pathID(r, "buyerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	records, err := s.store.ListIncomeRecordsByBuyer(r.Context(), buyerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSummary(w, r, s, "income", buyerID, records, toIncomeRecordView)
}

func (s *Server) handleDeleteIncomeRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := s.store.DeleteIncomeRecord(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummaries()
	writeJSON(w, http.StatusNoContent, nil)
}

type itemPayload struct {
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
	Weight    float64 `json:"weight"`
	Rate      float64 `json:"rate"`
	CalcBy    string  `json:"calcBy"`
}

type purchaseRecordPayload struct {
	BuyerID         int64         `json:"buyerId"`
	VisitDate       flexDate      `json:"visitDate"`
	VisitDateLegacy flexDate      `json:"visit_date"`
	Varients        []itemPayload `json:"varients"`
}

// handleCreatePurchaseRecord persists a purchase with its line items. Prices
// sent by the client are ignored: the service rederives every price and the
// record amount from quantity, weight and rate.
func (s *Server) handleCreatePurchaseRecord(w http.ResponseWriter, r *http.Request) {
	var p purchaseRecordPayload
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	items := make([]core.LineItem, 0, len(p.Varients))
	for _, it := range p.Varients {
		basis := core.CalcBasis(it.CalcBy)
		if it.CalcBy == "" {
			basis = core.BasisWeight
		}
		items = append(items, core.LineItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Weight:    it.Weight,
			Rate:      it.Rate,
			Basis:     basis,
		})
	}

	rec := core.PurchaseRecord{
		BuyerID:   p.BuyerID,
		VisitDate: pickDate(p.VisitDate, p.VisitDateLegacy),
		Items:     items,
	}

	saved, err := s.records.CreatePurchaseRecord(r.Context(), rec)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummaries()

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Purchase record created",
		applog.FieldRecordID, saved.ID,
		applog.FieldBuyerID, saved.BuyerID,
		applog.FieldAmount, saved.Amount)

	catalog, err := s.store.ProductCatalog(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPurchaseRecordView(saved, catalog))
}

func (s *Server) handleListPurchaseRecords(w http.ResponseWriter, r *http.Request) {
	buyerID, err := pathID(r, "buyerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	records, err := s.store.ListPurchaseRecordsByBuyer(r.Context(), buyerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	catalog, err := s.store.ProductCatalog(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]purchaseRecordView, 0, len(records))
	for _, rec := range records {
		out = append(out, toPurchaseRecordView(rec, catalog))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleListRecordItems serves the line items of one purchase record. The
// path keeps the client's historical name for them.
func (s *Server) handleListRecordItems(w http.ResponseWriter, r *http.Request) {
	recordID, err := pathID(r, "recordId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	rec, err := s.store.GetPurchaseRecord(r.Context(), recordID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	catalog, err := s.store.ProductCatalog(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, core.Resolve(rec.Items, catalog))
}

func (s *Server) handleDeletePurchaseRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := s.store.DeletePurchaseRecord(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummaries()
	writeJSON(w, http.StatusNoContent, nil)
}
