package http

import (
	"agriledger/internal/core"
)

// View types fix the JSON the client sees. Field spellings follow the
// client's existing payloads, including the legacy "varient".

type buyerView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Amount      float64 `json:"amount"`
	CreatedDate string  `json:"createdDate"`
}

func toBuyerView(b core.Buyer) buyerView {
	return buyerView{
		ID:          b.ID,
		Name:        b.Name,
		Location:    b.Location,
		Amount:      b.Amount,
		CreatedDate: formatDate(b.CreatedDate),
	}
}

type landOwnerView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Amount      float64 `json:"amount"`
	CreatedDate string  `json:"createdDate"`
}

func toLandOwnerView(o core.LandOwner) landOwnerView {
	return landOwnerView{
		ID:          o.ID,
		Name:        o.Name,
		Location:    o.Location,
		Amount:      o.Amount,
		CreatedDate: formatDate(o.CreatedDate),
	}
}

type landView struct {
	ID          int64   `json:"id"`
	LandOwnerID int64   `json:"landOwnerId"`
	Name        string  `json:"name"`
	Area        string  `json:"area"`
	Place       string  `json:"place"`
	Varient     string  `json:"varient"`
	Trees       int64   `json:"trees"`
	Amount      float64 `json:"amount"`
}

func toLandView(l core.Land) landView {
	return landView{
		ID:          l.ID,
		LandOwnerID: l.LandOwnerID,
		Name:        l.Name,
		Area:        l.Area,
		Place:       l.Place,
		Varient:     l.Variant,
		Trees:       l.Trees,
		Amount:      l.Amount,
	}
}

type landAvailableView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Area        string `json:"area"`
	Place       string `json:"place"`
	Varient     string `json:"varient"`
	Trees       int64  `json:"trees"`
	CreatedDate string `json:"createdDate"`
}

func toLandAvailableView(l core.LandAvailable) landAvailableView {
	return landAvailableView{
		ID:          l.ID,
		Name:        l.Name,
		Area:        l.Area,
		Place:       l.Place,
		Varient:     l.Variant,
		Trees:       l.Trees,
		CreatedDate: formatDate(l.CreatedDate),
	}
}

type incomeRecordView struct {
	ID        int64   `json:"id"`
	BuyerID   int64   `json:"buyerId"`
	VisitDate string  `json:"visitDate"`
	Amount    float64 `json:"amount"`
}

func toIncomeRecordView(r core.IncomeRecord) incomeRecordView {
	return incomeRecordView{
		ID:        r.ID,
		BuyerID:   r.BuyerID,
		VisitDate: formatDate(r.VisitDate),
		Amount:    r.Amount,
	}
}

type purchaseRecordView struct {
	ID        int64                `json:"id"`
	BuyerID   int64                `json:"buyerId"`
	VisitDate string               `json:"visitDate"`
	Amount    float64              `json:"amount"`
	Varients  []core.SubmittedItem `json:"varients"`
}

func toPurchaseRecordView(r core.PurchaseRecord, catalog map[int64]string) purchaseRecordView {
	return purchaseRecordView{
		ID:        r.ID,
		BuyerID:   r.BuyerID,
		VisitDate: formatDate(r.VisitDate),
		Amount:    r.Amount,
		Varients:  core.Resolve(r.Items, catalog),
	}
}

type ownerRecordView struct {
	ID          int64   `json:"id"`
	LandOwnerID int64   `json:"landOwnerId"`
	VisitDate   string  `json:"visitDate"`
	Amount      float64 `json:"amount"`
	Reason      string  `json:"reason"`
}

func toOwnerRecordView(r core.OwnerRecord) ownerRecordView {
	return ownerRecordView{
		ID:          r.ID,
		LandOwnerID: r.LandOwnerID,
		VisitDate:   formatDate(r.VisitDate),
		Amount:      r.Amount,
		Reason:      r.Reason,
	}
}

type cutoffRecordView struct {
	ID          int64   `json:"id"`
	LandID      int64   `json:"landId"`
	Name        string  `json:"name"`
	Area        string  `json:"area"`
	Varient     string  `json:"varient"`
	Trees       int64   `json:"trees"`
	Ship        string  `json:"ship"`
	Weight      float64 `json:"weight"`
	Amount      float64 `json:"amount"`
	CreatedDate string  `json:"createdDate"`
}

func toCutoffRecordView(r core.CutoffRecord) cutoffRecordView {
	return cutoffRecordView{
		ID:          r.ID,
		LandID:      r.LandID,
		Name:        r.Name,
		Area:        r.Area,
		Varient:     r.Variant,
		Trees:       r.Trees,
		Ship:        r.Ship,
		Weight:      r.Weight,
		Amount:      r.Amount,
		CreatedDate: formatDate(r.CreatedDate),
	}
}

type productView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// summaryView is the shape of every summary endpoint response.
type summaryView[T any] struct {
	Today   int `json:"today"`
	Month   int `json:"month"`
	Year    int `json:"year"`
	Records []T `json:"records"`
}
