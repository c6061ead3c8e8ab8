package core

import (
	"errors"
	"strings"
	"time"
)

const (
	BasisQuantity CalcBasis = "quantity"
	BasisWeight   CalcBasis = "weight"
)

type (
	// CalcBasis selects whether a line item's price is driven by quantity or weight.
	CalcBasis string

	Buyer struct {
		ID          int64
		Name        string
		Location    string
		Amount      float64
		CreatedDate time.Time
	}

	LandOwner struct {
		ID          int64
		Name        string
		Location    string
		Amount      float64
		CreatedDate time.Time
	}

	Land struct {
		ID          int64
		LandOwnerID int64
		Name        string
		Area        string
		Place       string
		Variant     string
		Trees       int64
		Amount      float64
	}

	LandAvailable struct {
		ID          int64
		Name        string
		Area        string
		Place       string
		Variant     string
		Trees       int64
		CreatedDate time.Time
	}

	IncomeRecord struct {
		ID        int64
		BuyerID   int64
		VisitDate time.Time
		Amount    float64
	}

	PurchaseRecord struct {
		ID        int64
		BuyerID   int64
		VisitDate time.Time
		Amount    float64
		Items     []LineItem
	}

	OwnerRecord struct {
		ID          int64
		LandOwnerID int64
		VisitDate   time.Time
		Amount      float64
		Reason      string
	}

	CutoffRecord struct {
		ID          int64
		LandID      int64
		Name        string
		Area        string
		Variant     string
		Trees       int64
		Ship        string
		Weight      float64
		Amount      float64
		CreatedDate time.Time
	}

	Product struct {
		ID   int64
		Name string
	}
)

var (
	ErrEmptyName      = errors.New("empty name")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrMissingBuyer   = errors.New("missing buyer reference")
	ErrMissingOwner   = errors.New("missing land owner reference")
	ErrMissingLand    = errors.New("missing land reference")
	ErrMissingDate    = errors.New("missing date")
	ErrInvalidBasis   = errors.New("invalid calc basis")
	ErrEmptyLineItems = errors.New("record needs at least one line item")
)

// RecordDate methods satisfy the Dated constraint used by the aggregator.

func (r IncomeRecord) RecordDate() time.Time   { return r.VisitDate }
func (r PurchaseRecord) RecordDate() time.Time { return r.VisitDate }
func (r OwnerRecord) RecordDate() time.Time    { return r.VisitDate }
func (r CutoffRecord) RecordDate() time.Time   { return r.CreatedDate }

func (b CalcBasis) Validate() error {
	switch b {
	case BasisQuantity, BasisWeight:
		return nil
	}
	return ErrInvalidBasis
}

func (b Buyer) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if b.Amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (o LandOwner) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return ErrEmptyName
	}
	if o.Amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (l Land) Validate() error {
	if l.LandOwnerID == 0 {
		return ErrMissingOwner
	}
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (l LandAvailable) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (r IncomeRecord) Validate() error {
	if r.BuyerID == 0 {
		return ErrMissingBuyer
	}
	if r.VisitDate.IsZero() {
		return ErrMissingDate
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r PurchaseRecord) Validate() error {
	if r.BuyerID == 0 {
		return ErrMissingBuyer
	}
	if r.VisitDate.IsZero() {
		return ErrMissingDate
	}
	if len(r.Items) == 0 {
		return ErrEmptyLineItems
	}
	for _, it := range r.Items {
		if err := it.Basis.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r OwnerRecord) Validate() error {
	if r.LandOwnerID == 0 {
		return ErrMissingOwner
	}
	if r.VisitDate.IsZero() {
		return ErrMissingDate
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r CutoffRecord) Validate() error {
	if r.LandID == 0 {
		return ErrMissingLand
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
