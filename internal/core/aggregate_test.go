package core

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountsFor(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	records := []IncomeRecord{
		{ID: 1, VisitDate: date(2024, 1, 15), Amount: 100},
		{ID: 2, VisitDate: date(2024, 6, 1), Amount: 50},
	}

	c := CountsFor(records, now)
	if c.Today != 1 || c.Month != 1 || c.Year != 2 {
		t.Fatalf("got today=%d month=%d year=%d, want 1/1/2", c.Today, c.Month, c.Year)
	}
}

func TestCountsForWindows(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		d    time.Time
		want Counts
	}{
		{"same day", date(2025, 3, 10), Counts{Today: 1, Month: 1, Year: 1}},
		{"same month other day", date(2025, 3, 1), Counts{Month: 1, Year: 1}},
		{"same year other month", date(2025, 12, 10), Counts{Year: 1}},
		{"other year same month/day", date(2024, 3, 10), Counts{}},
		{"zero date excluded", time.Time{}, Counts{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CountsFor([]IncomeRecord{{ID: 1, VisitDate: tc.d}}, now)
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestCountsForEmpty(t *testing.T) {
	got := CountsFor([]CutoffRecord{}, time.Now())
	if got != (Counts{}) {
		t.Fatalf("expected zero counts, got %+v", got)
	}
}

func TestDateWindowValidate(t *testing.T) {
	cases := []struct {
		name string
		w    DateWindow
		err  error
	}{
		{"valid", DateWindow{From: date(2024, 1, 1), To: date(2024, 2, 1)}, nil},
		{"single day", DateWindow{From: date(2024, 1, 1), To: date(2024, 1, 1)}, nil},
		{"missing from", DateWindow{To: date(2024, 2, 1)}, ErrWindowMissingBound},
		{"missing to", DateWindow{From: date(2024, 1, 1)}, ErrWindowMissingBound},
		{"inverted", DateWindow{From: date(2024, 2, 1), To: date(2024, 1, 1)}, ErrWindowInverted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.w.Validate(); !errors.Is(err, tc.err) {
				t.Errorf("got %v, want %v", err, tc.err)
			}
		})
	}
}

func TestFilterByRange(t *testing.T) {
	records := []CutoffRecord{
		{ID: 1, CreatedDate: date(2024, 1, 10)},
		{ID: 2, CreatedDate: date(2024, 2, 15)},
		{ID: 3, CreatedDate: date(2024, 3, 20)},
		{ID: 4}, // no date, never matches
	}

	w := DateWindow{From: date(2024, 1, 10), To: date(2024, 2, 15)}
	got, err := FilterByRange(records, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("got %v, want records 1 and 2 (bounds inclusive)", got)
	}
}

func TestFilterByRangeIdempotent(t *testing.T) {
	records := []IncomeRecord{
		{ID: 1, VisitDate: date(2024, 5, 1)},
		{ID: 2, VisitDate: date(2024, 5, 20)},
		{ID: 3, VisitDate: date(2024, 7, 1)},
	}
	w := DateWindow{From: date(2024, 5, 1), To: date(2024, 5, 31)}

	once, err := FilterByRange(records, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := FilterByRange(once, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(once) != len(twice) {
		t.Fatalf("filtering a filtered subset changed it: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("record %d differs after refilter", i)
		}
	}
}

func TestFilterByRangeInvalidWindow(t *testing.T) {
	records := []IncomeRecord{{ID: 1, VisitDate: date(2024, 5, 1)}}
	w := DateWindow{From: date(2024, 6, 1), To: date(2024, 5, 1)}

	got, err := FilterByRange(records, w)
	if !errors.Is(err, ErrWindowInverted) {
		t.Fatalf("expected ErrWindowInverted, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no result on invalid window, got %v", got)
	}
}

func TestRecordViewKeepsPreviousOnBadWindow(t *testing.T) {
	records := []IncomeRecord{
		{ID: 1, VisitDate: date(2024, 5, 1)},
		{ID: 2, VisitDate: date(2024, 6, 1)},
	}
	v := NewRecordView(records)

	if err := v.Apply(DateWindow{From: date(2024, 5, 1), To: date(2024, 5, 31)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.Records()) != 1 {
		t.Fatalf("expected 1 record after filter, got %d", len(v.Records()))
	}

	// Inverted window: error reported, previous subset untouched.
	err := v.Apply(DateWindow{From: date(2024, 12, 1), To: date(2024, 1, 1)})
	if !errors.Is(err, ErrWindowInverted) {
		t.Fatalf("expected ErrWindowInverted, got %v", err)
	}
	if len(v.Records()) != 1 || v.Records()[0].ID != 1 {
		t.Fatalf("previous subset was not retained: %v", v.Records())
	}

	v.Reset()
	if len(v.Records()) != 2 {
		t.Fatalf("expected full set after reset, got %d", len(v.Records()))
	}
}
