package http

import (
	"fmt"
	"net/http"
	"time"

	"agriledger/internal/core"
)

// writeSummary responds with today/month/year counts plus the record list,
// narrowed to the from/to window when one is given. Counts always cover the
// full collection and are cached per scope; the windowed subset is computed
// per request. An invalid window is a validation error and leaves nothing
// changed server-side.
func writeSummary[T core.Dated, V any](w http.ResponseWriter, r *http.Request, s *Server, scope string, id int64, records []T, view func(T) V) {
	// stored dates are UTC, so the reference instant must be too
	now := time.Now().UTC()
	// the date in the key keeps a cached "today" count from outliving midnight
	key := fmt.Sprintf("%s:%d:%s", scope, id, now.Format("2006-01-02"))
	counts, ok := s.summaryCache.Get(key)
	if !ok {
		counts = core.CountsFor(records, now)
		s.summaryCache.Set(key, counts)
	}

	subset := records
	q := r.URL.Query()
	if q.Get("from") != "" || q.Get("to") != "" {
		filtered, err := core.FilterByRange(records, parseWindow(r))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		subset = filtered
	}

	out := make([]V, 0, len(subset))
	for _, rec := range subset {
		out = append(out, view(rec))
	}

	writeJSON(w, http.StatusOK, summaryView[V]{
		Today:   counts.Today,
		Month:   counts.Month,
		Year:    counts.Year,
		Records: out,
	})
}
