// Package series turns a CSV of crime records into a monthly count series
package series

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	perr "crimecast/internal/platform/errors"
)

const (
	// DateColumn holds the record timestamp
	DateColumn = "Date"
	// TypeColumn holds the offence category
	TypeColumn = "Primary Type"
	// DateLayout is day-first with a 12 hour clock, e.g. 25/12/2015 09:30:00 PM
	DateLayout = "2/1/2006 3:04:05 PM"
)

// Cutoff is the earliest record date that contributes to a series
var Cutoff = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)

// nulls are the cell values read as missing. Matching is exact: case and
// surrounding spaces count
var nulls = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// Bucket is one month of counted records; Month is the first of the month at UTC midnight
type Bucket struct {
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

// Series is the immutable monthly history built at start
type Series struct {
	Buckets  []Bucket  `json:"buckets"`
	Source   string    `json:"source,omitempty"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Len is the number of months; a nil series has none
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Buckets)
}

// Total is the number of records counted across all months
func (s *Series) Total() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, b := range s.Buckets {
		n += b.Count
	}
	return n
}

// Span returns the first and last month, ok is false for an empty series
func (s *Series) Span() (first, last time.Time, ok bool) {
	if s.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.Buckets[0].Month, s.Buckets[len(s.Buckets)-1].Month, true
}

// Report counts what happened to every data row
type Report struct {
	Rows         int `json:"rows"`
	Kept         int `json:"kept"`
	NullDate     int `json:"null_date"`
	BadDate      int `json:"bad_date"`
	BeforeCutoff int `json:"before_cutoff"`
	NullType     int `json:"null_type"`
}

// Dropped is the number of rows that did not contribute
func (r Report) Dropped() int { return r.NullDate + r.BadDate + r.BeforeCutoff + r.NullType }

// Load reads the CSV at path
func Load(path string) (*Series, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	s, rep, err := Read(f)
	if err != nil {
		return nil, rep, perr.WithOp(err, "series.Load")
	}
	s.Source = path
	return s, rep, nil
}

// Read builds a series from CSV content with a header row
func Read(r io.Reader) (*Series, Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	var rep Report
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, rep, perr.Corruptf("csv is empty")
	}
	if err != nil {
		return nil, rep, perr.Wrap(err, perr.ErrorCodeCorrupt, "read csv header")
	}
	dateIdx, typeIdx := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch h {
		case DateColumn:
			dateIdx = i
		case TypeColumn:
			typeIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, rep, perr.Corruptf("csv has no %q column", DateColumn)
	}
	if typeIdx < 0 {
		return nil, rep, perr.Corruptf("csv has no %q column", TypeColumn)
	}

	counts := map[time.Time]int{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, rep, perr.Wrapf(err, perr.ErrorCodeCorrupt, "read csv row %d", rep.Rows+1)
		}
		rep.Rows++

		raw := cell(rec, dateIdx)
		if isNull(raw) {
			rep.NullDate++
			continue
		}
		// the layout's PM only matches upper case; am/pm are accepted in any case
		ts, err := time.ParseInLocation(DateLayout, strings.ToUpper(strings.TrimSpace(raw)), time.UTC)
		if err != nil {
			rep.BadDate++
			continue
		}
		if ts.Before(Cutoff) {
			rep.BeforeCutoff++
			continue
		}
		if isNull(cell(rec, typeIdx)) {
			rep.NullType++
			continue
		}
		rep.Kept++
		counts[MonthStart(ts)]++
	}

	s := &Series{Buckets: make([]Bucket, 0, len(counts)), LoadedAt: time.Now().UTC()}
	for m, n := range counts {
		s.Buckets = append(s.Buckets, Bucket{Month: m, Count: n})
	}
	sort.Slice(s.Buckets, func(i, j int) bool { return s.Buckets[i].Month.Before(s.Buckets[j].Month) })
	return s, rep, nil
}

// MonthStart truncates t to the first day of its month at UTC midnight
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// short rows read as missing cells
func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

func isNull(v string) bool {
	_, ok := nulls[v]
	return ok
}
