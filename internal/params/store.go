package params

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"uvotsl/internal/sltransform"
)

// Record holds the fitted parameters for one snapshot, keyed by the
// snapshot's start time.
type Record struct {
	TStart float64
	Params sltransform.Params
}

// Table is an ordered collection of records, one per snapshot. Insertion
// order is preserved so the file stays aligned with the stack's extension
// order and readable next to it.
type Table struct {
	rows []Record
}

const header = "tstart exp_param flat_param"

// Load parses the table at path. A missing file yields an empty table; that
// is the normal state before the first fit of a pair.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Table{}, nil
		}
		return nil, fmt.Errorf("open parameter file: %w", err)
	}
	defer file.Close()

	table := &Table{}
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if line == 1 {
			// Header row; tolerate any column naming as long as there
			// are three columns.
			if len(fields) != 3 {
				return nil, fmt.Errorf("parameter file %s: header has %d columns, want 3", path, len(fields))
			}
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("parameter file %s line %d: %d columns, want 3", path, line, len(fields))
		}
		var values [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter file %s line %d: %w", path, line, err)
			}
			values[i] = v
		}
		table.rows = append(table.rows, Record{
			TStart: values[0],
			Params: sltransform.Params{Exp: values[1], Flat: values[2]},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read parameter file %s: %w", path, err)
	}
	return table, nil
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns the records in insertion order. The slice is a copy.
func (t *Table) Rows() []Record {
	return append([]Record(nil), t.rows...)
}

// Row returns the record at index i (0-based).
func (t *Table) Row(i int) Record { return t.rows[i] }

// Lookup finds the record keyed by tstart.
func (t *Table) Lookup(tstart float64) (Record, bool) {
	for _, r := range t.rows {
		if r.TStart == tstart {
			return r, true
		}
	}
	return Record{}, false
}

// Upsert replaces the record with the same tstart in place, or appends a new
// one. Existing row order is never disturbed.
func (t *Table) Upsert(rec Record) {
	for i, r := range t.rows {
		if r.TStart == rec.TStart {
			t.rows[i] = rec
			return
		}
	}
	t.rows = append(t.rows, rec)
}

// Save serializes the table to path, overwriting whatever is there. Column
// order and row order are stable so repeated saves of an unchanged table are
// byte-for-byte identical.
func (t *Table) Save(path string) error {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for _, r := range t.rows {
		b.WriteString(formatFloat(r.TStart))
		b.WriteString(" ")
		b.WriteString(formatFloat(r.Params.Exp))
		b.WriteString(" ")
		b.WriteString(formatFloat(r.Params.Flat))
		b.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write parameter file: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Action tells the orchestrator what to do with one snapshot.
type Action int

const (
	// ActionSkip leaves the existing record untouched and runs no fit.
	ActionSkip Action = iota
	// ActionRefit runs the interactive loop seeded with Decision.Seed.
	ActionRefit
)

// Decision is the outcome of the skip/redo policy for one snapshot.
type Decision struct {
	Action Action
	Seed   sltransform.Params
}

// Decide applies the skip/redo policy: an existing record is skipped unless
// redo is set, in which case its parameters seed the refit; a missing record
// is always fit, seeded with the defaults.
func (t *Table) Decide(tstart float64, redo bool, defaults sltransform.Params) Decision {
	rec, ok := t.Lookup(tstart)
	switch {
	case ok && !redo:
		return Decision{Action: ActionSkip}
	case ok:
		return Decision{Action: ActionRefit, Seed: rec.Params}
	default:
		return Decision{Action: ActionRefit, Seed: defaults}
	}
}
