// Package mapping loads curated identifier-mapping files (dblp name or key to
// Wikidata ID) uploaded back after manual linking.
package mapping

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spec describes the columns of one kind of mapping file.
type Spec struct {
	Name     string   // for messages: "coauthor", "proceedings"
	Key      string   // column joined against the derived table
	External string   // column holding the external identifier
	Required []string // columns that must be present
}

// CoauthorSpec maps coauthor names to Wikidata IDs.
var CoauthorSpec = Spec{
	Name:     "coauthor",
	Key:      "name",
	External: "wd_id",
	Required: []string{"dblp_id", "name", "wd_id"},
}

// ProceedingsSpec maps proceedings dblp keys to Wikidata IDs.
var ProceedingsSpec = Spec{
	Name:     "proceedings",
	Key:      "dblp_id",
	External: "wd_id",
	Required: []string{"title", "dblp_id", "wd_id"},
}

// MappingFileError reports a mapping file that lacks required columns.
type MappingFileError struct {
	Path    string
	Spec    string
	Missing []string
}

func (e *MappingFileError) Error() string {
	path := e.Path
	if path == "" {
		path = "input"
	}
	return fmt.Sprintf("%s mapping file %s is missing required columns: %s",
		e.Spec, path, strings.Join(e.Missing, ", "))
}

// IsMappingFileError reports whether err is, or wraps, a MappingFileError.
func IsMappingFileError(err error) bool {
	var mfe *MappingFileError
	return errors.As(err, &mfe)
}

// Map is a loaded key → external identifier lookup.
type Map struct {
	entries map[string]string
	skipped int
}

// NewMap builds a Map directly from pairs. Blank external IDs are dropped.
func NewMap(pairs map[string]string) *Map {
	m := &Map{entries: make(map[string]string, len(pairs))}
	for k, v := range pairs {
		m.add(k, v)
	}
	return m
}

func (m *Map) add(key, external string) {
	external = strings.TrimSpace(external)
	if external == "" {
		m.skipped++
		return
	}
	m.entries[key] = external
}

// Lookup returns the external identifier for key.
func (m *Map) Lookup(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.entries[key]
	return v, ok
}

// Len returns the number of usable entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Skipped returns how many rows were dropped for a blank external ID.
func (m *Map) Skipped() int {
	if m == nil {
		return 0
	}
	return m.skipped
}

// Load reads a mapping file. The format follows the extension: .tsv is
// tab-separated, .xlsx reads the first sheet, anything else is CSV.
func Load(path string, spec Spec) (*Map, error) {
	var (
		m   *Map
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		m, err = loadXLSX(path, spec)
	default:
		comma := ','
		if strings.EqualFold(filepath.Ext(path), ".tsv") {
			comma = '\t'
		}
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s mapping file: %w", spec.Name, err)
		}
		defer f.Close()
		m, err = Read(f, spec, comma)
	}
	if err != nil {
		var mfe *MappingFileError
		if errors.As(err, &mfe) {
			mfe.Path = path
		}
		return nil, err
	}
	return m, nil
}

// Read parses delimited mapping data from r.
func Read(r io.Reader, spec Spec, comma rune) (*Map, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s mapping file: %w", spec.Name, err)
	}
	return fromRecords(records, spec)
}

func loadXLSX(path string, spec Spec) (*Map, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s mapping file: %w", spec.Name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &MappingFileError{Spec: spec.Name, Missing: spec.Required}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return fromRecords(rows, spec)
}

// fromRecords checks the header row against spec and collects key → external
// pairs. A repeated key keeps its last value.
func fromRecords(records [][]string, spec Spec) (*Map, error) {
	if len(records) == 0 {
		return nil, &MappingFileError{Spec: spec.Name, Missing: spec.Required}
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range spec.Required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MappingFileError{Spec: spec.Name, Missing: missing}
	}

	keyIdx, extIdx := index[spec.Key], index[spec.External]
	m := &Map{entries: make(map[string]string)}
	for _, rec := range records[1:] {
		m.add(cell(rec, keyIdx), cell(rec, extIdx))
	}
	return m, nil
}

// cell returns rec[i], or "" for short rows (excelize trims trailing blanks).
func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}
