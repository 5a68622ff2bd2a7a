package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/matsen/dblp2wd/internal/table"
)

func sampleTable() *table.Table {
	t := table.New("name", "entity_to_link", "wikidata")
	t.Rows = []table.Row{
		{table.Str("Jane Doe"), table.Str("Q123"), table.Str("http://www.wikidata.org/entity/Q123")},
		{table.Str("Roe, John"), table.Str("Roe, John"), table.Null},
	}
	return t
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleTable(), FormatCSV, ""); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "name,entity_to_link,wikidata\n" +
		"Jane Doe,Q123,http://www.wikidata.org/entity/Q123\n" +
		"\"Roe, John\",\"Roe, John\",\n"
	if got := buf.String(); got != want {
		t.Errorf("Write() =\n%s\nwant\n%s", got, want)
	}
}

func TestWrite_TSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleTable(), FormatTSV, ""); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "name\tentity_to_link\twikidata\n" +
		"Jane Doe\tQ123\thttp://www.wikidata.org/entity/Q123\n" +
		"Roe, John\tRoe, John\t\n"
	if got := buf.String(); got != want {
		t.Errorf("Write() =\n%q\nwant\n%q", got, want)
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleTable(), FormatJSON, ""); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got []map[string]*string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[1]["wikidata"] != nil {
		t.Errorf("null cell should encode as JSON null, got %q", *got[1]["wikidata"])
	}
	if *got[0]["entity_to_link"] != "Q123" {
		t.Errorf("entity_to_link = %q", *got[0]["entity_to_link"])
	}

	// keys keep column order
	if i, j := bytes.Index(buf.Bytes(), []byte(`"name"`)), bytes.Index(buf.Bytes(), []byte(`"wikidata"`)); i > j {
		t.Error("JSON keys should follow column order")
	}
}

func TestWrite_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, table.New("a"), FormatJSON, ""); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := buf.String(); got != "[]\n" {
		t.Errorf("Write() = %q, want %q", got, "[]\n")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out/coauthor_list.csv", FormatCSV, false},
		{"x.TSV", FormatTSV, false},
		{"x.json", FormatJSON, false},
		{"x.xlsx", FormatXLSX, false},
		{"x.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("error = %v, want ErrUnknownFormat", err)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coauthor_list.xlsx")
	if err := WriteFile(path, sampleTable()); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(0); got != "coauthor_list" {
		t.Errorf("sheet = %q, want coauthor_list", got)
	}
	rows, err := f.GetRows("coauthor_list")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][2] != "wikidata" || rows[1][1] != "Q123" {
		t.Errorf("rows = %v", rows)
	}
	if len(rows[2]) > 2 && rows[2][2] != "" {
		t.Errorf("null cell = %q, want empty", rows[2][2])
	}
}

func TestWrite_XLSXLongSheetName(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		want  string
	}{
		{"ascii", strings.Repeat("a", 40), strings.Repeat("a", 31)},
		{"accented", strings.Repeat("é", 40), strings.Repeat("é", 31)},
		{"fits in runes", "Proceedings Ærø Sønderborg 2021", "Proceedings Ærø Sønderborg 2021"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, sampleTable(), FormatXLSX, tt.sheet); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			f, err := excelize.OpenReader(&buf)
			if err != nil {
				t.Fatalf("OpenReader() error = %v", err)
			}
			defer f.Close()
			if got := f.GetSheetName(0); got != tt.want {
				t.Errorf("sheet = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), CoauthorFile)
	if err := WriteFile(path, sampleTable()); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("name,entity_to_link,wikidata\n")) {
		t.Errorf("unexpected file content:\n%s", data)
	}
}

func TestWriteFile_UnknownExtension(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "out.txt"), sampleTable())
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("WriteFile() error = %v, want ErrUnknownFormat", err)
	}
}
