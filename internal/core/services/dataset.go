package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"churn-insight-service/internal/core/domain"
)

const DefaultPreviewRows = 5

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// missingMarkers are cell values read as a missing value.
var missingMarkers = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
	"<NA>": true,
	"#N/A": true,
}

type DatasetService struct {
	previewRows int
}

func NewDatasetService(previewRows int) *DatasetService {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}
	return &DatasetService{previewRows: previewRows}
}

// Parse reads a header-first CSV table and classifies every column.
func (s *DatasetService) Parse(r io.Reader) (*domain.Dataset, error) {
	return ParseDataset(r)
}

func (s *DatasetService) Preview(ds *domain.Dataset) []domain.RawRecord {
	return Preview(ds, s.previewRows)
}

func (s *DatasetService) Form(ds *domain.Dataset) []domain.FormField {
	return DeriveForm(ds)
}

func ParseDataset(r io.Reader) (*domain.Dataset, error) {
	if r == nil {
		return nil, domain.ErrEmptyInput
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDataset, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.ErrEmptyInput
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrMalformedDataset, err)
	}
	names := headerNames(header)

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedDataset, parseErr.Line, parseErr.Err)
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDataset, err)
		}
		if len(record) > len(names) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: expected %d fields, saw %d", domain.ErrMalformedDataset, line, len(names), len(record))
		}
		row := make([]string, len(names))
		for i, cell := range record {
			row[i] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: dataset has no rows", domain.ErrEmptyInput)
	}

	columns := make([]domain.Column, len(names))
	for i, name := range names {
		columns[i] = domain.Column{Name: name, Kind: detectKind(rows, i)}
	}

	return &domain.Dataset{Columns: columns, Rows: rows}, nil
}

// headerNames trims header cells, names blank ones after their position and
// suffixes repeats with .1, .2, ...
func headerNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if used[name] {
			base := name
			for n := 1; used[name]; n++ {
				name = fmt.Sprintf("%s.%d", base, n)
			}
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func detectKind(rows [][]string, col int) domain.ColumnKind {
	seen := false
	for _, row := range rows {
		cell := row[col]
		if isMissing(cell) {
			continue
		}
		if _, ok := parseNumber(cell); !ok {
			return domain.ColumnKindCategorical
		}
		seen = true
	}
	if !seen {
		return domain.ColumnKindCategorical
	}
	return domain.ColumnKindNumeric
}

func isMissing(cell string) bool {
	return missingMarkers[cell]
}

func parseNumber(cell string) (float64, bool) {
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// RecordFromRow converts one dataset row to a raw record. Missing cells are
// left out of the record.
func RecordFromRow(ds *domain.Dataset, index int) (domain.RawRecord, error) {
	if ds == nil || index < 0 || index >= ds.RowCount() {
		return nil, fmt.Errorf("%w: %d", domain.ErrRowOutOfRange, index)
	}

	row := ds.Rows[index]
	record := make(domain.RawRecord, len(ds.Columns))
	for i, col := range ds.Columns {
		cell := row[i]
		if isMissing(cell) {
			continue
		}
		if col.Kind == domain.ColumnKindNumeric {
			if f, ok := parseNumber(cell); ok {
				record[col.Name] = domain.Numeric(f)
				continue
			}
		}
		record[col.Name] = domain.Text(cell)
	}
	return record, nil
}

func Preview(ds *domain.Dataset, n int) []domain.RawRecord {
	if ds == nil {
		return nil
	}
	if n > ds.RowCount() {
		n = ds.RowCount()
	}
	preview := make([]domain.RawRecord, 0, n)
	for i := 0; i < n; i++ {
		record, _ := RecordFromRow(ds, i)
		preview = append(preview, record)
	}
	return preview
}

// DeriveForm builds one form field per column: a choice list for
// categorical columns, a bounded number input for numeric ones.
func DeriveForm(ds *domain.Dataset) []domain.FormField {
	if ds == nil {
		return nil
	}

	title := cases.Title(language.English, cases.NoLower)
	fields := make([]domain.FormField, 0, len(ds.Columns))
	for i, col := range ds.Columns {
		field := domain.FormField{
			Name:  col.Name,
			Label: displayLabel(title, col.Name),
		}

		if col.Kind == domain.ColumnKindNumeric {
			field.Kind = domain.FormFieldNumeric
			field.Numeric = numericField(ds, i)
		} else {
			choices := distinctValues(ds, i)
			def := ""
			if len(choices) > 0 {
				def = choices[0]
			}
			field.Kind = domain.FormFieldCategorical
			field.Categorical = &domain.CategoricalField{Choices: choices, Default: def}
		}
		fields = append(fields, field)
	}
	return fields
}

// DefaultRecord is the record a form submits when no widget is changed.
// Categorical fields without choices are left out.
func DefaultRecord(fields []domain.FormField) domain.RawRecord {
	record := make(domain.RawRecord, len(fields))
	for _, f := range fields {
		if f.Kind == domain.FormFieldCategorical && (f.Categorical == nil || len(f.Categorical.Choices) == 0) {
			continue
		}
		record[f.Name] = f.DefaultValue()
	}
	return record
}

// Choices returns the distinct values of every categorical column.
func Choices(ds *domain.Dataset) map[string][]string {
	if ds == nil {
		return nil
	}
	choices := make(map[string][]string)
	for i, col := range ds.Columns {
		if col.Kind == domain.ColumnKindCategorical {
			choices[col.Name] = distinctValues(ds, i)
		}
	}
	return choices
}

// distinctValues lists non-missing values in order of first appearance.
func distinctValues(ds *domain.Dataset, col int) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, row := range ds.Rows {
		cell := row[col]
		if isMissing(cell) || seen[cell] {
			continue
		}
		seen[cell] = true
		values = append(values, cell)
	}
	return values
}

func numericValues(ds *domain.Dataset, col int) []float64 {
	values := make([]float64, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		if f, ok := parseNumber(row[col]); ok {
			values = append(values, f)
		}
	}
	return values
}

func numericField(ds *domain.Dataset, col int) *domain.NumericField {
	values := numericValues(ds, col)
	if len(values) == 0 {
		return &domain.NumericField{}
	}

	lo, hi, sum := values[0], values[0], 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
	}
	return &domain.NumericField{Min: lo, Max: hi, Default: sum / float64(len(values))}
}

func displayLabel(title cases.Caser, name string) string {
	spaced := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return title.String(strings.Join(strings.Fields(spaced), " "))
}
