package domain

type ColumnKind string

const (
	ColumnKindCategorical ColumnKind = "categorical"
	ColumnKindNumeric     ColumnKind = "numeric"
)

type Column struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// Dataset is an uploaded table. Every row has exactly len(Columns) cells;
// an empty cell is a missing value.
type Dataset struct {
	Columns []Column
	Rows    [][]string
}

func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// FormFieldKind tags the variant held by a FormField.
type FormFieldKind string

const (
	FormFieldCategorical FormFieldKind = "categorical"
	FormFieldNumeric     FormFieldKind = "numeric"
)

type CategoricalField struct {
	Choices []string `json:"choices"`
	Default string   `json:"default"`
}

type NumericField struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// FormField describes one input widget mirroring a dataset column. Exactly
// one of Categorical and Numeric is set, matching Kind.
type FormField struct {
	Name        string
	Label       string
	Kind        FormFieldKind
	Categorical *CategoricalField
	Numeric     *NumericField
}

// DefaultValue is the value the widget starts with.
func (f FormField) DefaultValue() Value {
	if f.Kind == FormFieldNumeric && f.Numeric != nil {
		return Numeric(f.Numeric.Default)
	}
	if f.Categorical != nil {
		return Text(f.Categorical.Default)
	}
	return Text("")
}
