package services

import (
	"fmt"
	"sort"
	"strings"

	"churn-insight-service/internal/core/domain"
)

// EncodeRecord turns every value of the record into a number. Numeric values
// pass through; text values become integer category codes. choices holds the
// known categories per column (usually the uploaded dataset's distinct
// values) and encodings the category map shipped with the model.
func EncodeRecord(record domain.RawRecord, choices map[string][]string, encodings map[string]map[string]int, strategy domain.EncodingStrategy) (map[string]float64, []string) {
	encoded := make(map[string]float64, len(record))
	var warnings []string

	for _, name := range sortedKeys(record) {
		value := record[name]
		if value.IsNumeric() {
			encoded[name] = value.Num
			continue
		}

		if strategy == domain.EncodingArtifact {
			if mapping, ok := encodings[name]; ok {
				code, known := mapping[value.Text]
				if !known {
					code = domain.UnseenCategoryCode
					warnings = append(warnings, fmt.Sprintf("column %q: category %q unknown to the model, encoded as %d", name, value.Text, code))
				}
				encoded[name] = float64(code)
				continue
			}
		}

		encoded[name] = float64(enumerationCode(value.Text, choices[name]))
	}

	return encoded, warnings
}

// enumerationCode is the position of value among the sorted distinct values
// seen for a column.
func enumerationCode(value string, seen []string) int {
	set := make(map[string]struct{}, len(seen)+1)
	set[value] = struct{}{}
	for _, s := range seen {
		set[s] = struct{}{}
	}
	categories := make([]string, 0, len(set))
	for s := range set {
		categories = append(categories, s)
	}
	sort.Strings(categories)
	return sort.SearchStrings(categories, value)
}

// Align projects an encoded record onto the contract: same names, same order.
// Missing features are filled according to policy and extra columns dropped.
func Align(encoded map[string]float64, contract domain.FeatureContract, policy domain.SchemaPolicy) (domain.AlignedVector, error) {
	vector := domain.AlignedVector{
		Features: make([]domain.AlignedFeature, len(contract.Names)),
	}

	known := make(map[string]struct{}, len(contract.Names))
	for i, name := range contract.Names {
		known[name] = struct{}{}

		if v, ok := encoded[name]; ok {
			vector.Features[i] = domain.AlignedFeature{Name: name, Value: v}
			continue
		}

		vector.MissingFeatures = append(vector.MissingFeatures, name)
		fill := 0.0
		if policy == domain.SchemaPolicyImputeMean && contract.HasMeans() {
			fill = contract.Means[i]
		}
		vector.Features[i] = domain.AlignedFeature{Name: name, Value: fill, Filled: true}
	}

	for _, name := range sortedKeys(encoded) {
		if _, ok := known[name]; !ok {
			vector.DroppedColumns = append(vector.DroppedColumns, name)
		}
	}

	if policy == domain.SchemaPolicyFailFast && len(vector.MissingFeatures) > 0 {
		return domain.AlignedVector{}, fmt.Errorf("%w: missing %s", domain.ErrSchemaMismatch, strings.Join(vector.MissingFeatures, ", "))
	}

	return vector, nil
}

// TopFactors pairs importances with feature names and keeps the n heaviest.
// It returns nil when the contract carries no importances.
func TopFactors(contract domain.FeatureContract, n int) []domain.Factor {
	if !contract.HasImportances() || n <= 0 {
		return nil
	}

	factors := make([]domain.Factor, len(contract.Names))
	for i, name := range contract.Names {
		factors[i] = domain.Factor{Feature: name, Importance: contract.Importances[i]}
	}
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Importance > factors[j].Importance
	})

	if n > len(factors) {
		n = len(factors)
	}
	return factors[:n]
}

// alignmentWarnings describes silently reconciled schema differences.
func alignmentWarnings(vector domain.AlignedVector, contract domain.FeatureContract, policy domain.SchemaPolicy) []string {
	var warnings []string
	if len(vector.MissingFeatures) > 0 {
		fill := "0"
		if policy == domain.SchemaPolicyImputeMean && contract.HasMeans() {
			fill = "the training mean"
		}
		warnings = append(warnings, fmt.Sprintf("missing model features filled with %s: %s", fill, strings.Join(vector.MissingFeatures, ", ")))
	}
	if len(vector.DroppedColumns) > 0 {
		warnings = append(warnings, fmt.Sprintf("columns ignored by the model: %s", strings.Join(vector.DroppedColumns, ", ")))
	}
	return warnings
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
