package services

import (
	"errors"
	"fmt"
	"math"

	"churn-insight-service/internal/core/domain"
)

const (
	DefaultHistogramBins = 20
	MaxHistogramBins     = 200
)

var chartColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

type AnalyticsService struct {
	defaultBins int
}

func NewAnalyticsService(defaultBins int) *AnalyticsService {
	return &AnalyticsService{defaultBins: clampBins(defaultBins, DefaultHistogramBins)}
}

// Analyze draws every chart it can for the dataset. Charts that cannot be
// drawn leave a notice instead of failing the report; an invalid column
// request still fails.
func (s *AnalyticsService) Analyze(ds *domain.Dataset, column string, bins int) (*domain.AnalyticsReport, error) {
	if ds == nil || ds.RowCount() == 0 {
		return nil, domain.ErrEmptyInput
	}
	if bins < 0 {
		return nil, domain.ErrInvalidBins
	}

	report := &domain.AnalyticsReport{
		RowCount:       ds.RowCount(),
		NumericColumns: NumericColumns(ds),
	}

	pie, err := ChurnDistribution(ds)
	switch {
	case err == nil:
		report.ChurnDistribution = pie
	case errors.Is(err, domain.ErrColumnNotFound):
		report.Notices = append(report.Notices, fmt.Sprintf("Column '%s' not found, cannot create churn chart.", domain.ChurnColumn))
	default:
		return nil, err
	}

	if bins == 0 {
		bins = s.defaultBins
	}
	hist, err := BuildHistogram(ds, column, clampBins(bins, s.defaultBins))
	switch {
	case err == nil:
		report.Histogram = hist
	case errors.Is(err, domain.ErrNoNumericColumns):
		report.Notices = append(report.Notices, "No numeric columns found for visualization.")
	default:
		return nil, err
	}

	return report, nil
}

// ChurnDistribution counts the values of the Churn column.
func ChurnDistribution(ds *domain.Dataset) (*domain.PieChart, error) {
	idx := ds.ColumnIndex(domain.ChurnColumn)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrColumnNotFound, domain.ChurnColumn)
	}

	counts := make(map[string]int)
	labels := distinctValues(ds, idx)
	total := 0
	for _, row := range ds.Rows {
		cell := row[idx]
		if isMissing(cell) {
			continue
		}
		counts[cell]++
		total++
	}

	slices := make([]domain.PieSlice, 0, len(labels))
	for _, label := range labels {
		slices = append(slices, domain.PieSlice{
			Label: label,
			Count: counts[label],
			Share: roundTo(float64(counts[label])/float64(total), 4),
		})
	}

	return &domain.PieChart{
		Column: domain.ChurnColumn,
		Title:  "Churn vs Retained",
		Slices: slices,
		Colors: assignColors(len(slices)),
	}, nil
}

func NumericColumns(ds *domain.Dataset) []string {
	cols := make([]string, 0)
	for _, c := range ds.Columns {
		if c.Kind == domain.ColumnKindNumeric {
			cols = append(cols, c.Name)
		}
	}
	return cols
}

// BuildHistogram bins a numeric column into equal-width buckets between its
// min and max. The last bucket includes the max. An empty column name picks
// the first numeric column.
func BuildHistogram(ds *domain.Dataset, column string, bins int) (*domain.Histogram, error) {
	if bins <= 0 {
		return nil, domain.ErrInvalidBins
	}

	if column == "" {
		numeric := NumericColumns(ds)
		if len(numeric) == 0 {
			return nil, domain.ErrNoNumericColumns
		}
		column = numeric[0]
	}

	idx := ds.ColumnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrColumnNotFound, column)
	}
	if ds.Columns[idx].Kind != domain.ColumnKindNumeric {
		return nil, fmt.Errorf("%w: %s", domain.ErrColumnNotNumeric, column)
	}

	values := numericValues(ds, idx)
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if lo == hi {
		bins = 1
	}
	width := (hi - lo) / float64(bins)

	buckets := make([]domain.HistogramBin, bins)
	for i := range buckets {
		buckets[i].Lower = lo + float64(i)*width
		buckets[i].Upper = lo + float64(i+1)*width
	}
	buckets[bins-1].Upper = hi

	for _, v := range values {
		i := bins - 1
		if width > 0 {
			i = int((v - lo) / width)
			if i >= bins {
				i = bins - 1
			}
		}
		buckets[i].Count++
	}

	return &domain.Histogram{
		Column: column,
		Title:  "Distribution of " + column,
		Bins:   buckets,
		Colors: assignColors(1),
	}, nil
}

func clampBins(bins, fallback int) int {
	if bins <= 0 {
		return fallback
	}
	if bins > MaxHistogramBins {
		return MaxHistogramBins
	}
	return bins
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = chartColors[i%len(chartColors)]
	}
	return colors
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
