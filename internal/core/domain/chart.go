package domain

// ChurnColumn is the column the churn distribution chart is drawn from.
const ChurnColumn = "Churn"

type PieSlice struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

type PieChart struct {
	Column string
	Title  string
	Slices []PieSlice
	Colors []string
}

type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type Histogram struct {
	Column string
	Title  string
	Bins   []HistogramBin
	Colors []string
}

// AnalyticsReport bundles the charts for one uploaded dataset. Notices
// explain charts that could not be drawn.
type AnalyticsReport struct {
	RowCount          int
	NumericColumns    []string
	ChurnDistribution *PieChart
	Histogram         *Histogram
	Notices           []string
}
