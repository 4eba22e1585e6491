package models

// Chart kinds rendered by the dashboard.
const (
	ChartLine = "Line"
	ChartBar  = "Bar"
	ChartPie  = "Pie"
)

// ChartPoint is a single (x, y) sample. Labelled points (pie slices) use Label
// instead of X.
type ChartPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// ChartSeries is one named series of a chart.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name"`
	// Kind overrides the chart kind for this series (e.g. a line over bars).
	Kind string `json:"kind,omitempty"`
	// Points holds the series samples in display order.
	Points []ChartPoint `json:"points"`
}

// Chart describes one dashboard view.
type Chart struct {
	// Name is the stable chart identifier used in URLs and file names.
	Name string `json:"name"`
	// ChartType is Line, Bar or Pie.
	ChartType string `json:"chart_type"`
	// Title is the chart title.
	Title string `json:"title"`
	// XAxisTitle is the X-axis title.
	XAxisTitle string `json:"x_axis_title,omitempty"`
	// YAxisTitle is the Y-axis title.
	YAxisTitle string `json:"y_axis_title,omitempty"`
	// Placeholder marks a greyed-out chart rendered for an empty slice.
	Placeholder bool `json:"placeholder"`
	// Series is the list of series included in the chart.
	Series []ChartSeries `json:"series"`
}
