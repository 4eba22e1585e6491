package dashboard

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ukaji3/paystats-go/pkg/paystats/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Rendered image size.
const (
	ChartWidth  = 8 * vg.Inch
	ChartHeight = 4 * vg.Inch
)

var lightGrey = color.RGBA{R: 211, G: 211, B: 211, A: 255}

// RenderPNG renders chart into a PNG file at path.
func RenderPNG(chart models.Chart, path string) error {
	p, err := Plot(chart)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	if err := p.Save(ChartWidth, ChartHeight, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", chart.Name, err)
	}
	return nil
}

// WritePNG renders chart as PNG into w.
func WritePNG(w io.Writer, chart models.Chart) error {
	p, err := Plot(chart)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(ChartWidth, ChartHeight, "png")
	if err != nil {
		return fmt.Errorf("failed to render chart %s: %w", chart.Name, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// RenderView writes every chart of view as <name>.png into dir and returns
// the written paths.
func RenderView(view *View, dir string) ([]string, error) {
	paths := make([]string, 0, len(view.Charts))
	for _, chart := range view.Charts {
		path := filepath.Join(dir, chart.Name+".png")
		if err := RenderPNG(chart, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Plot builds the gonum plot of chart. Pie charts are drawn as bars of each
// slice's share of the total.
func Plot(chart models.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = chart.Title
	p.X.Label.Text = chart.XAxisTitle
	p.Y.Label.Text = chart.YAxisTitle

	if chart.Placeholder {
		p.Title.TextStyle.Color = lightGrey
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
		grid := plotter.NewGrid()
		grid.Vertical.Color = lightGrey
		grid.Horizontal.Color = lightGrey
		p.Add(grid)
		return p, nil
	}

	var err error
	switch chart.ChartType {
	case models.ChartLine:
		err = addLines(p, chart.Series)
	case models.ChartBar:
		err = addBars(p, chart.Series)
	case models.ChartPie:
		err = addShares(p, chart.Series)
	default:
		err = fmt.Errorf("unsupported chart type %q", chart.ChartType)
	}
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", chart.Name, err)
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p, nil
}

func addLines(p *plot.Plot, series []models.ChartSeries) error {
	drawn := 0
	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		drawn++
		points := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			points[j] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		line, scatter, err := plotter.NewLinePoints(points)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		scatter.Color = plotutil.Color(i)
		p.Add(line, scatter)
		p.Legend.Add(s.Name, line)
	}
	if drawn > 0 {
		p.X.Tick.Marker = yearTicks{}
	}
	return nil
}

// addBars draws bar series at one nominal position per year, with line
// series overlaid on the same positions.
func addBars(p *plot.Plot, series []models.ChartSeries) error {
	var years []float64
	seen := map[float64]bool{}
	for _, s := range series {
		for _, pt := range s.Points {
			if !seen[pt.X] {
				seen[pt.X] = true
				years = append(years, pt.X)
			}
		}
	}
	if len(years) == 0 {
		return nil
	}
	sort.Float64s(years)
	position := make(map[float64]int, len(years))
	labels := make([]string, len(years))
	for i, y := range years {
		position[y] = i
		labels[i] = strconv.Itoa(int(y))
	}

	for i, s := range series {
		if s.Kind == models.ChartLine {
			points := make(plotter.XYs, len(s.Points))
			for j, pt := range s.Points {
				points[j] = plotter.XY{X: float64(position[pt.X]), Y: pt.Y}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				return err
			}
			line.Color = plotutil.Color(i)
			line.Width = vg.Points(3)
			p.Add(line)
			p.Legend.Add(s.Name, line)
			continue
		}

		values := make(plotter.Values, len(years))
		for _, pt := range s.Points {
			values[position[pt.X]] = pt.Y
		}
		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return err
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}
	p.NominalX(labels...)
	return nil
}

func addShares(p *plot.Plot, series []models.ChartSeries) error {
	if len(series) == 0 || len(series[0].Points) == 0 {
		return nil
	}
	points := series[0].Points

	total := 0.0
	for _, pt := range points {
		total += pt.Y
	}
	values := make(plotter.Values, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		if total != 0 {
			values[i] = pt.Y / total
		}
		labels[i] = pt.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.Y.Label.Text = "share"
	p.Y.Min = 0
	return nil
}

// yearTicks places one tick per whole year in range.
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	if max-min > 50 {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	var ticks []plot.Tick
	for y := int(min); float64(y) <= max; y++ {
		if float64(y) < min {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}
	return ticks
}
