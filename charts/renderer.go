package charts

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/mrsyaban/bike-rental-analysis/domain/business/aggregate"
	"github.com/mrsyaban/bike-rental-analysis/domain/business/correlation"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/weather"
	"github.com/mrsyaban/bike-rental-analysis/pipeline"
)

const (
	rendererType = "chart-renderer"

	DailyChart       = "daily"
	WeatherChart     = "weather"
	CategoriesChart  = "categories"
	CorrelationChart = "correlation"
	TemperatureChart = "temperature"
	HumidityChart    = "humidity"
	WindSpeedChart   = "windspeed"

	DefaultFormat = "png"
)

var (
	workingDayColor    = color.RGBA{B: 255, A: 255}
	nonWorkingDayColor = color.RGBA{R: 255, A: 255}
)

// ChartNames returns every chart the renderer can draw
func ChartNames() []string {
	return []string{DailyChart, WeatherChart, CategoriesChart, CorrelationChart, TemperatureChart, HumidityChart, WindSpeedChart}
}

// Renderer draws the dashboard charts of a pipeline result with gonum/plot
type Renderer struct {
	width  vg.Length
	height vg.Length
}

// NewRenderer receives the size of the charts in inches. Non positive values fall back to 8x5
func NewRenderer(widthInches float64, heightInches float64) *Renderer {
	if widthInches <= 0 {
		widthInches = 8
	}
	if heightInches <= 0 {
		heightInches = 5
	}

	return &Renderer{
		width:  vg.Length(widthInches) * vg.Inch,
		height: vg.Length(heightInches) * vg.Inch,
	}
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", rendererType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", rendererType, method, message)
}

// Plot builds the chart called name
func (r *Renderer) Plot(name string, result *pipeline.Result) (*plot.Plot, error) {
	if result == nil {
		return nil, fmt.Errorf("nil pipeline result")
	}

	switch name {
	case DailyChart:
		return dailyPlot(result.Selected, result.Request.UserType)
	case WeatherChart:
		return averagesPlot("Average Rentals by Weather Condition", "Weather Condition", result.WeatherAverages)
	case CategoriesChart:
		return averagesPlot("Average Rentals by Weather Category", "Weather Category", result.CategoryAverages)
	case CorrelationChart:
		return correlationPlot(result.Correlation), nil
	case TemperatureChart:
		return factorPlot("Temperature vs Total Rentals", "Temperature (Normalized)", result.Records, func(record rental.Record) float64 { return record.Temperature })
	case HumidityChart:
		return factorPlot("Humidity vs Total Rentals", "Humidity (Normalized)", result.Records, func(record rental.Record) float64 { return record.Humidity })
	case WindSpeedChart:
		return factorPlot("Wind Speed vs Total Rentals", "Wind Speed (Normalized)", result.Records, func(record rental.Record) float64 { return record.WindSpeed })
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownChart, name)
}

// Render writes the chart called name to w. format is any format supported by gonum/plot (png, svg, pdf...)
func (r *Renderer) Render(w io.Writer, name string, format string, result *pipeline.Result) error {
	p, err := r.Plot(name, result)
	if err != nil {
		return err
	}

	writerTo, err := p.WriterTo(r.width, r.height, format)
	if err != nil {
		return fmt.Errorf("error rendering chart %s: %w", name, err)
	}

	_, err = writerTo.WriteTo(w)
	return err
}

// SaveAll saves every chart as <dir>/<name>.<format> and returns the paths written
func (r *Renderer) SaveAll(result *pipeline.Result, dir string, format string) ([]string, error) {
	if format == "" {
		format = DefaultFormat
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating charts directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(ChartNames()))
	for _, name := range ChartNames() {
		p, err := r.Plot(name, result)
		if err != nil {
			return paths, err
		}

		path := filepath.Join(dir, fmt.Sprintf("%s.%s", name, format))
		if err := p.Save(r.width, r.height, path); err != nil {
			log.Error(getLogMessage("SaveAll", fmt.Sprintf("error saving %s", path), err))
			return paths, fmt.Errorf("error saving chart %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	log.Info(getLogMessage("SaveAll", fmt.Sprintf("%v charts saved in %s", len(paths), dir), nil))
	return paths, nil
}

func dailyPlot(projected aggregate.UserSeries, userType rental.UserType) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Daily Bike Rentals - %s Users", userTypeTitle(userType))
	p.X.Label.Text = "Date"
	p.Y.Label.Text = fmt.Sprintf("Number of %s Rentals", userTypeTitle(userType))
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Legend.Top = true

	layers := []struct {
		name   string
		points []aggregate.SeriesPoint
		color  color.Color
	}{
		{"Working Day", projected.Working, workingDayColor},
		{"Non-working Day", projected.NonWorking, nonWorkingDayColor},
	}

	for _, layer := range layers {
		if len(layer.points) == 0 {
			continue
		}

		xys := make(plotter.XYs, len(layer.points))
		for idx, point := range layer.points {
			xys[idx].X = float64(point.Date.Unix())
			xys[idx].Y = point.Value
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("error creating %s scatter: %w", layer.name, err)
		}
		scatter.GlyphStyle.Color = layer.color
		scatter.GlyphStyle.Radius = vg.Points(3)

		p.Add(scatter)
		p.Legend.Add(layer.name, scatter)
	}

	return p, nil
}

// averagesPlot draws one group of three bars (casual, registered, total) per row
func averagesPlot(title string, keyLabel string, rows []aggregate.AverageRow) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = keyLabel
	p.Y.Label.Text = "Average Rentals"
	p.Legend.Top = true

	if len(rows) == 0 {
		return p, nil
	}

	barWidth := vg.Points(14)
	columns := []struct {
		name  string
		value func(row aggregate.AverageRow) float64
	}{
		{"Casual", func(row aggregate.AverageRow) float64 { return row.Casual }},
		{"Registered", func(row aggregate.AverageRow) float64 { return row.Registered }},
		{"Total", func(row aggregate.AverageRow) float64 { return row.Total }},
	}

	keys := make([]string, len(rows))
	for idx, row := range rows {
		keys[idx] = row.Key
	}

	for columnIdx, column := range columns {
		values := make(plotter.Values, len(rows))
		for idx, row := range rows {
			values[idx] = column.value(row)
		}

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("error creating %s bars: %w", column.name, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(columnIdx)
		bars.Offset = vg.Length(columnIdx-1) * barWidth

		p.Add(bars)
		p.Legend.Add(column.name, bars)
	}

	p.NominalX(keys...)
	return p, nil
}

// correlationGrid adapts a correlation matrix to plotter.GridXYZ. NaN is drawn as 0
type correlationGrid struct {
	matrix correlation.Matrix
}

func (cg correlationGrid) Dims() (int, int) {
	return cg.matrix.Size(), cg.matrix.Size()
}

func (cg correlationGrid) Z(c int, r int) float64 {
	value := cg.matrix.At(r, c)
	if math.IsNaN(value) {
		return 0
	}
	return value
}

func (cg correlationGrid) X(c int) float64 {
	return float64(c)
}

func (cg correlationGrid) Y(r int) float64 {
	return float64(r)
}

func correlationPlot(matrix correlation.Matrix) *plot.Plot {
	p := plot.New()
	p.Title.Text = "Correlation between Weather Factors and Rentals"

	if matrix.Size() == 0 {
		return p
	}

	heatMap := plotter.NewHeatMap(correlationGrid{matrix: matrix}, palette.Heat(32, 1))
	heatMap.Min = -1
	heatMap.Max = 1
	p.Add(heatMap)

	p.NominalX(matrix.Columns()...)
	p.NominalY(matrix.Columns()...)
	return p
}

// factorPlot scatters a weather factor against the total rentals, one series per weather condition
func factorPlot(title string, factorLabel string, records []rental.Record, factor func(record rental.Record) float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = factorLabel
	p.Y.Label.Text = "Total Rentals"
	p.Legend.Top = true

	points := make(map[weather.Descriptor]plotter.XYs)
	for idx := range records {
		descriptor := weather.Describe(records[idx].WeatherSituation)
		points[descriptor] = append(points[descriptor], plotter.XY{X: factor(records[idx]), Y: float64(records[idx].Total)})
	}

	for idx, descriptor := range weather.Descriptors() {
		xys, ok := points[descriptor]
		if !ok {
			continue
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("error creating %s scatter: %w", descriptor, err)
		}
		scatter.GlyphStyle.Color = plotutil.Color(idx)
		scatter.GlyphStyle.Radius = vg.Points(2)

		p.Add(scatter)
		p.Legend.Add(string(descriptor), scatter)
	}

	return p, nil
}

func userTypeTitle(userType rental.UserType) string {
	if userType == rental.AllUsers || userType == "" {
		return "Total"
	}
	return string(userType)
}
