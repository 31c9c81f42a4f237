// Package report renders experiment results as terminal tables and charts.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"

	"github.com/san-kum/sdelab/internal/config"
	"github.com/san-kum/sdelab/internal/experiment"
	"github.com/san-kum/sdelab/internal/wiener"
)

const (
	chartHeight = 12
	chartWidth  = 72
)

func title(w io.Writer, s string) {
	fmt.Fprintln(w, titleStyle.Render(s))
}

func field(w io.Writer, label string, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(fmt.Sprintf(format, args...)))
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	tbl := tablewriter.NewWriter(w)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetHeader(header)
	tbl.SetBorder(true)
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
	return tbl
}

func params(p map[string]float64) string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + num(p[name])
	}
	return strings.Join(parts, " ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Paths prints summary statistics of a Wiener ensemble, its standard
// deviation against sqrt(t), and a chart of up to maxPaths paths.
func Paths(w io.Writer, ens *wiener.Ensemble, maxPaths int) {
	title(w, "brownian motion")
	field(w, "paths", "%d", ens.Samples())
	field(w, "steps", "%d (dt=%g)", ens.Steps(), ens.Grid.Dt())
	field(w, "mean W(T)^2", "%.6f (expected %g)", ens.MeanSquareTerminal(), ens.Grid.Horizon)
	fmt.Fprintln(w)

	if ens.Samples() < 2 {
		field(w, "std W(t)", "needs at least two paths")
	} else {
		ts := ens.Grid.Times()
		tbl := newTable(w, "t", "std W(t)", "sqrt(t)", "rel err")
		stride := max(ens.Steps()/10, 1)
		for i := stride; i <= ens.Steps(); i += stride {
			sd := ens.StdDevAt(i)
			want := math.Sqrt(ts[i])
			tbl.Append([]string{num(ts[i]), num(sd), num(want), num(math.Abs(sd-want) / want)})
		}
		tbl.Render()
	}
	fmt.Fprintln(w)

	if maxPaths <= 0 {
		return
	}
	n := min(maxPaths, ens.Samples())
	series := make([][]float64, n)
	for j := range series {
		series[j] = ens.Path(j)
	}
	fmt.Fprintln(w, asciigraph.PlotMany(series,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(fmt.Sprintf("W(t), %d sample paths", n)),
	))
}

// Integrals prints the Itô and Stratonovich sums for the first rows samples,
// with closed forms when known.
func Integrals(w io.Writer, res *experiment.IntegralResult, rows int) {
	title(w, "stochastic integrals of "+res.Integrand+" dW")
	if res.HasClosedForm() {
		field(w, "ito mean abs error", "%.3e", res.ItoError())
		field(w, "stratonovich mean abs error", "%.3e", res.StratonovichError())
	} else {
		field(w, "closed form", "none")
	}
	fmt.Fprintln(w)

	header := []string{"sample", "ito", "stratonovich"}
	if res.HasClosedForm() {
		header = append(header, "ito exact", "strat exact")
	}
	tbl := newTable(w, header...)
	for j := 0; j < min(rows, len(res.Ito)); j++ {
		row := []string{strconv.Itoa(j), num(res.Ito[j]), num(res.Stratonovich[j])}
		if res.HasClosedForm() {
			row = append(row, num(res.ItoExact[j]), num(res.StratonovichExact[j]))
		}
		tbl.Append(row)
	}
	tbl.Render()
}

// Solve prints terminal errors of one scheme run and charts sample 0
// against the exact solution.
func Solve(w io.Writer, res *experiment.SolveResult) {
	traj := res.Trajectories
	title(w, res.Integrator)
	field(w, "model", "%s", params(res.Params))
	field(w, "stride", "%d (dt=%g)", traj.Stride, traj.Dt())
	field(w, "strong error at T", "%.6e", res.Strong)
	field(w, "weak error at T", "%.6e", res.Weak)
	field(w, "ensemble mean X(T)", "%.6f (x0 exp(lambda T) = %.6f)", res.Mean, res.ExpectedMean)
	fmt.Fprintln(w)

	fmt.Fprintln(w, asciigraph.PlotMany([][]float64{traj.Path(0), res.ExactPath},
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption("sample 0: scheme (red) vs exact (blue)"),
	))
}

// Convergence prints the error table and fitted orders and charts log10 of
// both errors against the step index.
func Convergence(w io.Writer, res *experiment.ConvergenceResult) {
	title(w, "convergence of "+res.Integrator)

	tbl := newTable(w, "stride", "dt", "strong", "weak")
	for _, p := range res.Points {
		tbl.Append([]string{strconv.Itoa(p.Stride), num(p.Dt), num(p.Strong), num(p.Weak)})
	}
	tbl.Render()
	fmt.Fprintln(w)

	if res.StrongFit == nil || res.WeakFit == nil {
		field(w, "fitted order", "needs at least two strides")
		return
	}
	field(w, "strong order", "%.3f (r^2=%.3f)", res.StrongFit.Order, res.StrongFit.RSquared)
	field(w, "weak order", "%.3f (r^2=%.3f)", res.WeakFit.Order, res.WeakFit.RSquared)
	fmt.Fprintln(w)

	strong := make([]float64, len(res.Points))
	weak := make([]float64, len(res.Points))
	for i, p := range res.Points {
		if p.Strong <= 0 || p.Weak <= 0 {
			return
		}
		strong[i] = math.Log10(p.Strong)
		weak[i] = math.Log10(p.Weak)
	}
	fmt.Fprintln(w, asciigraph.PlotMany([][]float64{strong, weak},
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption("log10 error vs step size: strong (red), weak (blue)"),
	))
}

// Presets lists the named presets with their main parameters.
func Presets(w io.Writer, names []string) {
	tbl := newTable(w, "preset", "T", "N", "M", "seed", "integrator", "strides")
	for _, name := range names {
		cfg := config.GetPreset(name)
		if cfg == nil {
			continue
		}
		tbl.Append([]string{
			name,
			num(cfg.Horizon),
			strconv.Itoa(cfg.Steps),
			strconv.Itoa(cfg.Samples),
			strconv.FormatInt(cfg.Seed, 10),
			cfg.Integrator,
			fmt.Sprint(cfg.Strides),
		})
	}
	tbl.Render()
}
