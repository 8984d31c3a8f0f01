// Command gridchop extracts a rectangular sub-volume from a corner-point grid
// deck and writes it as a new, self-contained deck.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/banshee-data/gridchop/internal/config"
	"github.com/banshee-data/gridchop/internal/cpgrid"
	"github.com/banshee-data/gridchop/internal/fsutil"
	"github.com/banshee-data/gridchop/internal/grdecl"
	"github.com/banshee-data/gridchop/internal/monitoring"
	"github.com/banshee-data/gridchop/internal/preview"
	"github.com/banshee-data/gridchop/internal/runlog"
	"github.com/banshee-data/gridchop/internal/timeutil"
	"github.com/banshee-data/gridchop/internal/version"
)

// clock stamps and times runs.
var clock timeutil.Clock = timeutil.RealClock{}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cliFlags holds the parsed command line.
type cliFlags struct {
	configPath *string
	in, out    *string
	imin, imax *int
	jmin, jmax *int
	zmin, zmax *float64
	fields     *string
	plot       *string
	surface    *string
	history    *string
	limits     *bool
	runs       *int
	version    *bool
	quiet      *bool
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *cliFlags) {
	fs := flag.NewFlagSet("gridchop", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cliFlags{
		configPath: fs.String("config", "", "JSON config file (.json); flags override its values"),
		in:         fs.String("in", "", "Input grid deck"),
		out:        fs.String("out", "", "Output deck for the chopped grid"),
		imin:       fs.Int("imin", 0, "First I column (inclusive)"),
		imax:       fs.Int("imax", 0, "Last I column (exclusive, default nx)"),
		jmin:       fs.Int("jmin", 0, "First J row (inclusive)"),
		jmax:       fs.Int("jmax", 0, "Last J row (exclusive, default ny)"),
		zmin:       fs.Float64("zmin", math.Inf(-1), "Shallowest depth to keep (clamped to the grid)"),
		zmax:       fs.Float64("zmax", math.Inf(1), "Deepest depth to keep (clamped to the grid)"),
		fields:     fs.String("fields", "", "Comma-separated extra per-cell keywords to carry over (e.g. NTG,FIPNUM)"),
		plot:       fs.String("plot", "", "Write a PNG of per-layer depth span to this path"),
		surface:    fs.String("surface", "", "Write an HTML chart of the top surface to this path"),
		history:    fs.String("history", "", "SQLite database recording every run"),
		limits:     fs.Bool("limits", false, "Print grid dimensions and z-limits, then exit"),
		runs:       fs.Int("runs", 0, "Print the N most recent runs from -history, then exit"),
		version:    fs.Bool("version", false, "Print version and exit"),
		quiet:      fs.Bool("quiet", false, "Suppress diagnostic logging"),
	}
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: gridchop -in grid.grdecl -out chopped.grdecl [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	return fs, f
}

// overrides returns a config holding only the flags set on the command line.
func (f *cliFlags) overrides(fs *flag.FlagSet) *config.ChopConfig {
	o := &config.ChopConfig{}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "in":
			o.Input = config.String(*f.in)
		case "out":
			o.Output = config.String(*f.out)
		case "imin":
			o.IMin = config.Int(*f.imin)
		case "imax":
			o.IMax = config.Int(*f.imax)
		case "jmin":
			o.JMin = config.Int(*f.jmin)
		case "jmax":
			o.JMax = config.Int(*f.jmax)
		case "zmin":
			o.ZMin = config.Float64(*f.zmin)
		case "zmax":
			o.ZMax = config.Float64(*f.zmax)
		case "fields":
			o.ExtraFields = splitFields(*f.fields)
		case "plot":
			o.PlotPath = config.String(*f.plot)
		case "surface":
			o.SurfaceHTML = config.String(*f.surface)
		case "history":
			o.HistoryDB = config.String(*f.history)
		}
	})
	return o
}

func splitFields(s string) []string {
	out := []string{}
	for _, name := range strings.Split(s, ",") {
		if name = strings.ToUpper(strings.TrimSpace(name)); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func run(args []string, stdout, stderr io.Writer) int {
	fs, f := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return 2
	}

	if *f.version {
		fmt.Fprintf(stdout, "gridchop %s\n", version.String())
		return 0
	}
	if *f.quiet {
		monitoring.SetLogger(nil)
	}

	cfg := &config.ChopConfig{}
	if *f.configPath != "" {
		loaded, err := config.LoadChopConfig(*f.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "gridchop: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	cfg.Merge(f.overrides(fs))
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "gridchop: invalid options: %v\n", err)
		return 1
	}

	ctx := context.Background()
	var err error
	switch {
	case *f.runs > 0:
		err = listRuns(ctx, cfg, *f.runs, stdout)
	case *f.limits:
		err = printLimits(cfg, stdout)
	default:
		err = chop(ctx, cfg, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "gridchop: %v\n", err)
		return 1
	}
	return 0
}

func loadChopper(fsys fsutil.FileSystem, cfg *config.ChopConfig) (*grdecl.Deck, *cpgrid.Chopper, error) {
	in := cfg.GetInput()
	if in == "" {
		return nil, nil, errors.New("no input deck given (-in)")
	}
	r, err := fsys.Open(in)
	if err != nil {
		return nil, nil, &cpgrid.IOError{Op: "open", Path: in, Err: err}
	}
	defer r.Close()

	deck, err := grdecl.Read(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", in, err)
	}
	c, err := cpgrid.NewChopper(deck,
		cpgrid.WithExtraFields(cfg.ExtraFields...),
		cpgrid.WithFileSystem(fsys),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", in, err)
	}
	return deck, c, nil
}

func printLimits(cfg *config.ChopConfig, stdout io.Writer) error {
	_, c, err := loadChopper(fsutil.OSFileSystem{}, cfg)
	if err != nil {
		return err
	}
	botmax, topmin := c.ZLimits()
	fmt.Fprintf(stdout, "dimensions %s\n", c.Dimensions())
	fmt.Fprintf(stdout, "z-limits %g %g\n", botmax, topmin)

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "k\tmin\tmax")
	for _, e := range c.LayerExtents() {
		fmt.Fprintf(tw, "%d\t%g\t%g\n", e.K, e.Min, e.Max)
	}
	return tw.Flush()
}

func chop(ctx context.Context, cfg *config.ChopConfig, stdout io.Writer) error {
	fsys := fsutil.OSFileSystem{}
	out := cfg.GetOutput()
	if out == "" {
		return errors.New("no output deck given (-out)")
	}

	deck, c, err := loadChopper(fsys, cfg)
	if err != nil {
		return err
	}
	dims := c.Dimensions()
	region := cpgrid.Region{
		IMin: cfg.GetIMin(), IMax: cfg.GetIMax(dims.NX),
		JMin: cfg.GetJMin(), JMax: cfg.GetJMax(dims.NY),
		ZMin: cfg.GetZMin(), ZMax: cfg.GetZMax(),
	}

	start := clock.Now()
	sg, err := c.Chop(region)
	if err == nil {
		if err = fsutil.EnsureParent(fsys, out); err == nil {
			err = c.WriteDeck(out)
		}
	}
	if histErr := recordRun(ctx, cfg, region, sg, start, err); histErr != nil {
		monitoring.Logf("failed to record run history: %v", histErr)
	}
	if err != nil {
		return err
	}

	if path := cfg.GetPlotPath(); path != "" {
		if err := preview.SaveLayerPlot(fsys, path, c.LayerExtents(), sg.Layers); err != nil {
			return fmt.Errorf("layer plot: %w", err)
		}
	}
	if path := cfg.GetSurfaceHTML(); path != "" {
		depths, err := cpgrid.ColumnTopDepths(deck.FloatField(grdecl.KeywordZcorn), dims)
		if err != nil {
			return err
		}
		if err := preview.SaveSurfaceHTML(fsys, path, dims, depths, sg.Region); err != nil {
			return fmt.Errorf("surface chart: %w", err)
		}
	}

	fmt.Fprintf(stdout, "wrote %s: %s, layers [%d, %d), z [%g, %g], %d active cells\n",
		out, sg.Dims, sg.Layers.KMin, sg.Layers.KMax, sg.Layers.ZMin, sg.Layers.ZMax, sg.ActiveCells())
	return nil
}

// recordRun appends the outcome to the history database when one is
// configured. A nil sg means the chop failed with chopErr.
func recordRun(ctx context.Context, cfg *config.ChopConfig, region cpgrid.Region, sg *cpgrid.SubGrid, start time.Time, chopErr error) error {
	path := cfg.GetHistoryDB()
	if path == "" {
		return nil
	}
	store, err := runlog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	r := runlog.Run{
		StartedAt: start,
		Input:     cfg.GetInput(),
		Output:    cfg.GetOutput(),
		IMin:      region.IMin,
		IMax:      region.IMax,
		JMin:      region.JMin,
		JMax:      region.JMax,
		ZMin:      region.ZMin,
		ZMax:      region.ZMax,
		Duration:  clock.Since(start),
	}
	if chopErr != nil {
		r.Err = chopErr.Error()
	}
	if sg != nil && chopErr == nil {
		r.ZMin, r.ZMax = sg.Layers.ZMin, sg.Layers.ZMax
		r.KMin, r.KMax = sg.Layers.KMin, sg.Layers.KMax
		r.NX, r.NY, r.NZ = sg.Dims.NX, sg.Dims.NY, sg.Dims.NZ
		r.ActiveCells = sg.ActiveCells()
		r.Fields = strings.Join(sg.Fields, ",")
	}
	id, err := store.Record(ctx, r)
	if err != nil {
		return err
	}
	monitoring.Logf("recorded run %s in %s", id, path)
	return nil
}

func listRuns(ctx context.Context, cfg *config.ChopConfig, limit int, stdout io.Writer) error {
	path := cfg.GetHistoryDB()
	if path == "" {
		return errors.New("-runs needs a history database (-history)")
	}
	store, err := runlog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "run\tstarted\tinput\toutput\tselection\tresult")
	for _, r := range runs {
		result := fmt.Sprintf("%dx%dx%d, %d active", r.NX, r.NY, r.NZ, r.ActiveCells)
		if !r.Succeeded() {
			result = "failed: " + r.Err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\ti=[%d,%d) j=[%d,%d) z=[%g,%g]\t%s\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Input, r.Output,
			r.IMin, r.IMax, r.JMin, r.JMax, r.ZMin, r.ZMax, result)
	}
	return tw.Flush()
}
