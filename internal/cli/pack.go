package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SheetPack/internal/engine"
	perrors "github.com/piwi3910/SheetPack/internal/errors"
	"github.com/piwi3910/SheetPack/internal/export"
	"github.com/piwi3910/SheetPack/internal/format"
	"github.com/piwi3910/SheetPack/internal/importer"
	"github.com/piwi3910/SheetPack/internal/model"
	"github.com/piwi3910/SheetPack/internal/project"
)

// Report kinds accepted by flags and the config's reports list.
const (
	reportPDF  = "pdf"
	reportXLSX = "xlsx"
	reportDXF  = "dxf"
)

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	output   string   // output base path without extension
	packer   string   // packer name: "maxrects" or "simple"
	format   string   // metadata format name
	encoding string   // metadata encoding: "json" or "toml"
	options  []string // packer options as key=value
	pretty   bool     // indent metadata
	trim     bool     // crop transparent borders
	scale    float64  // resample factor applied on import
	list     string   // CSV/XLSX sprite list instead of positional inputs
	pdf      bool
	xlsx     bool
	dxf      bool
	manifest bool // write <output>.manifest.json
	preview  bool // draw sheets in the terminal
}

func (c *CLI) packCommand() *cobra.Command {
	opts := packOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "pack [INPUT...]",
		Short: "Pack images into sprite sheets",
		Long: `Pack images into sprite sheets.

Inputs may be image files, directories (non-recursive) or glob patterns.
With --list, sprite files and names are read from a CSV or Excel sheet.
A single sheet is written as <out>.png; several sheets as <out>-00.png,
<out>-01.png and so on, each with a metadata file next to it.`,
		Example: `  sheetpack pack sprites/*.png -o atlas
  sheetpack pack sprites -p maxrects -s max_width=1024 -s max_height=1024 --trim
  sheetpack pack --list sprites.csv -f amethyst_named -e toml --pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && opts.list == "" {
				return perrors.New(perrors.ErrCodeInvalidInput, "no inputs given (pass files, directories, globs or --list)")
			}
			settings, err := c.packSettings(cmd, opts)
			if err != nil {
				return err
			}
			return c.runPack(cmd.Context(), args, opts, settings)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output filename without extension (default from config, \"out\")")
	cmd.Flags().StringVarP(&opts.packer, "packer", "p", "", "packing algorithm: maxrects (default), simple")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "metadata format: "+strings.Join(format.Names(), ", "))
	cmd.Flags().StringVarP(&opts.encoding, "encoding", "e", "", "metadata encoding: json (default), toml")
	cmd.Flags().StringArrayVarP(&opts.options, "options", "s", nil, "packer option as key=value (max_width, max_height)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the metadata file")
	cmd.Flags().BoolVarP(&opts.trim, "trim", "t", false, "trim transparent sprite sides")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "resample sprites by this factor on import (nearest neighbour)")
	cmd.Flags().StringVar(&opts.list, "list", "", "CSV or XLSX sprite list (file and name columns)")
	cmd.Flags().BoolVar(&opts.pdf, "pdf", false, "also write <out>.pdf report")
	cmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "also write <out>.xlsx report")
	cmd.Flags().BoolVar(&opts.dxf, "dxf", false, "also write <out>.dxf layout drawing")
	cmd.Flags().BoolVar(&opts.manifest, "manifest", false, "also write <out>.manifest.json")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "draw each sheet in the terminal (Kitty, iTerm2/WezTerm or Sixel)")

	return cmd
}

// packSettings layers defaults, the user config and explicitly set flags.
func (c *CLI) packSettings(cmd *cobra.Command, opts packOpts) (model.PackSettings, error) {
	settings := model.DefaultSettings()
	c.config.ApplyToSettings(&settings)

	flags := cmd.Flags()
	if flags.Changed("packer") {
		algorithm, err := model.ParseAlgorithm(opts.packer)
		if err != nil {
			return settings, err
		}
		settings.Algorithm = algorithm
	}
	if flags.Changed("format") {
		settings.Format = opts.format
	}
	if flags.Changed("encoding") {
		settings.Encoding = opts.encoding
	}
	if flags.Changed("pretty") {
		settings.Pretty = opts.pretty
	}
	if flags.Changed("trim") {
		settings.Trim = opts.trim
	}
	settings.Scale = opts.scale

	if err := applyPackerOptions(&settings, opts.options); err != nil {
		return settings, err
	}
	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// applyPackerOptions parses key=value packer options into settings.
func applyPackerOptions(settings *model.PackSettings, options []string) error {
	for _, opt := range options {
		key, value, ok := strings.Cut(opt, "=")
		if !ok {
			return perrors.New(perrors.ErrCodeInvalidInput, "packer option %q is not key=value", opt)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n <= 0 {
			return perrors.New(perrors.ErrCodeInvalidInput, "packer option %s needs a positive integer, got %q", key, value)
		}
		switch key {
		case "max_width":
			settings.PreferredWidth = n
		case "max_height":
			settings.PreferredHeight = n
		default:
			return perrors.New(perrors.ErrCodeInvalidInput, "unknown packer option %q (available: max_width, max_height)", key)
		}
	}
	return nil
}

// outputBase resolves the output base path from the flag or the config.
func (c *CLI) outputBase(opts packOpts) string {
	if opts.output != "" {
		return opts.output
	}
	if c.config.OutputBase != "" {
		return c.config.OutputBase
	}
	return model.DefaultOutput
}

// wantReport reports whether a report kind was requested by flag or config.
func (c *CLI) wantReport(kind string, flag bool) bool {
	if flag {
		return true
	}
	for _, r := range c.config.Reports {
		if strings.EqualFold(strings.TrimSpace(r), kind) {
			return true
		}
	}
	return false
}

func (c *CLI) runPack(ctx context.Context, args []string, opts packOpts, settings model.PackSettings) error {
	logger := loggerFromContext(ctx)
	out := c.printer()

	// Resolve configuration before touching any file
	metaFormat, err := format.Lookup(settings.Format)
	if err != nil {
		return err
	}
	ext, err := format.Extension(settings.Encoding)
	if err != nil {
		return err
	}

	imported, err := c.importSprites(ctx, args, opts, settings.Scale)
	if err != nil {
		return err
	}
	logger.Debug("settings", "packer", settings.String(), "format", settings.Format, "encoding", settings.Encoding)

	prog := newProgress(logger)
	inputs := imported.Sprites
	var offsets []model.TrimOffset
	if settings.Trim {
		inputs, offsets, err = engine.TrimWithOffsets(inputs, settings.Stride, settings.AlphaChannel)
		if err != nil {
			return err
		}
	}

	packer, err := engine.NewPacker(settings)
	if err != nil {
		return err
	}
	sheets, err := engine.Pack(inputs, settings.Stride, packer)
	if err != nil {
		return err
	}
	if len(sheets) == 0 {
		return perrors.New(perrors.ErrCodeEmptyResult, "no output was produced")
	}
	prog.done(fmt.Sprintf("Packed %d sprites into %d sheet(s)", len(inputs), len(sheets)))

	base := c.outputBase(opts)
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return perrors.Wrap(perrors.ErrCodeIO, err, "failed to create output directory %s", dir)
		}
	}

	report := export.Report{
		Sheets:   sheets,
		Names:    imported.Names,
		Files:    make([]string, len(sheets)),
		Settings: settings,
	}
	metaOptions := format.Options{Names: imported.Names, Offsets: offsets}
	var written, metaFiles []string

	for i, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return err
		}
		stem := export.SheetFilename(base, i, len(sheets))

		pngPath := stem + ".png"
		if sheet.TotalArea() == 0 {
			out.warning("sheet %d has no visible pixels; skipping %s", i, pngPath)
		} else {
			if err := export.WritePNG(pngPath, sheet); err != nil {
				return err
			}
			report.Files[i] = filepath.Base(pngPath)
			written = append(written, pngPath)
		}

		data, err := engine.Encode[format.Options](sheet, metaFormat, metaOptions)
		if err != nil {
			return err
		}
		metaPath := stem + ext
		if err := writeMetadata(metaPath, data, settings); err != nil {
			return err
		}
		metaFiles = append(metaFiles, filepath.Base(metaPath))
		written = append(written, metaPath)
		logger.Debug("wrote sheet", "index", i, "size", fmt.Sprintf("%dx%d", sheet.Width, sheet.Height), "sprites", len(sheet.Anchors))
	}

	reports := []struct {
		kind  string
		flag  bool
		write func(string, export.Report) error
	}{
		{reportPDF, opts.pdf, export.ExportPDF},
		{reportXLSX, opts.xlsx, export.ExportXLSX},
		{reportDXF, opts.dxf, export.ExportDXF},
	}
	for _, r := range reports {
		if !c.wantReport(r.kind, r.flag) {
			continue
		}
		path := base + "." + r.kind
		if err := r.write(path, report); err != nil {
			return err
		}
		written = append(written, path)
	}

	if opts.manifest || c.config.WriteManifest {
		path := project.ManifestPath(base)
		if err := project.WriteManifest(path, project.NewManifest(report, metaFiles)); err != nil {
			return perrors.Wrap(perrors.ErrCodeIO, err, "failed to write manifest")
		}
		written = append(written, path)
	}

	out.success("Packed %s", joinStats(
		fmt.Sprintf("%d sprites", len(inputs)),
		fmt.Sprintf("%d sheets", len(sheets)),
		fmt.Sprintf("%.1f%% efficiency", model.TotalEfficiency(sheets)),
	))
	for _, path := range written {
		out.file(path)
	}

	if opts.preview {
		for i, sheet := range sheets {
			if err := previewSheet(c.out, sheet); err != nil {
				logger.Warn("preview unavailable", "sheet", i, "err", err)
				break
			}
		}
	}
	return nil
}

// importSprites loads sprites from a sprite list or from positional inputs.
// Any file that fails to load aborts the run.
func (c *CLI) importSprites(ctx context.Context, args []string, opts packOpts, scale float64) (importer.ImportResult, error) {
	logger := loggerFromContext(ctx)
	out := c.printer()

	var result importer.ImportResult
	if opts.list != "" {
		list := importer.ImportList(opts.list)
		for _, w := range list.Warnings {
			out.warning("%s", w)
		}
		if len(list.Errors) > 0 {
			for _, e := range list.Errors {
				out.error("%s", e)
			}
			return result, perrors.New(perrors.ErrCodeInvalidInput, "sprite list %s has %d error(s)", opts.list, len(list.Errors))
		}
		result = importer.ImportListImages(list, scale)
	} else {
		paths, warnings := importer.ExpandInputs(args)
		for _, w := range warnings {
			out.warning("%s", w)
		}
		result = importer.ImportImages(paths, scale)
	}

	for _, w := range result.Warnings {
		out.warning("%s", w)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			out.error("%s", e)
		}
		return result, perrors.New(perrors.ErrCodeInvalidInput, "%d input(s) failed to load", len(result.Errors))
	}
	logger.Debug("imported sprites", "count", len(result.Sprites))
	return result, nil
}

// writeMetadata serialises one sheet's metadata to path.
func writeMetadata(path string, data any, settings model.PackSettings) error {
	f, err := os.Create(path)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeIO, err, "failed to create %s", path)
	}
	if err := format.Write(f, data, settings.Encoding, settings.Pretty); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return perrors.Wrap(perrors.ErrCodeIO, err, "failed to close %s", path)
	}
	return nil
}
