package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"boxy/config"
	"boxy/css"
	"boxy/dom"
	"boxy/layout"
	"boxy/paint"
	"boxy/state"
)

// Flags returns command line flags of the render command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "to", Usage: "output `TYPE` (supported types: " + strings.Join(config.OutputFmtNames(), ", ") + "), overrides configuration"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "destination `DIRECTORY`, if absent - current working directory"},
		&cli.IntFlag{Name: "width", Aliases: []string{"w"}, Usage: "viewport width in pixels, overrides configuration"},
		&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exits, overwrite files"},
	}
}

// Run implements "render" command: INPUT [STYLESHEET...].
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input document has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	styles := cmd.Args().Slice()[1:]

	dst := cmd.String("out")
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}

	format := env.Cfg.Output.Format
	if to := cmd.String("to"); to != "" {
		if format, err = config.ParseOutputFmt(to); err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Error(err), zap.Stringer("format", env.Cfg.Output.Format))
			format = env.Cfg.Output.Format
		}
	}
	if w := cmd.Int("width"); w > 0 {
		env.Cfg.Render.Viewport.Width = int(w)
	}
	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Rendering starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		if err == nil {
			log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	return process(ctx, src, styles, dst, format, env, log)
}

// process handles rendering independently of CLI framework.
func process(ctx context.Context, src string, styles []string, dst string, format config.OutputFmt, env *state.LocalEnv, log *zap.Logger) error {
	doc, err := readDocument(src)
	if err != nil {
		return err
	}
	env.Rpt.Store("input/"+filepath.Base(src), src)

	sheet, err := collectStylesheets(ctx, doc, styles, env, log)
	if err != nil {
		return err
	}

	viewport := layout.Viewport(float64(env.Cfg.Render.Viewport.Width), float64(env.Cfg.Render.Viewport.Height))
	res, err := NewPipeline(env.Log, env.Rpt).Render(doc, sheet, viewport)
	if err != nil {
		return err
	}

	width, height := res.CanvasSize(viewport)
	values := Values{
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Title:      dom.Title(doc),
		Format:     format.String(),
		Width:      width,
		Height:     height,
		PassID:     res.PassID,
	}
	outputName := buildOutputPath(dst, values, format, &env.Cfg.Output, log)

	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	background, err := css.ParseColor(env.Cfg.Render.Background)
	if err != nil {
		return fmt.Errorf("bad background color in configuration: %w", err)
	}
	if err := writeOutput(outputName, res, format, width, height, background, env.Cfg.Output.JPEGQuality); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	log.Info("Output written", zap.String("file", outputName), zap.Int("width", width), zap.Int("height", height))

	env.Rpt.Store("result-"+res.PassID+filepath.Ext(outputName), outputName)
	return nil
}

func readDocument(src string) (*dom.Node, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("unable to open input document: %w", err)
	}
	defer f.Close()

	var doc *dom.Node
	switch strings.ToLower(filepath.Ext(src)) {
	case ".xhtml", ".xht", ".xml":
		doc, err = dom.ParseXHTML(f)
	default:
		doc, err = dom.ParseHTMLReader(f, "text/html")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to parse input document (%s): %w", src, err)
	}
	return doc, nil
}

// collectStylesheets builds cascade input in precedence order: user agent
// stylesheet, document <style> elements, configured stylesheet and finally
// stylesheets from command line.
func collectStylesheets(ctx context.Context, doc *dom.Node, files []string, env *state.LocalEnv, log *zap.Logger) (*css.Stylesheet, error) {
	parser := css.NewParser(log, env.Cfg.Render.StrictCSS)
	sheet := &css.Stylesheet{}

	add := func(data []byte, source string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := parser.Parse(data, source)
		if err != nil {
			return fmt.Errorf("unable to parse stylesheet (%s): %w", source, err)
		}
		for _, w := range s.Warnings {
			log.Warn("Stylesheet problem ignored", zap.String("source", source), zap.String("problem", w))
		}
		sheet.Append(s)
		return nil
	}

	var errs error
	if env.Cfg.Render.UserAgentStylesheet {
		errs = multierr.Append(errs, add(env.DefaultStyle, "user-agent"))
	}
	for i, text := range dom.StyleSheets(doc) {
		errs = multierr.Append(errs, add([]byte(text), fmt.Sprintf("<style>#%d", i+1)))
	}

	paths := files
	if p := env.Cfg.Render.StylesheetPath; p != "" {
		paths = append([]string{p}, files...)
	}
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to read stylesheet: %w", err))
			continue
		}
		env.Rpt.Store(fmt.Sprintf("styles/%d-%s", i+1, filepath.Base(path)), path)
		errs = multierr.Append(errs, add(data, path))
	}
	if errs != nil {
		return nil, errs
	}
	return sheet, nil
}

func writeOutput(name string, res *Result, format config.OutputFmt, width, height int, background css.Color, quality int) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	switch format {
	case config.OutputFmtTree:
		_, err = f.WriteString(res.Layout.Dump())
		return err
	case config.OutputFmtDisplay:
		_, err = res.Display.WriteTo(f)
		return err
	}

	img, err := paint.Rasterize(res.Display, width, height, background)
	if err != nil {
		return err
	}
	pf := paint.FormatPNG
	if format == config.OutputFmtJpeg {
		pf = paint.FormatJPEG
	}
	var buf bytes.Buffer
	if err := paint.Encode(&buf, img, pf, quality); err != nil {
		return err
	}
	_, err = buf.WriteTo(f)
	return err
}
