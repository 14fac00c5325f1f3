// Package render ties document, stylesheet, layout and painting stages into a
// single render pass and implements "render" command.
package render

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"boxy/config"
	"boxy/css"
	"boxy/dom"
	"boxy/layout"
	"boxy/paint"
	"boxy/style"
)

// Pipeline runs render passes. Intermediate trees are stored into debug
// report when one is requested.
type Pipeline struct {
	log *zap.Logger
	rpt *config.Report
}

// Result holds products of every stage of a render pass.
type Result struct {
	PassID  string
	Styled  *style.StyledNode
	Layout  *layout.LayoutBox
	Display paint.DisplayList
}

// NewPipeline creates pipeline, nil logger disables logging and nil report
// disables debug dumps.
func NewPipeline(log *zap.Logger, rpt *config.Report) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{log: log.Named("render"), rpt: rpt}
}

func newPassID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// Render styles document with sheet, lays it out inside viewport and builds
// display list.
func (p *Pipeline) Render(doc *dom.Node, sheet *css.Stylesheet, viewport layout.Dimensions) (*Result, error) {
	if doc == nil {
		return nil, dom.ErrNoRoot
	}
	if sheet == nil {
		sheet = &css.Stylesheet{}
	}

	res := &Result{PassID: newPassID()}
	log := p.log.With(zap.String("pass", res.PassID))

	start := time.Now()
	res.Styled = style.StyleTree(doc, sheet)
	log.Debug("Style tree built", zap.Int("rules", len(sheet.Rules)), zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	box, err := layout.LayoutTree(res.Styled, viewport)
	if err != nil {
		return nil, fmt.Errorf("unable to lay out document: %w", err)
	}
	res.Layout = box
	log.Debug("Layout complete",
		zap.Float64("width", box.Dimensions.MarginBox().Width),
		zap.Float64("height", box.Dimensions.MarginBox().Height),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	res.Display = paint.BuildDisplayList(box)
	log.Debug("Display list built", zap.Int("commands", len(res.Display)), zap.Duration("elapsed", time.Since(start)))

	if p.rpt != nil {
		p.rpt.StoreData("pass-"+res.PassID+"/stylesheet.css", []byte(sheet.String()))
		p.rpt.StoreData("pass-"+res.PassID+"/style.txt", []byte(res.Styled.Dump()))
		p.rpt.StoreData("pass-"+res.PassID+"/layout.txt", []byte(box.Dump()))
	}
	return res, nil
}

// CanvasSize returns raster size for the result: viewport width and either
// fixed viewport height or height of the rendered content.
func (r *Result) CanvasSize(viewport layout.Dimensions) (int, int) {
	width, height := viewport.Content.Width, viewport.Content.Height
	if height <= 0 {
		height = r.Layout.Dimensions.MarginBox().Height
		if _, bottom := r.Display.Bounds(); bottom > height {
			height = bottom
		}
	}
	return max(1, int(width+0.5)), max(1, int(height+0.5))
}
