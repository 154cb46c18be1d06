package pptx

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"

	"github.com/sidsharmaji/PDF-Master-pro/format"
	"github.com/sidsharmaji/PDF-Master-pro/model"
	"github.com/sidsharmaji/PDF-Master-pro/opc"
)

// xform maps group-local EMU coordinates to absolute slide EMUs.
// Groups place their children in a private coordinate space (chOff,
// chExt); entering a group composes the translation and scale that
// space implies.
type xform struct {
	dx, dy float64
	sx, sy float64
}

func identity() xform { return xform{sx: 1, sy: 1} }

// box converts a local offset and extent into an absolute pixel box.
// Shapes without both parts cannot be placed.
func (t xform) box(xf *xfrmXML) (model.BBox, bool) {
	if xf == nil || xf.Off == nil || xf.Ext == nil {
		return model.BBox{}, false
	}
	x := t.dx + float64(xf.Off.X)*t.sx
	y := t.dy + float64(xf.Off.Y)*t.sy
	w := float64(xf.Ext.Cx) * t.sx
	h := float64(xf.Ext.Cy) * t.sy
	return model.NewBBox(x/emuPerPixel, y/emuPerPixel, w/emuPerPixel, h/emuPerPixel), true
}

// enter composes the transform that maps a group's child coordinate
// space to absolute coordinates.
func (t xform) enter(xf *xfrmXML) xform {
	if xf == nil {
		return t
	}
	sx, sy := 1.0, 1.0
	if xf.Ext != nil && xf.ChExt != nil {
		if xf.ChExt.Cx != 0 {
			sx = float64(xf.Ext.Cx) / float64(xf.ChExt.Cx)
		}
		if xf.ChExt.Cy != 0 {
			sy = float64(xf.Ext.Cy) / float64(xf.ChExt.Cy)
		}
	}
	var gx, gy float64
	if xf.Off != nil {
		gx, gy = float64(xf.Off.X), float64(xf.Off.Y)
	}
	var cx, cy float64
	if xf.ChOff != nil {
		cx, cy = float64(xf.ChOff.X), float64(xf.ChOff.Y)
	}
	return xform{
		dx: t.dx + t.sx*(gx-cx*sx),
		dy: t.dy + t.sy*(gy-cy*sy),
		sx: t.sx * sx,
		sy: t.sy * sy,
	}
}

// buildPage parses one slide part into a page. Unreadable slides become
// placeholder pages so the document keeps one page per source slide.
func (r *Reader) buildPage(slidePath string, number int) (*model.Page, []model.Problem) {
	data, err := r.pkg.ReadBytes(slidePath)
	if err != nil {
		return r.failedPage(number, err), []model.Problem{
			{Page: number, Message: fmt.Sprintf("slide unreadable: %v", err)},
		}
	}
	var slide slideXML
	if err := xml.Unmarshal(data, &slide); err != nil {
		return r.failedPage(number, err), []model.Problem{
			{Page: number, Message: fmt.Sprintf("slide XML malformed: %v", err)},
		}
	}

	page := model.NewPage()
	page.ID = path.Base(slidePath)
	page.Hidden = slide.Show != nil && *slide.Show == 0

	rels := r.slideRelationships(slidePath)
	page.Notes = r.notesText(slidePath, rels)

	b := &slideBuilder{
		reader:   r,
		rels:     rels,
		slideDir: path.Dir(slidePath),
		page:     page,
		number:   number,
	}
	b.background(slide.CSld.Bg)
	b.walk(&slide.CSld.SpTree, identity())
	return page, b.problems
}

// failedPage substitutes for a slide that could not be parsed.
func (r *Reader) failedPage(number int, cause error) *model.Page {
	page := model.NewPage()
	w, h := r.CanvasSize()
	if w <= 0 || h <= 0 {
		w, h = 1280, 720
	}
	st := model.DefaultStyle()
	st.FontSize = defaultFontSize
	st.Align = model.AlignCenter
	st.VAlign = model.VAlignMiddle
	page.AddElement(&model.Text{
		Runs:  []model.Run{{Text: fmt.Sprintf("Could not read slide %d: %v", number, cause), Style: st}},
		BBox:  model.NewBBox(w*0.1, h*0.4, w*0.8, h*0.2),
		Style: st,
	})
	return page
}

// slideBuilder walks one slide's shape tree, appending model elements
// to the page in paint order.
type slideBuilder struct {
	reader   *Reader
	rels     *relationshipsXML
	slideDir string
	page     *model.Page
	number   int
	problems []model.Problem
	z        int
}

func (b *slideBuilder) nextZ() int {
	z := b.z
	b.z++
	return z
}

func (b *slideBuilder) problem(msg string, args ...any) {
	b.problems = append(b.problems, model.Problem{
		Page:    b.number,
		Message: fmt.Sprintf(msg, args...),
	})
}

// baseStyle is the inherited style for slide content.
func (b *slideBuilder) baseStyle() model.Style {
	st := model.DefaultStyle()
	st.FontSize = defaultFontSize
	return st
}

func (b *slideBuilder) canvasBox() model.BBox {
	w, h := b.reader.CanvasSize()
	if w <= 0 || h <= 0 {
		w, h = 1280, 720
	}
	return model.NewBBox(0, 0, w, h)
}

// background applies the slide background: a solid fill sets the page
// background color, an image fill becomes a full-canvas picture under
// everything else.
func (b *slideBuilder) background(bg *bgXML) {
	if bg == nil || bg.BgPr == nil {
		return
	}
	if c, ok := b.reader.theme.fillColor(bg.BgPr.SolidFill, true); ok {
		b.page.Background = &c
	}
	if bg.BgPr.BlipFill != nil {
		img := b.loadImage(&bg.BgPr.BlipFill.Blip, b.canvasBox())
		img.ZOrder = b.nextZ()
		b.page.AddElement(img)
	}
}

func (b *slideBuilder) walk(tree *spTreeXML, xf xform) {
	for i := range tree.Nodes {
		node := &tree.Nodes[i]
		switch {
		case node.Sp != nil:
			b.addShape(node.Sp, xf)
		case node.CxnSp != nil:
			b.addConnector(node.CxnSp, xf)
		case node.Pic != nil:
			b.addPicture(node.Pic, xf)
		case node.GraphicFrame != nil:
			b.addFrame(node.GraphicFrame, xf)
		case node.GrpSp != nil:
			b.addGroup(node.GrpSp, xf)
		}
	}
}

// addShape handles sp elements: text boxes, placeholders and drawn
// shapes. Shapes without a position are dropped; they cannot be placed.
func (b *slideBuilder) addShape(sp *spXML, xf xform) {
	box, ok := xf.box(sp.SpPr.Xfrm)
	if !ok {
		return
	}

	style := model.ResolveStyle(b.baseStyle(), b.shapePatch(&sp.SpPr))
	if sp.TxBody != nil {
		if anchor := sp.TxBody.BodyPr.Anchor; anchor != "" {
			style.VAlign = anchorVAlign(anchor)
		}
	}

	if text := b.textElement(sp, box, style); text != nil {
		if b.page.Title == "" && isTitlePlaceholder(sp) {
			b.page.Title = strings.TrimSpace(text.GetText())
		}
		text.ZOrder = b.nextZ()
		b.page.AddElement(text)
		return
	}

	// Text-free shapes paint only when they have visible geometry.
	if sp.SpPr.PrstGeom == nil && style.Fill == nil && style.BorderColor == nil {
		return
	}
	prst := ""
	if sp.SpPr.PrstGeom != nil {
		prst = sp.SpPr.PrstGeom.Prst
	}
	b.page.AddElement(&model.Shape{
		Kind:   shapeKind(prst),
		BBox:   box,
		Style:  style,
		ZOrder: b.nextZ(),
	})
}

// addConnector handles cxnSp elements. Connectors stroke a line even
// when they carry no explicit outline properties.
func (b *slideBuilder) addConnector(cxn *cxnSpXML, xf xform) {
	box, ok := xf.box(cxn.SpPr.Xfrm)
	if !ok {
		return
	}
	style := model.ResolveStyle(b.baseStyle(), b.shapePatch(&cxn.SpPr))
	if style.BorderColor == nil {
		c := model.Black
		style.BorderColor = &c
		style.BorderWidth = 1
	}
	kind := model.ShapeLine
	if pg := cxn.SpPr.PrstGeom; pg != nil && pg.Prst != "" {
		kind = shapeKind(pg.Prst)
	}
	b.page.AddElement(&model.Shape{
		Kind:   kind,
		BBox:   box,
		Style:  style,
		ZOrder: b.nextZ(),
	})
}

// addPicture handles pic elements.
func (b *slideBuilder) addPicture(pic *picXML, xf xform) {
	box, ok := xf.box(pic.SpPr.Xfrm)
	if !ok {
		return
	}
	img := b.loadImage(&pic.BlipFill.Blip, box)
	if xfr := pic.SpPr.Xfrm; xfr != nil && xfr.Rot != 0 {
		img.Style.Rotation = float64(xfr.Rot) / 60000
	}
	img.ZOrder = b.nextZ()
	b.page.AddElement(img)
}

// loadImage resolves a blip reference and reads its bytes. Failures
// still produce an element so the painter can draw a placeholder in
// the reserved box.
func (b *slideBuilder) loadImage(blip *blipXML, box model.BBox) *model.Image {
	img := &model.Image{BBox: box, Style: model.DefaultStyle()}
	if blip == nil || blip.Embed == "" {
		b.problem("picture has no image relationship")
		return img
	}
	target := b.relTarget(blip.Embed)
	if target == "" {
		b.problem("picture relationship %s not found", blip.Embed)
		return img
	}
	img.Ref = target
	data, err := b.reader.pkg.ReadBytes(target)
	if err != nil {
		b.problem("image %s: %v", target, err)
		return img
	}
	img.Data = data
	img.MIME = format.DetectBytes(data).MIME()
	return img
}

func (b *slideBuilder) relTarget(id string) string {
	for _, rel := range b.rels.Relationship {
		if rel.ID == id {
			return opc.Resolve(b.slideDir, rel.Target)
		}
	}
	return ""
}

// addFrame handles graphicFrame elements. Only tables paint; charts
// and diagrams have no model representation.
func (b *slideBuilder) addFrame(frame *graphicFrameXML, xf xform) {
	box, ok := xf.box(frame.Xfrm)
	if !ok {
		return
	}
	tbl := frame.Graphic.GraphicData.Tbl
	if tbl == nil {
		return
	}
	table := b.tableElement(tbl, box)
	if table == nil {
		return
	}
	table.ZOrder = b.nextZ()
	b.page.AddElement(table)
}

// tableElement converts a drawing table. Rows keep every cell the XML
// declares, including merged-away ones, so column positions line up.
func (b *slideBuilder) tableElement(tbl *tblXML, box model.BBox) *model.Table {
	if len(tbl.Tr) == 0 {
		return nil
	}
	table := &model.Table{BBox: box, Style: b.baseStyle()}
	for ri := range tbl.Tr {
		tr := &tbl.Tr[ri]
		row := make([]model.Cell, 0, len(tr.Tc))
		for ci := range tr.Tc {
			tc := &tr.Tc[ci]
			cell := model.Cell{Header: ri == 0, Style: b.baseStyle()}
			if tc.TcPr != nil {
				if c, ok := b.reader.theme.fillColor(tc.TcPr.SolidFill, true); ok {
					cell.Style.Fill = &c
				}
			}
			if tc.TxBody != nil {
				var parts []string
				for pi := range tc.TxBody.P {
					parts = append(parts, paragraphText(&tc.TxBody.P[pi]))
				}
				cell.Text = strings.TrimSpace(strings.Join(parts, "\n"))
			}
			row = append(row, cell)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func (b *slideBuilder) addGroup(grp *grpSpXML, xf xform) {
	b.walk(&grp.Tree, xf.enter(grp.GrpSpPr.Xfrm))
}

// textElement builds a text element from a shape's text body, or nil
// when the body holds only whitespace. The container style keeps the
// shape's fill and border; run styles start from the text-only subset.
func (b *slideBuilder) textElement(sp *spXML, box model.BBox, container model.Style) *model.Text {
	if sp.TxBody == nil {
		return nil
	}
	text := &model.Text{BBox: box, Style: container}

	base := container
	base.Fill = nil
	base.BorderColor = nil
	base.BorderWidth = 0

	for i := range sp.TxBody.P {
		p := &sp.TxBody.P[i]
		if i > 0 {
			text.Runs = append(text.Runs, model.Run{Text: "\n", Style: base})
		}
		paraStyle := base
		if p.PPr != nil {
			if a, ok := algnAlignment(p.PPr.Algn); ok {
				paraStyle.Align = a
				if i == 0 {
					text.Style.Align = a
				}
			}
		}
		for j := range p.R {
			run := &p.R[j]
			if run.T == "" {
				continue
			}
			text.Runs = append(text.Runs, model.Run{
				Text:  run.T,
				Style: model.ResolveStyle(paraStyle, b.runPatch(run.RPr)),
			})
		}
		for j := range p.Fld {
			if t := p.Fld[j].T; t != "" {
				text.Runs = append(text.Runs, model.Run{Text: t, Style: paraStyle})
			}
		}
	}

	if text.IsBlank() {
		return nil
	}
	return text
}

// shapePatch builds the style patch a shape's own properties declare.
func (b *slideBuilder) shapePatch(spPr *spPrXML) model.StylePatch {
	var patch model.StylePatch
	if spPr == nil {
		return patch
	}
	if spPr.NoFill == nil {
		if c, ok := b.reader.theme.fillColor(spPr.SolidFill, true); ok {
			patch.Fill = &c
			if a := fillAlpha(spPr.SolidFill); a < 1 {
				patch.Opacity = &a
			}
		}
	}
	if ln := spPr.Ln; ln != nil && ln.NoFill == nil {
		if c, ok := b.reader.theme.fillColor(ln.SolidFill, false); ok {
			patch.BorderColor = &c
			w := float64(ln.W) / emuPerPixel
			if w <= 0 {
				w = 1
			}
			patch.BorderWidth = &w
			bs := borderStyle(ln.PrstDash)
			patch.BorderStyle = &bs
		}
	}
	if xf := spPr.Xfrm; xf != nil && xf.Rot != 0 {
		deg := float64(xf.Rot) / 60000
		patch.Rotation = &deg
	}
	return patch
}

// runPatch builds the style patch a run's properties declare.
func (b *slideBuilder) runPatch(rPr *rPrXML) model.StylePatch {
	var patch model.StylePatch
	if rPr == nil {
		return patch
	}
	if rPr.Sz > 0 {
		sz := float64(rPr.Sz) / 100
		patch.FontSize = &sz
	}
	if rPr.B != nil {
		bold := *rPr.B == 1
		patch.Bold = &bold
	}
	if rPr.I != nil {
		italic := *rPr.I == 1
		patch.Italic = &italic
	}
	if rPr.U != "" {
		u := rPr.U != "none"
		patch.Underline = &u
	}
	if rPr.Strike != "" {
		s := rPr.Strike != "noStrike"
		patch.Strikethrough = &s
	}
	if c, ok := b.reader.theme.fillColor(rPr.SolidFill, false); ok {
		patch.Color = &c
	}
	if c, ok := b.reader.theme.fillColor(rPr.Highlight, true); ok {
		patch.Fill = &c
	}
	if rPr.Latin != nil && rPr.Latin.Typeface != "" {
		face := rPr.Latin.Typeface
		patch.FontFamily = &face
	}
	return patch
}

func isTitlePlaceholder(sp *spXML) bool {
	ph := sp.NvSpPr.NvPr.Ph
	return ph != nil && (ph.Type == "title" || ph.Type == "ctrTitle")
}

func anchorVAlign(anchor string) model.VerticalAlignment {
	switch anchor {
	case "ctr":
		return model.VAlignMiddle
	case "b":
		return model.VAlignBottom
	default:
		return model.VAlignTop
	}
}

func algnAlignment(algn string) (model.TextAlignment, bool) {
	switch algn {
	case "l":
		return model.AlignLeft, true
	case "ctr":
		return model.AlignCenter, true
	case "r":
		return model.AlignRight, true
	case "just":
		return model.AlignJustify, true
	}
	return model.AlignLeft, false
}

// shapeKind maps a preset geometry name to a paintable kind. Unknown
// presets paint as plain rectangles.
func shapeKind(prst string) model.ShapeKind {
	switch prst {
	case "roundRect":
		return model.ShapeRoundedRectangle
	case "ellipse":
		return model.ShapeEllipse
	case "triangle", "rtTriangle":
		return model.ShapeTriangle
	case "diamond":
		return model.ShapeDiamond
	case "rightArrow", "leftArrow", "upArrow", "downArrow":
		return model.ShapeArrow
	case "line", "straightConnector1", "bentConnector2", "bentConnector3":
		return model.ShapeLine
	default:
		return model.ShapeRectangle
	}
}

// borderStyle maps a preset dash name onto the stroke styles the
// painter knows.
func borderStyle(dash *prstDashXML) model.BorderStyle {
	if dash == nil {
		return model.BorderSolid
	}
	switch dash.Val {
	case "dash", "lgDash", "dashDot", "lgDashDot", "lgDashDotDot", "sysDash", "sysDashDot", "sysDashDotDot":
		return model.BorderDashed
	case "dot", "sysDot":
		return model.BorderDotted
	default:
		return model.BorderSolid
	}
}
