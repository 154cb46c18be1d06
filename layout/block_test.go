package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sidsharmaji/PDF-Master-pro/model"
)

// para builds a single-run paragraph block at the given font size.
func para(text string, size float64) Block {
	st := model.DefaultStyle()
	if size > 0 {
		st.FontSize = size
	}
	return Block{Text: &model.Text{
		Runs:  []model.Run{{Text: text, Style: st}},
		Style: st,
	}}
}

func contentBox(s Settings) (w, h float64) {
	pw, ph := s.PagePixels()
	return pw - 2*Margin, ph - 2*Margin
}

func TestPaginate_EmptyInputYieldsOnePage(t *testing.T) {
	s := Settings{Size: PageA4}
	doc := Paginate(nil, s)

	if doc.PageCount() != 1 {
		t.Fatalf("PageCount = %d, want 1", doc.PageCount())
	}
	if len(doc.Pages[0].Elements) != 0 {
		t.Errorf("blank page has %d elements", len(doc.Pages[0].Elements))
	}

	availW, availH := contentBox(s)
	if !closeTo(doc.Metadata.CanvasWidth, availW) || !closeTo(doc.Metadata.CanvasHeight, availH) {
		t.Errorf("canvas = %gx%g, want %gx%g",
			doc.Metadata.CanvasWidth, doc.Metadata.CanvasHeight, availW, availH)
	}
}

func TestPaginate_FillsPagesTopDown(t *testing.T) {
	s := Settings{Size: PageA4}
	var blocks []Block
	for i := 0; i < 60; i++ {
		blocks = append(blocks, para("a short line of text", 12))
	}

	doc := Paginate(blocks, s)

	if doc.PageCount() < 2 {
		t.Fatalf("PageCount = %d, want at least 2", doc.PageCount())
	}
	total := 0
	_, availH := contentBox(s)
	for _, page := range doc.Pages {
		total += len(page.Elements)
		for _, el := range page.Elements {
			box := el.BoundingBox()
			if box.Bottom() > availH+1e-6 {
				t.Errorf("page %d element extends to %g, beyond content height %g",
					page.Number, box.Bottom(), availH)
			}
		}
	}
	if total != 60 {
		t.Errorf("placed %d elements, want 60", total)
	}
	if doc.Metadata.PageCount != doc.PageCount() {
		t.Errorf("Metadata.PageCount = %d, pages = %d", doc.Metadata.PageCount, doc.PageCount())
	}

	// First block of every page starts at the top of the content box.
	for _, page := range doc.Pages {
		if len(page.Elements) == 0 {
			continue
		}
		if y := page.Elements[0].BoundingBox().Y; !closeTo(y, 0) {
			t.Errorf("page %d first element Y = %g, want 0", page.Number, y)
		}
	}
}

func TestPaginate_PageBreak(t *testing.T) {
	first := para("first", 12)
	second := para("second", 12)
	second.PageBreak = true

	doc := Paginate([]Block{first, second}, Settings{Size: PageA4})

	if doc.PageCount() != 2 {
		t.Fatalf("PageCount = %d, want 2", doc.PageCount())
	}
	if len(doc.Pages[0].Elements) != 1 || len(doc.Pages[1].Elements) != 1 {
		t.Errorf("elements per page = %d, %d, want 1, 1",
			len(doc.Pages[0].Elements), len(doc.Pages[1].Elements))
	}
	if z := doc.Pages[1].Elements[0].ZIndex(); z != 0 {
		t.Errorf("second page element ZIndex = %d, want 0", z)
	}
}

func TestPaginate_PageBreakOnFirstBlock(t *testing.T) {
	b := para("only", 12)
	b.PageBreak = true

	doc := Paginate([]Block{b}, Settings{Size: PageA4})

	if doc.PageCount() != 1 {
		t.Errorf("PageCount = %d, want 1 (break at top of document is a no-op)", doc.PageCount())
	}
}

func TestPaginate_OversizeBlockClipped(t *testing.T) {
	s := Settings{Size: PageA4}
	doc := Paginate([]Block{para(strings.Repeat("x", 8000), 12)}, s)

	if doc.PageCount() != 1 {
		t.Fatalf("PageCount = %d, want 1", doc.PageCount())
	}
	_, availH := contentBox(s)
	box := doc.Pages[0].Elements[0].BoundingBox()
	if !closeTo(box.Height, availH) {
		t.Errorf("clipped height = %g, want %g", box.Height, availH)
	}
}

func TestPaginate_SpaceBeforeSuppressedAtPageTop(t *testing.T) {
	b := para("first", 12)
	b.SpaceBefore = 100

	doc := Paginate([]Block{b}, Settings{Size: PageA4})

	if y := doc.Pages[0].Elements[0].BoundingBox().Y; !closeTo(y, 0) {
		t.Errorf("first element Y = %g, want 0", y)
	}
}

func TestPaginate_SpaceBeforeAndAfter(t *testing.T) {
	first := para("first", 12)
	first.SpaceAfter = 10
	second := para("second", 12)
	second.SpaceBefore = 30

	doc := Paginate([]Block{first, second}, Settings{Size: PageA4})

	els := doc.Pages[0].Elements
	if len(els) != 2 {
		t.Fatalf("got %d elements, want 2", len(els))
	}
	want := els[0].BoundingBox().Height + 10 + 30
	if got := els[1].BoundingBox().Y; !closeTo(got, want) {
		t.Errorf("second element Y = %g, want %g", got, want)
	}
}

func TestPaginate_IndentShiftsBox(t *testing.T) {
	s := Settings{Size: PageA4}
	b := para("indented", 12)
	b.Indent = 48

	doc := Paginate([]Block{b}, s)

	availW, _ := contentBox(s)
	box := doc.Pages[0].Elements[0].BoundingBox()
	if !closeTo(box.X, 48) {
		t.Errorf("X = %g, want 48", box.X)
	}
	if !closeTo(box.Width, availW-48) {
		t.Errorf("Width = %g, want %g", box.Width, availW-48)
	}
}

func TestPaginate_ImageKeepsAspect(t *testing.T) {
	s := Settings{Size: PageA4}
	img := &model.Image{BBox: model.NewBBox(0, 0, 2000, 1000)}

	doc := Paginate([]Block{{Image: img}}, s)

	availW, _ := contentBox(s)
	box := doc.Pages[0].Elements[0].BoundingBox()
	if !closeTo(box.Width, availW) {
		t.Errorf("Width = %g, want %g", box.Width, availW)
	}
	if !closeTo(box.Height, availW/2) {
		t.Errorf("Height = %g, want %g (aspect 2:1)", box.Height, availW/2)
	}
}

func TestPaginate_ImageWithoutDimensions(t *testing.T) {
	doc := Paginate([]Block{{Image: &model.Image{}}}, Settings{Size: PageA4})

	box := doc.Pages[0].Elements[0].BoundingBox()
	if !closeTo(box.Width, defaultImageWidth) || !closeTo(box.Height, defaultImageHeight) {
		t.Errorf("box = %gx%g, want %gx%g", box.Width, box.Height,
			float64(defaultImageWidth), float64(defaultImageHeight))
	}
}

func TestPaginate_SmallImageKeepsOwnSize(t *testing.T) {
	img := &model.Image{BBox: model.NewBBox(0, 0, 100, 80)}

	doc := Paginate([]Block{{Image: img}}, Settings{Size: PageA4})

	box := doc.Pages[0].Elements[0].BoundingBox()
	if !closeTo(box.Width, 100) || !closeTo(box.Height, 80) {
		t.Errorf("box = %gx%g, want 100x80", box.Width, box.Height)
	}
}

func TestPaginate_TableHeightCoversRows(t *testing.T) {
	tbl := model.NewTable(3, 2)
	tbl.Rows[0][0].Text = "a"
	tbl.Rows[1][0].Text = "b"
	tbl.Rows[2][0].Text = "c"

	doc := Paginate([]Block{{Table: tbl}}, Settings{Size: PageA4})

	box := doc.Pages[0].Elements[0].BoundingBox()
	if box.Height < 3*minRowHeight {
		t.Errorf("table height %g is less than 3 minimum rows (%g)", box.Height, 3*minRowHeight)
	}
}

func TestPaginate_LongTextGrowsTaller(t *testing.T) {
	short := Paginate([]Block{para("short", 12)}, Settings{Size: PageA4})
	long := Paginate([]Block{para(strings.Repeat("many words here ", 40), 12)}, Settings{Size: PageA4})

	sh := short.Pages[0].Elements[0].BoundingBox().Height
	lh := long.Pages[0].Elements[0].BoundingBox().Height
	if lh <= sh {
		t.Errorf("long text height %g not greater than short text height %g", lh, sh)
	}
}

func TestPaginate_ZOrderSequential(t *testing.T) {
	doc := Paginate([]Block{para("a", 12), para("b", 12), para("c", 12)}, Settings{Size: PageA4})

	for i, el := range doc.Pages[0].Elements {
		if el.ZIndex() != i {
			t.Errorf("element %d ZIndex = %d, want %d", i, el.ZIndex(), i)
		}
	}
}

// numberedTable builds two-column rows "r0", "r1", ... optionally under a
// header row.
func numberedTable(rows int, header bool) *model.Table {
	t := &model.Table{}
	if header {
		t.Rows = append(t.Rows, []model.Cell{{Text: "ID", Header: true}, {Text: "Value", Header: true}})
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, []model.Cell{{Text: fmt.Sprintf("r%d", i)}, {Text: "x"}})
	}
	return t
}

func TestPaginate_LongTableSplitsAcrossPages(t *testing.T) {
	s := Settings{Size: PageA4}
	doc := Paginate([]Block{{Table: numberedTable(100, false)}}, s)

	if doc.PageCount() < 2 {
		t.Fatalf("got %d pages, want the table split over several", doc.PageCount())
	}
	_, availH := contentBox(s)
	var texts []string
	for pi, pg := range doc.Pages {
		if len(pg.Elements) != 1 {
			t.Fatalf("page %d has %d elements, want 1", pi+1, len(pg.Elements))
		}
		part, ok := pg.Elements[0].(*model.Table)
		if !ok {
			t.Fatalf("page %d element is %T", pi+1, pg.Elements[0])
		}
		box := part.BoundingBox()
		if box.Y+box.Height > availH+1e-6 {
			t.Errorf("page %d table ends at %g, past the content box %g", pi+1, box.Y+box.Height, availH)
		}
		for _, row := range part.Rows {
			texts = append(texts, row[0].Text)
		}
	}
	if len(texts) != 100 {
		t.Fatalf("got %d rows across pages, want all 100", len(texts))
	}
	for i, got := range texts {
		if want := fmt.Sprintf("r%d", i); got != want {
			t.Fatalf("row %d = %q, want %q (order broken)", i, got, want)
		}
	}
}

func TestPaginate_TableSplitRepeatsHeader(t *testing.T) {
	doc := Paginate([]Block{{Table: numberedTable(80, true)}}, Settings{Size: PageA4})

	if doc.PageCount() < 2 {
		t.Fatalf("got %d pages, want a split", doc.PageCount())
	}
	dataRows := 0
	for pi, pg := range doc.Pages {
		part := pg.Elements[0].(*model.Table)
		if first := part.Rows[0][0]; first.Text != "ID" || !first.Header {
			t.Errorf("page %d first row = %+v, want repeated header", pi+1, first)
		}
		dataRows += len(part.Rows) - 1
	}
	if dataRows != 80 {
		t.Errorf("got %d data rows across pages, want 80 with no loss or duplication", dataRows)
	}
}

func TestPaginate_TableSplitsInPlaceAfterText(t *testing.T) {
	blocks := []Block{
		para("Sheet overview", 14),
		{Table: numberedTable(100, false), SpaceBefore: 8},
	}
	doc := Paginate(blocks, Settings{Size: PageA4})

	first := doc.Pages[0]
	if len(first.Elements) != 2 {
		t.Fatalf("page 1 has %d elements, want the heading plus the table start", len(first.Elements))
	}
	if _, ok := first.Elements[1].(*model.Table); !ok {
		t.Fatalf("page 1 second element is %T, want table", first.Elements[1])
	}
}

func TestPaginate_SingleOversizeRowClipped(t *testing.T) {
	s := Settings{Size: PageA4}
	tbl := &model.Table{Rows: [][]model.Cell{{{Text: strings.Repeat("w ", 3000)}}}}
	doc := Paginate([]Block{{Table: tbl}}, s)

	if doc.PageCount() != 1 {
		t.Fatalf("got %d pages, want a single clipped page", doc.PageCount())
	}
	_, availH := contentBox(s)
	if box := doc.Pages[0].Elements[0].BoundingBox(); box.Height != availH {
		t.Errorf("height = %g, want clipped to %g", box.Height, availH)
	}
}
