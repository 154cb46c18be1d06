package docx

import "encoding/xml"

// documentXML is the root of word/document.xml.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

// bodyXML holds the document content. encoding/xml decodes repeated child
// kinds into one slice per kind, which loses how paragraphs and tables
// interleave, so Items is filled by a custom unmarshaler that walks the
// children in source order.
type bodyXML struct {
	Items  []bodyItem
	SectPr *sectPrXML
}

// bodyItem is one body child in document order. Exactly one field is set.
type bodyItem struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &el); err != nil {
					return err
				}
				b.Items = append(b.Items, bodyItem{Paragraph: &p})
			case "tbl":
				var t tableXML
				if err := d.DecodeElement(&t, &el); err != nil {
					return err
				}
				b.Items = append(b.Items, bodyItem{Table: &t})
			case "sectPr":
				var s sectPrXML
				if err := d.DecodeElement(&s, &el); err != nil {
					return err
				}
				b.SectPr = &s
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}

// sectPrXML carries section properties. Only the page size matters here;
// landscape sections already store swapped dimensions, so the orient
// attribute is informational.
type sectPrXML struct {
	PgSz pgSzXML `xml:"pgSz"`
}

type pgSzXML struct {
	W      string `xml:"w,attr"` // twips
	H      string `xml:"h,attr"` // twips
	Orient string `xml:"orient,attr"`
}

// paragraphXML is one w:p element. Runs nested inside hyperlinks are
// flattened into Runs in place, so document order survives.
type paragraphXML struct {
	Properties paragraphPropsXML
	Runs       []runXML
}

func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "pPr":
				if err := d.DecodeElement(&p.Properties, &el); err != nil {
					return err
				}
			case "r":
				var r runXML
				if err := d.DecodeElement(&r, &el); err != nil {
					return err
				}
				p.Runs = append(p.Runs, r)
			case "hyperlink":
				var h hyperlinkXML
				if err := d.DecodeElement(&h, &el); err != nil {
					return err
				}
				p.Runs = append(p.Runs, h.Runs...)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}

type hyperlinkXML struct {
	ID   string   `xml:"id,attr"`
	Runs []runXML `xml:"r"`
}

type paragraphPropsXML struct {
	Style         styleRefXML `xml:"pStyle"`
	NumPr         *numPrXML   `xml:"numPr"`
	Justification valXML      `xml:"jc"`
	Spacing       spacingXML  `xml:"spacing"`
	Indent        indentXML   `xml:"ind"`
	OutlineLvl    valXML      `xml:"outlineLvl"`
}

type styleRefXML struct {
	Val string `xml:"val,attr"`
}

type valXML struct {
	Val string `xml:"val,attr"`
}

type numPrXML struct {
	ILvl  valXML `xml:"ilvl"`
	NumID valXML `xml:"numId"`
}

type spacingXML struct {
	Before string `xml:"before,attr"` // twips
	After  string `xml:"after,attr"`
	Line   string `xml:"line,attr"`
}

type indentXML struct {
	Left      string `xml:"left,attr"` // twips
	Right     string `xml:"right,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

// runXML is one w:r element. Content keeps the interleaving of text, tabs,
// breaks and drawings, which plain struct fields would lose.
type runXML struct {
	Properties *runPropsXML
	Content    []runPiece
}

// runPiece is one ordered item of run content. Break is "line" or "page"
// when set.
type runPiece struct {
	Text    string
	Tab     bool
	Break   string
	Drawing *drawingXML
}

func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "rPr":
				var props runPropsXML
				if err := d.DecodeElement(&props, &el); err != nil {
					return err
				}
				r.Properties = &props
			case "t":
				var t textXML
				if err := d.DecodeElement(&t, &el); err != nil {
					return err
				}
				r.Content = append(r.Content, runPiece{Text: t.Value})
			case "tab":
				if err := d.Skip(); err != nil {
					return err
				}
				r.Content = append(r.Content, runPiece{Tab: true})
			case "br":
				var br breakXML
				if err := d.DecodeElement(&br, &el); err != nil {
					return err
				}
				kind := "line"
				if br.Type == "page" {
					kind = "page"
				}
				r.Content = append(r.Content, runPiece{Break: kind})
			case "cr":
				if err := d.Skip(); err != nil {
					return err
				}
				r.Content = append(r.Content, runPiece{Break: "line"})
			case "drawing":
				var dr drawingXML
				if err := d.DecodeElement(&dr, &el); err != nil {
					return err
				}
				r.Content = append(r.Content, runPiece{Drawing: &dr})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}

type textXML struct {
	Space string `xml:"space,attr"`
	Value string `xml:",chardata"`
}

type breakXML struct {
	Type string `xml:"type,attr"`
}

type runPropsXML struct {
	Bold      *toggleXML `xml:"b"`
	Italic    *toggleXML `xml:"i"`
	Underline valXML     `xml:"u"`
	Strike    *toggleXML `xml:"strike"`
	Size      valXML     `xml:"sz"` // half-points
	Fonts     fontsXML   `xml:"rFonts"`
	Color     valXML     `xml:"color"` // hex or "auto"
	Highlight valXML     `xml:"highlight"`
	Shading   shdXML     `xml:"shd"`
}

// toggleXML models on/off run properties where the element's presence
// means on unless val says otherwise.
type toggleXML struct {
	Val string `xml:"val,attr"`
}

func (t *toggleXML) on() bool {
	return t != nil && t.Val != "false" && t.Val != "0"
}

type fontsXML struct {
	ASCII string `xml:"ascii,attr"`
	HAnsi string `xml:"hAnsi,attr"`
}

type shdXML struct {
	Val   string `xml:"val,attr"`
	Color string `xml:"color,attr"`
	Fill  string `xml:"fill,attr"`
}

// drawingXML wraps an inline or anchored picture. The blip path cuts
// through the drawingml wrappers straight to the relationship reference.
type drawingXML struct {
	Inline *drawingContentXML `xml:"inline"`
	Anchor *drawingContentXML `xml:"anchor"`
}

type drawingContentXML struct {
	Extent extentXML `xml:"extent"`
	Blip   *blipXML  `xml:"graphic>graphicData>pic>blipFill>blip"`
}

type extentXML struct {
	CX string `xml:"cx,attr"` // EMU
	CY string `xml:"cy,attr"`
}

type blipXML struct {
	Embed string `xml:"embed,attr"`
}

// tableXML is one w:tbl element.
type tableXML struct {
	Properties tblPrXML      `xml:"tblPr"`
	Grid       tblGridXML    `xml:"tblGrid"`
	Rows       []tableRowXML `xml:"tr"`
}

type tblPrXML struct {
	Style   styleRefXML   `xml:"tblStyle"`
	Borders tblBordersXML `xml:"tblBorders"`
}

type tblBordersXML struct {
	Top     valXML `xml:"top"`
	Bottom  valXML `xml:"bottom"`
	Left    valXML `xml:"left"`
	Right   valXML `xml:"right"`
	InsideH valXML `xml:"insideH"`
	InsideV valXML `xml:"insideV"`
}

type tblGridXML struct {
	Cols []gridColXML `xml:"gridCol"`
}

type gridColXML struct {
	W string `xml:"w,attr"` // twips
}

type tableRowXML struct {
	Properties trPrXML        `xml:"trPr"`
	Cells      []tableCellXML `xml:"tc"`
}

type trPrXML struct {
	Height heightXML  `xml:"trHeight"`
	Header *toggleXML `xml:"tblHeader"`
}

type heightXML struct {
	Val string `xml:"val,attr"`
}

type tableCellXML struct {
	Properties tcPrXML        `xml:"tcPr"`
	Paragraphs []paragraphXML `xml:"p"`
}

type tcPrXML struct {
	GridSpan valXML     `xml:"gridSpan"`
	VMerge   *vMergeXML `xml:"vMerge"`
	Shading  shdXML     `xml:"shd"`
	VAlign   valXML     `xml:"vAlign"`
}

// vMergeXML marks vertical merges: val "restart" opens one, an empty val
// continues the merge above.
type vMergeXML struct {
	Val string `xml:"val,attr"`
}
