package pptx

import "encoding/xml"

// presentationXML represents the ppt/presentation.xml file structure.
type presentationXML struct {
	XMLName     xml.Name        `xml:"presentation"`
	SlideIdList *slideIdListXML `xml:"sldIdLst"`
	SlideSz     *slideSzXML     `xml:"sldSz"`
}

type slideIdListXML struct {
	SlideId []slideIdXML `xml:"sldId"`
}

type slideIdXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"` // r:id attribute
}

type slideSzXML struct {
	Cx int `xml:"cx,attr"` // Width in EMUs
	Cy int `xml:"cy,attr"` // Height in EMUs
}

// slideXML represents a ppt/slides/slide*.xml file structure. The show
// attribute marks hidden slides when "0".
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	Show    *int     `xml:"show,attr"`
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	Bg     *bgXML    `xml:"bg"`
	SpTree spTreeXML `xml:"spTree"`
}

// bgXML represents a slide background.
type bgXML struct {
	BgPr *bgPrXML `xml:"bgPr"`
}

type bgPrXML struct {
	SolidFill *solidFillXML `xml:"solidFill"`
	BlipFill  *blipFillXML  `xml:"blipFill"`
}

// spTreeXML represents the shape tree containing all shapes on a slide.
// Children are kept in document order because tree order is paint
// order; destructuring into per-kind slices would lose the stacking.
type spTreeXML struct {
	Nodes []spTreeNode
}

// spTreeNode is one shape-tree child. Exactly one field is non-nil.
type spTreeNode struct {
	Sp           *spXML
	CxnSp        *cxnSpXML
	Pic          *picXML
	GraphicFrame *graphicFrameXML
	GrpSp        *grpSpXML
}

// UnmarshalXML collects sp, cxnSp, pic, graphicFrame and grpSp children
// in the order they appear, skipping everything else.
func (t *spTreeXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			node, known, err := decodeTreeChild(d, el)
			if err != nil {
				return err
			}
			if known {
				t.Nodes = append(t.Nodes, node)
			}
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}

// decodeTreeChild decodes a single shape-tree child element. The bool
// reports whether the element is a kind the model keeps; unknown
// elements are skipped whole.
func decodeTreeChild(d *xml.Decoder, el xml.StartElement) (spTreeNode, bool, error) {
	switch el.Name.Local {
	case "sp":
		var sp spXML
		if err := d.DecodeElement(&sp, &el); err != nil {
			return spTreeNode{}, false, err
		}
		return spTreeNode{Sp: &sp}, true, nil
	case "cxnSp":
		var cxn cxnSpXML
		if err := d.DecodeElement(&cxn, &el); err != nil {
			return spTreeNode{}, false, err
		}
		return spTreeNode{CxnSp: &cxn}, true, nil
	case "pic":
		var pic picXML
		if err := d.DecodeElement(&pic, &el); err != nil {
			return spTreeNode{}, false, err
		}
		return spTreeNode{Pic: &pic}, true, nil
	case "graphicFrame":
		var frame graphicFrameXML
		if err := d.DecodeElement(&frame, &el); err != nil {
			return spTreeNode{}, false, err
		}
		return spTreeNode{GraphicFrame: &frame}, true, nil
	case "grpSp":
		var grp grpSpXML
		if err := d.DecodeElement(&grp, &el); err != nil {
			return spTreeNode{}, false, err
		}
		return spTreeNode{GrpSp: &grp}, true, nil
	default:
		if err := d.Skip(); err != nil {
			return spTreeNode{}, false, err
		}
		return spTreeNode{}, false, nil
	}
}

type cNvPrXML struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Title string `xml:"title,attr"`
}

// spXML represents a shape element.
type spXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	SpPr   spPrXML    `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
	NvPr  nvPrXML  `xml:"nvPr"`
}

type nvPrXML struct {
	Ph *phXML `xml:"ph"` // Placeholder info
}

type phXML struct {
	Type string `xml:"type,attr"` // title, body, subTitle, ctrTitle, etc.
	Idx  int    `xml:"idx,attr"`
}

type spPrXML struct {
	Xfrm      *xfrmXML      `xml:"xfrm"`
	PrstGeom  *prstGeomXML  `xml:"prstGeom"`
	SolidFill *solidFillXML `xml:"solidFill"`
	NoFill    *struct{}     `xml:"noFill"`
	Ln        *lnXML        `xml:"ln"`
}

type prstGeomXML struct {
	Prst string `xml:"prst,attr"` // rect, roundRect, ellipse, triangle, ...
}

// lnXML represents shape outline properties.
type lnXML struct {
	W         int           `xml:"w,attr"` // Stroke width in EMUs
	SolidFill *solidFillXML `xml:"solidFill"`
	NoFill    *struct{}     `xml:"noFill"`
	PrstDash  *prstDashXML  `xml:"prstDash"`
}

type prstDashXML struct {
	Val string `xml:"val,attr"` // solid, dash, dot, ...
}

// solidFillXML carries either a literal sRGB color or a theme reference.
type solidFillXML struct {
	SrgbClr   *srgbClrXML   `xml:"srgbClr"`
	SchemeClr *schemeClrXML `xml:"schemeClr"`
}

type srgbClrXML struct {
	Val   string    `xml:"val,attr"` // 6-digit hex, no prefix
	Alpha *alphaXML `xml:"alpha"`
}

type schemeClrXML struct {
	Val   string    `xml:"val,attr"` // accent1, dk1, bg1, tx1, ...
	Alpha *alphaXML `xml:"alpha"`
}

type alphaXML struct {
	Val int `xml:"val,attr"` // Thousandths of a percent
}

type xfrmXML struct {
	Rot   int     `xml:"rot,attr"` // Rotation in 60000ths of a degree
	Off   *offXML `xml:"off"`
	Ext   *extXML `xml:"ext"`
	ChOff *offXML `xml:"chOff"` // Group child coordinate origin
	ChExt *extXML `xml:"chExt"` // Group child coordinate extent
}

type offXML struct {
	X int `xml:"x,attr"` // X position in EMUs
	Y int `xml:"y,attr"` // Y position in EMUs
}

type extXML struct {
	Cx int `xml:"cx,attr"` // Width in EMUs
	Cy int `xml:"cy,attr"` // Height in EMUs
}

// txBodyXML represents text body content.
type txBodyXML struct {
	BodyPr bodyPrXML `xml:"bodyPr"`
	P      []pXML    `xml:"p"` // Paragraphs
}

type bodyPrXML struct {
	Anchor string `xml:"anchor,attr"` // t, ctr, b
}

// pXML represents a paragraph.
type pXML struct {
	PPr        *pPrXML  `xml:"pPr"`
	R          []rXML   `xml:"r"`
	Fld        []fldXML `xml:"fld"` // Fields (like slide number)
	EndParaRPr *rPrXML  `xml:"endParaRPr"`
}

type pPrXML struct {
	Lvl  int    `xml:"lvl,attr"`  // Indent level (0-8)
	Algn string `xml:"algn,attr"` // l, ctr, r, just
}

// rXML represents a text run.
type rXML struct {
	RPr *rPrXML `xml:"rPr"`
	T   string  `xml:"t"`
}

type rPrXML struct {
	Sz        int           `xml:"sz,attr"` // Font size in hundredths of a point
	B         *int          `xml:"b,attr"`  // Bold (1 = true)
	I         *int          `xml:"i,attr"`  // Italic (1 = true)
	U         string        `xml:"u,attr"`  // Underline type, "none" disables
	Strike    string        `xml:"strike,attr"`
	SolidFill *solidFillXML `xml:"solidFill"`
	Highlight *solidFillXML `xml:"highlight"`
	Latin     *latinXML     `xml:"latin"`
}

type latinXML struct {
	Typeface string `xml:"typeface,attr"`
}

type fldXML struct {
	Type string `xml:"type,attr"` // slidenum, datetime, etc.
	T    string `xml:"t"`
}

// picXML represents a picture element.
type picXML struct {
	NvPicPr  nvPicPrXML  `xml:"nvPicPr"`
	BlipFill blipFillXML `xml:"blipFill"`
	SpPr     spPrXML     `xml:"spPr"`
}

type nvPicPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

type blipFillXML struct {
	Blip blipXML `xml:"blip"`
}

type blipXML struct {
	Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"` // r:embed relationship ID
}

// graphicFrameXML represents a graphic frame (tables, charts).
type graphicFrameXML struct {
	NvGraphicFramePr nvGraphicFramePrXML `xml:"nvGraphicFramePr"`
	Xfrm             *xfrmXML            `xml:"xfrm"`
	Graphic          graphicXML          `xml:"graphic"`
}

type nvGraphicFramePrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

type graphicXML struct {
	GraphicData graphicDataXML `xml:"graphicData"`
}

type graphicDataXML struct {
	URI string  `xml:"uri,attr"`
	Tbl *tblXML `xml:"tbl"`
}

// tblXML represents a table.
type tblXML struct {
	TblGrid tblGridXML `xml:"tblGrid"`
	Tr      []trXML    `xml:"tr"`
}

type tblGridXML struct {
	GridCol []gridColXML `xml:"gridCol"`
}

type gridColXML struct {
	W int `xml:"w,attr"` // Width in EMUs
}

type trXML struct {
	H  int     `xml:"h,attr"` // Row height in EMUs
	Tc []tcXML `xml:"tc"`
}

type tcXML struct {
	TxBody *txBodyXML `xml:"txBody"`
	TcPr   *tcPrXML   `xml:"tcPr"`
}

type tcPrXML struct {
	SolidFill *solidFillXML `xml:"solidFill"`
}

// grpSpXML represents a group of shapes. Like the shape tree, child
// order is paint order, so children decode into an ordered node list.
type grpSpXML struct {
	GrpSpPr grpSpPrXML
	Tree    spTreeXML
}

// UnmarshalXML splits group children into the group properties and the
// ordered shape list.
func (g *grpSpXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "grpSpPr" {
				if err := d.DecodeElement(&g.GrpSpPr, &el); err != nil {
					return err
				}
				continue
			}
			node, known, err := decodeTreeChild(d, el)
			if err != nil {
				return err
			}
			if known {
				g.Tree.Nodes = append(g.Tree.Nodes, node)
			}
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}

type grpSpPrXML struct {
	Xfrm *xfrmXML `xml:"xfrm"`
}

// cxnSpXML represents a connector shape (straight and bent lines).
type cxnSpXML struct {
	SpPr spPrXML `xml:"spPr"`
}

// notesSlideXML represents a ppt/notesSlides/notesSlide*.xml file.
type notesSlideXML struct {
	XMLName xml.Name `xml:"notes"`
	CSld    cSldXML  `xml:"cSld"`
}

// themeXML represents the color scheme portion of ppt/theme/theme*.xml.
type themeXML struct {
	XMLName       xml.Name      `xml:"theme"`
	ThemeElements themeElemsXML `xml:"themeElements"`
}

type themeElemsXML struct {
	ClrScheme clrSchemeXML `xml:"clrScheme"`
}

type clrSchemeXML struct {
	Dk1      themeColorXML `xml:"dk1"`
	Lt1      themeColorXML `xml:"lt1"`
	Dk2      themeColorXML `xml:"dk2"`
	Lt2      themeColorXML `xml:"lt2"`
	Accent1  themeColorXML `xml:"accent1"`
	Accent2  themeColorXML `xml:"accent2"`
	Accent3  themeColorXML `xml:"accent3"`
	Accent4  themeColorXML `xml:"accent4"`
	Accent5  themeColorXML `xml:"accent5"`
	Accent6  themeColorXML `xml:"accent6"`
	Hlink    themeColorXML `xml:"hlink"`
	FolHlink themeColorXML `xml:"folHlink"`
}

type themeColorXML struct {
	SrgbClr *srgbClrXML `xml:"srgbClr"`
	SysClr  *sysClrXML  `xml:"sysClr"`
}

type sysClrXML struct {
	Val     string `xml:"val,attr"`     // windowText, window
	LastClr string `xml:"lastClr,attr"` // 6-digit hex
}

// relationshipsXML represents .rels files.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// corePropertiesXML represents docProps/core.xml.
type corePropertiesXML struct {
	XMLName  xml.Name `xml:"coreProperties"`
	Title    string   `xml:"title"`
	Subject  string   `xml:"subject"`
	Creator  string   `xml:"creator"`
	Keywords string   `xml:"keywords"`
	Created  string   `xml:"created"`  // dcterms:created, W3CDTF
	Modified string   `xml:"modified"` // dcterms:modified, W3CDTF
}

// appPropertiesXML represents docProps/app.xml.
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
	Company     string   `xml:"Company"`
	Slides      int      `xml:"Slides"`
	Notes       int      `xml:"Notes"`
}
