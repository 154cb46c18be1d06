package docx

import "encoding/xml"

// stylesXML is the root of word/styles.xml.
type stylesXML struct {
	XMLName     xml.Name       `xml:"styles"`
	DocDefaults docDefaultsXML `xml:"docDefaults"`
	Styles      []styleDefXML  `xml:"style"`
}

type docDefaultsXML struct {
	RPrDefault rPrDefaultXML `xml:"rPrDefault"`
	PPrDefault pPrDefaultXML `xml:"pPrDefault"`
}

type rPrDefaultXML struct {
	RPr *runPropsXML `xml:"rPr"`
}

type pPrDefaultXML struct {
	PPr *paragraphPropsXML `xml:"pPr"`
}

// styleDefXML is one style definition. BasedOn forms the inheritance
// chain that the resolver walks.
type styleDefXML struct {
	Type    string             `xml:"type,attr"`
	StyleID string             `xml:"styleId,attr"`
	Default string             `xml:"default,attr"`
	Name    valXML             `xml:"name"`
	BasedOn valXML             `xml:"basedOn"`
	PPr     *paragraphPropsXML `xml:"pPr"`
	RPr     *runPropsXML       `xml:"rPr"`
}

// numberingXML is the root of word/numbering.xml. Concrete numberings
// (num) point at abstract definitions (abstractNum) that carry the
// per-level formats.
type numberingXML struct {
	XMLName      xml.Name         `xml:"numbering"`
	AbstractNums []abstractNumXML `xml:"abstractNum"`
	Nums         []numXML         `xml:"num"`
}

type abstractNumXML struct {
	ID     string   `xml:"abstractNumId,attr"`
	Levels []lvlXML `xml:"lvl"`
}

type lvlXML struct {
	ILvl   string             `xml:"ilvl,attr"`
	Start  valXML             `xml:"start"`
	Format valXML             `xml:"numFmt"`  // bullet, decimal, lowerRoman, ...
	Text   valXML             `xml:"lvlText"` // pattern like "%1."
	PPr    *paragraphPropsXML `xml:"pPr"`
}

type numXML struct {
	ID          string `xml:"numId,attr"`
	AbstractRef valXML `xml:"abstractNumId"`
}

// relationshipsXML is the root of a .rels part.
type relationshipsXML struct {
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// corePropertiesXML is the root of docProps/core.xml.
type corePropertiesXML struct {
	XMLName  xml.Name `xml:"coreProperties"`
	Title    string   `xml:"title"`
	Subject  string   `xml:"subject"`
	Creator  string   `xml:"creator"`
	Keywords string   `xml:"keywords"`
	Created  string   `xml:"created"`
	Modified string   `xml:"modified"`
}

// appPropertiesXML is the root of docProps/app.xml.
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
	Pages       int      `xml:"Pages"`
	Words       int      `xml:"Words"`
	Company     string   `xml:"Company"`
}
