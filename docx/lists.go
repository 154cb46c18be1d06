package docx

import (
	"strconv"
	"strings"
)

// levelBullets are the default bullet characters per nesting level when
// the numbering definition does not supply a usable one.
var levelBullets = []string{"•", "○", "■", "□", "▪", "▫", "►", "◦"}

// listLevelIndentTwips is Word's default indent step per list level.
const listLevelIndentTwips = 720

// NumberingResolver turns numbering references into rendered list
// markers. Ordered formats keep per-level counters, so markers must be
// requested in document order.
type NumberingResolver struct {
	abstract map[string]*abstractNumXML
	nums     map[string]string // numId -> abstractNumId
	counters map[string][]int  // numId -> counter per level
}

// NewNumberingResolver builds a resolver from a parsed numbering part. A
// nil part resolves every reference to a plain bullet.
func NewNumberingResolver(numbering *numberingXML) *NumberingResolver {
	nr := &NumberingResolver{
		abstract: make(map[string]*abstractNumXML),
		nums:     make(map[string]string),
		counters: make(map[string][]int),
	}
	if numbering == nil {
		return nr
	}
	for i := range numbering.AbstractNums {
		an := &numbering.AbstractNums[i]
		nr.abstract[an.ID] = an
	}
	for _, num := range numbering.Nums {
		nr.nums[num.ID] = num.AbstractRef.Val
	}
	return nr
}

// Reset clears the ordered-list counters so a fresh document walk yields
// the same markers as the previous one.
func (nr *NumberingResolver) Reset() {
	nr.counters = make(map[string][]int)
}

// level finds the level definition for a numbering reference, or nil.
func (nr *NumberingResolver) level(numID string, ilvl int) *lvlXML {
	an, ok := nr.abstract[nr.nums[numID]]
	if !ok {
		return nil
	}
	want := strconv.Itoa(ilvl)
	for i := range an.Levels {
		if an.Levels[i].ILvl == want {
			return &an.Levels[i]
		}
	}
	return nil
}

// Marker returns the rendered marker for the next item of the given
// numbering at the given level and advances its counter. Bullet formats
// return the bullet character; numbered formats expand the level text
// pattern, so "%1.%2." yields markers like "2.3.".
func (nr *NumberingResolver) Marker(numID string, ilvl int) string {
	lvl := nr.level(numID, ilvl)
	if lvl == nil || lvl.Format.Val == "" || lvl.Format.Val == "bullet" {
		text := ""
		if lvl != nil {
			text = lvl.Text.Val
		}
		return bulletChar(text, ilvl)
	}
	if lvl.Format.Val == "none" {
		return ""
	}

	nr.advance(numID, ilvl, lvl)
	pattern := lvl.Text.Val
	if pattern == "" {
		pattern = "%" + strconv.Itoa(ilvl+1) + "."
	}
	return nr.expand(numID, pattern)
}

// Indent returns the level's own left indent in pixels, or the default
// step per nesting level when the definition does not carry one.
func (nr *NumberingResolver) Indent(numID string, ilvl int) float64 {
	if lvl := nr.level(numID, ilvl); lvl != nil && lvl.PPr != nil {
		if v, ok := parseTwips(lvl.PPr.Indent.Left); ok && v > 0 {
			return v
		}
	}
	return float64(listLevelIndentTwips*(ilvl+1)) / twipsPerPixel
}

// advance increments the counter at ilvl and resets deeper levels, so a
// new sublist restarts its numbering.
func (nr *NumberingResolver) advance(numID string, ilvl int, lvl *lvlXML) {
	counters := nr.counters[numID]
	for len(counters) <= ilvl {
		counters = append(counters, 0)
	}
	if counters[ilvl] == 0 {
		start := 1
		if s, err := strconv.Atoi(lvl.Start.Val); err == nil && s > 0 {
			start = s
		}
		counters[ilvl] = start
	} else {
		counters[ilvl]++
	}
	for i := ilvl + 1; i < len(counters); i++ {
		counters[i] = 0
	}
	nr.counters[numID] = counters
}

// expand replaces %N placeholders in a level text pattern with the
// current counter values, each rendered in its own level's format.
func (nr *NumberingResolver) expand(numID, pattern string) string {
	var sb strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '%' && i+1 < len(runes) && runes[i+1] >= '1' && runes[i+1] <= '9' {
			level := int(runes[i+1]-'1') // %1 is level 0
			sb.WriteString(nr.counterText(numID, level))
			i++
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}

// counterText renders one level's current counter in that level's format.
func (nr *NumberingResolver) counterText(numID string, ilvl int) string {
	n := 1
	if counters := nr.counters[numID]; ilvl < len(counters) && counters[ilvl] > 0 {
		n = counters[ilvl]
	}
	format := "decimal"
	if lvl := nr.level(numID, ilvl); lvl != nil && lvl.Format.Val != "" {
		format = lvl.Format.Val
	}
	return formatNumber(format, n)
}

// formatNumber renders a counter value in a numbering format. Unknown
// formats fall back to decimal.
func formatNumber(format string, n int) string {
	switch format {
	case "lowerLetter":
		return letterNumber(n, 'a')
	case "upperLetter":
		return letterNumber(n, 'A')
	case "lowerRoman":
		return strings.ToLower(romanNumber(n))
	case "upperRoman":
		return romanNumber(n)
	default:
		return strconv.Itoa(n)
	}
}

// letterNumber renders 1..26 as a..z; past z Word doubles the letter, so
// 27 is aa and 53 is aaa.
func letterNumber(n int, base rune) string {
	if n < 1 {
		n = 1
	}
	letter := string(base + rune((n-1)%26))
	return strings.Repeat(letter, (n-1)/26+1)
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func romanNumber(n int) string {
	if n < 1 {
		return "I"
	}
	var sb strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			sb.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return sb.String()
}

// bulletChar picks the bullet for a level. Word often stores Symbol or
// Wingdings glyphs in the Private Use Area; those cannot render with
// standard fonts, so they fall back to the per-level defaults.
func bulletChar(lvlText string, level int) string {
	if lvlText != "" && !strings.Contains(lvlText, "%") && isRenderableBullet(lvlText) {
		return lvlText
	}
	if level >= 0 && level < len(levelBullets) {
		return levelBullets[level]
	}
	return levelBullets[0]
}

func isRenderableBullet(s string) bool {
	for _, r := range s {
		if r >= 0xE000 && r <= 0xF8FF {
			return false
		}
		if r < 0x20 {
			return false
		}
	}
	return len(s) > 0
}
