package docx

import "testing"

// numberingFixture defines two numberings: numId 1 is a two-level ordered
// list (decimal then lowerLetter), numId 2 a dash bullet.
func numberingFixture() *numberingXML {
	return &numberingXML{
		AbstractNums: []abstractNumXML{
			{
				ID: "0",
				Levels: []lvlXML{
					{ILvl: "0", Format: valXML{Val: "decimal"}, Text: valXML{Val: "%1."}},
					{ILvl: "1", Format: valXML{Val: "lowerLetter"}, Text: valXML{Val: "%2)"}},
				},
			},
			{
				ID: "1",
				Levels: []lvlXML{
					{ILvl: "0", Format: valXML{Val: "bullet"}, Text: valXML{Val: "-"}},
				},
			},
		},
		Nums: []numXML{
			{ID: "1", AbstractRef: valXML{Val: "0"}},
			{ID: "2", AbstractRef: valXML{Val: "1"}},
		},
	}
}

func TestMarker_DecimalSequence(t *testing.T) {
	nr := NewNumberingResolver(numberingFixture())

	for i, want := range []string{"1.", "2.", "3."} {
		if got := nr.Marker("1", 0); got != want {
			t.Errorf("item %d marker = %q, want %q", i, got, want)
		}
	}
}

func TestMarker_SublevelRestarts(t *testing.T) {
	nr := NewNumberingResolver(numberingFixture())

	nr.Marker("1", 0) // 1.
	if got := nr.Marker("1", 1); got != "a)" {
		t.Errorf("first sublevel marker = %q, want a)", got)
	}
	if got := nr.Marker("1", 1); got != "b)" {
		t.Errorf("second sublevel marker = %q, want b)", got)
	}
	nr.Marker("1", 0) // 2. resets the sublevel
	if got := nr.Marker("1", 1); got != "a)" {
		t.Errorf("sublevel after parent advance = %q, want a)", got)
	}
}

func TestMarker_MultiLevelPattern(t *testing.T) {
	numbering := numberingFixture()
	numbering.AbstractNums[0].Levels[1].Text = valXML{Val: "%1.%2."}
	numbering.AbstractNums[0].Levels[1].Format = valXML{Val: "decimal"}
	nr := NewNumberingResolver(numbering)

	nr.Marker("1", 0)
	nr.Marker("1", 0) // parent at 2
	if got := nr.Marker("1", 1); got != "2.1." {
		t.Errorf("marker = %q, want 2.1.", got)
	}
}

func TestMarker_StartValue(t *testing.T) {
	numbering := numberingFixture()
	numbering.AbstractNums[0].Levels[0].Start = valXML{Val: "5"}
	nr := NewNumberingResolver(numbering)

	if got := nr.Marker("1", 0); got != "5." {
		t.Errorf("first marker = %q, want 5.", got)
	}
	if got := nr.Marker("1", 0); got != "6." {
		t.Errorf("second marker = %q, want 6.", got)
	}
}

func TestMarker_Bullet(t *testing.T) {
	nr := NewNumberingResolver(numberingFixture())

	if got := nr.Marker("2", 0); got != "-" {
		t.Errorf("dash bullet marker = %q, want -", got)
	}
	// Bullets carry no state.
	if got := nr.Marker("2", 0); got != "-" {
		t.Errorf("repeated bullet marker = %q, want -", got)
	}
}

func TestMarker_PrivateUseBulletFallsBack(t *testing.T) {
	numbering := numberingFixture()
	numbering.AbstractNums[1].Levels[0].Text = valXML{Val: ""} // Wingdings dot
	nr := NewNumberingResolver(numbering)

	if got := nr.Marker("2", 0); got != "•" {
		t.Errorf("marker = %q, want default bullet for PUA glyph", got)
	}
}

func TestMarker_UnknownNumberingIsBullet(t *testing.T) {
	nr := NewNumberingResolver(nil)

	if got := nr.Marker("42", 0); got != "•" {
		t.Errorf("marker = %q, want default bullet", got)
	}
	if got := nr.Marker("42", 1); got != "○" {
		t.Errorf("level 1 marker = %q, want level default", got)
	}
}

func TestMarker_NoneFormat(t *testing.T) {
	numbering := numberingFixture()
	numbering.AbstractNums[0].Levels[0].Format = valXML{Val: "none"}
	nr := NewNumberingResolver(numbering)

	if got := nr.Marker("1", 0); got != "" {
		t.Errorf("marker = %q, want empty for none format", got)
	}
}

func TestReset(t *testing.T) {
	nr := NewNumberingResolver(numberingFixture())

	nr.Marker("1", 0)
	nr.Marker("1", 0)
	nr.Reset()
	if got := nr.Marker("1", 0); got != "1." {
		t.Errorf("marker after reset = %q, want 1.", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		format string
		n      int
		want   string
	}{
		{"decimal", 7, "7"},
		{"lowerLetter", 1, "a"},
		{"lowerLetter", 26, "z"},
		{"lowerLetter", 27, "aa"},
		{"upperLetter", 2, "B"},
		{"lowerRoman", 4, "iv"},
		{"lowerRoman", 14, "xiv"},
		{"upperRoman", 9, "IX"},
		{"upperRoman", 1990, "MCMXC"},
		{"mystery", 3, "3"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.format, tt.n); got != tt.want {
			t.Errorf("formatNumber(%q, %d) = %q, want %q", tt.format, tt.n, got, tt.want)
		}
	}
}

func TestIndent(t *testing.T) {
	nr := NewNumberingResolver(numberingFixture())

	if got := nr.Indent("1", 0); !closeTo(got, 48) {
		t.Errorf("level 0 indent = %g, want 48", got)
	}
	if got := nr.Indent("1", 1); !closeTo(got, 96) {
		t.Errorf("level 1 indent = %g, want 96", got)
	}
}

func TestIndent_FromLevelDefinition(t *testing.T) {
	numbering := numberingFixture()
	numbering.AbstractNums[0].Levels[0].PPr = &paragraphPropsXML{
		Indent: indentXML{Left: "1440"},
	}
	nr := NewNumberingResolver(numbering)

	if got := nr.Indent("1", 0); !closeTo(got, 96) {
		t.Errorf("indent = %g, want 96 from level definition", got)
	}
}
