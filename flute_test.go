package flutulus

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func TestBuildHeader(t *testing.T) {
	tree, err := Build(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	text := tree.String()
	want := "// D major flute\n// Six-hole conical-bore flute in D.\n// Octagonal exterior.\nunion() {\n"
	if !strings.HasPrefix(text, want) {
		t.Errorf("header mismatch, got:\n%s", text[:min(len(text), 200)])
	}
}

func TestBuildFacetRotation(t *testing.T) {
	// outer_facets=8 must turn the body half a facet: 360/8/2 = 22.5.
	tree, err := Build(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	text := tree.String()
	if !strings.Contains(text, "rotate([0, 0, 22.5]) {") {
		t.Errorf("missing half-facet body rotation:\n%s", text)
	}
	if !strings.Contains(text, "$fn=8") {
		t.Error("outer stack lost its facet count")
	}

	s := testSpec()
	s.OuterFacets = 0
	tree, err = Build(s)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(tree.String(), "rotate([0, 0, ") {
		t.Error("smooth body should not carry a facet rotation")
	}
}

func TestBuildBodySubtractionOrder(t *testing.T) {
	s := testSpec()
	tree, err := Build(s)
	if err != nil {
		t.Fatal(err)
	}
	text := tree.String()

	// Within the body difference: base solid, then bore, then hole
	// cuts in listed order, then the embouchure opening.
	iBody := strings.Index(text, "// body")
	iBore := strings.Index(text, "// bore")
	iEmb := strings.Index(text, "// embouchure")
	if iBody < 0 || iBore < 0 || iEmb < 0 {
		t.Fatalf("missing annotations:\n%s", text)
	}
	if !(iBody < iBore && iBore < iEmb) {
		t.Errorf("subtraction annotations out of order: body=%d bore=%d emb=%d", iBody, iBore, iEmb)
	}

	// The hole cut for the first hole is a smooth cylinder whose length
	// equals the outer diameter at its elevation.
	cutLen := s.OuterBody.DiameterAt(s.Holes[0].Elevation)
	holeCut := "cylinder(h=" + ftoa(cutLen) + ", r1=" + ftoa(s.Holes[0].Diameter/2) +
		", r2=" + ftoa(s.Holes[0].Diameter/2) + ", $fn=0);"
	iCut := strings.Index(text, holeCut)
	if iCut < 0 {
		t.Fatalf("missing hole cut %q:\n%s", holeCut, text)
	}
	if !(iBore < iCut && iCut < iEmb) {
		t.Errorf("hole cut out of order: bore=%d cut=%d emb=%d", iBore, iCut, iEmb)
	}
}

func TestBuildHoleRings(t *testing.T) {
	s := testSpec()
	tree, err := Build(s)
	if err != nil {
		t.Fatal(err)
	}
	text := tree.String()
	if got := strings.Count(text, "// hole ring"); got != len(s.Holes) {
		t.Errorf("got %d hole rings, want %d", got, len(s.Holes))
	}
	ringR := ftoa(s.Holes[0].Diameter/2 + RingWidth)
	if !strings.Contains(text, "r1="+ringR+", r2="+ringR) {
		t.Errorf("missing ring annulus of radius %s:\n%s", ringR, text)
	}
}

func TestBuildCork(t *testing.T) {
	s := testSpec()
	tree, err := Build(s)
	if err != nil {
		t.Fatal(err)
	}
	text := tree.String()
	last := s.InnerBore[len(s.InnerBore)-1]
	radius := ftoa(last.UpperDiameter/2 + CorkClearance)
	elev := ftoa(s.Embouchure.Elevation + CorkSetback*s.Embouchure.Diameter)
	want := "// cork\ntranslate([0, 0, " + elev + "]) {\n  cylinder(h=" + ftoa(CorkHeight) +
		", r1=" + radius + ", r2=" + radius + ", $fn=0);\n}\n"
	if !strings.Contains(text, indentBlock(want, 1)) {
		t.Errorf("cork block not found, want:\n%s\nin:\n%s", indentBlock(want, 1), text)
	}
}

// indentBlock shifts every line of s right by depth indent levels.
func indentBlock(s string, depth int) string {
	pad := strings.Repeat("  ", depth)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestBuildDeterministic(t *testing.T) {
	first, err := Build(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Fatal("two builds of the same spec rendered differently")
	}
}

func TestBuildRejectsInvalidSpec(t *testing.T) {
	s := testSpec()
	s.InnerBore = nil
	tree, err := Build(s)
	if !errors.Is(err, ErrSpecShape) {
		t.Fatalf("got %v, want ErrSpecShape", err)
	}
	if tree != nil {
		t.Fatal("Build returned a tree alongside an error")
	}

	s = testSpec()
	s.OuterFacets = 2
	if _, err := Build(s); !errors.Is(err, ErrSpecValue) {
		t.Fatalf("got %v, want ErrSpecValue", err)
	}
}
