package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MarkChuCarroll/flutulus"
)

func testSpec() *flutulus.Spec {
	return &flutulus.Spec{
		Name: "test flute",
		OuterBody: flutulus.Stack{
			{Height: 5, LowerDiameter: 16, UpperDiameter: 16},
			{Height: 95, LowerDiameter: 16, UpperDiameter: 18},
		},
		InnerBore: flutulus.Stack{
			{Height: 100, LowerDiameter: 7, UpperDiameter: 8},
		},
		Holes: []flutulus.Hole{
			{Elevation: 30, Diameter: 7},
			{Elevation: 45, Diameter: 7.5},
		},
		Embouchure: flutulus.Embouchure{Elevation: 80, Diameter: 10, Eccentricity: 1},
	}
}

func TestNew(t *testing.T) {
	p, err := New(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	if p.Title.Text != "test flute" {
		t.Errorf("title = %q", p.Title.Text)
	}
}

func TestNewRejectsInvalidSpec(t *testing.T) {
	s := testSpec()
	s.OuterBody = nil
	if _, err := New(s); !errors.Is(err, flutulus.ErrSpecShape) {
		t.Fatalf("got %v, want ErrSpecShape", err)
	}
}

func TestStackSteps(t *testing.T) {
	pts := stackSteps(testSpec().OuterBody)
	if len(pts) != 4 {
		t.Fatalf("got %d points, want 4", len(pts))
	}
	// Second section holds its mean diameter from elevation 5 to 100.
	if pts[2].X != 5 || pts[2].Y != 17 || pts[3].X != 100 || pts[3].Y != 17 {
		t.Errorf("second section steps wrong: %+v", pts[2:])
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.png")
	if err := Save(testSpec(), path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("empty plot written")
	}
}
