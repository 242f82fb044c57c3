package flutulus

import (
	"errors"
	"strings"
	"testing"
)

// testSpec returns a small valid two-hole instrument.
func testSpec() *Spec {
	return &Spec{
		Name:        "D major flute",
		Description: []string{"Six-hole conical-bore flute in D.", "Octagonal exterior."},
		OuterBody: Stack{
			{Height: 4.9, LowerDiameter: 16.5, UpperDiameter: 16.5},
			{Height: 257.9, LowerDiameter: 16.5, UpperDiameter: 18.6},
		},
		OuterFacets: 8,
		InnerBore:   boreStack(),
		Holes: []Hole{
			{Elevation: 87.1, Diameter: 7.1},
			{Elevation: 104.9, Diameter: 7.4},
		},
		Embouchure: Embouchure{Elevation: 230.2, Diameter: 10.5, Eccentricity: 1.2},
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := testSpec().Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
	s := testSpec()
	s.OuterFacets = 0
	s.Holes = nil
	if err := s.Validate(); err != nil {
		t.Fatalf("smooth holeless spec rejected: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	for _, test := range []struct {
		name   string
		mutate func(*Spec)
		kind   error
	}{
		{"missing name", func(s *Spec) { s.Name = "" }, ErrSpecShape},
		{"empty outer body", func(s *Spec) { s.OuterBody = nil }, ErrSpecShape},
		{"empty inner bore", func(s *Spec) { s.InnerBore = Stack{} }, ErrSpecShape},
		{"zero section height", func(s *Spec) { s.InnerBore[0].Height = 0 }, ErrSpecValue},
		{"negative diameter", func(s *Spec) { s.OuterBody[1].UpperDiameter = -1 }, ErrSpecValue},
		{"facet count below 3", func(s *Spec) { s.OuterFacets = 2 }, ErrSpecValue},
		{"hole past body end", func(s *Spec) { s.Holes[0].Elevation = 500 }, ErrSpecValue},
		{"hole at body end", func(s *Spec) { s.Holes[1].Elevation = s.OuterBody.TotalHeight() }, ErrSpecValue},
		{"zero hole diameter", func(s *Spec) { s.Holes[0].Diameter = 0 }, ErrSpecValue},
		{"zero embouchure diameter", func(s *Spec) { s.Embouchure.Diameter = 0 }, ErrSpecValue},
		{"zero eccentricity", func(s *Spec) { s.Embouchure.Eccentricity = 0 }, ErrSpecValue},
		{"embouchure below foot", func(s *Spec) { s.Embouchure.Elevation = -2 }, ErrSpecValue},
	} {
		s := testSpec()
		test.mutate(s)
		err := s.Validate()
		if err == nil {
			t.Errorf("%s: spec accepted", test.name)
			continue
		}
		if !errors.Is(err, test.kind) {
			t.Errorf("%s: got %v, want error kind %v", test.name, err, test.kind)
		}
	}
}

func TestDecodeSpec(t *testing.T) {
	const doc = `{
		"name": "test flute",
		"description": ["one line"],
		"outer_body": [{"height": 100, "lower_diam": 16, "upper_diam": 18}],
		"outer_facets": 0,
		"inner_bore": [{"height": 100, "lower_diam": 7, "upper_diam": 8}],
		"holes": [{"elev": 40, "diam": 7}],
		"emb": {"elev": 80, "diam": 10, "eccentricity": 1.1}
	}`
	s, err := DecodeSpec(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "test flute" {
		t.Errorf("name = %q", s.Name)
	}
	if got := s.OuterBody.DiameterAt(50); got != 17 {
		t.Errorf("outer diameter at 50 = %g, want 17", got)
	}
	if len(s.Holes) != 1 || s.Holes[0].Elevation != 40 {
		t.Errorf("holes decoded as %+v", s.Holes)
	}
	if s.Embouchure.Eccentricity != 1.1 {
		t.Errorf("eccentricity = %g", s.Embouchure.Eccentricity)
	}
}

func TestDecodeSpecShapeErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		doc  string
	}{
		{"not json", "cylinder(h=1);"},
		{"unknown field", `{"name": "x", "bore": []}`},
		{"empty inner bore", `{
			"name": "x",
			"outer_body": [{"height": 10, "lower_diam": 16, "upper_diam": 16}],
			"inner_bore": [],
			"emb": {"elev": 5, "diam": 10, "eccentricity": 1}
		}`},
	} {
		_, err := DecodeSpec(strings.NewReader(test.doc))
		if !errors.Is(err, ErrSpecShape) {
			t.Errorf("%s: got %v, want ErrSpecShape", test.name, err)
		}
	}
}

func TestLoadSpecSamples(t *testing.T) {
	for _, path := range []string{
		"examples/flutes/dmajor.json",
		"examples/flutes/gmajor.json",
	} {
		s, err := LoadSpec(path)
		if err != nil {
			t.Errorf("%s: %v", path, err)
			continue
		}
		if s.Name == "" || len(s.InnerBore) == 0 {
			t.Errorf("%s: decoded incomplete spec %+v", path, s)
		}
	}
}
