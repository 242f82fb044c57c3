package flutulus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Spec construction error kinds. Decoding problems (missing or
// malformed fields) wrap ErrSpecShape; semantically invalid
// measurements wrap ErrSpecValue. Both fail before any geometry is
// built and neither is recoverable by retrying.
var (
	ErrSpecShape = errors.New("flutulus: malformed spec")
	ErrSpecValue = errors.New("flutulus: invalid spec value")
)

// Hole is a finger hole: an elevation along the bore axis and the
// through-diameter drilled there. Holes carry no ordering invariant
// but must lie within the outer body's extent.
type Hole struct {
	Elevation float64 `json:"elev"`
	Diameter  float64 `json:"diam"`
}

// Embouchure describes the blowing hole. Eccentricity scales one axis
// of the embouchure cutter to produce an oval opening; 1.0 is
// circular.
type Embouchure struct {
	Elevation    float64 `json:"elev"`
	Diameter     float64 `json:"diam"`
	Eccentricity float64 `json:"eccentricity"`
}

// Spec is the aggregate description of one instrument. It is pure
// data, immutable once constructed, and owned by a single Build call
// for the duration of one generation run.
type Spec struct {
	Name        string     `json:"name"`
	Description []string   `json:"description"`
	OuterBody   Stack      `json:"outer_body"`
	OuterFacets int        `json:"outer_facets"`
	InnerBore   Stack      `json:"inner_bore"`
	Holes       []Hole     `json:"holes"`
	Embouchure  Embouchure `json:"emb"`
}

// DecodeSpec reads one JSON instrument spec from r and validates it.
func DecodeSpec(r io.Reader) (*Spec, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var s Spec
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpecShape, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSpec reads and validates the instrument spec stored at path.
func LoadSpec(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := DecodeSpec(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks every invariant required before geometry can be
// built. It returns an error wrapping ErrSpecShape or ErrSpecValue; a
// nil result means Build cannot fail.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrSpecShape)
	}
	if err := s.OuterBody.validate("outer_body"); err != nil {
		return err
	}
	if err := s.InnerBore.validate("inner_bore"); err != nil {
		return err
	}
	if s.OuterFacets != 0 && s.OuterFacets < 3 {
		return fmt.Errorf("%w: outer_facets %d below 3", ErrSpecValue, s.OuterFacets)
	}
	height := s.OuterBody.TotalHeight()
	for i, h := range s.Holes {
		if h.Diameter <= 0 {
			return fmt.Errorf("%w: hole %d has non-positive diameter %g", ErrSpecValue, i, h.Diameter)
		}
		if h.Elevation < 0 || h.Elevation >= height {
			return fmt.Errorf("%w: hole %d elevation %g outside body extent [0, %g)", ErrSpecValue, i, h.Elevation, height)
		}
	}
	e := s.Embouchure
	if e.Diameter <= 0 {
		return fmt.Errorf("%w: embouchure has non-positive diameter %g", ErrSpecValue, e.Diameter)
	}
	if e.Eccentricity <= 0 {
		return fmt.Errorf("%w: embouchure eccentricity %g must be positive", ErrSpecValue, e.Eccentricity)
	}
	if e.Elevation < 0 || e.Elevation >= height {
		return fmt.Errorf("%w: embouchure elevation %g outside body extent [0, %g)", ErrSpecValue, e.Elevation, height)
	}
	return nil
}
