// Package profile plots an instrument's bore and body diameters
// against elevation. Diameters are drawn as per-section steps, the
// same constant-per-section convention the assembly uses for hole and
// plate sizing, with finger hole elevations marked on the bore line.
package profile

import (
	"github.com/MarkChuCarroll/flutulus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// New builds the diameter profile plot for s.
func New(s *flutulus.Spec) (*plot.Plot, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = s.Name
	p.X.Label.Text = "elevation (mm)"
	p.Y.Label.Text = "diameter (mm)"

	body, err := plotter.NewLine(stackSteps(s.OuterBody))
	if err != nil {
		return nil, err
	}
	bore, err := plotter.NewLine(stackSteps(s.InnerBore))
	if err != nil {
		return nil, err
	}
	bore.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	holes, err := plotter.NewScatter(holePoints(s))
	if err != nil {
		return nil, err
	}

	p.Add(plotter.NewGrid(), body, bore, holes)
	p.Legend.Add("outer body", body)
	p.Legend.Add("inner bore", bore)
	p.Legend.Add("finger holes", holes)
	p.Legend.Top = true
	return p, nil
}

// Save writes the profile plot for s to path. The format follows the
// file extension (.png, .svg, .pdf).
func Save(s *flutulus.Spec, path string) error {
	p, err := New(s)
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// stackSteps returns one horizontal segment per section at the
// section's mean diameter.
func stackSteps(st flutulus.Stack) plotter.XYs {
	pts := make(plotter.XYs, 0, 2*len(st))
	elev := 0.0
	for _, sec := range st {
		mean := (sec.LowerDiameter + sec.UpperDiameter) / 2
		pts = append(pts,
			plotter.XY{X: elev, Y: mean},
			plotter.XY{X: elev + sec.Height, Y: mean},
		)
		elev += sec.Height
	}
	return pts
}

// holePoints marks each finger hole at the bore diameter under it.
func holePoints(s *flutulus.Spec) plotter.XYs {
	pts := make(plotter.XYs, 0, len(s.Holes))
	for _, h := range s.Holes {
		pts = append(pts, plotter.XY{
			X: h.Elevation,
			Y: s.InnerBore.DiameterAt(h.Elevation),
		})
	}
	return pts
}
