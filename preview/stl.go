package preview

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MarkChuCarroll/flutulus"
	"github.com/chewxy/math32"
	"github.com/deadsy/sdfx/render"
)

// DefaultMeshCells is the marching cubes resolution used when the
// caller does not choose one.
const DefaultMeshCells = 200

// ToSTL tessellates the preview solid for s and writes it to path as
// a binary STL file. cells controls marching cubes resolution; pass 0
// for DefaultMeshCells.
func ToSTL(s *flutulus.Spec, path string, cells int) error {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	solid, err := Solid(s)
	if err != nil {
		return err
	}
	tris := render.ToTriangles(solid, render.NewMarchingCubesUniform(cells))
	model := make([]stlTriangle, 0, len(tris))
	var d stlTriangle
	for _, tri := range tris {
		n := tri.Normal()
		d.Normal = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		d.Vertex1 = [3]float32{float32(tri[0].X), float32(tri[0].Y), float32(tri[0].Z)}
		d.Vertex2 = [3]float32{float32(tri[1].X), float32(tri[1].Y), float32(tri[1].Z)}
		d.Vertex3 = [3]float32{float32(tri[2].X), float32(tri[2].Y), float32(tri[2].Z)}
		model = append(model, d)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeSTL(f, model)
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func writeSTL(w io.Writer, model []stlTriangle) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	header := stlHeader{
		Count: uint32(len(model)),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var b [50]byte
	for _, triangle := range model {
		triangle.put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// errDegenerateTriangle is reported by readSTL when a triangle has
// coincident vertices. Tessellation may legitimately emit a handful of
// these at float32 precision, so callers may choose to tolerate it.
var errDegenerateTriangle = errors.New("triangle is degenerate")

// readSTL reads back a binary STL stream and validates each triangle.
// It is used to sanity check preview output. Degenerate triangles are
// reported through errDegenerateTriangle alongside the full triangle
// list; any other validation failure aborts the read.
func readSTL(r io.Reader) (output []stlTriangle, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, errors.New("STL header read failed: " + err.Error())
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf [50]byte
		d   stlTriangle
		i   int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, errDegenerateTriangle) {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if errors.Is(err, errDegenerateTriangle) {
				readErr = err
			} else {
				return nil, err
			}
		}
		output = append(output, d)
	}
	return output, readErr
}

func (t stlTriangle) put(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math32.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math32.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math32.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math32.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math32.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math32.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.degenerate(epsilon) {
		return errDegenerateTriangle
	}
	return nil
}

// degenerate returns true if two of the triangle's vertices coincide.
func (t stlTriangle) degenerate(tol float32) bool {
	return equalWithin3F32(t.Vertex1, t.Vertex2, tol) ||
		equalWithin3F32(t.Vertex2, t.Vertex3, tol) ||
		equalWithin3F32(t.Vertex3, t.Vertex1, tol)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}
