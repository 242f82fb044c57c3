package preview

import (
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View positions the camera for a PNG snapshot.
type View struct {
	// Lookat is the point the camera looks at.
	Lookat r3.Vec
	// Up is the camera's up direction.
	Up r3.Vec
	// Eye is the camera position.
	Eye  r3.Vec
	Near float64
	Far  float64
}

// DefaultView looks at the instrument from the hole side, slightly
// above, with the foot at the bottom of the frame.
func DefaultView() View {
	return View{
		Up:   r3.Vec{Z: 1},
		Eye:  r3.Vec{X: 3, Y: 1, Z: 1},
		Near: 1,
		Far:  10,
	}
}

// SavePNG renders the STL file at stlPath to a shaded PNG snapshot.
// The mesh is normalized to a bi-unit cube first, so View coordinates
// are independent of instrument size.
func SavePNG(stlPath, pngPath string, view View) error {
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return err
	}
	const (
		width, height = 1280, 960 // output size in pixels
		scale         = 2         // supersampling factor
		fovy          = 30        // vertical field of view in degrees
	)
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.Lookat.X, view.Lookat.Y, view.Lookat.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#B08D57")
	)

	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample for antialiasing
	image := context.Image()
	image = resize.Resize(width, height, image, resize.Bilinear)
	return fauxgl.SavePNG(pngPath, image)
}
