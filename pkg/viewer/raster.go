package viewer

import (
	"image"
	"image/color"
	"math"
)

// screenVertex is a projected vertex; z is view depth
type screenVertex struct {
	x, y, z float64
}

// depthCanvas is an RGBA image with a z-buffer
type depthCanvas struct {
	img    *image.RGBA
	zbuf   []float64
	width  int
	height int
}

func newDepthCanvas(width, height int, background color.RGBA) *depthCanvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = background.R
		img.Pix[i+1] = background.G
		img.Pix[i+2] = background.B
		img.Pix[i+3] = background.A
	}

	zbuf := make([]float64, width*height)
	for i := range zbuf {
		zbuf[i] = math.Inf(1)
	}
	return &depthCanvas{img: img, zbuf: zbuf, width: width, height: height}
}

// plot writes a pixel if it is closer than what is already there
func (c *depthCanvas) plot(x, y int, z float64, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	idx := y*c.width + x
	if z < c.zbuf[idx] {
		c.zbuf[idx] = z
		c.img.SetRGBA(x, y, col)
	}
}

// fillTriangle rasterizes with barycentric depth interpolation
func (c *depthCanvas) fillTriangle(a, b, d screenVertex, col color.RGBA) {
	area := edge(a, b, d.x, d.y)
	if area == 0 {
		return
	}

	minX := int(math.Max(0, math.Floor(math.Min(a.x, math.Min(b.x, d.x)))))
	maxX := int(math.Min(float64(c.width-1), math.Ceil(math.Max(a.x, math.Max(b.x, d.x)))))
	minY := int(math.Max(0, math.Floor(math.Min(a.y, math.Min(b.y, d.y)))))
	maxY := int(math.Min(float64(c.height-1), math.Ceil(math.Max(a.y, math.Max(b.y, d.y)))))

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(b, d, px, py) / area
			w1 := edge(d, a, px, py) / area
			w2 := edge(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			c.plot(x, y, w0*a.z+w1*b.z+w2*d.z, col)
		}
	}
}

func edge(a, b screenVertex, px, py float64) float64 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// line draws a depth-tested line of the given pixel thickness
func (c *depthCanvas) line(a, b screenVertex, thickness int, col color.RGBA) {
	steps := int(math.Max(math.Abs(b.x-a.x), math.Abs(b.y-a.y))) + 1
	half := thickness / 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(a.x + t*(b.x-a.x))
		y := int(a.y + t*(b.y-a.y))
		z := a.z + t*(b.z-a.z)
		for dy := -half; dy <= half; dy++ {
			for dx := -half; dx <= half; dx++ {
				c.plot(x+dx, y+dy, z, col)
			}
		}
	}
}

// disc draws a filled circle facing the camera
func (c *depthCanvas) disc(center screenVertex, radius float64, col color.RGBA) {
	r := int(math.Ceil(radius))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= radius*radius {
				c.plot(int(center.x)+dx, int(center.y)+dy, center.z, col)
			}
		}
	}
}

// shade scales a base color by a diffuse light term
func shade(base color.RGBA, intensity float64) color.RGBA {
	intensity = math.Max(0.3, math.Min(1, intensity))
	return color.RGBA{
		R: uint8(float64(base.R) * intensity),
		G: uint8(float64(base.G) * intensity),
		B: uint8(float64(base.B) * intensity),
		A: base.A,
	}
}
