package video

import (
	"image"
	"image/draw"
	"io"
	"log/slog"

	"gocv.io/x/gocv"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/vs-matting/service/lgr"
)

// Capture reads decoded frames from a video file or stream.
type Capture struct {
	path    string
	capture *gocv.VideoCapture
	mat     gocv.Mat
	width   int
	height  int
	fps     float64
	frames  int
	read    int
}

func OpenCapture(path string) (*Capture, error) {
	capture, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, xerrors.Errorf("error opening video %s: %w", path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, xerrors.Errorf("error opening video %s", path)
	}

	c := &Capture{
		path:    path,
		capture: capture,
		mat:     gocv.NewMat(),
		width:   int(capture.Get(gocv.VideoCaptureFrameWidth)),
		height:  int(capture.Get(gocv.VideoCaptureFrameHeight)),
		fps:     capture.Get(gocv.VideoCaptureFPS),
		frames:  int(capture.Get(gocv.VideoCaptureFrameCount)),
	}

	lgr.Logger.Info("video capture opened",
		slog.String("path", path),
		slog.Int("width", c.width),
		slog.Int("height", c.height),
		slog.Float64("fps", c.fps),
		slog.Int("frames", c.frames),
	)
	return c, nil
}

func (c *Capture) Width() int {
	return c.width
}

func (c *Capture) Height() int {
	return c.height
}

func (c *Capture) FPS() float64 {
	return c.fps
}

// FrameCount is the container's estimate; it can be zero for streams.
func (c *Capture) FrameCount() int {
	return c.frames
}

// Read returns io.EOF once the capture yields no more frames. A failed read
// before the container's frame count is reached is an error.
func (c *Capture) Read() (*image.RGBA, error) {
	if ok := c.capture.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, endOfCapture(c.read, c.frames)
	}
	c.read++
	return MatToRGBA(c.mat)
}

func endOfCapture(read, frames int) error {
	if frames > 0 && read < frames {
		return xerrors.Errorf("can not read frame %d of %d", read+1, frames)
	}
	return io.EOF
}

func (c *Capture) Close() error {
	c.mat.Close()
	return c.capture.Close()
}

// MatToRGBA converts a BGR mat into a packed RGBA image.
func MatToRGBA(mat gocv.Mat) (*image.RGBA, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}
