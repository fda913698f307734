package video

import (
	"image"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
	"golang.org/x/xerrors"
)

var (
	videoExts = map[string]bool{".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".webm": true}
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".webp": true}
)

func IsVideo(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

func ReadImage(path string) (*image.RGBA, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, xerrors.Errorf("can not read image from %s", path)
	}
	return MatToRGBA(mat)
}

// StillWriter writes the single frame it receives to an image file.
type StillWriter struct {
	path string
	size image.Point
}

func NewStillWriter(path string, width, height int) *StillWriter {
	return &StillWriter{
		path: path,
		size: image.Pt(width, height),
	}
}

func (w *StillWriter) Size() image.Point {
	return w.size
}

func (w *StillWriter) Write(frame *image.RGBA) error {
	mat, err := RGBAToMat(frame)
	if err != nil {
		return err
	}
	defer mat.Close()

	if ok := gocv.IMWrite(w.path, mat); !ok {
		return xerrors.Errorf("can not save image to %s, check if the directory exists", w.path)
	}
	return nil
}

func (w *StillWriter) Close() error {
	return nil
}
