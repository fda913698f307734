package video

import (
	"image"
	"log/slog"

	"gocv.io/x/gocv"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/vs-matting/service/lgr"
)

// WARNING:
// GoCV writes through OpenCV's VideoWriter, which picks the container from
// the file extension and the codec from the fourcc. mp4v output is large.
type Writer struct {
	path   string
	writer *gocv.VideoWriter
	width  int
	height int
	frames int
}

func CreateWriter(path, codec string, fps float64, width, height int) (*Writer, error) {
	if width <= 0 || height <= 0 {
		return nil, xerrors.Errorf("invalid frame dimensions: cols=%d, rows=%d", width, height)
	}

	writer, err := gocv.VideoWriterFile(path, codec, fps, width, height, true)
	if err != nil {
		lgr.Logger.Error("error creating video writer", slog.Any("error", err))
		return nil, err
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, xerrors.Errorf("can not save video to %s, check if the directory exists", path)
	}

	lgr.Logger.Info("video writer created",
		slog.String("path", path),
		slog.String("codec", codec),
		slog.Float64("fps", fps),
		slog.Int("width", width),
		slog.Int("height", height),
	)

	return &Writer{
		path:   path,
		writer: writer,
		width:  width,
		height: height,
	}, nil
}

func (w *Writer) Size() image.Point {
	return image.Pt(w.width, w.height)
}

func (w *Writer) Write(frame *image.RGBA) error {
	mat, err := RGBAToMat(frame)
	if err != nil {
		return err
	}
	defer mat.Close()

	// Check if the frame dimensions match the video dimensions
	if mat.Cols() != w.width || mat.Rows() != w.height {
		lgr.Logger.Warn("frame dimensions do not match video dimensions, resizing frame",
			slog.Int("frame_cols", mat.Cols()),
			slog.Int("frame_rows", mat.Rows()),
			slog.Int("video_cols", w.width),
			slog.Int("video_rows", w.height),
		)

		resized := gocv.NewMat()
		defer resized.Close()
		if err := gocv.Resize(mat, &resized, image.Pt(w.width, w.height), 0, 0, gocv.InterpolationLinear); err != nil {
			return err
		}
		return w.write(resized)
	}

	return w.write(mat)
}

func (w *Writer) write(mat gocv.Mat) error {
	if err := w.writer.Write(mat); err != nil {
		return err
	}
	w.frames++
	return nil
}

func (w *Writer) Close() error {
	lgr.Logger.Info("video writer closed",
		slog.String("path", w.path),
		slog.Int("frames", w.frames),
	)
	return w.writer.Close()
}

// RGBAToMat converts a packed RGBA image into a BGR mat the caller must close.
func RGBAToMat(img *image.RGBA) (gocv.Mat, error) {
	return gocv.ImageToMatRGB(img)
}
