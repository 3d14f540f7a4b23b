package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
)

// ErrExportInFlight is reported when an export starts while another runs.
var ErrExportInFlight = errors.New("export already in progress")

// Downloader saves a serialized image under a file name.
type Downloader interface {
	Download(name string, data []byte) (string, error)
}

// FileDownloader writes downloads into a directory. An existing file with
// the same name is replaced.
type FileDownloader struct {
	Dir string
}

func (d FileDownloader) Download(name string, data []byte) (string, error) {
	path := name
	if d.Dir != "" {
		if err := os.MkdirAll(d.Dir, 0o755); err != nil {
			return "", fmt.Errorf("create save directory: %w", err)
		}
		path = filepath.Join(d.Dir, name)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Artifact describes a finished export.
type Artifact struct {
	Path   string
	Width  int
	Height int
	Bytes  int
}

// Exporter captures a surface into a PNG file.
type Exporter struct {
	Rasterizer Rasterizer
	Downloader Downloader
	Analytics  Analytics
	Scale      float64
	FileName   string

	inFlight atomic.Bool
}

func NewExporter(r Rasterizer, d Downloader, a Analytics, scale float64) *Exporter {
	if scale <= 0 {
		scale = defaultExportScale
	}
	return &Exporter{
		Rasterizer: r,
		Downloader: d,
		Analytics:  a,
		Scale:      scale,
		FileName:   exportFileName,
	}
}

// InFlight reports whether an export is running.
func (e *Exporter) InFlight() bool {
	return e.inFlight.Load()
}

// Export captures the surface and downloads it. Errors never escape: they
// are logged and ok is false. The surface's presentation state is restored
// on every path.
func (e *Exporter) Export(ctx context.Context, s *Surface) (Artifact, bool) {
	if !e.inFlight.CompareAndSwap(false, true) {
		Logger().Warn("export skipped", "err", ErrExportInFlight)
		return Artifact{}, false
	}
	defer e.inFlight.Store(false)

	bmp, err := e.capture(ctx, s)
	if err != nil {
		Logger().Error("error generating image", "err", err)
		return Artifact{}, false
	}

	art, err := e.save(bmp)
	if err != nil {
		Logger().Error("error saving image", "err", err)
		return Artifact{}, false
	}
	if e.Analytics != nil {
		e.Analytics.Capture(downloadEvent, map[string]any{"property": "image_download"})
	}
	Logger().Info("image exported", "path", art.Path, "width", art.Width, "height", art.Height)
	return art, true
}

// capture runs snapshot, suspend, rasterize and restore.
func (e *Exporter) capture(ctx context.Context, s *Surface) (bmp *Bitmap, err error) {
	if s == nil {
		return nil, ErrSurfaceDetached
	}
	snap := s.Snapshot()
	s.Suspend()
	defer s.Restore(snap)
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("capture panicked: %v", p)
		}
	}()

	return e.Rasterizer.Rasterize(ctx, s, RasterOptions{Scale: e.Scale})
}

func (e *Exporter) save(bmp *Bitmap) (Artifact, error) {
	data, err := bmp.Encode("image/png")
	if err != nil {
		return Artifact{}, err
	}
	name := e.FileName
	if name == "" {
		name = exportFileName
	}
	path, err := e.Downloader.Download(name, data)
	if err != nil {
		return Artifact{}, err
	}
	w, h := bmp.Size()
	return Artifact{Path: path, Width: w, Height: h, Bytes: len(data)}, nil
}
