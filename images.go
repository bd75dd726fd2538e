package folio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const jpegQuality = 80

// ImageWidths are the widths the optimizer serves. Views build srcset
// candidates from this list.
var ImageWidths = []int{384, 640, 828, 1080, 1200}

func allowedWidth(w int) bool {
	for _, v := range ImageWidths {
		if v == w {
			return true
		}
	}
	return false
}

// OptimizedImageURL returns the optimizer URL for a local image at width w.
func OptimizedImageURL(src string, w int) string {
	return "/_image?src=" + url.QueryEscape(src) + "&w=" + strconv.Itoa(w)
}

// IsLocalImage reports whether src is served from the images directory and
// can therefore be resized by the optimizer.
func IsLocalImage(src string) bool {
	return strings.HasPrefix(src, "/images/") && strings.HasPrefix(path.Clean(src), "/images/")
}

// resizeImage decodes an image from src, scales it down to at most width
// pixels wide (never up) and encodes it as JPEG.
func resizeImage(src io.Reader, width int) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > width {
		w, h = width, h*width/w
		if h < 1 {
			h = 1
		}
	}

	// JPEG has no alpha; flatten onto white.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// localImagePath maps an /images/... URL path onto ImagesDir.
func (a *App) localImagePath(src string) (string, bool) {
	if !IsLocalImage(src) {
		return "", false
	}
	rel := strings.TrimPrefix(path.Clean(src), "/images/")
	return filepath.Join(a.Config.ImagesDir, filepath.FromSlash(rel)), true
}

func (a *App) handleImage(c echo.Context) error {
	width, err := strconv.Atoi(c.QueryParam("w"))
	if err != nil || !allowedWidth(width) {
		a.metrics.imageResizes.WithLabelValues("bad_request").Inc()
		return c.String(http.StatusBadRequest, "Unsupported width")
	}
	p, ok := a.localImagePath(c.QueryParam("src"))
	if !ok {
		a.metrics.imageResizes.WithLabelValues("bad_request").Inc()
		return c.String(http.StatusBadRequest, "Unsupported image source")
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.metrics.imageResizes.WithLabelValues("not_found").Inc()
			return c.String(http.StatusNotFound, "Image not found")
		}
		return err
	}
	defer f.Close()

	data, err := resizeImage(f, width)
	if err != nil {
		a.metrics.imageResizes.WithLabelValues("bad_image").Inc()
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}
	a.metrics.imageResizes.WithLabelValues("ok").Inc()
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Blob(http.StatusOK, "image/jpeg", data)
}
