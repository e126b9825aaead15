// Package poppler renders documents and extracts word boxes by shelling
// out to the poppler utilities: pdfinfo, pdftoppm and pdftotext.
package poppler

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"

	"golang.org/x/image/draw"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/logger"
)

// Ensure Renderer implements the interface.
var (
	_ driven.DocumentRenderer = (*Renderer)(nil)
	_ driven.Document         = (*Document)(nil)
)

// Tool names.
const (
	toolInfo  = "pdfinfo"
	toolRast  = "pdftoppm"
	toolWords = "pdftotext"
)

// maxPages is passed as the last page to pdfinfo, which clamps it to the
// real page count.
const maxPages = 1 << 20

// ErrPopplerNotFound indicates the poppler utilities are not installed.
var ErrPopplerNotFound = fmt.Errorf("%w: pdfinfo, pdftoppm and pdftotext are required", domain.ErrToolNotFound)

var (
	pagesRe    = regexp.MustCompile(`(?m)^Pages:\s+(\d+)\s*$`)
	pageSizeRe = regexp.MustCompile(`(?m)^Page\s+(\d+)\s+size:\s+([\d.]+)\s+x\s+([\d.]+)`)
	pageRotRe  = regexp.MustCompile(`(?m)^Page\s+(\d+)\s+rot:\s+(-?\d+)`)
)

// Renderer opens documents through the poppler utilities.
type Renderer struct {
	runner     CommandRunner
	binDir     string
	oversample int
}

// New creates a renderer using binaries from binDir, or from PATH when
// binDir is empty. Rasters are rendered oversample times larger and
// scaled down.
func New(binDir string, oversample int) *Renderer {
	return NewWithRunner(execRunner{}, binDir, oversample)
}

// NewWithRunner creates a renderer that runs commands through runner.
func NewWithRunner(runner CommandRunner, binDir string, oversample int) *Renderer {
	if oversample < 1 {
		oversample = 1
	}
	return &Renderer{
		runner:     runner,
		binDir:     binDir,
		oversample: oversample,
	}
}

// CheckAvailable verifies the poppler utilities can be found.
func CheckAvailable(binDir string) error {
	for _, name := range []string{toolInfo, toolRast, toolWords} {
		if _, err := exec.LookPath(toolPath(binDir, name)); err != nil {
			return ErrPopplerNotFound
		}
	}
	return nil
}

// InstallInstructions returns instructions for installing poppler.
func InstallInstructions() string {
	return `lasso needs pdfinfo, pdftoppm and pdftotext from poppler.

Install:
  macOS:         brew install poppler
  Ubuntu/Debian: sudo apt install poppler-utils
  Fedora/RHEL:   sudo dnf install poppler-utils
  Arch:          sudo pacman -S poppler

Or point renderer.poppler_path at the directory holding the binaries.`
}

// Open reads the page count and page sizes of the document at path.
func (r *Renderer) Open(ctx context.Context, path string) (driven.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &domain.OpenError{Path: path, Err: err}
	}

	out, err := r.runner.Run(ctx, r.tool(toolInfo),
		"-f", "1", "-l", strconv.Itoa(maxPages), path)
	if err != nil {
		return nil, &domain.OpenError{Path: path, Err: err}
	}

	sizes, err := parseInfo(out)
	if err != nil {
		return nil, &domain.OpenError{Path: path, Err: err}
	}
	logger.Debug("pdfinfo: %s has %d pages", path, len(sizes))

	return &Document{renderer: r, path: path, sizes: sizes}, nil
}

func (r *Renderer) tool(name string) string {
	return toolPath(r.binDir, name)
}

func toolPath(binDir, name string) string {
	if binDir == "" {
		return name
	}
	return filepath.Join(binDir, name)
}

// parseInfo extracts the page sizes from pdfinfo output. Pages rotated
// by a quarter turn have their width and height swapped, matching the
// orientation pdftoppm and pdftotext use.
func parseInfo(out []byte) ([]domain.PageSize, error) {
	m := pagesRe.FindSubmatch(out)
	if m == nil {
		return nil, errors.New("pdfinfo: no page count in output")
	}
	count, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return nil, fmt.Errorf("pdfinfo: page count: %w", err)
	}

	sizes := make([]domain.PageSize, count)
	found := 0
	for _, sm := range pageSizeRe.FindAllSubmatch(out, -1) {
		page, _ := strconv.Atoi(string(sm[1]))
		w, errW := strconv.ParseFloat(string(sm[2]), 64)
		h, errH := strconv.ParseFloat(string(sm[3]), 64)
		if page < 1 || page > count || errW != nil || errH != nil {
			continue
		}
		sizes[page-1] = domain.PageSize{Width: w, Height: h}
		found++
	}
	if found != count {
		return nil, fmt.Errorf("pdfinfo: found sizes for %d of %d pages", found, count)
	}

	for _, rm := range pageRotRe.FindAllSubmatch(out, -1) {
		page, _ := strconv.Atoi(string(rm[1]))
		rot, _ := strconv.Atoi(string(rm[2]))
		if page < 1 || page > count {
			continue
		}
		if rot%180 != 0 {
			s := sizes[page-1]
			sizes[page-1] = domain.PageSize{Width: s.Height, Height: s.Width}
		}
	}

	return sizes, nil
}

// Document is a document opened through poppler. It holds no open file;
// every call runs a poppler tool against the path.
type Document struct {
	renderer *Renderer
	path     string
	sizes    []domain.PageSize
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.sizes)
}

// PageSize returns the size of page in points.
func (d *Document) PageSize(_ context.Context, page int) (domain.PageSize, error) {
	if err := d.checkPage(page); err != nil {
		return domain.PageSize{}, err
	}
	return d.sizes[page], nil
}

// Render rasterises page at scale pixels per point.
func (d *Document) Render(ctx context.Context, page int, scale float64) (*domain.RasterImage, error) {
	if err := d.checkPage(page); err != nil {
		return nil, &domain.RenderError{Page: page, Err: err}
	}
	if !domain.ValidZoomFactor(scale) {
		return nil, &domain.RenderError{Page: page, Err: domain.ErrInvalidZoom}
	}

	dir, err := os.MkdirTemp("", "lasso-render-*")
	if err != nil {
		return nil, &domain.RenderError{Page: page, Err: err}
	}
	defer os.RemoveAll(dir)

	dpi := 72 * scale * float64(d.renderer.oversample)
	root := filepath.Join(dir, "page")
	n := strconv.Itoa(page + 1)

	_, err = d.renderer.runner.Run(ctx, d.renderer.tool(toolRast),
		"-png", "-r", strconv.FormatFloat(dpi, 'f', 2, 64),
		"-f", n, "-l", n, "-singlefile",
		d.path, root)
	if err != nil {
		return nil, &domain.RenderError{Page: page, Err: err}
	}

	data, err := os.ReadFile(root + ".png")
	if err != nil {
		return nil, &domain.RenderError{Page: page, Err: err}
	}
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.RenderError{Page: page, Err: fmt.Errorf("decode png: %w", err)}
	}

	size := d.sizes[page]
	img := resize(src, targetSize(size.Width, scale), targetSize(size.Height, scale))
	return &domain.RasterImage{Page: page, Scale: scale, Image: img}, nil
}

// WordBoxes extracts the words of page with pdftotext.
func (d *Document) WordBoxes(ctx context.Context, page int) ([]domain.WordBox, error) {
	if err := d.checkPage(page); err != nil {
		return nil, err
	}

	n := strconv.Itoa(page + 1)
	out, err := d.renderer.runner.Run(ctx, d.renderer.tool(toolWords),
		"-bbox", "-enc", "UTF-8", "-f", n, "-l", n, d.path, "-")
	if err != nil {
		return nil, fmt.Errorf("extract words: %w", err)
	}

	return parseBBox(bufio.NewReader(bytes.NewReader(out)))
}

// Close releases the document.
func (d *Document) Close() error {
	return nil
}

func (d *Document) checkPage(page int) error {
	if page < 0 || page >= len(d.sizes) {
		return fmt.Errorf("page %d of %d: %w", page+1, len(d.sizes), domain.ErrPageOutOfRange)
	}
	return nil
}

func targetSize(points, scale float64) int {
	return max(int(math.Round(points*scale)), 1)
}

// resize scales src to exactly w x h pixels.
func resize(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

