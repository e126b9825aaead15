package native

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
)

var letter = pageBox{x1: 612, y1: 792}

// glyphs lays out s on one baseline, 5pt per character at font size 10.
func glyphs(s string, x, y float64) []pdf.Text {
	var out []pdf.Text
	for _, r := range s {
		out = append(out, pdf.Text{FontSize: 10, X: x, Y: y, W: 5, S: string(r)})
		x += 5
	}
	return out
}

func texts(words []domain.WordBox) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}

func TestLayout_Words_SplitsOnSpaceGlyph(t *testing.T) {
	words := DefaultLayout().Words(glyphs("Hello World", 72, 700), letter)

	require.Equal(t, []string{"Hello", "World"}, texts(words))
	assert.Equal(t, domain.Rect{X0: 72, Y0: 84, X1: 97, Y1: 94, Space: domain.SpaceDocument}, words[0].Rect)
}

func TestLayout_Words_SplitsOnGap(t *testing.T) {
	in := append(glyphs("foo", 72, 700), glyphs("bar", 95, 700)...)

	words := DefaultLayout().Words(in, letter)

	assert.Equal(t, []string{"foo", "bar"}, texts(words))
}

func TestLayout_Words_ReadingOrder(t *testing.T) {
	var in []pdf.Text
	in = append(in, glyphs("second", 72, 680)...)
	in = append(in, glyphs("right", 200, 700)...)
	in = append(in, glyphs("left", 72, 700.5)...)

	words := DefaultLayout().Words(in, letter)

	assert.Equal(t, []string{"left", "right", "second"}, texts(words))
	assert.Less(t, words[0].Rect.Y0, words[2].Rect.Y0)
}

func TestLayout_Words_MediaBoxOffset(t *testing.T) {
	box := pageBox{x0: 10, y0: 20, x1: 110, y1: 220}

	words := DefaultLayout().Words(glyphs("a", 10, 100), box)

	require.Len(t, words, 1)
	assert.Equal(t, domain.Rect{X0: 0, Y0: 112, X1: 5, Y1: 122, Space: domain.SpaceDocument}, words[0].Rect)
	assert.Equal(t, domain.PageSize{Width: 100, Height: 200}, box.size())
}

func TestLayout_Words_Empty(t *testing.T) {
	words := DefaultLayout().Words(glyphs("   ", 72, 700), letter)
	assert.NotNil(t, words)
	assert.Empty(t, words)
}

func TestMediaBox_DefaultsToLetter(t *testing.T) {
	assert.Equal(t, letter, mediaBox(pdf.Page{}))
}

func TestRenderer_Open_NotPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a pdf"), 0600))

	_, err := New(nil).Open(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrOpen)
}

func TestRenderer_Open_Missing(t *testing.T) {
	_, err := New(nil).Open(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, domain.ErrOpen)
}

// fakeRaster implements driven.DocumentRenderer and driven.Document.
type fakeRaster struct {
	opens   int
	openErr error
}

func (f *fakeRaster) Open(ctx context.Context, _ string) (driven.Document, error) {
	f.opens++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f, nil
}

func (f *fakeRaster) PageCount() int { return 1 }

func (f *fakeRaster) PageSize(_ context.Context, _ int) (domain.PageSize, error) {
	return domain.PageSize{Width: 10, Height: 10}, nil
}

func (f *fakeRaster) Render(_ context.Context, page int, scale float64) (*domain.RasterImage, error) {
	return &domain.RasterImage{Page: page, Scale: scale, Image: image.NewRGBA(image.Rect(0, 0, 10, 10))}, nil
}

func (f *fakeRaster) WordBoxes(_ context.Context, _ int) ([]domain.WordBox, error) {
	return nil, nil
}

func (f *fakeRaster) Close() error { return nil }

func TestDocument_Render_Delegates(t *testing.T) {
	raster := &fakeRaster{}
	doc := &Document{path: "doc.pdf", boxes: []pageBox{letter}, raster: raster}

	img, err := doc.Render(context.Background(), 0, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.5, img.Scale)

	_, err = doc.Render(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, raster.opens)
	assert.NoError(t, doc.Close())
}

func TestDocument_Render_Errors(t *testing.T) {
	doc := &Document{boxes: []pageBox{letter}}
	_, err := doc.Render(context.Background(), 0, 1)
	assert.ErrorIs(t, err, domain.ErrRender)
	assert.ErrorIs(t, err, domain.ErrRenderUnsupported)

	_, err = doc.Render(context.Background(), 1, 1)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)

	boom := errors.New("boom")
	doc = &Document{boxes: []pageBox{letter}, raster: &fakeRaster{openErr: boom}}
	_, err = doc.Render(context.Background(), 0, 1)
	assert.ErrorIs(t, err, boom)
}

func TestDocument_Render_CancelledFirstRender(t *testing.T) {
	raster := &fakeRaster{}
	doc := &Document{path: "doc.pdf", boxes: []pageBox{letter}, raster: raster}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _ = doc.Render(ctx, 0, 1)

	img, err := doc.Render(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, img.Page)
	assert.Equal(t, 1, raster.opens)
}

func TestDocument_Render_RetriesFailedOpen(t *testing.T) {
	raster := &fakeRaster{openErr: errors.New("pdftoppm busy")}
	doc := &Document{path: "doc.pdf", boxes: []pageBox{letter}, raster: raster}

	_, err := doc.Render(context.Background(), 0, 1)
	require.Error(t, err)

	raster.openErr = nil
	_, err = doc.Render(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, raster.opens)
}

func TestDocument_Render_AfterClose(t *testing.T) {
	raster := &fakeRaster{}
	doc := &Document{path: "doc.pdf", boxes: []pageBox{letter}, raster: raster}

	_, err := doc.Render(context.Background(), 0, 1)
	require.NoError(t, err)
	require.NoError(t, doc.Close())

	_, err = doc.Render(context.Background(), 0, 1)
	assert.ErrorIs(t, err, domain.ErrRender)
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Equal(t, 1, raster.opens)
}

func TestDocument_Render_ConcurrentClose(t *testing.T) {
	doc := &Document{path: "doc.pdf", boxes: []pageBox{letter}, raster: &fakeRaster{}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = doc.Render(context.Background(), 0, 1)
		}()
	}
	assert.NoError(t, doc.Close())
	wg.Wait()
}

func TestDocument_PageSize(t *testing.T) {
	doc := &Document{boxes: []pageBox{letter}}

	size, err := doc.PageSize(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, domain.PageSize{Width: 612, Height: 792}, size)
	assert.Equal(t, 1, doc.PageCount())

	_, err = doc.PageSize(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)

	_, err = doc.WordBoxes(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
}
