package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/services"
)

// OpenDocumentInput is the input schema for the open_document tool.
type OpenDocumentInput struct {
	Path string `json:"path" jsonschema:"path of the PDF file to open"`
	Page int    `json:"page,omitempty" jsonschema:"page to display, starting at 1 (default: first page)"`
}

// DocumentOutput describes the open document.
type DocumentOutput struct {
	DocumentID string  `json:"document_id"`
	Path       string  `json:"path"`
	PageCount  int     `json:"page_count"`
	Page       int     `json:"page"`
	Zoom       float64 `json:"zoom"`
}

// PageWordsInput is the input schema for the page_words tool.
type PageWordsInput struct {
	Page int `json:"page,omitempty" jsonschema:"page number starting at 1 (default: displayed page)"`
}

// PageWordsOutput is the output schema for the page_words tool.
type PageWordsOutput struct {
	Page  int          `json:"page"`
	Words []WordOutput `json:"words"`
	Count int          `json:"count"`
}

// WordOutput is a word and its box in document space (points, origin top-left).
type WordOutput struct {
	Text string  `json:"text"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
}

// SelectTextInput is the input schema for the select_text tool.
type SelectTextInput struct {
	Page  int     `json:"page,omitempty" jsonschema:"page number starting at 1 (default: displayed page)"`
	X0    float64 `json:"x0" jsonschema:"left edge of the selection rectangle"`
	Y0    float64 `json:"y0" jsonschema:"top edge of the selection rectangle"`
	X1    float64 `json:"x1" jsonschema:"right edge of the selection rectangle"`
	Y1    float64 `json:"y1" jsonschema:"bottom edge of the selection rectangle"`
	Space string  `json:"space,omitempty" jsonschema:"coordinate space of the rectangle: document (default) or viewport"`
	Zoom  float64 `json:"zoom,omitempty" jsonschema:"zoom factor to apply before selecting (default: current zoom)"`
}

// SelectTextOutput is the output schema for the select_text tool.
type SelectTextOutput struct {
	Page  int          `json:"page"`
	Text  string       `json:"text"`
	Words []WordOutput `json:"words"`
	Count int          `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open_document",
		Description: "Open a PDF document for word lookup and text selection",
	}, s.handleOpenDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "page_words",
		Description: "List the words of a page of the open document with their bounding boxes",
	}, s.handlePageWords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_text",
		Description: "Select the words intersecting a rectangle on a page and return their text in reading order",
	}, s.handleSelectText)
}

// handleOpenDocument handles the open_document tool invocation.
func (s *Server) handleOpenDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OpenDocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer := s.ports.Viewer
	if _, err := viewer.Open(ctx, input.Path); err != nil {
		return nil, DocumentOutput{}, err
	}
	if err := s.showPage(input.Page); err != nil {
		return nil, DocumentOutput{}, err
	}
	return nil, s.documentOutput(), nil
}

// handlePageWords handles the page_words tool invocation.
func (s *Server) handlePageWords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PageWordsInput,
) (*mcp.CallToolResult, PageWordsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.showPage(input.Page); err != nil {
		return nil, PageWordsOutput{}, err
	}
	words, err := s.ports.Viewer.PageWords(ctx)
	if err != nil {
		return nil, PageWordsOutput{}, err
	}

	return nil, PageWordsOutput{
		Page:  s.ports.Viewer.State().Page + 1,
		Words: wordOutputs(words),
		Count: len(words),
	}, nil
}

// handleSelectText handles the select_text tool invocation.
func (s *Server) handleSelectText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SelectTextInput,
) (*mcp.CallToolResult, SelectTextOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	space := domain.SpaceDocument
	if input.Space != "" {
		var ok bool
		if space, ok = domain.ParseCoordSpace(input.Space); !ok {
			return nil, SelectTextOutput{}, fmt.Errorf("space %q: %w", input.Space, domain.ErrInvalidInput)
		}
	}

	viewer := s.ports.Viewer
	if err := s.showPage(input.Page); err != nil {
		return nil, SelectTextOutput{}, err
	}
	rect := domain.NormalizeRect(
		domain.Point{X: input.X0, Y: input.Y0},
		domain.Point{X: input.X1, Y: input.Y1},
		space,
	)
	sel, err := services.SelectRegion(ctx, viewer, rect, input.Zoom)
	if err != nil {
		return nil, SelectTextOutput{}, err
	}

	return nil, SelectTextOutput{
		Page:  viewer.State().Page + 1,
		Text:  sel.Text,
		Words: wordOutputs(sel.Highlighted),
		Count: len(sel.Highlighted),
	}, nil
}

// showPage displays the 1-based page, or keeps the current one when page is 0.
func (s *Server) showPage(page int) error {
	viewer := s.ports.Viewer
	if viewer.Document() == nil {
		return domain.ErrNoDocument
	}
	if page == 0 || page-1 == viewer.State().Page {
		return nil
	}
	return viewer.PageChange(page - 1)
}

func (s *Server) documentOutput() DocumentOutput {
	state := s.ports.Viewer.State()
	if state.Document == nil {
		return DocumentOutput{}
	}
	return DocumentOutput{
		DocumentID: state.Document.ID,
		Path:       state.Document.Path,
		PageCount:  state.Document.PageCount,
		Page:       state.Page + 1,
		Zoom:       state.Zoom.Factor,
	}
}

func wordOutputs(words []domain.WordBox) []WordOutput {
	out := make([]WordOutput, len(words))
	for i, w := range words {
		out[i] = WordOutput{Text: w.Text, X0: w.Rect.X0, Y0: w.Rect.Y0, X1: w.Rect.X1, Y1: w.Rect.Y1}
	}
	return out
}
