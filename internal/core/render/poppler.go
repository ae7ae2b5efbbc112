package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/ksjang99-lgtm/langchain-rag/internal/core"
)

// PopplerRenderer rasterizes single PDF pages to PNG by shelling out to
// pdftoppm. Rendering is a best-effort collaborator: callers treat an error
// as "no image" for that page.
type PopplerRenderer struct {
	dpi int
}

func NewPopplerRenderer(dpi int) *PopplerRenderer {
	if dpi <= 0 {
		dpi = 160
	}
	return &PopplerRenderer{dpi: dpi}
}

func (r *PopplerRenderer) RenderPage(ctx context.Context, pdfBytes []byte, pageNumber int) ([]byte, error) {
	if pageNumber < 1 {
		return nil, fmt.Errorf("page number must be 1-based, got %d", pageNumber)
	}

	p := strconv.Itoa(pageNumber)
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-r", strconv.Itoa(r.dpi),
		"-f", p, "-l", p,
		"-singlefile",
		"-", "-",
	)
	cmd.Stdin = bytes.NewReader(pdfBytes)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm page %d: %w: %s", pageNumber, err, stderr.String())
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("pdftoppm page %d: empty output", pageNumber)
	}
	return out.Bytes(), nil
}

var _ core.PageRenderer = (*PopplerRenderer)(nil)
