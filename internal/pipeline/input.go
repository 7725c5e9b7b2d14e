package pipeline

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// imageExtensions are the document types accepted by batch processing.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".pdf", ".tiff", ".bmp"}

// loadDocumentImage reads an input document as image bytes. PDFs are
// rasterized: page 1 carries the quotation in this corpus.
func loadDocumentImage(path string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return renderPDFFirstPage(path)
	}
	return os.ReadFile(path)
}

// renderPDFFirstPage renders page 1 of a PDF to PNG using pdftoppm
// (poppler-utils). pdfcpu verifies the file has at least one page first, so
// a corrupt PDF fails with a clear error instead of a tool stderr dump.
func renderPDFFirstPage(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	pageCount, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	tmpDir, err := os.MkdirTemp("", "invofuse-page-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outputPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.Command("pdftoppm",
		"-png",
		"-f", "1",
		"-l", "1",
		"-r", "300",
		"-singlefile",
		path,
		outputPrefix,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output))
	}

	data, err := os.ReadFile(outputPrefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm did not create expected output: %w", err)
	}
	return data, nil
}

// listDocuments returns the processable files directly under dir, sorted by
// name. Extensions match either case.
func listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		for _, allowed := range imageExtensions {
			if strings.EqualFold(ext, allowed) {
				paths = append(paths, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	return paths, nil
}
