// Package pdfcpu provides a PDF implementation of cdsco.TextExtractor
// on top of github.com/pdfcpu/pdfcpu.
package pdfcpu

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

// Ensure Extractor implements cdsco.TextExtractor at compile time.
var _ cdsco.TextExtractor = (*Extractor)(nil)

// Extractor extracts plain text from PDF payloads. pdfcpu works on
// files, so each extraction round-trips through a private temp
// directory. Text is recovered from the decoded page content streams
// by interpreting the text-showing operators; pages whose text lives
// only in images (scanned documents) or uses CID-keyed fonts come back
// empty rather than failing.
type Extractor struct {
	conf *model.Configuration
}

// NewExtractor creates a new PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{conf: model.NewDefaultConfiguration()}
}

// pageNumRe recovers the page number from pdfcpu's extracted content
// file names (e.g. "doc_Content_page_3.txt").
var pageNumRe = regexp.MustCompile(`page_(\d+)`)

// Extract implements cdsco.TextExtractor. A payload that does not
// parse as a PDF yields ("", nil); errors are reserved for scratch
// space I/O.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "cdsco-pdf-")
	if err != nil {
		return "", cdsco.Errorf(cdsco.EINTERNAL, "creating scratch dir: %v", err)
	}
	defer os.RemoveAll(dir)

	inFile := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(inFile, data, 0o644); err != nil {
		return "", cdsco.Errorf(cdsco.EINTERNAL, "writing scratch file: %v", err)
	}

	// Unreadable payloads are a property of the document, not a
	// pipeline failure.
	if _, err := api.ReadContextFile(inFile); err != nil {
		return "", nil
	}

	outDir := filepath.Join(dir, "content")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", cdsco.Errorf(cdsco.EINTERNAL, "creating scratch dir: %v", err)
	}
	if err := api.ExtractContentFile(inFile, outDir, nil, e.conf); err != nil {
		return "", nil
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", cdsco.Errorf(cdsco.EINTERNAL, "reading scratch dir: %v", err)
	}

	type page struct {
		num  int
		text string
	}
	var pages []page
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pageNumRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			// A page that cannot be read contributes an empty segment.
			continue
		}
		pages = append(pages, page{num: num, text: DecodeContent(content)})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].num < pages[j].num })

	var b strings.Builder
	for _, p := range pages {
		if p.text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.text)
	}
	return b.String(), nil
}
