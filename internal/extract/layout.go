package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// layoutStrategy extracts text row by row, preserving reading order for
// documents with columns or tables. Preferred over the plain reader for
// complex layouts.
type layoutStrategy struct{}

func (layoutStrategy) Name() string { return "layout" }

func (layoutStrategy) Extract(path string, pageLimit int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if pageLimit > 0 && numPages > pageLimit {
		numPages = pageLimit
	}
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		var sb strings.Builder
		for j, row := range rows {
			if j > 0 {
				sb.WriteByte('\n')
			}
			for _, word := range row.Content {
				sb.WriteString(word.S)
			}
		}
		if sb.Len() > 0 {
			pages = append(pages, sb.String())
		}
	}
	return strings.Join(pages, "\n"), nil
}
