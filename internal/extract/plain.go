package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// plainStrategy iterates pages with the plain-text reader. Simpler and
// more tolerant than the layout reader; used as the fallback tier.
type plainStrategy struct{}

func (plainStrategy) Name() string { return "plain" }

func (plainStrategy) Extract(path string, pageLimit int) (string, error) {
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
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n"), nil
}
