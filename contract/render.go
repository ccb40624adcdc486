/*
render.go - Contract document rendering

PURPOSE:
  Renders the placeholder set into the document bundle on disk. Each
  service model gets its template list from Templates(); every document
  shares a header block (parties, date, project) followed by the
  model-specific fee terms.

OUTPUT LAYOUT:
  <dir>/<SafeClientName>_<YYYY-MM-DD>/<NAME>.md

  Markdown keeps the output reviewable in any editor; swapping in a real
  docx renderer only changes this file.

SEE ALSO:
  - contract.go: Placeholder assembly
*/
package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/brightline/quote-engine/quote"
)

// docTitles maps template names to document headings.
var docTitles = map[string]string{
	"SOW": "Statement of Work",
	"MSA": "Master Service Agreement",
	"SLA": "Service Level Agreement",
	"DPA": "Data Processing Agreement",
}

// RenderDocument produces one document's content from the placeholder set.
func RenderDocument(name string, data PlaceholderData) []byte {
	title := docTitles[name]
	if title == "" {
		title = name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Date:** %s\n\n", data.Today)
	fmt.Fprintf(&b, "**Between:** %s (%q), %s\n\n", data.CompanyName, data.CompanyContactName, data.CompanyAddress)
	fmt.Fprintf(&b, "**And:** %s, a %s, of %s\n\n", data.ClientLegalName, data.ClientEntityType, data.ClientLegalAddress)
	fmt.Fprintf(&b, "## Project\n\n%s\n\n%s\n\n", data.ProjectTitle, data.ProjectScope)

	fmt.Fprintf(&b, "## Fee Terms (%s)\n\n", data.ServiceModel)
	keys := make([]string, 0, len(data.Fees))
	for k := range data.Fees {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, data.Fees[k])
	}

	return []byte(b.String())
}

// WriteDocuments renders the full bundle for a quote into dir and returns
// the document records to store on the quote.
func WriteDocuments(dir string, q *quote.Quote, data PlaceholderData, now time.Time) ([]quote.ContractDoc, error) {
	folder := fmt.Sprintf("%s_%s", SafeClientName(q.ClientName), now.Format("2006-01-02"))
	outDir := filepath.Join(dir, folder)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create contract dir: %w", err)
	}

	var docs []quote.ContractDoc
	for _, name := range Templates(q.ServiceModel) {
		outPath := filepath.Join(outDir, name+".md")
		if err := os.WriteFile(outPath, RenderDocument(name, data), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		docs = append(docs, quote.ContractDoc{
			Name:        name,
			Path:        outPath,
			GeneratedAt: now,
		})
	}
	return docs, nil
}
