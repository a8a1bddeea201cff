package certificate

// Page geometry in millimetres, A4 portrait. The measure pass is pure
// arithmetic over these constants so pagination never depends on the PDF
// library's text metrics.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	marginSide = 15.0
	marginTop  = 15.0

	lineHeight   = 5.0
	headerHeight = 24.0 // three header lines plus rule
	footerHeight = 12.0 // legal notice and rule

	maxPages = 255

	hashWrapWidth = 32  // hex chars per rendered hash line
	maxTitleRunes = 256 // longer titles render truncated

	// Lines per creator card: name with email, then roles and identifiers.
	cardLines = 2
)

var contentHeight float64 = pageHeight - marginTop - headerHeight - footerHeight - marginTop

var contentLinesPerPage = int(contentHeight / lineHeight)

// plan is the output of the measure pass, consumed exactly once by the
// emit pass.
type plan struct {
	totalPages int
	assetLines int
	// cardsOnPage[i] holds the creator indices rendered on page i+1.
	cardsOnPage [][]int
}

// wrapHash splits a hex digest into fixed-width lines.
func wrapHash(hash string) []string {
	if hash == "" {
		return nil
	}
	var lines []string
	for len(hash) > hashWrapWidth {
		lines = append(lines, hash[:hashWrapWidth])
		hash = hash[hashWrapWidth:]
	}
	return append(lines, hash)
}

// measure computes the full pagination before anything is rendered.
func measure(d Data) (plan, error) {
	// Asset block: filename line, hash label and wrapped hash lines when
	// present, one spacer.
	assetLines := 2
	if d.Hash != "" {
		assetLines += 1 + len(wrapHash(d.Hash))
	}

	p := plan{assetLines: assetLines}

	free := contentLinesPerPage - assetLines
	if free < 0 {
		free = 0
	}
	page := []int{}
	for i := range d.Creators {
		if free < cardLines {
			p.cardsOnPage = append(p.cardsOnPage, page)
			page = []int{}
			free = contentLinesPerPage
		}
		page = append(page, i)
		free -= cardLines
	}
	p.cardsOnPage = append(p.cardsOnPage, page)
	p.totalPages = len(p.cardsOnPage)

	if p.totalPages > maxPages {
		return plan{}, &Error{Kind: ErrPaginationOverflow}
	}
	return p, nil
}

// bufferSize returns the backing-buffer pre-allocation derived from the
// measure pass: 2 KiB base, 512 B per creator, 128 B per page.
func bufferSize(creators, pages int) int {
	return 2048 + 512*creators + 128*pages
}
