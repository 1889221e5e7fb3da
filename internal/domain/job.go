package domain

// JobListing is one extracted job posting. Title and Link are always
// non-empty on records that leave the extraction engine; the remaining text
// fields fall back to "N/A" when the markup didn't carry them. LogoURL stays
// empty when absent and Skills stays empty when nothing matched.
type JobListing struct {
	Title      string
	Link       string // absolute URL
	Company    string
	Location   string
	PostedDate string // free-form, e.g. "Posted 3 days ago"
	LogoURL    string // absolute URL or ""
	Skills     []string
}
