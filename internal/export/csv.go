package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"spiderjobs-engine/internal/domain"
)

// Columns is the tabular contract consumers depend on. The order is fixed;
// skills are flattened into one delimiter-joined cell.
var Columns = []string{"title", "link", "company", "location", "posted_date", "logo_url", "skills"}

// WriteCSV writes the listings to path, creating parent directories as
// needed. An empty slice still produces a file with the header row.
func WriteCSV(path string, jobs []domain.JobListing) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, j := range jobs {
		row := []string{
			j.Title,
			j.Link,
			j.Company,
			j.Location,
			j.PostedDate,
			j.LogoURL,
			strings.Join(j.Skills, ", "),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
