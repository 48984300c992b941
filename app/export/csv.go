package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/cdpscan/cdpscan/app/scan"
)

var csvHeader = []string{
	"company", "total_score", "category", "score",
	"matched_keywords", "title", "source", "url", "harvested_at",
}

// WriteCSV writes scan results to path, one row per ranked signal, companies
// ordered by descending total score. A company with no signals still gets a
// row so the output covers every scanned prospect.
func WriteCSV(path string, results []scan.ScanResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range Ranked(results) {
		if len(result.Signals) == 0 {
			row := []string{result.Company, "0", "", "", "", "", "", "", ""}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
			continue
		}

		for _, signal := range result.Signals {
			row := []string{
				result.Company,
				strconv.Itoa(result.TotalScore),
				signal.Category.String(),
				strconv.Itoa(signal.Score),
				joinKeywords(signal.Keywords),
				signal.Title,
				signal.Source,
				signal.URL,
				signal.HarvestedAt.Format(time.RFC3339),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}

	return nil
}

// Ranked returns results sorted by descending total score, company name as
// tie-break so equal scores order deterministically.
func Ranked(results []scan.ScanResult) []scan.ScanResult {
	ranked := make([]scan.ScanResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalScore != ranked[j].TotalScore {
			return ranked[i].TotalScore > ranked[j].TotalScore
		}
		return ranked[i].Company < ranked[j].Company
	})

	return ranked
}

func joinKeywords(keywords []string) string {
	out := ""
	for i, keyword := range keywords {
		if i > 0 {
			out += "; "
		}
		out += keyword
	}
	return out
}
