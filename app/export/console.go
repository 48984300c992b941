package export

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/cdpscan/cdpscan/app/scan"
)

// Score bands for the summary coloring. Anything at or above hotThreshold is
// worth an immediate outreach; warmThreshold marks prospects to keep watching.
const (
	hotThreshold  = 8
	warmThreshold = 4
)

// PrintSummary writes a ranked, colored per-company summary to stdout.
func PrintSummary(results []scan.ScanResult) {
	ranked := Ranked(results)

	color.Cyan("\nScan summary (%d companies)\n", len(ranked))

	for i, result := range ranked {
		line := fmt.Sprintf("%2d. %-30s score %3d  signals %d", i+1, result.Company, result.TotalScore, len(result.Signals))

		switch {
		case result.TotalScore >= hotThreshold:
			color.Green(line)
		case result.TotalScore >= warmThreshold:
			color.Yellow(line)
		default:
			fmt.Println(line)
		}

		for _, signal := range result.Signals {
			fmt.Printf("      [%d] %-22s %s (%s)\n", signal.Score, signal.Category.String(), signal.Title, signal.Source)
		}
	}

	fmt.Println()
}

// NewProgressBar returns the progress bar shown while scanning a company
// list.
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("companies"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}
