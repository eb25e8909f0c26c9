// Package integration handles external service interactions
package integration

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RainfallScraper reads the regional monthly rainfall outlook from a
// hydromet bulletin page. The figure is advisory context for harvesting
// reports; callers must tolerate it being unavailable.
type RainfallScraper struct {
	sourceURL string
	client    *http.Client
}

// NewRainfallScraper creates a new rainfall outlook scraper
func NewRainfallScraper(url string) *RainfallScraper {
	if url == "" {
		// Default source URL: IMD district rainfall bulletin
		url = "https://mausam.imd.gov.in/responsive/rainfallinformation_state.php"
	}
	return &RainfallScraper{
		sourceURL: url,
		client:    http.DefaultClient,
	}
}

// MonthlyRainfallMM fetches the bulletin and returns the mean of the
// monthly rainfall figures it lists, in millimeters.
func (rs *RainfallScraper) MonthlyRainfallMM(ctx context.Context) (float64, error) {
	log.Printf("Fetching rainfall outlook from %s", rs.sourceURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rs.sourceURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build rainfall request: %v", err)
	}

	res, err := rs.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rainfall bulletin: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return 0, fmt.Errorf("unexpected status code: %d %s", res.StatusCode, res.Status)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rainfall bulletin: %v", err)
	}

	var sum float64
	var count int

	// The bulletin lists one row per district; the second cell carries the
	// monthly actual rainfall in mm.
	doc.Find("table tbody tr").Each(func(index int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		raw := strings.TrimSpace(cells.Eq(1).Text())
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return
		}
		sum += value
		count++
	})

	if count == 0 {
		return 0, fmt.Errorf("no rainfall figures found in bulletin")
	}

	mm := sum / float64(count)
	log.Printf("Parsed rainfall outlook: %.1f mm over %d districts", mm, count)
	return mm, nil
}
