package integration

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockHTMLServer creates a test server that serves a fixed HTML response
func mockHTMLServer(html string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, html)
	}))
}

func TestMonthlyRainfallMMWithMock(t *testing.T) {
	// Mock bulletin with three district rows and one malformed row
	mockHTML := `
<!DOCTYPE html>
<html>
<body>
    <table>
        <tbody>
            <tr><td>District A</td><td>120.0</td><td>normal</td></tr>
            <tr><td>District B</td><td>80.5</td><td>deficit</td></tr>
            <tr><td>District C</td><td>99.5</td><td>normal</td></tr>
            <tr><td>District D</td><td>N/A</td><td>no data</td></tr>
        </tbody>
    </table>
</body>
</html>`

	server := mockHTMLServer(mockHTML)
	defer server.Close()

	scraper := NewRainfallScraper(server.URL)
	mm, err := scraper.MonthlyRainfallMM(context.Background())
	if err != nil {
		t.Fatalf("Failed to parse mock bulletin: %v", err)
	}

	// Mean of the three parseable figures
	if mm != 100.0 {
		t.Errorf("Expected 100.0 mm, got %v", mm)
	}
}

func TestMonthlyRainfallMMNoFigures(t *testing.T) {
	server := mockHTMLServer("<html><body><p>Bulletin unavailable</p></body></html>")
	defer server.Close()

	scraper := NewRainfallScraper(server.URL)
	if _, err := scraper.MonthlyRainfallMM(context.Background()); err == nil {
		t.Error("Expected error when the bulletin carries no figures")
	}
}

func TestMonthlyRainfallMMServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	scraper := NewRainfallScraper(server.URL)
	if _, err := scraper.MonthlyRainfallMM(context.Background()); err == nil {
		t.Error("Expected error on non-200 response")
	}
}
