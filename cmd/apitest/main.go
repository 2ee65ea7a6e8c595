package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the HTTP view's JSON envelope
// =============================================================================

type APIResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// Anniversary is one entry of /api/v1/anniversaries
type Anniversary struct {
	ID       int64  `json:"id"`
	IDLatin  string `json:"id_latin"`
	IDLocal  string `json:"id_local"`
	IsBirth  bool   `json:"is_birth"`
	Verified bool   `json:"verified"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("lunarcal HTTP View Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testMonthHeaders()
	tr.testYearPages()
	tr.testEncodings()
	tr.testEdgeCases()
	tr.testAnniversaries()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := tr.parseDataAs(resp, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testMonthHeaders() {
	tr.printSection("Month Headers")

	testCases := []struct {
		path        string
		header      string
		description string
	}{
		{"/api/v1/calendar/2014/2", "February 2014 (Year JiaWu, Month 1X)", "no month starts"},
		{"/api/v1/calendar/2014/3", "March 2014 (Year JiaWu, Month 2D S1, 3X S31)", "two months start"},
		{"/api/v1/calendar/2014/1", "January 2014 (Year GuiSi, Month 12D S1, Year JiaWu, Month 1X S31)", "new year inside the page"},
		{"/api/v1/calendar/2023/3", "March 2023 (Year GuiMao, Month R2X S22)", "leap month starts"},
		{"/api/v1/calendar/2014/2?locale=localized", "February 2014  甲午年正月小", "localized"},
		{"/api/v1/calendar/2023/3?locale=localized", "March 2023  癸卯年闰二月小22日始", "localized leap month"},
	}

	for _, tc := range testCases {
		page, err := tr.page(tc.path)
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}

		first, _, _ := strings.Cut(page, "\n")
		if got := strings.TrimSpace(first); got == tc.header {
			tr.recordSuccess(fmt.Sprintf("%s (%s)", got, tc.description))
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected header '%s', got '%s'", tc.header, got))
		}

		if tr.verbose {
			fmt.Println(page)
		}
	}
}

func (tr *TestRunner) testYearPages() {
	tr.printSection("Year Pages")

	for _, year := range []int{1645, 2024, 7000} {
		page, err := tr.page(fmt.Sprintf("/api/v1/calendar/%d", year))
		if err != nil {
			tr.recordError(fmt.Sprint(year), err.Error())
			continue
		}

		n := strings.Count(page, fmt.Sprintf(" %d (Year ", year))
		if n == 12 {
			tr.recordSuccess(fmt.Sprintf("%d: 12 pages", year))
		} else {
			tr.recordError(fmt.Sprint(year), fmt.Sprintf("Expected 12 pages, got %d", n))
		}
	}

	page, err := tr.page("/api/v1/calendar/2023/7?detail=true")
	if err != nil {
		tr.recordError("Detail line", err.Error())
		return
	}
	if strings.Contains(page, "[ChuFu]") && strings.Contains(page, "[ZhongFu]") {
		tr.recordSuccess("Detail line shows dog days for July 2023")
	} else {
		tr.recordError("Detail line", "Expected ChuFu and ZhongFu in July 2023")
	}
}

func (tr *TestRunner) testEncodings() {
	tr.printSection("Encodings")

	resp, err := tr.getRaw("/api/v1/calendar/2023/4?locale=localized&encoding=gb2312")
	if err != nil {
		tr.recordError("GB2312", err.Error())
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct == "text/plain; charset=gb2312" {
		tr.recordSuccess("GB2312 page served with its charset")
	} else {
		tr.recordError("GB2312", fmt.Sprintf("Unexpected Content-Type '%s'", ct))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	testCases := []struct {
		path        string
		description string
	}{
		{"/api/v1/calendar/1644", "year before the supported range"},
		{"/api/v1/calendar/7001/1", "year after the supported range"},
		{"/api/v1/calendar/2024/13", "month 13"},
		{"/api/v1/calendar/abc", "non-numeric year"},
		{"/api/v1/calendar/2024/1?locale=xx", "unknown locale"},
		{"/api/v1/calendar/2024/1?rule=xx", "unknown rule"},
	}

	for _, tc := range testCases {
		resp, err := tr.getRaw(tc.path)
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusBadRequest {
			tr.recordSuccess(fmt.Sprintf("Rejected %s", tc.description))
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected 400, got %d", resp.StatusCode))
		}
	}
}

func (tr *TestRunner) testAnniversaries() {
	tr.printSection("Anniversaries")

	resp, err := tr.get("/api/v1/anniversaries")
	if err != nil {
		tr.recordError("Anniversaries", err.Error())
		return
	}

	var entries []Anniversary
	if err := tr.parseDataAs(resp, &entries); err != nil {
		tr.recordError("Anniversaries", err.Error())
		return
	}

	tr.recordSuccess(fmt.Sprintf("Listed %d anniversaries", len(entries)))
	for _, e := range entries {
		if !e.Verified {
			tr.recordError(e.IDLatin, "checksum does not verify")
		} else if tr.verbose {
			fmt.Printf("    %d %s %s birth=%t\n", e.ID, e.IDLatin, e.IDLocal, e.IsBirth)
		}
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

// page fetches a text/plain calendar page.
func (tr *TestRunner) page(path string) (string, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return string(body), nil
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	return tr.client.Get(tr.baseURL + path)
}

func (tr *TestRunner) parseDataAs(resp *APIResponse, target any) error {
	// Re-marshal and unmarshal to convert map to struct
	dataBytes, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return json.Unmarshal(dataBytes, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of a running lunarcal serve")
	verbose := flag.Bool("v", false, "Verbose output (print pages)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Start the server with: lunarcal serve")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
