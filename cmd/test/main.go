// Command test runs smoke tests against a running Business Insights Agent.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

const sampleProfile = `{
  "businessName": "Green Bean Roasters",
  "industry": "Food & Beverage",
  "description": "Small-batch specialty coffee roastery selling wholesale and online",
  "stage": "Growth",
  "employees": "12",
  "location": "Portland, OR",
  "financials": {"monthlyRevenue": 42000, "monthlyExpenses": 35500, "fundingStage": "Bootstrapped"},
  "goals": {"primaryGoal": "Open a second location", "topChallenge": "Rising green coffee prices"},
  "marketFactors": ["inflation", "hiring"]
}`

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

var (
	baseURL     string
	profileJSON string
)

var rootCmd = &cobra.Command{
	Use:   "test",
	Short: "Smoke tests for the Business Insights Agent",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		printHeader("Business Insights Agent - Test Suite")
		fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, baseURL, colorReset)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the agent")

	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate insights for a business profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return check(NewTestClient(baseURL).testInsights(profileJSON))
		},
	}
	insightsCmd.Flags().StringVar(&profileJSON, "profile", sampleProfile, "Business profile JSON to submit")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "all",
			Short: "Run every test",
			RunE: func(cmd *cobra.Command, args []string) error {
				return NewTestClient(baseURL).runAllTests()
			},
		},
		&cobra.Command{
			Use:   "health",
			Short: "Check the health endpoint",
			RunE: func(cmd *cobra.Command, args []string) error {
				return check(NewTestClient(baseURL).testHealthCheck())
			},
		},
		&cobra.Command{
			Use:   "method",
			Short: "Check that non-POST requests are rejected",
			RunE: func(cmd *cobra.Command, args []string) error {
				return check(NewTestClient(baseURL).testMethodNotAllowed())
			},
		},
		&cobra.Command{
			Use:   "agent-card",
			Short: "Check the A2A agent card",
			RunE: func(cmd *cobra.Command, args []string) error {
				return check(NewTestClient(baseURL).testAgentCard())
			},
		},
		&cobra.Command{
			Use:   "a2a",
			Short: "Generate insights through the A2A endpoint",
			RunE: func(cmd *cobra.Command, args []string) error {
				return check(NewTestClient(baseURL).testA2A())
			},
		},
		insightsCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func check(ok bool) error {
	if !ok {
		return fmt.Errorf("test failed")
	}
	return nil
}

func (tc *TestClient) runAllTests() error {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Method Not Allowed", tc.testMethodNotAllowed},
		{"Agent Card", tc.testAgentCard},
		{"Insight Generation", func() bool { return tc.testInsights(sampleProfile) }},
		{"A2A Insight Generation", tc.testA2A},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		return fmt.Errorf("%d test(s) failed", failed)
	}
	return nil
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	status, body, err := tc.do(http.MethodGet, "/health", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	if status != http.StatusOK || string(body) != "OK" {
		printError(fmt.Sprintf("Expected 200 'OK', got %d '%s'", status, string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testMethodNotAllowed() bool {
	printTestHeader("Testing Method Not Allowed")

	status, body, err := tc.do(http.MethodGet, "/api/generate-insights", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	var resp map[string]any
	if status != http.StatusMethodNotAllowed || json.Unmarshal(body, &resp) != nil || resp["error"] != "Method not allowed" {
		printError(fmt.Sprintf("Expected 405 with error body, got %d: %s", status, string(body)))
		return false
	}

	printSuccess("GET is rejected with 405")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	status, body, err := tc.do(http.MethodGet, "/.well-known/agent.json", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var agentCard map[string]any
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	for _, field := range []string{"name", "description", "version", "capabilities", "endpoints"} {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testInsights(profile string) bool {
	printTestHeader("Testing Insight Generation")
	fmt.Printf("%sProfile:%s\n%s\n\n", colorYellow, colorReset, profile)

	status, body, err := tc.do(http.MethodPost, "/api/generate-insights", []byte(profile))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	var resp struct {
		Success bool   `json:"success"`
		Data    string `json:"data"`
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	if status != http.StatusOK || !resp.Success {
		printError(fmt.Sprintf("Expected status 200, got %d: %s %s", status, resp.Error, resp.Details))
		return false
	}

	printSuccess("Insight generation completed successfully")
	printText("Generated Insights", resp.Data)
	return true
}

func (tc *TestClient) testA2A() bool {
	printTestHeader("Testing A2A Insight Generation")

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind":      "message",
				"role":      "user",
				"messageId": uuid.New().String(),
				"parts": []map[string]any{
					{"kind": "data", "data": json.RawMessage(sampleProfile)},
				},
			},
			"configuration": map[string]any{"blocking": true},
		},
	}

	payload, _ := json.Marshal(request)
	status, body, err := tc.do(http.MethodPost, "/a2a/insights", payload)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	var response struct {
		Result struct {
			Status struct {
				State   string `json:"state"`
				Message struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
		} `json:"result"`
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if len(response.Error) > 0 {
		printError("Request returned an error")
		printJSON(response.Error)
		return false
	}
	if response.Result.Status.State != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", response.Result.Status.State))
		return false
	}

	printSuccess("A2A task completed successfully")
	for _, part := range response.Result.Status.Message.Parts {
		printText("Generated Insights", part.Text)
	}
	return true
}

func (tc *TestClient) do(method, path string, payload []byte) (int, []byte, error) {
	url := tc.baseURL + path
	fmt.Printf("%s %s\n", method, url)

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printText(title, text string) {
	fmt.Printf("\n%s%s:%s\n", colorGreen, title, colorReset)
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(text)
	fmt.Println(strings.Repeat("=", 80))
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
