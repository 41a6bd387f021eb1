package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

//go:embed sample.json
var samplePayload []byte

func main() {
	baseURL := os.Getenv("SMARTFORM_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	steps := []struct {
		name     string
		method   string
		endpoint string
		payload  []byte
	}{
		{"Health", http.MethodGet, "/health", nil},
		{"Normalize", http.MethodPost, "/normalize", samplePayload},
		{"Explain", http.MethodPost, "/explain-smartform", samplePayload},
	}

	for i, s := range steps {
		fmt.Printf("%d. %s...\n", i+1, s.name)
		if !sendRequest(s.method, baseURL+s.endpoint, s.payload) {
			fmt.Printf("FAILED: %s\n", s.name)
			os.Exit(1)
		}
		fmt.Printf("PASSED: %s\n", s.name)
	}
}

func sendRequest(method, url string, payload []byte) bool {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}

	fmt.Printf("Response: %s\n", string(respBody))
	return true
}
