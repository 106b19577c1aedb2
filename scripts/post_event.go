package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// post_event.go - Utility to publish a sample event against a running instance
//
// Usage:
//   go run scripts/post_event.go <mission_id> [topic]
//
// Example:
//   go run scripts/post_event.go 7b6c1a52-... personnel.checkin
//
// Environment:
//   VIGIA_URL       base URL (default http://localhost:3000)
//   INGEST_API_KEY  bearer token, when the server has auth enabled

var samplePayloads = map[string]map[string]any{
	"personnel.checkin": {
		"team_name": "Alpha",
		"method":    "radio",
	},
	"operations.team_status_change": {
		"team_name":  "Alpha",
		"old_status": "staged",
		"new_status": "deployed",
	},
	"communications.ics213_sent": {
		"from":    "Operations",
		"to":      "Planning",
		"subject": "Sector 4 sweep complete",
	},
	"planning.objective_approved": {
		"objective_code": "OBJ-12",
		"description":    "Establish staging area at north trailhead",
	},
	"finance.time_milestone": {
		"personnel_name": "J. Silva",
		"milestone":      "12h operational period",
	},
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/post_event.go <mission_id> [topic]")
		fmt.Println("")
		fmt.Println("Topics:")
		for topic := range samplePayloads {
			fmt.Printf("  %s\n", topic)
		}
		os.Exit(1)
	}

	missionID := os.Args[1]
	topic := "personnel.checkin"
	if len(os.Args) > 2 {
		topic = os.Args[2]
	}

	payload, ok := samplePayloads[topic]
	if !ok {
		fmt.Printf("Unknown topic: %s\n", topic)
		os.Exit(1)
	}
	payload["mission_id"] = missionID

	body, err := json.Marshal(map[string]any{
		"topic":   topic,
		"payload": payload,
	})
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	baseURL := os.Getenv("VIGIA_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/v1/events", bytes.NewReader(body))
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := os.Getenv("INGEST_API_KEY"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Body:   %s\n", respBody)
}
