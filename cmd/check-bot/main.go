// check-bot issues verification requests against a running gate-server.
// Handy for smoke testing a deployment from the shell.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type checkResponse struct {
	Language struct {
		Verdict string `json:"verdict"`
		Source  string `json:"source"`
		Reason  string `json:"reason"`
	} `json:"language"`
	FirstCheck bool   `json:"first_check"`
	Banned     *bool  `json:"banned"`
	Cooldown   *int64 `json:"cooldown"`
}

func main() {
	serverURL := getenv("SERVER_URL", "http://localhost:8080")
	apiKey := getenv("API_KEY", "")
	uuid := getenv("UUID", "")
	names := getenv("USERNAMES", "Fritz")

	if apiKey == "" || uuid == "" {
		log.Fatal("API_KEY and UUID must be set")
	}

	client := &http.Client{Timeout: 30 * time.Second}
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		res, err := runCheck(client, serverURL, apiKey, uuid, name)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		line := fmt.Sprintf("%s: %s (%s)", name, res.Language.Verdict, res.Language.Source)
		if res.FirstCheck {
			line += " [first check]"
		}
		if res.Banned != nil {
			line += fmt.Sprintf(" banned=%t", *res.Banned)
		}
		if res.Cooldown != nil && *res.Cooldown > 0 {
			line += fmt.Sprintf(" cooldown=%ds", *res.Cooldown)
		}
		log.Print(line)
	}
}

func runCheck(client *http.Client, serverURL, apiKey, uuid, name string) (*checkResponse, error) {
	req, err := http.NewRequest(http.MethodGet, serverURL+"/check/"+uuid+"/"+name, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out checkResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
