// Command parity-check replays public read requests against the legacy server and
// this API and reports responses that no longer match.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		ignore      string
		timeout     time.Duration
	)
	flag.StringVar(&goBase, "go-base", "http://localhost:5000", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:5001", "Legacy API base URL")
	flag.StringVar(&targetsPath, "targets", "", "Optional JSON file with {\"targets\": [...]}")
	flag.StringVar(&ignore, "ignore", "CreatedAt,UpdatedAt,timestamp", "Comma separated fields skipped during comparison")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets := defaultTargets
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			log.Fatalf("failed to load targets: %v", err)
		}
		targets = loaded
	}

	c := &comparer{
		client:     &http.Client{Timeout: timeout},
		goBase:     goBase,
		legacyBase: legacyBase,
		ignore:     map[string]struct{}{},
	}
	for _, field := range strings.Split(ignore, ",") {
		if field = strings.TrimSpace(field); field != "" {
			c.ignore[field] = struct{}{}
		}
	}

	var breaking, optional int
	results := make([]result, 0, len(targets))
	for _, t := range targets {
		res := c.compare(t)
		if res.Err != nil || !res.StatusMatch || !res.BodyMatch {
			if t.Critical {
				breaking++
			} else {
				optional++
			}
		}
		results = append(results, res)
	}

	printReport(results)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file struct {
		Targets []target `json:"targets"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func printReport(results []result) {
	fmt.Println("Parity Report")
	fmt.Println("=============")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Err != nil:
			status = "ERROR"
		case !res.StatusMatch || !res.BodyMatch:
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  Go: %d (%s) | Legacy: %d (%s)\n", res.GoCode, res.GoTime, res.LegacyCode, res.LegacyTime)
		if res.Mismatch != "" {
			fmt.Printf("  Body: %s\n", res.Mismatch)
		}
	}
}
