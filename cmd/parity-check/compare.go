package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type result struct {
	Target      target
	LegacyCode  int
	GoCode      int
	StatusMatch bool
	BodyMatch   bool
	Mismatch    string
	Err         error
	GoTime      time.Duration
	LegacyTime  time.Duration
}

// defaultTargets are the public reads both servers answer with the seeded dataset.
var defaultTargets = []target{
	{Method: http.MethodGet, Path: "/api/health"},
	{Method: http.MethodGet, Path: "/api/students", Critical: true},
	{Method: http.MethodGet, Path: "/api/students/175207889", Critical: true},
	{Method: http.MethodGet, Path: "/api/students-with-departments", Critical: true},
	{Method: http.MethodGet, Path: "/api/departments", Critical: true},
	{Method: http.MethodGet, Path: "/api/courses"},
	{Method: http.MethodGet, Path: "/api/students-report", Critical: true},
	{Method: http.MethodGet, Path: "/api/students-report-update", Critical: true},
	{Method: http.MethodGet, Path: "/api/student-grades/175207889", Critical: true},
	{Method: http.MethodGet, Path: "/api/student-grades/175024658", Critical: true},
	{Method: http.MethodGet, Path: "/api/student-registrations/175207889"},
}

type comparer struct {
	client     *http.Client
	goBase     string
	legacyBase string
	ignore     map[string]struct{}
}

func (c *comparer) compare(t target) result {
	res := result{Target: t}
	goCode, goBody, goTime, err := c.fetch(c.goBase, t)
	if err != nil {
		res.Err = fmt.Errorf("go request failed: %w", err)
		return res
	}
	legacyCode, legacyBody, legacyTime, err := c.fetch(c.legacyBase, t)
	if err != nil {
		res.Err = fmt.Errorf("legacy request failed: %w", err)
		return res
	}
	res.GoCode, res.LegacyCode = goCode, legacyCode
	res.GoTime, res.LegacyTime = goTime, legacyTime
	res.StatusMatch = goCode == legacyCode
	res.Mismatch = c.covers(goBody, legacyBody)
	res.BodyMatch = res.Mismatch == ""
	return res
}

func (c *comparer) fetch(base string, t target) (int, []byte, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(t.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := t.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close() //nolint:errcheck
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// covers reports where the Go body fails to contain the legacy body, or "" when it does.
// Extra fields on the Go side are allowed; list order is not significant.
func (c *comparer) covers(goBody, legacyBody []byte) string {
	if bytes.Equal(bytes.TrimSpace(goBody), bytes.TrimSpace(legacyBody)) {
		return ""
	}
	var goVal, legacyVal interface{}
	if err := json.Unmarshal(legacyBody, &legacyVal); err != nil {
		return "legacy body is not JSON"
	}
	if err := json.Unmarshal(goBody, &goVal); err != nil {
		return "go body is not JSON"
	}
	return c.contains(goVal, legacyVal, "$")
}

func (c *comparer) contains(have, want interface{}, path string) string {
	switch w := want.(type) {
	case map[string]interface{}:
		h, ok := have.(map[string]interface{})
		if !ok {
			return path + ": expected object"
		}
		for key, wv := range w {
			if _, skip := c.ignore[key]; skip {
				continue
			}
			hv, ok := h[key]
			if !ok {
				return path + "." + key + ": missing"
			}
			if diff := c.contains(hv, wv, path+"."+key); diff != "" {
				return diff
			}
		}
		return ""
	case []interface{}:
		h, ok := have.([]interface{})
		if !ok {
			return path + ": expected array"
		}
		if len(h) != len(w) {
			return fmt.Sprintf("%s: length %d, legacy has %d", path, len(h), len(w))
		}
		used := make([]bool, len(h))
		for i, wv := range w {
			found := false
			for j, hv := range h {
				if used[j] {
					continue
				}
				if c.contains(hv, wv, path) == "" {
					used[j] = true
					found = true
					break
				}
			}
			if !found {
				return fmt.Sprintf("%s[%d]: no matching element", path, i)
			}
		}
		return ""
	default:
		if fmt.Sprint(have) != fmt.Sprint(want) {
			return fmt.Sprintf("%s: %v, legacy has %v", path, have, want)
		}
		return ""
	}
}
