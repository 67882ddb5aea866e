// Shadow comparison harness used while cutting the portal over from the
// legacy Supabase-backed frontend API. It replays read-only requests against
// both deployments and reports status and body divergence. Volatile fields
// such as generated_at are stripped before comparing.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type probe struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type probeFile struct {
	Probes       []probe  `json:"probes"`
	IgnoreFields []string `json:"ignore_fields"`
}

type result struct {
	Probe          probe
	LegacyStatus   int
	PortalStatus   int
	StatusMatch    bool
	BodyMatch      bool
	Error          error
	DurationPortal time.Duration
	DurationLegacy time.Duration
}

func main() {
	var (
		portalBase string
		legacyBase string
		probesPath string
		timeout    time.Duration
	)

	flag.StringVar(&portalBase, "portal-base", "http://localhost:8080", "portal API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "legacy API base URL")
	flag.StringVar(&probesPath, "probes", filepath.Join("scripts", "shadow_compare", "probes.json"), "path to JSON probes file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	probes, ignore, err := loadProbes(probesPath)
	if err != nil {
		log.Fatalf("failed to load probes: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		results      []result
		breaking     int
		optionalDiff int
	)

	for _, p := range probes {
		res := compareProbe(client, portalBase, legacyBase, p, ignore)
		if res.Error != nil {
			if p.Critical {
				breaking++
			}
		} else {
			if !res.StatusMatch || !res.BodyMatch {
				if p.Critical {
					breaking++
				} else {
					optionalDiff++
				}
			}
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadProbes(path string) ([]probe, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var f probeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, err
	}
	if len(f.Probes) == 0 {
		return nil, nil, fmt.Errorf("no probes defined in %s", path)
	}
	return f.Probes, f.IgnoreFields, nil
}

func compareProbe(client *http.Client, portalBase, legacyBase string, p probe, ignore []string) result {
	res := result{Probe: p}
	portalResp, portalDur, portalErr := performRequest(client, portalBase, p)
	legacyResp, legacyDur, legacyErr := performRequest(client, legacyBase, p)
	res.DurationPortal = portalDur
	res.DurationLegacy = legacyDur

	if portalErr != nil {
		res.Error = fmt.Errorf("portal request failed: %w", portalErr)
		return res
	}
	if legacyErr != nil {
		res.Error = fmt.Errorf("legacy request failed: %w", legacyErr)
		return res
	}

	res.PortalStatus = portalResp.StatusCode
	res.LegacyStatus = legacyResp.StatusCode
	res.StatusMatch = res.PortalStatus == res.LegacyStatus

	defer portalResp.Body.Close()
	defer legacyResp.Body.Close()

	portalBody, err := io.ReadAll(portalResp.Body)
	if err != nil {
		res.Error = fmt.Errorf("read portal body: %w", err)
		return res
	}
	legacyBody, err := io.ReadAll(legacyResp.Body)
	if err != nil {
		res.Error = fmt.Errorf("read legacy body: %w", err)
		return res
	}

	res.BodyMatch = bodiesEqual(portalBody, legacyBody, ignore)

	return res
}

func performRequest(client *http.Client, base string, p probe) (*http.Response, time.Duration, error) {
	if client == nil {
		return nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(p.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := p.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := strings.TrimRight(base, "/") + path

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp, time.Since(start), nil
}

func bodiesEqual(a, b []byte, ignore []string) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj, ignore)
	normalize(&bj, ignore)
	return reflect.DeepEqual(aj, bj)
}

func normalize(v *interface{}, ignore []string) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for _, field := range ignore {
			delete(val, field)
		}
		for k, v2 := range val {
			normalize(&v2, ignore)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2, ignore)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(results []result) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Probe.Method, res.Probe.Path)
		fmt.Printf("  Portal Status: %d (%s)\n", res.PortalStatus, res.DurationPortal)
		fmt.Printf("  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
		} else {
			fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Probe.Critical)
		}
	}
}
