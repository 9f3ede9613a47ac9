// Package testutil provides shared test infrastructure for the decision
// engine and simulator packages: golden-fixture loading and floating-point
// tolerance comparison, adapted from the teacher's golden-dataset helper.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenFixtures is the structure of testdata/goldendataset.json: a set of
// named cold-start scenarios with their expected post-run observability
// metrics, used to pin end-to-end simulator behavior against regressions.
type GoldenFixtures struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenScenario describes one fixture: a minimal single-queue cold start,
// and the metrics a correct simulator run against it must reproduce.
type GoldenScenario struct {
	Name           string  `json:"name"`
	PendingCount   int     `json:"pendingCount"`
	AvgItemMinutes float64 `json:"avgItemMinutes"`
	AvgSetupSecs   float64 `json:"avgSetupSecs"`
	AvgLoginSecs   float64 `json:"avgLoginSecs"`

	ExpectedCompleted       int     `json:"expectedCompleted"`
	ExpectedUtilizationPct  float64 `json:"expectedUtilizationPct"`
}

// LoadGoldenFixtures loads testdata/goldendataset.json relative to this
// source file, the same resolve-by-caller trick the teacher's loader uses
// so the fixture path survives package moves.
func LoadGoldenFixtures(t *testing.T, relPathToRoot ...string) *GoldenFixtures {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get current file path")
	}
	parts := append([]string{filepath.Dir(thisFile)}, relPathToRoot...)
	parts = append(parts, "testdata", "goldendataset.json")
	path := filepath.Join(parts...)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden dataset: %v", err)
	}

	var fixtures GoldenFixtures
	if err := json.Unmarshal(data, &fixtures); err != nil {
		t.Fatalf("failed to parse golden dataset: %v", err)
	}
	return &fixtures
}

// AssertFloat64Equal compares two float64 values with relative tolerance,
// treating want==got==0 as an exact match to avoid a divide-by-zero.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
