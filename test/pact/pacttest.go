//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "souvenir-registry-api"
	ConsumerName = "souvenir-portal"

	StateRegistryEmpty      = "the registry is empty"
	StateManufacturerExists = "manufacturer Acme exists"
	StateCatalogSeeded      = "Acme produces a Mug priced 30 and Globex a Pen priced 5"
)

// Ids are assigned by the registry in insertion order, so a freshly seeded
// registry always hands out the same ones.
const (
	ExistingManufacturerID int64 = 1
	SecondManufacturerID   int64 = 2
	MissingManufacturerID  int64 = 404
	ExistingSouvenirID     int64 = 1
)

const (
	exampleManufacturerName = "Acme"
	exampleCountry          = "USA"
	exampleSouvenirName     = "Mug"
	exampleProductionDate   = "2020-05-01"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the souvenir portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleManufacturerPayload is the manufacturer every seeded state starts with.
func ExampleManufacturerPayload() map[string]any {
	return map[string]any{
		"id":      ExistingManufacturerID,
		"name":    exampleManufacturerName,
		"country": exampleCountry,
	}
}

// ExampleSouvenirPayload is a souvenir produced by the example manufacturer.
func ExampleSouvenirPayload() map[string]any {
	return map[string]any{
		"id":             ExistingSouvenirID,
		"name":           exampleSouvenirName,
		"manufacturerId": ExistingManufacturerID,
		"productionDate": exampleProductionDate,
		"price":          30.0,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
