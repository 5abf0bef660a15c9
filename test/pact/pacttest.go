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
	ProviderName = "order-api"
	ConsumerName = "storefront-web"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order pact-order-301 exists"
	StateOrderMissing   = "no order with id pact-order-404"
)

const (
	ExistingOrderID = "pact-order-301"
	MissingOrderID  = "pact-order-404"

	OwnerUserID   int64 = 7
	OwnerName           = "Pact User"
	OwnerEmail          = "pact.user@example.com"
	OwnerPassword       = "pact-pass"

	// BearerToken is the fixed credential both sides of the contract use.
	BearerToken = "pact-bearer-token"
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

// PactFile returns the canonical pact file path for the storefront consumer.
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

// ExampleOrderPayload provides stable test data for order interactions.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"orderItems": []map[string]any{
			{"product": "pact-prod-1", "name": "Pact Widget", "qty": 2, "price": 10.00},
		},
		"shippingAddress": map[string]any{
			"address":    "1 Pact St",
			"city":       "Contractville",
			"postalCode": "12345",
			"country":    "US",
		},
		"paymentMethod": "PayPal",
		"itemsPrice":    20.00,
		"taxPrice":      1.50,
		"shippingPrice": 2.00,
		"totalPrice":    23.50,
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
