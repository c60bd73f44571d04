package web

import (
	"io/fs"
	"strings"
	"testing"
)

func TestDashboard(t *testing.T) {
	dashboard, err := Dashboard()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	index, err := fs.ReadFile(dashboard, "index.html")
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(index), "/api/v1/campaigns") {
		t.Fatalf("expected dashboard to call the campaigns api")
	}
	if _, err := fs.Stat(dashboard, "app.js"); err != nil {
		t.Fatalf("expected app.js: %v", err)
	}
}
