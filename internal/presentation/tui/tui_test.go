package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/storefront/pkg/domain"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	if !strings.Contains(buf.String(), "N U R S E R Y") {
		t.Errorf("banner missing nursery line:\n%s", buf.String())
	}
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render(domain.View{Page: domain.PageLanding, Title: "Paradise Nursery", Body: "Welcome"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "Paradise") || !strings.Contains(out, "Welcome") {
		t.Errorf("unexpected render output:\n%s", out)
	}
}
