package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/storefront/pkg/domain"
)

func TestTextHandler_Output(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf)
	handler.Renderer = func(v domain.View) (string, error) {
		return "Rendered: " + v.Title, nil
	}

	if err := handler.Output(context.Background(), domain.View{Title: "Shopping Cart"}); err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if !strings.Contains(outBuf.String(), "Rendered: Shopping Cart") {
		t.Errorf("expected rendered output, got %q", outBuf.String())
	}
}

func TestTextHandler_Input(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("  add 1  \nbad\x00line\n"), out, WithPrompt("> "))
	ctx := context.Background()

	got, err := handler.Input(ctx)
	if err != nil || got != "add 1" {
		t.Fatalf("expected %q, got %q (err %v)", "add 1", got, err)
	}
	got, err = handler.Input(ctx)
	if err != nil || got != "badline" {
		t.Fatalf("expected %q, got %q (err %v)", "badline", got, err)
	}
	if _, err := handler.Input(ctx); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
	if !strings.HasPrefix(out.String(), "> ") {
		t.Errorf("expected prompt, got %q", out.String())
	}
}

func TestTextHandler_Input_Cancelled(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()
	handler := NewTextHandler(reader, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := handler.Input(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFormatView_Cart(t *testing.T) {
	rose := domain.Product{ID: 1, Name: "Rose", Price: domain.Cents(2599)}
	view := domain.View{
		Page:       domain.PageCart,
		Title:      "Shopping Cart",
		Rows:       []domain.CartRow{{LineItem: domain.LineItem{Product: rose, Quantity: 2}, LineTotal: domain.Cents(5198)}},
		TotalItems: 2,
		TotalCost:  domain.Cents(5198),
		Actions:    []domain.Action{{Label: "Checkout", Intent: domain.Checkout()}},
	}

	got := FormatView(view)
	for _, want := range []string{"== Shopping Cart ==", "Rose", "x 2 = $51.98", "Total items: 2", "[Checkout]"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}
}

func TestFormatView_EmptyCart(t *testing.T) {
	got := FormatView(domain.View{Page: domain.PageCart, Title: "Shopping Cart", Empty: true})
	if !strings.Contains(got, "Your cart is empty.") {
		t.Errorf("expected empty notice, got:\n%s", got)
	}
}

func TestTextHandler_InputLimit(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("add 1000000\ncart\n"), out, WithInputLimit(5))

	got, err := handler.Input(context.Background())
	if err != nil || got != "cart" {
		t.Fatalf("expected oversized line to be skipped, got %q (err %v)", got, err)
	}
	if !strings.Contains(out.String(), "exceeds maximum allowed size") {
		t.Errorf("expected size error to be reported, got %q", out.String())
	}
}
