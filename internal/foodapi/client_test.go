package foodapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(handler http.HandlerFunc) (*Client, func()) {
	srv := httptest.NewServer(handler)
	c := NewClient()
	c.baseURL = srv.URL
	return c, srv.Close
}

func TestSearch(t *testing.T) {
	c, done := testClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search_terms"); got != "oatmeal" {
			t.Errorf("search_terms = %q, want oatmeal", got)
		}
		_, _ = w.Write([]byte(`{"count":2,"products":[
			{"code":"123","product_name":"Rolled Oats","brands":"Quaker","nutriments":{"energy-kcal_100g":379}},
			{"code":"456","product_name":"Instant Oatmeal","brands":"","nutriments":{"energy-kcal_100g":"368.5"}}
		]}`))
	})
	defer done()

	products, err := c.Search(context.Background(), "oatmeal", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("products = %d, want 2", len(products))
	}

	kcal, ok := products[0].KcalPer100g()
	if !ok || kcal != 379 {
		t.Errorf("KcalPer100g = %.1f, %v; want 379, true", kcal, ok)
	}
	// String-typed nutriments parse the same as numeric ones.
	kcal, ok = products[1].KcalPer100g()
	if !ok || kcal != 368.5 {
		t.Errorf("string KcalPer100g = %.1f, %v; want 368.5, true", kcal, ok)
	}
}

func TestLookup_NotFound(t *testing.T) {
	c, done := testClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":0}`))
	})
	defer done()

	if _, err := c.Lookup(context.Background(), "0000000000000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup error = %v, want ErrNotFound", err)
	}
}

func TestLookup(t *testing.T) {
	c, done := testClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":1,"product":{"code":"3017620422003","product_name":"Nutella","brands":"Ferrero","serving_quantity":"15","nutriments":{"energy-kcal_100g":539}}}`))
	})
	defer done()

	p, err := c.Lookup(context.Background(), "3017620422003")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if p.DisplayName() != "Ferrero Nutella" {
		t.Errorf("DisplayName = %q", p.DisplayName())
	}
	if grams, ok := p.ServingGrams(); !ok || grams != 15 {
		t.Errorf("ServingGrams = %.0f, %v; want 15, true", grams, ok)
	}
	if kcal, ok := p.KcalForGrams(15); !ok || kcal != 80.85 {
		t.Errorf("KcalForGrams(15) = %.2f, %v; want 80.85, true", kcal, ok)
	}
}

func TestRateLimited(t *testing.T) {
	c, done := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer done()

	if _, err := c.Search(context.Background(), "bread", 5); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("Search error = %v, want ErrRateLimited", err)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"int", `379`, 379, true},
		{"float", `368.5`, 368.5, true},
		{"string", `"539"`, 539, true},
		{"string decimal comma", `"12,5"`, 12.5, true},
		{"padded string", `" 42 "`, 42, true},
		{"junk string", `"lots"`, 0, false},
		{"null", `null`, 0, false},
		{"absent", ``, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseNumber([]byte(tt.input))
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseNumber(%q) = %.2f, %v; want %.2f, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
