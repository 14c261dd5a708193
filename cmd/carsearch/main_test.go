package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"rentalsearch/internal/geo"
	"rentalsearch/internal/rental"
	"rentalsearch/internal/search"
	"rentalsearch/platform/apperr"
	"rentalsearch/platform/logger"
)

var testCenter = &search.CenterPoint{Coordinate: geo.Coordinate{Latitude: 40.0, Longitude: -75.0}, Label: "Test"}

func testOffers(t *testing.T) []*rental.Offer {
	t.Helper()
	p, err := rental.NewProvider("PHL1", rental.Company{Name: "Hertz", Code: "ZE"},
		geo.Coordinate{Latitude: 40.0, Longitude: -75.0},
		rental.Address{Line1: "1 Airport Rd", City: "Philadelphia", Region: "PA", Country: "US"})
	if err != nil {
		t.Fatal(err)
	}
	o, err := rental.NewOffer(p, rental.OfferDetails{
		AcrissCode:      "CDAR",
		Transmission:    "Automatic",
		AirConditioning: true,
		Price:           decimal.RequireFromString("123.45"),
		Currency:        "USD",
	})
	if err != nil {
		t.Fatal(err)
	}
	return []*rental.Offer{o}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "coordinates", args: []string{"-lat", "40", "-lon", "-75"}},
		{name: "address", args: []string{"-address", "Philadelphia"}},
		{name: "zero coordinates count as set", args: []string{"-lat", "0", "-lon", "0"}},
		{name: "no location", args: []string{"-radius", "10"}, wantErr: "either -address"},
		{name: "company without code", args: []string{"-address", "x", "-company", "Hertz"}, wantErr: "used together"},
		{name: "bad format", args: []string{"-address", "x", "-format", "xml"}, wantErr: "unknown -format"},
		{name: "negative radius", args: []string{"-address", "x", "-radius", "-3"}, wantErr: "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuildSessionAppliesOptions(t *testing.T) {
	offers := testOffers(t)
	gw := search.GatewayFunc(func(ctx context.Context, p search.Parameters) ([]*rental.Offer, error) {
		if p.RadiusMiles != 12 {
			t.Errorf("radius = %d, want 12", p.RadiusMiles)
		}
		if p.PickupTime.Hour() != search.DefaultPickupHour || p.DropoffTime.Hour() != search.DefaultDropoffHour {
			t.Errorf("unexpected times %v %v", p.PickupTime, p.DropoffTime)
		}
		return offers, nil
	})

	session, err := buildSession(gw, logger.Discard(), testCenter, options{
		radius:  12,
		pickup:  "2026-11-02",
		dropoff: "2026-11-05",
		order:   "proximity",
		company: "hertz",
		code:    "ze",
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := session.FetchResults(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d offers, want 1", len(got))
	}
	if session.Parameters().Order != search.OrderProximityAscending {
		t.Fatalf("order = %v", session.Parameters().Order)
	}
}

func TestBuildSessionWithoutDatesReportsCode(t *testing.T) {
	gw := search.GatewayFunc(func(ctx context.Context, p search.Parameters) ([]*rental.Offer, error) {
		t.Fatal("gateway must not be called")
		return nil, nil
	})
	session, err := buildSession(gw, logger.Discard(), testCenter, options{order: "price_asc"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = session.FetchResults(context.Background())
	if apperr.CodeOf(err) != search.CodeMissingPickup {
		t.Fatalf("code = %d, want %d", apperr.CodeOf(err), search.CodeMissingPickup)
	}

	var stderr bytes.Buffer
	if code := fail(&stderr, err); code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "error 451: A pickup date is required.") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestBuildSessionRejectsBadInput(t *testing.T) {
	gw := search.GatewayFunc(func(ctx context.Context, p search.Parameters) ([]*rental.Offer, error) {
		return nil, nil
	})
	if _, err := buildSession(gw, logger.Discard(), testCenter, options{order: "cheapest"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("order: err = %v", err)
	}
	if _, err := buildSession(gw, logger.Discard(), testCenter, options{order: "price_asc", pickup: "soon"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("pickup: err = %v", err)
	}
}

func TestRenderOffers(t *testing.T) {
	offers := testOffers(t)

	var table bytes.Buffer
	if err := renderOffers(&table, formatTable, offers, testCenter, language.AmericanEnglish); err != nil {
		t.Fatal(err)
	}
	out := table.String()
	for _, want := range []string{"PRICE", "Hertz", "compact", "Air Conditioning", "1 offers"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	var js bytes.Buffer
	if err := renderOffers(&js, formatJSON, offers, testCenter, language.AmericanEnglish); err != nil {
		t.Fatal(err)
	}
	var rows []offerRow
	if err := json.Unmarshal(js.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Price != "123.45" || rows[0].Branch != "PHL1" {
		t.Fatalf("unexpected json rows %+v", rows)
	}

	var ym bytes.Buffer
	if err := renderOffers(&ym, formatYAML, offers, testCenter, language.AmericanEnglish); err != nil {
		t.Fatal(err)
	}
	rows = nil
	if err := yaml.Unmarshal(ym.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Company != "Hertz" || rows[0].Currency != "USD" {
		t.Fatalf("unexpected yaml rows %+v", rows)
	}
}

func TestRenderProviders(t *testing.T) {
	offers := testOffers(t)
	var buf bytes.Buffer
	if err := renderProviders(&buf, formatTable, []*rental.Provider{offers[0].Provider()}, testCenter); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "ZE") || !strings.Contains(buf.String(), "0.0 miles") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
