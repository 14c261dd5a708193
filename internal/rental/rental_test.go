package rental

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"rentalsearch/internal/acriss"
	"rentalsearch/internal/geo"
	"rentalsearch/platform/apperr"
)

func testProvider(t *testing.T, branch, name, code string) *Provider {
	t.Helper()
	p, err := NewProvider(branch, Company{Name: name, Code: code},
		geo.Coordinate{Latitude: 40.7128, Longitude: -74.0060},
		Address{Line1: "1 Main St", City: "New York", Region: "NY", Country: "US"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

func TestNewProviderValidation(t *testing.T) {
	okCompany := Company{Name: "Hertz", Code: "ZE"}
	okLocation := geo.Coordinate{Latitude: 1, Longitude: 2}
	okAddress := Address{Line1: "1 Main St"}

	tests := []struct {
		name     string
		branch   string
		company  Company
		location geo.Coordinate
		address  Address
	}{
		{"missing branch", "", okCompany, okLocation, okAddress},
		{"missing company code", "B1", Company{Name: "Hertz"}, okLocation, okAddress},
		{"missing company name", "B1", Company{Code: "ZE"}, okLocation, okAddress},
		{"latitude out of range", "B1", okCompany, geo.Coordinate{Latitude: 91}, okAddress},
		{"missing address line", "B1", okCompany, okLocation, Address{City: "Boston"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.branch, tt.company, tt.location, tt.address)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestProviderIdentity(t *testing.T) {
	a := testProvider(t, "B1", "Hertz", "ZE")
	sameBranch := testProvider(t, "B1", "Hertz", "ZE")
	otherBranch := testProvider(t, "B2", "HERTZ", "ze")
	otherCompany := testProvider(t, "B1", "Avis", "ZI")

	if !a.SameBranch(sameBranch) {
		t.Error("expected same branch")
	}
	if a.SameBranch(otherBranch) {
		t.Error("different branch ids must not be the same branch")
	}
	if !a.SameCompany(otherBranch) {
		t.Error("company match must ignore case and branch")
	}
	if a.SameCompany(otherCompany) {
		t.Error("different companies must not match")
	}
	if !a.SameBranch(otherCompany) {
		t.Error("branch identity ignores company")
	}
	if a.SameBranch(nil) || a.SameCompany(nil) {
		t.Error("nil provider never matches")
	}
}

func TestCompanySameAsRequiresNameAndCode(t *testing.T) {
	base := Company{Name: "Hertz", Code: "ZE"}
	if base.SameAs(Company{Name: "Hertz", Code: "ZI"}) {
		t.Error("code mismatch must not match")
	}
	if base.SameAs(Company{Name: "Avis", Code: "ZE"}) {
		t.Error("name mismatch must not match")
	}
	if !base.SameAs(Company{Name: "hertz", Code: "Ze"}) {
		t.Error("case must be ignored")
	}
}

func TestProviderAddresses(t *testing.T) {
	p, err := NewProvider("B1", Company{Name: "Hertz", Code: "ZE"},
		geo.Coordinate{Latitude: 1, Longitude: 1},
		Address{Line1: "120 Broadway", Line2: "Suite 4", City: "New York", Region: "NY", Country: "US"})
	if err != nil {
		t.Fatal(err)
	}

	if got, want := p.StreetAddress(), "120 Broadway Suite 4"; got != want {
		t.Errorf("StreetAddress = %q, want %q", got, want)
	}
	if got, want := p.FullAddress(), "120 Broadway Suite 4 New York, NY"; got != want {
		t.Errorf("FullAddress = %q, want %q", got, want)
	}

	single := testProvider(t, "B2", "Hertz", "ZE")
	if got, want := single.StreetAddress(), "1 Main St"; got != want {
		t.Errorf("StreetAddress without line 2 = %q, want %q", got, want)
	}
}

func TestProviderDistance(t *testing.T) {
	p := testProvider(t, "B1", "Hertz", "ZE")
	here := p.Location()

	if d := p.DistanceFrom(here); d != 0 {
		t.Fatalf("distance to itself = %v, want 0", d)
	}
	if got := p.DistanceStringFrom(here); got != "0.0 miles" {
		t.Fatalf("DistanceStringFrom = %q", got)
	}

	// One mile due north is 1/69.09 degrees of latitude, close enough to
	// round to "1.0 mile".
	north := geo.Coordinate{Latitude: here.Latitude + 1.0/69.09, Longitude: here.Longitude}
	if d := p.DistanceFrom(north); math.Abs(d-1) > 0.01 {
		t.Fatalf("DistanceFrom = %v, want about 1 mile", d)
	}
	if got := p.DistanceStringFrom(north); got != "1.0 mile" {
		t.Fatalf("DistanceStringFrom = %q, want %q", got, "1.0 mile")
	}
}

func TestNewOfferValidation(t *testing.T) {
	p := testProvider(t, "B1", "Hertz", "ZE")
	price := decimal.RequireFromString("100.25")

	tests := []struct {
		name     string
		provider *Provider
		details  OfferDetails
	}{
		{"nil provider", nil, OfferDetails{AcrissCode: "ECMR", Price: price, Currency: "USD"}},
		{"negative price", p, OfferDetails{AcrissCode: "ECMR", Price: price.Neg(), Currency: "USD"}},
		{"missing currency", p, OfferDetails{AcrissCode: "ECMR", Price: price}},
		{"long currency", p, OfferDetails{AcrissCode: "ECMR", Price: price, Currency: "DOLLAR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewOffer(tt.provider, tt.details); !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestOfferAccessors(t *testing.T) {
	p := testProvider(t, "B1", "Hertz", "ZE")
	o, err := NewOffer(p, OfferDetails{
		AcrissCode:      "ICAR",
		Transmission:    "Automatic",
		Fuel:            "Unspecified",
		AirConditioning: true,
		Price:           decimal.RequireFromString("100.25"),
		Currency:        "usd",
	})
	if err != nil {
		t.Fatal(err)
	}

	if o.Provider() != p {
		t.Error("provider must be shared, not copied")
	}
	if o.Currency() != "USD" {
		t.Errorf("Currency = %q, want USD", o.Currency())
	}
	if !o.Price().Equal(decimal.RequireFromString("100.25")) {
		t.Errorf("Price = %s", o.Price())
	}
	if c := o.Classification(); c.Category != acriss.Standard {
		t.Errorf("Category = %v, want Standard", c.Category)
	}
	if got := o.FormattedPrice(language.English); !strings.HasSuffix(got, "100.25") {
		t.Errorf("FormattedPrice = %q", got)
	}
}

func TestOfferFeatures(t *testing.T) {
	p := testProvider(t, "B1", "Hertz", "ZE")
	price := decimal.RequireFromString("10")

	tests := []struct {
		name    string
		details OfferDetails
		want    []string
	}{
		{
			name:    "everything known",
			details: OfferDetails{AcrissCode: "ICAR", Transmission: "Automatic", Fuel: "Petrol", AirConditioning: true},
			want:    []string{"2/4 Door", "Automatic", "Air Conditioning", "Petrol"},
		},
		{
			name:    "unspecified fuel omitted",
			details: OfferDetails{AcrissCode: "IFAR", Transmission: "Manual", Fuel: "Unspecified"},
			want:    []string{"SUV", "Manual"},
		},
		{
			name:    "unknown code contributes nothing",
			details: OfferDetails{AcrissCode: "??", AirConditioning: true},
			want:    []string{"Air Conditioning"},
		},
		{
			name:    "nothing known",
			details: OfferDetails{AcrissCode: "XXXXX"},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.details.Price = price
			tt.details.Currency = "USD"
			o, err := NewOffer(p, tt.details)
			if err != nil {
				t.Fatal(err)
			}
			if got := o.Features(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Features = %#v, want %#v", got, tt.want)
			}
		})
	}
}
