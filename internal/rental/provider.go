// Package rental holds the immutable entities returned by a rental search:
// providers (branches of a rental company) and the offers they make.
package rental

import (
	"strings"

	"rentalsearch/internal/format"
	"rentalsearch/internal/geo"
	"rentalsearch/platform/apperr"
)

// Company identifies a rental company by display name and aggregator code.
type Company struct {
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}

// SameAs reports whether both name and code match, ignoring case.
func (c Company) SameAs(other Company) bool {
	return strings.EqualFold(c.Name, other.Name) && strings.EqualFold(c.Code, other.Code)
}

// Address is a branch's postal address. Line1 is always present.
type Address struct {
	Line1   string `json:"line1" yaml:"line1"`
	Line2   string `json:"line2,omitempty" yaml:"line2,omitempty"`
	City    string `json:"city" yaml:"city"`
	Region  string `json:"region" yaml:"region"`
	Country string `json:"country" yaml:"country"`
}

// Provider is one branch of a rental company.
type Provider struct {
	branchID string
	company  Company
	location geo.Coordinate
	address  Address
}

// NewProvider validates and builds a Provider.
func NewProvider(branchID string, company Company, location geo.Coordinate, address Address) (*Provider, error) {
	const op = "rental.NewProvider"

	switch {
	case strings.TrimSpace(branchID) == "":
		return nil, apperr.Validation("provider branch id is required").WithOp(op)
	case strings.TrimSpace(company.Name) == "" || strings.TrimSpace(company.Code) == "":
		return nil, apperr.Validation("provider company name and code are required").WithOp(op)
	case !location.Valid():
		return nil, apperr.Validation("provider location is out of range").WithOp(op)
	case strings.TrimSpace(address.Line1) == "":
		return nil, apperr.Validation("provider address line 1 is required").WithOp(op)
	}

	return &Provider{
		branchID: branchID,
		company:  company,
		location: location,
		address:  address,
	}, nil
}

func (p *Provider) BranchID() string         { return p.branchID }
func (p *Provider) Company() Company         { return p.company }
func (p *Provider) Location() geo.Coordinate { return p.location }
func (p *Provider) Address() Address         { return p.address }

// SameBranch reports whether both providers are the same physical branch.
func (p *Provider) SameBranch(other *Provider) bool {
	return other != nil && p.branchID == other.branchID
}

// SameCompany reports whether both providers belong to the same company,
// regardless of branch.
func (p *Provider) SameCompany(other *Provider) bool {
	return other != nil && p.company.SameAs(other.company)
}

// StreetAddress returns "Line1 Line2", or just Line1.
func (p *Provider) StreetAddress() string {
	if p.address.Line2 == "" {
		return p.address.Line1
	}
	return p.address.Line1 + " " + p.address.Line2
}

// FullAddress returns "<street> City, Region".
func (p *Provider) FullAddress() string {
	return p.StreetAddress() + " " + p.address.City + ", " + p.address.Region
}

// DistanceFrom returns the great-circle distance in miles from c.
func (p *Provider) DistanceFrom(c geo.Coordinate) float64 {
	return p.location.DistanceMiles(c)
}

// DistanceStringFrom renders DistanceFrom, e.g. "1.2 miles".
func (p *Provider) DistanceStringFrom(c geo.Coordinate) string {
	return format.Distance(p.DistanceFrom(c))
}
