package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"rentalsearch/internal/rental"
	"rentalsearch/internal/search"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func isKnownFormat(f string) bool {
	return f == formatTable || f == formatJSON || f == formatYAML
}

type offerRow struct {
	Company  string   `json:"company" yaml:"company"`
	Branch   string   `json:"branch" yaml:"branch"`
	Acriss   string   `json:"acriss" yaml:"acriss"`
	Category string   `json:"category" yaml:"category"`
	Features []string `json:"features" yaml:"features"`
	Price    string   `json:"price" yaml:"price"`
	Currency string   `json:"currency" yaml:"currency"`
	Display  string   `json:"display" yaml:"display"`
	Distance string   `json:"distance,omitempty" yaml:"distance,omitempty"`
	Address  string   `json:"address" yaml:"address"`
}

type providerRow struct {
	Company  string `json:"company" yaml:"company"`
	Code     string `json:"code" yaml:"code"`
	Distance string `json:"distance,omitempty" yaml:"distance,omitempty"`
	Address  string `json:"address" yaml:"address"`
}

func toOfferRows(offers []*rental.Offer, center *search.CenterPoint, tag language.Tag) []offerRow {
	rows := make([]offerRow, 0, len(offers))
	for _, o := range offers {
		p := o.Provider()
		row := offerRow{
			Company:  p.Company().Name,
			Branch:   p.BranchID(),
			Acriss:   o.AcrissCode(),
			Category: o.Classification().Category.String(),
			Features: o.Features(),
			Price:    o.Price().StringFixed(2),
			Currency: o.Currency(),
			Display:  o.FormattedPrice(tag),
			Address:  p.FullAddress(),
		}
		if center != nil {
			row.Distance = p.DistanceStringFrom(center.Coordinate)
		}
		rows = append(rows, row)
	}
	return rows
}

func toProviderRows(providers []*rental.Provider, center *search.CenterPoint) []providerRow {
	rows := make([]providerRow, 0, len(providers))
	for _, p := range providers {
		row := providerRow{
			Company: p.Company().Name,
			Code:    p.Company().Code,
			Address: p.FullAddress(),
		}
		if center != nil {
			row.Distance = p.DistanceStringFrom(center.Coordinate)
		}
		rows = append(rows, row)
	}
	return rows
}

func renderOffers(w io.Writer, format string, offers []*rental.Offer, center *search.CenterPoint, tag language.Tag) error {
	rows := toOfferRows(offers, center, tag)
	if format != formatTable {
		return encode(w, format, rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRICE\tCOMPANY\tCATEGORY\tFEATURES\tDISTANCE\tADDRESS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Display, r.Company, r.Category, strings.Join(r.Features, ", "), r.Distance, r.Address)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d offers\n", len(rows))
	return err
}

func renderProviders(w io.Writer, format string, providers []*rental.Provider, center *search.CenterPoint) error {
	rows := toProviderRows(providers, center)
	if format != formatTable {
		return encode(w, format, rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPANY\tCODE\tDISTANCE\tADDRESS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Company, r.Code, r.Distance, r.Address)
	}
	return tw.Flush()
}

func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
