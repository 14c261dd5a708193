// Command carsearch runs a single rental car search from the command line
// and prints the ordered offers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/text/language"

	"rentalsearch/internal/amadeus"
	"rentalsearch/internal/geo"
	"rentalsearch/internal/geocode"
	"rentalsearch/internal/rental"
	"rentalsearch/internal/search"
	"rentalsearch/platform/apperr"
	"rentalsearch/platform/config"
	"rentalsearch/platform/logger"
)

type options struct {
	lat, lon    float64
	address     string
	radius      int
	pickup      string
	dropoff     string
	order       string
	company     string
	code        string
	format      string
	providers   bool
	hasLocation bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config:", err)
		return 1
	}
	log := logger.NewWithWriter(cfg.Env, stderr)

	if opts.radius == 0 {
		opts.radius = cfg.GetDefaultRadiusMiles()
	}

	center, err := resolveCenter(ctx, cfg, log, opts)
	if err != nil {
		return fail(stderr, err)
	}

	session, err := buildSession(amadeus.New(cfg, log), log, center, opts)
	if err != nil {
		return fail(stderr, err)
	}

	offers, err := session.FetchResults(ctx)
	if err != nil {
		return fail(stderr, err)
	}

	if opts.providers {
		err = renderProviders(stdout, opts.format, session.AvailableProviderFilters(), center)
	} else {
		err = renderOffers(stdout, opts.format, offers, center, language.AmericanEnglish)
	}
	if err != nil {
		return fail(stderr, err)
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("carsearch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&opts.lat, "lat", 0, "latitude of the search center")
	fs.Float64Var(&opts.lon, "lon", 0, "longitude of the search center")
	fs.StringVar(&opts.address, "address", "", "address to geocode as the search center")
	fs.IntVar(&opts.radius, "radius", 0, "search radius in miles (default from SEARCH_DEFAULT_RADIUS)")
	fs.StringVar(&opts.pickup, "pickup", "", "pickup date, YYYY-MM-DD or RFC 3339")
	fs.StringVar(&opts.dropoff, "dropoff", "", "dropoff date, YYYY-MM-DD or RFC 3339")
	fs.StringVar(&opts.order, "order", search.OrderPriceAscending.String(), "result order: "+strings.Join(search.OrderNames(), ", "))
	fs.StringVar(&opts.company, "company", "", "only show offers from this company name")
	fs.StringVar(&opts.code, "code", "", "company code used with -company")
	fs.StringVar(&opts.format, "format", formatTable, "output format: table, json or yaml")
	fs.BoolVar(&opts.providers, "providers", false, "list the companies in the results instead of offers")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "lat" || f.Name == "lon" {
			opts.hasLocation = true
		}
	})

	switch {
	case opts.address == "" && !opts.hasLocation:
		return opts, errors.New("either -address or -lat and -lon is required")
	case opts.radius < 0:
		return opts, errors.New("-radius must be positive")
	case (opts.company == "") != (opts.code == ""):
		return opts, errors.New("-company and -code must be used together")
	}
	if !isKnownFormat(opts.format) {
		return opts, fmt.Errorf("unknown -format %q", opts.format)
	}
	return opts, nil
}

func resolveCenter(ctx context.Context, cfg *config.Config, log *logger.Logger, opts options) (*search.CenterPoint, error) {
	if opts.address == "" {
		c := geo.Coordinate{Latitude: opts.lat, Longitude: opts.lon}
		if !c.Valid() {
			return nil, apperr.Validation("latitude or longitude out of range").WithOp("carsearch.resolveCenter")
		}
		return &search.CenterPoint{Coordinate: c}, nil
	}

	if !cfg.IsGeocodeEnabled() {
		return nil, apperr.Validation("-address needs GEOCODE_URL to be configured").WithOp("carsearch.resolveCenter")
	}
	geocoder := geocode.NewService(cfg, log)
	places, err := geocoder.Search(ctx, opts.address)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, apperr.NotFound("no place matches the address").WithOp("carsearch.resolveCenter")
	}
	return &search.CenterPoint{Coordinate: places[0].Coordinate, Label: places[0].Label}, nil
}

func buildSession(gw search.Gateway, log *logger.Logger, center *search.CenterPoint, opts options) (*search.Session, error) {
	order, err := search.ParseOrderType(opts.order)
	if err != nil {
		return nil, apperr.Validation(err.Error()).WithOp("carsearch.buildSession")
	}

	session := search.NewSession(gw, log, search.WithDefaultOrder(order))
	session.SetCenter(center)
	if opts.radius > 0 {
		if err := session.SetRadius(opts.radius); err != nil {
			return nil, err
		}
	}

	// Missing dates are left unset so the session reports them with its own
	// error codes.
	if opts.pickup != "" {
		t, err := search.ParseDateTime(opts.pickup, search.DefaultPickupHour, time.Local)
		if err != nil {
			return nil, apperr.Validation(err.Error()).WithOp("carsearch.buildSession")
		}
		session.SetPickupTime(&t)
	}
	if opts.dropoff != "" {
		t, err := search.ParseDateTime(opts.dropoff, search.DefaultDropoffHour, time.Local)
		if err != nil {
			return nil, apperr.Validation(err.Error()).WithOp("carsearch.buildSession")
		}
		session.SetDropoffTime(&t)
	}

	if opts.company != "" {
		session.SetProviderFilter(&rental.Company{Name: opts.company, Code: opts.code})
	}
	return session, nil
}

// fail prints err with its code when it carries one.
func fail(stderr io.Writer, err error) int {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		if appErr.Code != 0 {
			fmt.Fprintf(stderr, "error %d: %s\n", appErr.Code, appErr.Message)
		} else {
			fmt.Fprintf(stderr, "error: %s\n", appErr.Message)
		}
		if appErr.MoreInfo != "" {
			fmt.Fprintf(stderr, "  %s\n", appErr.MoreInfo)
		}
		return 1
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}
