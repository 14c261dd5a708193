package amadeus

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"rentalsearch/internal/geo"
	"rentalsearch/internal/rental"
	"rentalsearch/platform/logger"
)

// apiSearchResponse keeps each branch undecoded so one malformed record
// cannot fail the batch.
type apiSearchResponse struct {
	Results []json.RawMessage `json:"results"`
}

type apiBranch struct {
	BranchID string `json:"branch_id"`
	Provider *struct {
		CompanyCode string `json:"company_code"`
		CompanyName string `json:"company_name"`
	} `json:"provider"`
	Location *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"location"`
	Address *struct {
		Line1   string `json:"line1"`
		Line2   string `json:"line2"`
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"address"`
	Cars []json.RawMessage `json:"cars"`
}

type apiCar struct {
	VehicleInfo *struct {
		AcrissCode      string `json:"acriss_code"`
		Fuel            string `json:"fuel"`
		AirConditioning bool   `json:"air_conditioning"`
		Transmission    string `json:"transmission"`
	} `json:"vehicle_info"`
	EstimatedTotal *struct {
		Amount   *decimal.Decimal `json:"amount"`
		Currency string           `json:"currency"`
	} `json:"estimated_total"`
}

// apiError is the error payload the API sends with non-2xx responses.
type apiError struct {
	Status   int    `json:"status"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
}

func decodeAPIError(body []byte, status int) apiError {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil || e.Message == "" {
		e.Message = "Unknown error"
	}
	if e.MoreInfo == "" {
		e.MoreInfo = fmt.Sprintf("status %d", status)
	}
	return e
}

// toOffers parses every branch and car it can. dropped counts cars that
// were skipped, including every car of a skipped branch.
func (r *apiSearchResponse) toOffers(log *logger.Logger) (offers []*rental.Offer, dropped int) {
	offers = make([]*rental.Offer, 0, len(r.Results))

	for i, raw := range r.Results {
		var branch apiBranch
		if err := json.Unmarshal(raw, &branch); err != nil {
			log.Debug("amadeus branch dropped", "index", i, "error", err)
			continue
		}

		provider, err := branch.toProvider()
		if err != nil {
			log.Debug("amadeus branch dropped", "index", i, "branchId", branch.BranchID, "error", err)
			dropped += len(branch.Cars)
			continue
		}

		for j, rawCar := range branch.Cars {
			offer, err := carToOffer(provider, rawCar)
			if err != nil {
				log.Debug("amadeus car dropped", "branchId", branch.BranchID, "index", j, "error", err)
				dropped++
				continue
			}
			offers = append(offers, offer)
		}
	}

	return offers, dropped
}

func (b *apiBranch) toProvider() (*rental.Provider, error) {
	switch {
	case b.Provider == nil:
		return nil, fmt.Errorf("missing provider")
	case b.Location == nil || b.Location.Latitude == nil || b.Location.Longitude == nil:
		return nil, fmt.Errorf("missing location")
	case b.Address == nil:
		return nil, fmt.Errorf("missing address")
	}

	return rental.NewProvider(
		b.BranchID,
		rental.Company{
			Name: strings.TrimSpace(b.Provider.CompanyName),
			Code: strings.TrimSpace(b.Provider.CompanyCode),
		},
		geo.Coordinate{Latitude: *b.Location.Latitude, Longitude: *b.Location.Longitude},
		rental.Address{
			Line1:   strings.TrimSpace(b.Address.Line1),
			Line2:   strings.TrimSpace(b.Address.Line2),
			City:    strings.TrimSpace(b.Address.City),
			Region:  strings.TrimSpace(b.Address.Region),
			Country: strings.TrimSpace(b.Address.Country),
		},
	)
}

func carToOffer(provider *rental.Provider, raw json.RawMessage) (*rental.Offer, error) {
	var car apiCar
	if err := json.Unmarshal(raw, &car); err != nil {
		return nil, err
	}
	switch {
	case car.VehicleInfo == nil:
		return nil, fmt.Errorf("missing vehicle_info")
	case car.EstimatedTotal == nil || car.EstimatedTotal.Amount == nil:
		return nil, fmt.Errorf("missing estimated_total amount")
	}

	return rental.NewOffer(provider, rental.OfferDetails{
		AcrissCode:      car.VehicleInfo.AcrissCode,
		Transmission:    car.VehicleInfo.Transmission,
		Fuel:            car.VehicleInfo.Fuel,
		AirConditioning: car.VehicleInfo.AirConditioning,
		Price:           *car.EstimatedTotal.Amount,
		Currency:        car.EstimatedTotal.Currency,
	})
}
