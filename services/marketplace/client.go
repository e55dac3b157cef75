package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flightagent/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.duffel.com"
	apiVersion     = "v1"
)

// DuffelClient talks to the Duffel flight marketplace. All operations
// are remote calls with no local caching.
type DuffelClient struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewDuffelClient(baseURL, apiKey string, requestsPerSec float64, logger *zap.Logger) *DuffelClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if requestsPerSec <= 0 {
		requestsPerSec = 5
	}
	burst := int(requestsPerSec)
	if burst < 1 {
		burst = 1
	}
	return &DuffelClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), burst),
		logger:  logger,
	}
}

// requestEnvelope wraps a request payload the way the marketplace
// expects: {"data": ...}.
type requestEnvelope struct {
	Data any `json:"data"`
}

func (c *DuffelClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("marketplace rate limiter: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(requestEnvelope{Data: body})
		if err != nil {
			return fmt.Errorf("encoding marketplace request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("building marketplace request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Duffel-Version", apiVersion)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", uuid.New().String())
	}

	c.logger.Debug("marketplace request", zap.String("method", method), zap.String("path", path))
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("marketplace request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding marketplace response: %w", err)
		}
	}
	return nil
}

// SearchOffers creates an offer request and returns the offers the
// marketplace generated for it, in the order the marketplace returned
// them (price ascending).
func (c *DuffelClient) SearchOffers(ctx context.Context, params SearchParams) ([]models.Offer, error) {
	body := struct {
		Slices     []models.SearchSlice `json:"slices"`
		Passengers []PassengerSpec      `json:"passengers"`
	}{params.Slices, params.Passengers}

	var out struct {
		Data struct {
			ID     string         `json:"id"`
			Offers []models.Offer `json:"offers"`
		} `json:"data"`
	}
	query := url.Values{"return_offers": {"true"}}
	if err := c.do(ctx, http.MethodPost, "/air/offer_requests", query, body, &out); err != nil {
		return nil, err
	}
	c.logger.Debug("offer search completed",
		zap.String("offer_request_id", out.Data.ID),
		zap.Int("offers", len(out.Data.Offers)))
	return out.Data.Offers, nil
}

// GetOffer re-fetches an offer by id. Some marketplace operations
// require a fresh fetch before the offer can be used.
func (c *DuffelClient) GetOffer(ctx context.Context, offerID string) (*models.Offer, error) {
	var out struct {
		Data models.Offer `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/air/offers/"+offerID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateOrder commits the selected offer with its passengers and
// payments. This is the irreversible step of the booking workflow.
func (c *DuffelClient) CreateOrder(ctx context.Context, params CreateOrderParams) (*models.Order, error) {
	body := struct {
		Type           string             `json:"type"`
		SelectedOffers []string           `json:"selected_offers"`
		Passengers     []models.Passenger `json:"passengers"`
		Payments       []models.Payment   `json:"payments"`
	}{"instant", params.SelectedOffers, params.Passengers, params.Payments}

	var out struct {
		Data models.Order `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/air/orders", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateOrderChangeRequest submits the add/remove slice set against an
// existing order.
func (c *DuffelClient) CreateOrderChangeRequest(ctx context.Context, orderID string, slices models.ChangeSlices) (*models.OrderChangeRequest, error) {
	body := struct {
		OrderID string              `json:"order_id"`
		Slices  models.ChangeSlices `json:"slices"`
	}{orderID, slices}

	var out struct {
		Data models.OrderChangeRequest `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/air/order_change_requests", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ListOrderChangeOffers returns the priced alternatives satisfying a
// change request.
func (c *DuffelClient) ListOrderChangeOffers(ctx context.Context, changeRequestID string) ([]models.OrderChangeOffer, error) {
	var out struct {
		Data []models.OrderChangeOffer `json:"data"`
	}
	query := url.Values{"order_change_request_id": {changeRequestID}}
	if err := c.do(ctx, http.MethodGet, "/air/order_change_offers", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateOrderChange promotes a change offer into a pending order
// change.
func (c *DuffelClient) CreateOrderChange(ctx context.Context, changeOfferID string) (*models.OrderChange, error) {
	body := struct {
		SelectedOrderChangeOffer string `json:"selected_order_change_offer"`
	}{changeOfferID}

	var out struct {
		Data models.OrderChange `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/air/order_changes", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ConfirmOrderChange finalizes a pending order change with a payment.
func (c *DuffelClient) ConfirmOrderChange(ctx context.Context, orderChangeID string, payment models.Payment) (*models.OrderChange, error) {
	body := struct {
		Payment models.Payment `json:"payment"`
	}{payment}

	var out struct {
		Data models.OrderChange `json:"data"`
	}
	path := "/air/order_changes/" + orderChangeID + "/actions/confirm"
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
