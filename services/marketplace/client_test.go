package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"flightagent/models"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*DuffelClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewDuffelClient(srv.URL, "test_token", 100, zap.NewNop()), srv
}

func decodeRequestData(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("reading request body: %v", err)
	}
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("request body is not a data envelope: %v (%s)", err, raw)
	}
	return envelope.Data
}

func TestSearchOffers(t *testing.T) {
	var gotReq *http.Request
	var gotData map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		gotData = decodeRequestData(t, r)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data": {"id": "orq_1", "offers": [
			{"id": "off_1", "total_amount": "900.00", "total_currency": "USD"},
			{"id": "off_2", "total_amount": "120.00", "total_currency": "USD"}
		]}}`)
	})

	offers, err := client.SearchOffers(context.Background(), SearchParams{
		Slices:     []models.SearchSlice{{Origin: "JFK", Destination: "LAX", DepartureDate: "2024-06-01"}},
		Passengers: []PassengerSpec{{Type: "adult"}},
	})
	if err != nil {
		t.Fatalf("SearchOffers returned error: %v", err)
	}

	if gotReq.Method != http.MethodPost || gotReq.URL.Path != "/air/offer_requests" {
		t.Errorf("request = %s %s", gotReq.Method, gotReq.URL.Path)
	}
	if gotReq.URL.Query().Get("return_offers") != "true" {
		t.Errorf("missing return_offers=true query")
	}
	if got := gotReq.Header.Get("Authorization"); got != "Bearer test_token" {
		t.Errorf("Authorization = %q", got)
	}
	if got := gotReq.Header.Get("Duffel-Version"); got == "" {
		t.Errorf("missing Duffel-Version header")
	}
	if got := gotReq.Header.Get("Idempotency-Key"); got == "" {
		t.Errorf("missing Idempotency-Key header on a mutating call")
	}

	slices, ok := gotData["slices"].([]any)
	if !ok || len(slices) != 1 {
		t.Fatalf("request slices = %+v", gotData["slices"])
	}
	slice := slices[0].(map[string]any)
	if slice["origin"] != "JFK" || slice["destination"] != "LAX" || slice["departure_date"] != "2024-06-01" {
		t.Errorf("request slice = %+v", slice)
	}
	passengers, ok := gotData["passengers"].([]any)
	if !ok || len(passengers) != 1 || passengers[0].(map[string]any)["type"] != "adult" {
		t.Errorf("request passengers = %+v", gotData["passengers"])
	}

	// Offers come back in server order; the client never re-sorts.
	if len(offers) != 2 || offers[0].ID != "off_1" || offers[1].ID != "off_2" {
		t.Errorf("offers = %+v", offers)
	}
}

func TestGetOffer(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/air/offers/off_1" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"data": {"id": "off_1", "owner": {"name": "Duffel Airways"},
			"slices": [{"id": "sli_1", "segments": [{"departing_at": "2024-06-01T09:00:00"}]}],
			"passengers": [{"id": "pas_1", "type": "adult"}],
			"total_amount": "900.00", "total_currency": "USD"}}`)
	})

	offer, err := client.GetOffer(context.Background(), "off_1")
	if err != nil {
		t.Fatalf("GetOffer returned error: %v", err)
	}
	if offer.Owner.Name != "Duffel Airways" || offer.Passengers[0].ID != "pas_1" {
		t.Errorf("offer = %+v", offer)
	}
	if offer.DepartingAt() != "2024-06-01T09:00:00" {
		t.Errorf("DepartingAt = %q", offer.DepartingAt())
	}
}

func TestCreateOrder(t *testing.T) {
	var gotData map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/air/orders" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		gotData = decodeRequestData(t, r)
		io.WriteString(w, `{"data": {"id": "ord_1", "booking_reference": "ABC123",
			"slices": [{"id": "sli_1"}]}}`)
	})

	traveler := models.Passenger{ID: "pas_1", GivenName: "Tony", FamilyName: "Stark", Type: "adult"}
	order, err := client.CreateOrder(context.Background(), CreateOrderParams{
		SelectedOffers: []string{"off_1"},
		Passengers:     []models.Passenger{traveler},
		Payments:       []models.Payment{models.BalancePayment("USD", "900.00")},
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if order.ID != "ord_1" || order.BookingReference != "ABC123" {
		t.Errorf("order = %+v", order)
	}

	if gotData["type"] != "instant" {
		t.Errorf("order type = %v, want instant", gotData["type"])
	}
	selected := gotData["selected_offers"].([]any)
	if len(selected) != 1 || selected[0] != "off_1" {
		t.Errorf("selected_offers = %+v", selected)
	}
	passenger := gotData["passengers"].([]any)[0].(map[string]any)
	if passenger["id"] != "pas_1" {
		t.Errorf("passenger id not merged into order payload: %+v", passenger)
	}
	payment := gotData["payments"].([]any)[0].(map[string]any)
	if payment["type"] != "balance" || payment["currency"] != "USD" || payment["amount"] != "900.00" {
		t.Errorf("payment = %+v", payment)
	}
}

func TestOrderChangeFlow(t *testing.T) {
	var paths []string
	var confirmData map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch {
		case r.URL.Path == "/air/order_change_requests":
			data := decodeRequestData(t, r)
			if data["order_id"] != "ord_1" {
				t.Errorf("change request order_id = %v", data["order_id"])
			}
			slices := data["slices"].(map[string]any)
			add := slices["add"].([]any)[0].(map[string]any)
			if add["cabin_class"] != "economy" {
				t.Errorf("add slice = %+v", add)
			}
			remove := slices["remove"].([]any)[0].(map[string]any)
			if remove["slice_id"] != "sli_1" {
				t.Errorf("remove slice = %+v", remove)
			}
			io.WriteString(w, `{"data": {"id": "ocr_1", "order_id": "ord_1"}}`)
		case r.URL.Path == "/air/order_change_offers":
			if got := r.URL.Query().Get("order_change_request_id"); got != "ocr_1" {
				t.Errorf("order_change_request_id = %q", got)
			}
			io.WriteString(w, `{"data": [
				{"id": "oco_1", "change_total_amount": "250.00", "change_total_currency": "USD"},
				{"id": "oco_2", "change_total_amount": "40.00", "change_total_currency": "USD"}
			]}`)
		case r.URL.Path == "/air/order_changes":
			data := decodeRequestData(t, r)
			if data["selected_order_change_offer"] != "oco_1" {
				t.Errorf("selected_order_change_offer = %v", data["selected_order_change_offer"])
			}
			io.WriteString(w, `{"data": {"id": "oce_1", "order_id": "ord_1",
				"change_total_amount": "250.00", "change_total_currency": "USD"}}`)
		case r.URL.Path == "/air/order_changes/oce_1/actions/confirm":
			confirmData = decodeRequestData(t, r)
			io.WriteString(w, `{"data": {"id": "oce_1", "order_id": "ord_1",
				"change_total_amount": "250.00", "change_total_currency": "USD",
				"confirmed_at": "2024-06-02T10:00:00"}}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	ctx := context.Background()
	changeReq, err := client.CreateOrderChangeRequest(ctx, "ord_1", models.ChangeSlices{
		Add:    []models.SliceToAdd{{Origin: "JFK", Destination: "LAX", DepartureDate: "2024-07-04", CabinClass: "economy"}},
		Remove: []models.SliceToRemove{{SliceID: "sli_1"}},
	})
	if err != nil {
		t.Fatalf("CreateOrderChangeRequest: %v", err)
	}
	changeOffers, err := client.ListOrderChangeOffers(ctx, changeReq.ID)
	if err != nil {
		t.Fatalf("ListOrderChangeOffers: %v", err)
	}
	if len(changeOffers) != 2 || changeOffers[0].ID != "oco_1" {
		t.Fatalf("change offers = %+v", changeOffers)
	}
	change, err := client.CreateOrderChange(ctx, changeOffers[0].ID)
	if err != nil {
		t.Fatalf("CreateOrderChange: %v", err)
	}
	confirmed, err := client.ConfirmOrderChange(ctx, change.ID, models.BalancePayment("USD", "250.00"))
	if err != nil {
		t.Fatalf("ConfirmOrderChange: %v", err)
	}
	if confirmed.ConfirmedAt == "" {
		t.Errorf("confirmed = %+v", confirmed)
	}

	payment := confirmData["payment"].(map[string]any)
	if payment["type"] != "balance" || payment["amount"] != "250.00" {
		t.Errorf("confirm payment = %+v", payment)
	}
	if len(paths) != 4 {
		t.Errorf("paths = %v", paths)
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"errors": [{"code": "order_not_changeable",
			"title": "Order not changeable", "message": "this order cannot be changed"}]}`)
	})

	_, err := client.GetOffer(context.Background(), "off_1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Code != "order_not_changeable" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if apiErr.Message != "this order cannot be changed" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestAPIErrorWithoutBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetOffer(context.Background(), "off_1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Message == "" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}
