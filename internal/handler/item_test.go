package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/handler"
	"github.com/pkordes/wanderplan/internal/itinerary"
	"github.com/pkordes/wanderplan/internal/planner"
	"github.com/pkordes/wanderplan/internal/service"
)

func TestListDayItems_BindsDay(t *testing.T) {
	var gotDay int
	svc := &mockSession{itemsForDay: func(_ context.Context, day int) ([]domain.ItineraryItem, error) {
		gotDay = day
		return []domain.ItineraryItem{itemFixture()}, nil
	}}

	rec := serve(t, newHTTPHandler(svc), http.MethodGet, "/trip/days/2/items", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, gotDay)
	var body handler.ItemList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Data, 1)
}

func TestListDayItems_NonNumericDay(t *testing.T) {
	rec := serve(t, newHTTPHandler(&mockSession{}), http.MethodGet, "/trip/days/first/items", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateItem_Created(t *testing.T) {
	var got domain.ItineraryItem
	svc := &mockSession{addItem: func(_ context.Context, it domain.ItineraryItem) (domain.ItineraryItem, error) {
		got = it
		it.ID = "new-id"
		return it, nil
	}}
	body := `{"dayIndex":1,"startTime":"08:00","title":"HSR to Tainan","category":"TRANSPORT",
		"transportDetails":{"mode":"TRAIN_HSR","provider":"THSR","identifier":"0603","platform":"2A"}}`

	rec := serve(t, newHTTPHandler(svc), http.MethodPost, "/trip/items", strings.NewReader(body))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, got.Transport)
	p, ok := got.Transport.Platform()
	require.True(t, ok)
	assert.Equal(t, "2A", p.Platform)

	var created map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "new-id", created["id"])
	td := created["transportDetails"].(map[string]any)
	assert.Equal(t, "TRAIN_HSR", td["mode"])
	assert.Equal(t, "2A", td["platform"])
	assert.NotContains(t, td, "gate")
}

func TestCreateItem_ValidationError(t *testing.T) {
	svc := &mockSession{addItem: func(context.Context, domain.ItineraryItem) (domain.ItineraryItem, error) {
		return domain.ItineraryItem{}, fmt.Errorf("%w: dayIndex 4 is outside the trip range 1..3", domain.ErrValidation)
	}}

	rec := serve(t, newHTTPHandler(svc), http.MethodPost, "/trip/items", jsonBody(t, itemFixture()))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "dayIndex 4 is outside the trip range 1..3", decodeError(t, rec).Message)
}

func TestGetItem_NotFound(t *testing.T) {
	svc := &mockSession{item: func(_ context.Context, id string) (domain.ItineraryItem, error) {
		return domain.ItineraryItem{}, fmt.Errorf("itinerary.Store.Item: item %s %w", id, domain.ErrNotFound)
	}}

	rec := serve(t, newHTTPHandler(svc), http.MethodGet, "/trip/items/missing", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "item not found", decodeError(t, rec).Message)
}

func TestUpdateItem_NullClearsField(t *testing.T) {
	var got domain.ItemPatch
	svc := &mockSession{updateItem: func(_ context.Context, id string, p domain.ItemPatch) (domain.ItineraryItem, error) {
		got = p
		return p.Apply(itemFixture()), nil
	}}

	rec := serve(t, newHTTPHandler(svc), http.MethodPatch, "/trip/items/item-1",
		strings.NewReader(`{"cost":null,"title":"Night market"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, got.Cost.Set)
	assert.Nil(t, got.Cost.Value)
	assert.False(t, got.Location.Set)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Night market", *got.Title)
}

func TestDeleteItem_NoContent(t *testing.T) {
	var gotID string
	svc := &mockSession{deleteItem: func(_ context.Context, id string) error {
		gotID = id
		return nil
	}}

	rec := serve(t, newHTTPHandler(svc), http.MethodDelete, "/trip/items/item-1", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "item-1", gotID)
}

func TestMoveItem_PassesDirection(t *testing.T) {
	var gotDir itinerary.Direction
	svc := &mockSession{moveItem: func(_ context.Context, _ string, dir itinerary.Direction) ([]domain.ItineraryItem, error) {
		gotDir = dir
		return []domain.ItineraryItem{itemFixture()}, nil
	}}

	rec := serve(t, newHTTPHandler(svc), http.MethodPost, "/trip/items/item-1/move",
		strings.NewReader(`{"direction":"down"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, itinerary.Down, gotDir)
}

func TestGetRouteEstimate_Flattened(t *testing.T) {
	svc := &mockSession{routeEstimate: func(_ context.Context, id string) (service.RouteEstimate, error) {
		return service.RouteEstimate{
			ItemID: id, Origin: "Yongkang Street", Destination: "Taipei 101", Mode: domain.ModeTaxi,
			TravelEstimate: planner.TravelEstimate{Duration: "20 mins", Distance: "5 km"},
		}, nil
	}}

	rec := serve(t, newHTTPHandler(svc), http.MethodGet, "/trip/items/item-1/route-estimate", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "20 mins", body["duration"])
	assert.Equal(t, "5 km", body["distance"])
	assert.Equal(t, "TAXI", body["mode"])
}
