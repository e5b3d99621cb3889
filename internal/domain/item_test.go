package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wanderplan/internal/domain"
)

func sampleItem() domain.ItineraryItem {
	lat, cost := 25.03, 800.0
	return domain.ItineraryItem{
		ID:          "i1",
		DayIndex:    1,
		StartTime:   "10:00",
		EndTime:     "12:00",
		Title:       "National Palace Museum",
		Description: "Jadeite cabbage",
		Category:    domain.CategoryActivity,
		Location:    &domain.Location{Name: "Shilin", Lat: &lat},
		Cost:        &cost,
		BookingLink: "https://example.com/tickets",
	}
}

func TestItineraryItem_CloneIsDeep(t *testing.T) {
	it := sampleItem()

	c := it.Clone()
	*c.Cost = 0
	*c.Location.Lat = 0
	c.Location.Name = "changed"

	assert.Equal(t, 800.0, *it.Cost)
	assert.Equal(t, 25.03, *it.Location.Lat)
	assert.Equal(t, "Shilin", it.Location.Name)
}

func TestItemPatch_AbsentFieldsKept(t *testing.T) {
	var p domain.ItemPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Palace Museum"}`), &p))

	got := p.Apply(sampleItem())

	assert.Equal(t, "Palace Museum", got.Title)
	assert.Equal(t, "12:00", got.EndTime)
	assert.NotNil(t, got.Cost)
	assert.NotNil(t, got.Location)
	assert.Equal(t, "https://example.com/tickets", got.BookingLink)
}

func TestItemPatch_NullClears(t *testing.T) {
	var p domain.ItemPatch
	require.NoError(t, json.Unmarshal([]byte(`{"endTime":null,"cost":null,"location":null,"bookingLink":null}`), &p))

	got := p.Apply(sampleItem())

	assert.Empty(t, got.EndTime)
	assert.Nil(t, got.Cost)
	assert.Nil(t, got.Location)
	assert.Empty(t, got.BookingLink)
	assert.Equal(t, "Jadeite cabbage", got.Description)
}

func TestItemPatch_ApplyDoesNotAlias(t *testing.T) {
	cost := 10.0
	p := domain.ItemPatch{Cost: domain.Some(cost)}

	got := p.Apply(sampleItem())
	*got.Cost = 99

	assert.Equal(t, 10.0, *p.Cost.Value)
}

func TestOptional_Constructors(t *testing.T) {
	s := domain.Some("x")
	assert.True(t, s.Set)
	require.NotNil(t, s.Value)
	assert.Equal(t, "x", *s.Value)

	n := domain.Null[string]()
	assert.True(t, n.Set)
	assert.Nil(t, n.Value)
}
