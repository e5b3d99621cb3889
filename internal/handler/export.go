// Package handler: export.go implements GET /trip/export.
// Returns the itinerary as a flat table, one row per item.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wanderplan/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"day", "date", "start_time", "end_time", "title", "category", "location",
	"transport_mode", "provider", "identifier", "cost", "booking_link",
}

// ExportRow is the JSON form of one export row. Empty fields are omitted.
type ExportRow struct {
	DayIndex      int                  `json:"dayIndex"`
	Date          openapi_types.Date   `json:"date"`
	StartTime     string               `json:"startTime"`
	EndTime       *string              `json:"endTime,omitempty"`
	Title         string               `json:"title"`
	Category      domain.Category      `json:"category"`
	Location      *string              `json:"location,omitempty"`
	TransportMode domain.TransportMode `json:"transportMode,omitempty"`
	Provider      *string              `json:"provider,omitempty"`
	Identifier    *string              `json:"identifier,omitempty"`
	Cost          *float64             `json:"cost,omitempty"`
	BookingLink   *string              `json:"bookingLink,omitempty"`
}

// GetExport handles GET /trip/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if !queryParam(w, r, "format", &format) {
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("format must be csv or json"))
		return
	}

	rows, err := s.reports.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}

	if format != nil && *format == "csv" {
		buf := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to their JSON form.
func buildJSONRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToJSONRow(r))
	}
	return out
}

// buildCSV encodes domain rows as CSV with a header row.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(domainRowToCSVRecord(r))
	}
	w.Flush()
	return &buf
}

// domainRowToJSONRow maps a domain.ExportRow to ExportRow.
// Fields that are empty strings become nil pointers (omitempty in JSON).
func domainRowToJSONRow(r domain.ExportRow) ExportRow {
	row := ExportRow{
		DayIndex:      r.DayIndex,
		Date:          mustParseDate(r.Date),
		StartTime:     r.StartTime,
		Title:         r.Title,
		Category:      r.Category,
		TransportMode: r.TransportMode,
		Cost:          r.Cost,
		EndTime:       nilIfEmpty(r.EndTime),
		Location:      nilIfEmpty(r.Location),
		Provider:      nilIfEmpty(r.Provider),
		Identifier:    nilIfEmpty(r.Identifier),
		BookingLink:   nilIfEmpty(r.BookingLink),
	}
	if row.Cost != nil {
		c := money(*row.Cost)
		row.Cost = &c
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// A missing cost is encoded as an empty string.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	cost := ""
	if r.Cost != nil {
		cost = strconv.FormatFloat(money(*r.Cost), 'f', -1, 64)
	}
	return []string{
		strconv.Itoa(r.DayIndex),
		r.Date,
		r.StartTime,
		r.EndTime,
		r.Title,
		string(r.Category),
		r.Location,
		string(r.TransportMode),
		r.Provider,
		r.Identifier,
		cost,
		r.BookingLink,
	}
}

// mustParseDate parses a "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers are expected to pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
