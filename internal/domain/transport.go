package domain

import (
	"encoding/json"
	"strings"
)

// TransportMode is the discriminant of TransportDetails.
type TransportMode string

const (
	ModeFlight   TransportMode = "FLIGHT"
	ModeTrainHSR TransportMode = "TRAIN_HSR" // high speed rail
	ModeTrainTRA TransportMode = "TRAIN_TRA" // conventional rail
	ModeBus      TransportMode = "BUS"
	ModeMetro    TransportMode = "METRO"
	ModeTaxi     TransportMode = "TAXI"
	ModeWalk     TransportMode = "WALK"
	ModeOther    TransportMode = "OTHER"
)

// Valid reports whether m is one of the known transport modes.
func (m TransportMode) Valid() bool {
	switch m {
	case ModeFlight, ModeTrainHSR, ModeTrainTRA, ModeBus, ModeMetro, ModeTaxi, ModeWalk, ModeOther:
		return true
	}
	return false
}

// MetroCity identifies the metro network a METRO leg runs on.
type MetroCity string

const (
	MetroTaipei    MetroCity = "TAIPEI"
	MetroTaichung  MetroCity = "TAICHUNG"
	MetroKaohsiung MetroCity = "KAOHSIUNG"
	MetroTaoyuan   MetroCity = "TAOYUAN"
	MetroNone      MetroCity = "NONE"
)

// Valid reports whether c is one of the known metro cities.
func (c MetroCity) Valid() bool {
	switch c {
	case MetroTaipei, MetroTaichung, MetroKaohsiung, MetroTaoyuan, MetroNone:
		return true
	}
	return false
}

// TransportVariant is the mode-specific payload of a TransportDetails value.
// It is sealed: only FlightInfo, PlatformInfo and MetroInfo implement it.
type TransportVariant interface {
	allows(mode TransportMode) bool
}

// FlightInfo carries the fields that only make sense for FLIGHT legs.
type FlightInfo struct {
	Terminal string
	Gate     string
}

func (FlightInfo) allows(m TransportMode) bool { return m == ModeFlight }

// PlatformInfo carries the departure platform of rail and bus legs.
type PlatformInfo struct {
	Platform string
}

func (PlatformInfo) allows(m TransportMode) bool {
	return m == ModeTrainHSR || m == ModeTrainTRA || m == ModeBus
}

// MetroInfo identifies the network and line of a METRO leg.
// LineColor may be empty; generated plans do not carry it.
type MetroInfo struct {
	City      MetroCity
	LineColor string
}

func (MetroInfo) allows(m TransportMode) bool { return m == ModeMetro }

// TransportDetails describes a transport leg. Mode decides which Variant, if
// any, may be attached: FLIGHT takes FlightInfo, rail and bus take
// PlatformInfo, METRO requires MetroInfo, and TAXI, WALK and OTHER take none.
type TransportDetails struct {
	Mode       TransportMode
	Provider   string
	Identifier string // flight no., train no., bus route
	Seat       string
	Variant    TransportVariant
}

// Flight returns the flight payload, if d carries one.
func (d TransportDetails) Flight() (FlightInfo, bool) {
	f, ok := d.Variant.(FlightInfo)
	return f, ok
}

// Platform returns the rail/bus payload, if d carries one.
func (d TransportDetails) Platform() (PlatformInfo, bool) {
	p, ok := d.Variant.(PlatformInfo)
	return p, ok
}

// Metro returns the metro payload, if d carries one.
func (d TransportDetails) Metro() (MetroInfo, bool) {
	m, ok := d.Variant.(MetroInfo)
	return m, ok
}

// Validate checks that the variant matches the mode.
func (d TransportDetails) Validate() error {
	if !d.Mode.Valid() {
		return validationf("unknown transport mode %q", d.Mode)
	}
	if d.Variant != nil && !d.Variant.allows(d.Mode) {
		return validationf("transport details carry fields not applicable to mode %s", d.Mode)
	}
	if d.Mode == ModeMetro {
		m, ok := d.Metro()
		if !ok {
			return validationf("metro legs require metroCity")
		}
		if !m.City.Valid() {
			return validationf("unknown metro city %q", m.City)
		}
	}
	return nil
}

// transportJSON is the flat wire shape of TransportDetails. Pointer fields let
// UnmarshalJSON tell an absent field from an empty one.
type transportJSON struct {
	Mode           TransportMode `json:"mode"`
	Provider       string        `json:"provider,omitempty"`
	Identifier     string        `json:"identifier,omitempty"`
	Seat           string        `json:"seat,omitempty"`
	Terminal       *string       `json:"terminal,omitempty"`
	Gate           *string       `json:"gate,omitempty"`
	Platform       *string       `json:"platform,omitempty"`
	MetroCity      *MetroCity    `json:"metroCity,omitempty"`
	MetroLineColor *string       `json:"metroLineColor,omitempty"`
}

// MarshalJSON writes only the fields valid for d.Mode.
func (d TransportDetails) MarshalJSON() ([]byte, error) {
	w := transportJSON{
		Mode:       d.Mode,
		Provider:   d.Provider,
		Identifier: d.Identifier,
		Seat:       d.Seat,
	}
	switch v := d.Variant.(type) {
	case FlightInfo:
		w.Terminal = nilIfEmpty(v.Terminal)
		w.Gate = nilIfEmpty(v.Gate)
	case PlatformInfo:
		w.Platform = nilIfEmpty(v.Platform)
	case MetroInfo:
		city := v.City
		w.MetroCity = &city
		w.MetroLineColor = nilIfEmpty(v.LineColor)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the flat wire shape and rejects any field that does
// not belong to the declared mode with an ErrValidation error.
func (d *TransportDetails) UnmarshalJSON(b []byte) error {
	var w transportJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	out := TransportDetails{
		Mode:       TransportMode(strings.ToUpper(string(w.Mode))),
		Provider:   w.Provider,
		Identifier: w.Identifier,
		Seat:       w.Seat,
	}

	var foreign []string
	reject := func(name string, set bool) {
		if set {
			foreign = append(foreign, name)
		}
	}

	switch out.Mode {
	case ModeFlight:
		if w.Terminal != nil || w.Gate != nil {
			out.Variant = FlightInfo{Terminal: deref(w.Terminal), Gate: deref(w.Gate)}
		}
		reject("platform", w.Platform != nil)
		reject("metroCity", w.MetroCity != nil)
		reject("metroLineColor", w.MetroLineColor != nil)
	case ModeTrainHSR, ModeTrainTRA, ModeBus:
		if w.Platform != nil {
			out.Variant = PlatformInfo{Platform: *w.Platform}
		}
		reject("terminal", w.Terminal != nil)
		reject("gate", w.Gate != nil)
		reject("metroCity", w.MetroCity != nil)
		reject("metroLineColor", w.MetroLineColor != nil)
	case ModeMetro:
		if w.MetroCity != nil || w.MetroLineColor != nil {
			m := MetroInfo{LineColor: deref(w.MetroLineColor)}
			if w.MetroCity != nil {
				m.City = *w.MetroCity
			}
			out.Variant = m
		}
		reject("terminal", w.Terminal != nil)
		reject("gate", w.Gate != nil)
		reject("platform", w.Platform != nil)
	default:
		reject("terminal", w.Terminal != nil)
		reject("gate", w.Gate != nil)
		reject("platform", w.Platform != nil)
		reject("metroCity", w.MetroCity != nil)
		reject("metroLineColor", w.MetroLineColor != nil)
	}

	if len(foreign) > 0 {
		return validationf("fields %s are not applicable to transport mode %s",
			strings.Join(foreign, ", "), out.Mode)
	}
	*d = out
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
