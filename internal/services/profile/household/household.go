// Package household defines the household profile collected at onboarding.
package household

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxNameLength bounds the display name in runes.
const MaxNameLength = 64

// MaxHouseholdSize is the largest size the profile stores accept (a 32-bit
// INTEGER column).
const MaxHouseholdSize = math.MaxInt32

// ResidenceSize classifies the home.
type ResidenceSize string

const (
	ResidenceSmall  ResidenceSize = "small"
	ResidenceMedium ResidenceSize = "medium"
	ResidenceLarge  ResidenceSize = "large"
)

// TransportationType is the household's main way of getting around.
type TransportationType string

const (
	TransportCarGasoline     TransportationType = "car_gasoline"
	TransportCarElectric     TransportationType = "car_electric"
	TransportCarHybrid       TransportationType = "car_hybrid"
	TransportMotorcycle      TransportationType = "motorcycle"
	TransportPublicTransport TransportationType = "public_transport"
	TransportBicycle         TransportationType = "bicycle"
	TransportWalk            TransportationType = "walk"
	TransportMixed           TransportationType = "mixed"
)

// HeatingType is the main heating source.
type HeatingType string

const (
	HeatingElectric HeatingType = "electric"
	HeatingGas      HeatingType = "gas"
	HeatingSolar    HeatingType = "solar"
	HeatingNone     HeatingType = "none"
)

// RecyclingHabit is how often the household recycles.
type RecyclingHabit string

const (
	RecyclingAlways    RecyclingHabit = "always"
	RecyclingSometimes RecyclingHabit = "sometimes"
	RecyclingRarely    RecyclingHabit = "rarely"
	RecyclingNever     RecyclingHabit = "never"
)

var (
	residenceSizes      = []ResidenceSize{ResidenceSmall, ResidenceMedium, ResidenceLarge}
	transportationTypes = []TransportationType{
		TransportCarGasoline, TransportCarElectric, TransportCarHybrid, TransportMotorcycle,
		TransportPublicTransport, TransportBicycle, TransportWalk, TransportMixed,
	}
	heatingTypes    = []HeatingType{HeatingElectric, HeatingGas, HeatingSolar, HeatingNone}
	recyclingHabits = []RecyclingHabit{RecyclingAlways, RecyclingSometimes, RecyclingRarely, RecyclingNever}
)

// AllResidenceSizes returns residence sizes in display order.
func AllResidenceSizes() []ResidenceSize { return append([]ResidenceSize(nil), residenceSizes...) }

// AllTransportationTypes returns transportation types in display order.
func AllTransportationTypes() []TransportationType {
	return append([]TransportationType(nil), transportationTypes...)
}

// AllHeatingTypes returns heating types in display order.
func AllHeatingTypes() []HeatingType { return append([]HeatingType(nil), heatingTypes...) }

// AllRecyclingHabits returns recycling habits in display order.
func AllRecyclingHabits() []RecyclingHabit { return append([]RecyclingHabit(nil), recyclingHabits...) }

// Valid reports whether v is a known residence size.
func (v ResidenceSize) Valid() bool { return contains(residenceSizes, v) }

// Valid reports whether v is a known transportation type.
func (v TransportationType) Valid() bool { return contains(transportationTypes, v) }

// Valid reports whether v is a known heating type.
func (v HeatingType) Valid() bool { return contains(heatingTypes, v) }

// Valid reports whether v is a known recycling habit.
func (v RecyclingHabit) Valid() bool { return contains(recyclingHabits, v) }

// ParseResidenceSize parses a form or storage value.
func ParseResidenceSize(value string) (ResidenceSize, bool) {
	return parse(residenceSizes, value)
}

// ParseTransportationType parses a form or storage value.
func ParseTransportationType(value string) (TransportationType, bool) {
	return parse(transportationTypes, value)
}

// ParseHeatingType parses a form or storage value.
func ParseHeatingType(value string) (HeatingType, bool) {
	return parse(heatingTypes, value)
}

// ParseRecyclingHabit parses a form or storage value.
func ParseRecyclingHabit(value string) (RecyclingHabit, bool) {
	return parse(recyclingHabits, value)
}

// Profile is the persisted user profile record.
type Profile struct {
	UserID              string
	Name                string
	HouseholdSize       int
	ResidenceSize       ResidenceSize
	HasGarden           bool
	TransportationType  TransportationType
	HeatingType         HeatingType
	HasSolarPanels      bool
	RecyclingHabit      RecyclingHabit
	OnboardingCompleted bool
	HasSeenIntro        bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Normalize trims and validates a profile before it is written.
func Normalize(p Profile) (Profile, error) {
	p.UserID = strings.TrimSpace(p.UserID)
	if p.UserID == "" {
		return Profile{}, errors.New("user id is required")
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Profile{}, errors.New("name is required")
	}
	if utf8.RuneCountInString(p.Name) > MaxNameLength {
		return Profile{}, fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	if p.HouseholdSize <= 0 {
		return Profile{}, errors.New("household size must be positive")
	}
	if p.HouseholdSize > MaxHouseholdSize {
		return Profile{}, fmt.Errorf("household size must be at most %d", MaxHouseholdSize)
	}
	if !p.ResidenceSize.Valid() {
		return Profile{}, fmt.Errorf("residence size %q is invalid", p.ResidenceSize)
	}
	if !p.TransportationType.Valid() {
		return Profile{}, fmt.Errorf("transportation type %q is invalid", p.TransportationType)
	}
	if !p.HeatingType.Valid() {
		return Profile{}, fmt.Errorf("heating type %q is invalid", p.HeatingType)
	}
	if !p.RecyclingHabit.Valid() {
		return Profile{}, fmt.Errorf("recycling habit %q is invalid", p.RecyclingHabit)
	}
	return p, nil
}

func contains[T ~string](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func parse[T ~string](values []T, raw string) (T, bool) {
	v := T(strings.ToLower(strings.TrimSpace(raw)))
	if !contains(values, v) {
		var zero T
		return zero, false
	}
	return v, true
}
