// Package facet holds the closed vocabularies used as perfume filters.
package facet

// Gender is the target wearer of a perfume.
type Gender string

// Gender values.
const (
	Male   Gender = "male"
	Female Gender = "female"
	Unisex Gender = "unisex"
)

// Genders lists every valid Gender in schema order.
var Genders = []Gender{Male, Female, Unisex}

// IsValid checks if the gender is one of the supported values.
func (g Gender) IsValid() bool {
	return g == Male || g == Female || g == Unisex
}

// Season is the season a perfume is primarily worn in.
type Season string

// Season values.
const (
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
	Winter Season = "winter"
)

// Seasons lists every valid Season in schema order.
var Seasons = []Season{Spring, Summer, Fall, Winter}

// IsValid checks if the season is one of the supported values.
func (s Season) IsValid() bool {
	return s == Spring || s == Summer || s == Fall || s == Winter
}

// PriceTier is how a perfume's price is perceived.
type PriceTier string

// PriceTier values.
const (
	Budget   PriceTier = "budget"
	Moderate PriceTier = "moderate"
	Luxury   PriceTier = "luxury"
)

// PriceTiers lists every valid PriceTier in schema order.
var PriceTiers = []PriceTier{Budget, Moderate, Luxury}

// IsValid checks if the tier is one of the supported values.
func (p PriceTier) IsValid() bool {
	return p == Budget || p == Moderate || p == Luxury
}
