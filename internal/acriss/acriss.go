// Package acriss decodes the four character ACRISS vehicle classification
// codes returned with every rental offer.
//
// The first character encodes the vehicle category and the second the body
// type. Codes of any other length decode to an unknown category with no body
// type; unmapped letters behave the same way for their position.
package acriss

import (
	"unicode"
	"unicode/utf8"
)

// CodeLength is the number of characters in a valid ACRISS code.
const CodeLength = 4

const (
	categoryIndex    = 0
	vehicleTypeIndex = 1
)

// Category is the vehicle size class denoted by the first code character.
type Category int

const (
	Unknown Category = iota
	Mini
	Economy
	Compact
	Standard
	Fullsize
	Premium
	Luxury
	Oversize
)

var categoryNames = map[Category]string{
	Unknown:  "unknown",
	Mini:     "mini",
	Economy:  "economy",
	Compact:  "compact",
	Standard: "standard",
	Fullsize: "fullsize",
	Premium:  "premium",
	Luxury:   "luxury",
	Oversize: "oversize",
}

// String returns the lowercase category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[Unknown]
}

var categoryByLetter = map[rune]Category{
	'M': Mini, 'N': Mini,
	'E': Economy, 'H': Economy,
	'C': Compact, 'D': Compact,
	'I': Standard, 'J': Standard, 'S': Standard, 'R': Standard,
	'F': Fullsize, 'G': Fullsize,
	'P': Premium, 'U': Premium,
	'L': Luxury, 'W': Luxury,
	'O': Oversize,
}

var vehicleTypeByLetter = map[rune]string{
	'B': "2-3 Door",
	'C': "2/4 Door",
	'D': "4-5 Door",
	'W': "Wagon/Estate",
	'V': "Passenger Van",
	'L': "Limousine",
	'S': "Sport",
	'T': "Convertible",
	'F': "SUV",
	'J': "Open Air All Terrain",
	'X': "Special",
	'P': "Pick up",
	'Q': "Pick up Extended Car",
	'Z': "Special Offer Car",
	'E': "Coupe",
	'M': "Monospace",
	'R': "Recreational Vehicle",
	'H': "Motor Home",
	'Y': "2 Wheel Vehicle",
	'N': "Roadster",
	'G': "Crossover",
	'K': "Commercial Van/Truck",
}

// Classification is the decoded form of an ACRISS code.
// VehicleType is empty when the code carries no known body type.
type Classification struct {
	Category    Category
	VehicleType string
}

// HasVehicleType reports whether a body type description is available.
func (c Classification) HasVehicleType() bool {
	return c.VehicleType != ""
}

// Decode returns the category and body type for code.
func Decode(code string) Classification {
	vehicleType, _ := VehicleTypeOf(code)
	return Classification{
		Category:    CategoryOf(code),
		VehicleType: vehicleType,
	}
}

// CategoryOf returns the vehicle category for code.
func CategoryOf(code string) Category {
	letter, ok := letterAt(code, categoryIndex)
	if !ok {
		return Unknown
	}
	if category, found := categoryByLetter[letter]; found {
		return category
	}
	return Unknown
}

// VehicleTypeOf returns the body type description for code, if any.
func VehicleTypeOf(code string) (string, bool) {
	letter, ok := letterAt(code, vehicleTypeIndex)
	if !ok {
		return "", false
	}
	description, found := vehicleTypeByLetter[letter]
	return description, found
}

// IsValid reports whether code has the length of an ACRISS code. The
// characters themselves are not checked.
func IsValid(code string) bool {
	return utf8.RuneCountInString(code) == CodeLength
}

func letterAt(code string, index int) (rune, bool) {
	if !IsValid(code) {
		return 0, false
	}
	return unicode.ToUpper([]rune(code)[index]), true
}
