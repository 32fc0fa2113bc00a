package kma

import (
	"strings"

	// Packages
	norm "golang.org/x/text/unicode/norm"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// City is a supported location with its forecast grid coordinates
type City struct {
	Name    string `json:"name"`    // Korean name
	English string `json:"english"` // English name
	Nx      int    `json:"nx"`
	Ny      int    `json:"ny"`
	sample  string // Used when there is no service key
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var cities = []City{
	{Name: "서울", English: "Seoul", Nx: 60, Ny: 127, sample: "기온: 5°C, 맑음, 습도: 45%"},
	{Name: "부산", English: "Busan", Nx: 98, Ny: 76, sample: "기온: 10°C, 구름많음, 습도: 60%"},
	{Name: "대구", English: "Daegu", Nx: 89, Ny: 90, sample: "기온: 7°C, 맑음, 습도: 40%"},
	{Name: "인천", English: "Incheon", Nx: 55, Ny: 124, sample: "기온: 4°C, 흐림, 습도: 55%"},
	{Name: "광주", English: "Gwangju", Nx: 58, Ny: 74, sample: "기온: 8°C, 맑음, 습도: 50%"},
	{Name: "대전", English: "Daejeon", Nx: 67, Ny: 100, sample: "기온: 6°C, 구름많음, 습도: 48%"},
	{Name: "울산", English: "Ulsan", Nx: 102, Ny: 84, sample: "기온: 9°C, 맑음, 습도: 52%"},
	{Name: "제주", English: "Jeju", Nx: 52, Ny: 38, sample: "기온: 12°C, 구름많음, 습도: 65%"},
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Cities returns the supported cities
func Cities() []City {
	result := make([]City, len(cities))
	copy(result, cities)
	return result
}

// Lookup returns a city by its Korean or English name. Hangul is compared
// after NFC normalisation, English without regard to case.
func Lookup(name string) (City, bool) {
	name = norm.NFC.String(strings.TrimSpace(name))
	for _, city := range cities {
		if city.Name == name || strings.EqualFold(city.English, name) {
			return city, true
		}
	}
	return City{}, false
}

// Names returns the Korean names of the supported cities
func Names() []string {
	result := make([]string, 0, len(cities))
	for _, city := range cities {
		result = append(result, city.Name)
	}
	return result
}

// Sample returns fixed sample weather for the city
func (c City) Sample() string {
	return c.sample
}
