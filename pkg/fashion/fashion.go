/*
fashion implements the team wardrobe tools: member profiles, the outfit of
the day history and a fixed weather table
*/
package fashion

import (
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Member is a team member profile
type Member struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Style    string `json:"style"`
	Gender   string `json:"gender"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	MemberNotFound   = "존재하지 않는 팀원입니다."
	OutfitNotFound   = "기록 없음"
	LocationNotFound = "알 수 없는 지역"
)

var (
	members = map[string]Member{
		"ideabong": {Name: "이상봉", Location: "Seoul", Style: "스트릿 패션", Gender: "남성"},
		"sunny":    {Name: "박써니", Location: "Busan", Style: "러블리 캐주얼", Gender: "여성"},
	}
	outfits = map[string]string{
		"monday":    "검정 슬랙스에 흰 셔츠",
		"tuesday":   "청바지에 후드티",
		"wednesday": "트레이닝복 세트",
	}
	weather = map[string]string{
		"Seoul": "15도, 맑음, 바람 약간",
		"Busan": "20도, 화창함",
	}
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// LookupMember returns a member profile by handle
func LookupMember(name string) (Member, bool) {
	member, exists := members[strings.TrimSpace(name)]
	return member, exists
}

// Outfit returns the outfit worn on a day of the week, matched without
// regard to case
func Outfit(day string) (string, bool) {
	outfit, exists := outfits[strings.ToLower(strings.TrimSpace(day))]
	return outfit, exists
}

// Weather returns the current weather for a location
func Weather(location string) (string, bool) {
	text, exists := weather[strings.TrimSpace(location)]
	return text, exists
}
