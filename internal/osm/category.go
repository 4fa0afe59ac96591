// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package osm discovers businesses through the OpenStreetMap public
// APIs: Nominatim for geocoding and Overpass for structured feature
// queries. It normalizes heterogeneous elements into Business records
// and returns a deduplicated, bounded result set.
package osm

import "strings"

// Tag is an OpenStreetMap feature classifier: either a key=value pair
// (amenity=pharmacy) or a bare key (shop).
type Tag string

// categoryTags maps a category term (Turkish or English) to the tags
// queried for it, in query order.
var categoryTags = map[string][]Tag{
	// Food & drink
	"restoran":   {"amenity=restaurant", "amenity=fast_food"},
	"restaurant": {"amenity=restaurant", "amenity=fast_food"},
	"kafe":       {"amenity=cafe", "amenity=coffee_shop"},
	"cafe":       {"amenity=cafe", "amenity=coffee_shop"},
	"kahve":      {"amenity=cafe", "amenity=coffee_shop"},
	"bar":        {"amenity=bar", "amenity=pub"},
	"pub":        {"amenity=bar", "amenity=pub"},
	"pastane":    {"shop=bakery", "shop=pastry"},
	"fırın":      {"shop=bakery"},
	"bakery":     {"shop=bakery", "shop=pastry"},

	// Health
	"eczane":     {"amenity=pharmacy"},
	"pharmacy":   {"amenity=pharmacy"},
	"hastane":    {"amenity=hospital", "amenity=clinic"},
	"hospital":   {"amenity=hospital"},
	"klinik":     {"amenity=clinic", "amenity=doctors"},
	"clinic":     {"amenity=clinic", "amenity=doctors"},
	"doktor":     {"amenity=doctors", "amenity=clinic"},
	"diş":        {"amenity=dentist"},
	"dentist":    {"amenity=dentist"},
	"dişçi":      {"amenity=dentist"},
	"veteriner":  {"amenity=veterinary"},
	"veterinary": {"amenity=veterinary"},
	"optik":      {"shop=optician"},
	"gözlükçü":   {"shop=optician"},

	// Beauty & care
	"kuaför":      {"shop=hairdresser", "shop=beauty"},
	"hairdresser": {"shop=hairdresser"},
	"berber":      {"shop=hairdresser"},
	"güzellik":    {"shop=beauty", "shop=cosmetics"},
	"beauty":      {"shop=beauty", "shop=cosmetics"},
	"spa":         {"leisure=spa", "amenity=spa"},
	"masaj":       {"shop=massage"},
	"massage":     {"shop=massage"},

	// Automotive
	"oto":        {"shop=car", "shop=car_repair", "shop=car_parts"},
	"oto servis": {"shop=car_repair"},
	"car repair": {"shop=car_repair"},
	"tamir":      {"shop=car_repair"},
	"araba":      {"shop=car", "shop=car_repair"},
	"car":        {"shop=car", "shop=car_repair"},
	"benzin":     {"amenity=fuel"},
	"fuel":       {"amenity=fuel"},
	"akaryakıt":  {"amenity=fuel"},
	"lastik":     {"shop=tyres"},
	"tyres":      {"shop=tyres"},
	"yıkama":     {"amenity=car_wash"},
	"car wash":   {"amenity=car_wash"},

	// Shopping
	"market":       {"shop=supermarket", "shop=convenience"},
	"supermarket":  {"shop=supermarket"},
	"süpermarket":  {"shop=supermarket"},
	"bakkal":       {"shop=convenience"},
	"convenience":  {"shop=convenience"},
	"elektronik":   {"shop=electronics"},
	"electronics":  {"shop=electronics"},
	"giyim":        {"shop=clothes", "shop=fashion"},
	"clothes":      {"shop=clothes"},
	"kırtasiye":    {"shop=stationery"},
	"stationery":   {"shop=stationery"},
	"kitap":        {"shop=books"},
	"books":        {"shop=books"},
	"oyuncak":      {"shop=toys"},
	"toys":         {"shop=toys"},
	"mobilya":      {"shop=furniture"},
	"furniture":    {"shop=furniture"},
	"ayakkabı":     {"shop=shoes"},
	"shoes":        {"shop=shoes"},
	"takı":         {"shop=jewelry"},
	"jewelry":      {"shop=jewelry"},
	"kuyumcu":      {"shop=jewelry"},
	"çiçek":        {"shop=florist"},
	"florist":      {"shop=florist"},
	"pet":          {"shop=pet"},
	"evcil hayvan": {"shop=pet"},

	// Education
	"okul":       {"amenity=school"},
	"school":     {"amenity=school"},
	"üniversite": {"amenity=university"},
	"university": {"amenity=university"},
	"kurs":       {"amenity=training"},
	"eğitim":     {"amenity=school", "amenity=training"},

	// Lodging
	"otel":     {"tourism=hotel", "tourism=hostel"},
	"hotel":    {"tourism=hotel"},
	"pansiyon": {"tourism=guest_house"},
	"hostel":   {"tourism=hostel"},

	// Sports & leisure
	"spor":     {"leisure=sports_centre", "leisure=fitness_centre"},
	"gym":      {"leisure=fitness_centre"},
	"fitness":  {"leisure=fitness_centre"},
	"yüzme":    {"leisure=swimming_pool"},
	"swimming": {"leisure=swimming_pool"},
	"sinema":   {"amenity=cinema"},
	"cinema":   {"amenity=cinema"},
	"tiyatro":  {"amenity=theatre"},
	"theatre":  {"amenity=theatre"},

	// Finance
	"banka":     {"amenity=bank"},
	"bank":      {"amenity=bank"},
	"atm":       {"amenity=atm"},
	"sigorta":   {"office=insurance"},
	"insurance": {"office=insurance"},

	// Services
	"avukat":   {"office=lawyer"},
	"lawyer":   {"office=lawyer"},
	"hukuk":    {"office=lawyer"},
	"emlak":    {"office=estate_agent"},
	"estate":   {"office=estate_agent"},
	"temizlik": {"shop=dry_cleaning", "shop=laundry"},
	"laundry":  {"shop=laundry"},
	"kargo":    {"amenity=post_office", "office=courier"},
	"courier":  {"office=courier"},
}

// categoryPriority fixes the order in which category terms are tested
// for substring and per-word matches. Multi-word and more specific
// terms come before their prefixes ("oto servis" before "oto",
// "car repair" and "car wash" before "car") so overlapping terms
// resolve the same way on every run. Version 1 of the list; append or
// reorder deliberately, never rely on map iteration order.
var categoryPriority = []string{
	// Multi-word and specific terms first.
	"oto servis", "car repair", "car wash", "evcil hayvan",
	"süpermarket", "supermarket", "hairdresser", "convenience",
	"electronics", "stationery", "veterinary", "akaryakıt",
	"university", "üniversite", "insurance", "gözlükçü",
	"furniture", "ayakkabı", "kırtasiye", "restaurant", "restoran",
	"pharmacy", "hastane", "hospital", "dentist", "veteriner",
	"güzellik", "beauty", "massage", "elektronik", "mobilya",
	"jewelry", "kuyumcu", "florist", "swimming", "fitness",
	"theatre", "tiyatro", "sigorta", "laundry", "temizlik",
	"courier", "pastane", "klinik", "clinic", "doktor", "dişçi",
	"eczane", "kuaför", "berber", "lastik", "tyres", "yıkama",
	"benzin", "bakkal", "clothes", "giyim", "kitap", "books",
	"oyuncak", "toys", "shoes", "takı", "çiçek", "school", "okul",
	"eğitim", "kurs", "pansiyon", "hostel", "cinema", "sinema",
	"yüzme", "banka", "avukat", "lawyer", "hukuk", "emlak",
	"estate", "kargo", "masaj", "tamir", "araba", "kahve", "fırın",
	"bakery", "market", "kafe", "cafe", "hotel", "otel", "fuel",
	"bank", "spor", "diş", "gym", "spa", "oto", "car", "bar",
	"pub", "pet", "atm",
}

// defaultTags is the generic fallback tag set used when no category
// term matches: the three broadest business classifiers.
var defaultTags = []Tag{"amenity", "shop", "office"}

// ResolveCategory maps free-text category input to an ordered tag set.
// It never fails; unmatched input falls back to the generic tag set.
// Match order: exact term, substring in priority order, then each
// whitespace-split word in priority order.
func ResolveCategory(categoryText string) []Tag {
	text := strings.ToLower(strings.TrimSpace(categoryText))
	if text == "" {
		return defaultTags
	}

	if tags, ok := categoryTags[text]; ok {
		return tags
	}

	for _, term := range categoryPriority {
		if strings.Contains(text, term) || strings.Contains(term, text) {
			return categoryTags[term]
		}
	}

	for _, word := range strings.Fields(text) {
		for _, term := range categoryPriority {
			if word == term {
				return categoryTags[term]
			}
		}
	}

	return defaultTags
}
