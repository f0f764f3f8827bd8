package answer

// searchSuggestions are canned starter questions surfaced by the API and CLI.
var searchSuggestions = []string{
	"How do I get a zoning permit in Chicago?",
	"What are the business license requirements?",
	"How do I apply for handicapped parking?",
	"What are the current zoning regulations?",
	"How do I get a sign permit?",
	"What are the parking regulations?",
	"How do I contact the city council?",
	"What are the current ordinances?",
	"How do I get a liquor license?",
	"What are the building permit requirements?",
	"How do I report a city issue?",
	"What are the current resolutions?",
	"How do I get a street permit?",
	"What are the current executive orders?",
	"How do I get a special event permit?",
	"What are the current city policies?",
	"How do I get a construction permit?",
	"What are the current city regulations?",
	"How do I get a business permit?",
	"What are the current city laws?",
}

// Suggestions returns the fixed starter-question list.
func Suggestions() []string {
	out := make([]string, len(searchSuggestions))
	copy(out, searchSuggestions)
	return out
}
