package core

import "strings"

// Category is the fixed classification taxonomy for documents.
type Category string

const (
	CategoryConstruction   Category = "construction"
	CategoryBusiness       Category = "business"
	CategoryHealthcare     Category = "healthcare"
	CategoryTransportation Category = "transportation"
	CategoryFinance        Category = "finance"
	CategoryPublicSafety   Category = "public_safety"
	CategoryEducation      Category = "education"
	CategoryEnvironment    Category = "environment"
	CategoryHousing        Category = "housing"
	CategoryGovernance     Category = "governance"
	CategoryGeneral        Category = "general"
)

// Categories lists every taxonomy value.
func Categories() []Category {
	return []Category{
		CategoryConstruction,
		CategoryBusiness,
		CategoryHealthcare,
		CategoryTransportation,
		CategoryFinance,
		CategoryPublicSafety,
		CategoryEducation,
		CategoryEnvironment,
		CategoryHousing,
		CategoryGovernance,
		CategoryGeneral,
	}
}

// categoryRule tests lower-cased source text for any of its substrings.
// Rules are evaluated in order; the first match wins.
type categoryRule struct {
	substrings []string
	inType     bool // match against the type text instead of the category text
	category   Category
}

// categoryRules is the fixed-priority classification chain. Category-text
// rules come first, then type-text rules, matching the upstream feed
// conventions. Zoning must fire before the ordinance rule.
var categoryRules = []categoryRule{
	{substrings: []string{"zoning", "building"}, category: CategoryConstruction},
	{substrings: []string{"business", "license"}, category: CategoryBusiness},
	{substrings: []string{"health", "food"}, category: CategoryHealthcare},
	{substrings: []string{"parking", "traffic", "transportation"}, category: CategoryTransportation},
	{substrings: []string{"finance", "budget"}, category: CategoryFinance},
	{substrings: []string{"public safety", "police", "fire"}, category: CategoryPublicSafety},
	{substrings: []string{"education", "school"}, category: CategoryEducation},
	{substrings: []string{"environment", "sustainability"}, category: CategoryEnvironment},
	{substrings: []string{"housing", "residential"}, category: CategoryHousing},
	{substrings: []string{"executive order", "proclamation"}, inType: true, category: CategoryGovernance},
	{substrings: []string{"resolution"}, inType: true, category: CategoryGovernance},
	{substrings: []string{"ordinance"}, inType: true, category: CategoryGovernance},
}

// ClassifyCategory maps source category and type text to a taxonomy value.
// Matching is case-insensitive substring containment in fixed rule order;
// exhausting the chain yields CategoryGeneral. Classification is total:
// every input pair maps to exactly one category.
func ClassifyCategory(categoryText, typeText string) Category {
	categoryLower := strings.ToLower(categoryText)
	typeLower := strings.ToLower(typeText)

	for _, rule := range categoryRules {
		text := categoryLower
		if rule.inType {
			text = typeLower
		}
		for _, sub := range rule.substrings {
			if strings.Contains(text, sub) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}
