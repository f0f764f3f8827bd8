package core

import (
	"testing"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name         string
		categoryText string
		typeText     string
		want         Category
	}{
		{
			name:         "zoning category",
			categoryText: "ZONING RECLASSIFICATIONS",
			typeText:     "Ordinance",
			want:         CategoryConstruction,
		},
		{
			name:         "building category",
			categoryText: "Building Standards",
			typeText:     "",
			want:         CategoryConstruction,
		},
		{
			name:         "business licenses",
			categoryText: "BUSINESS LICENSES",
			typeText:     "Order",
			want:         CategoryBusiness,
		},
		{
			name:         "health",
			categoryText: "Public Health Measures",
			typeText:     "",
			want:         CategoryHealthcare,
		},
		{
			name:         "food",
			categoryText: "Food Establishments",
			typeText:     "",
			want:         CategoryHealthcare,
		},
		{
			name:         "parking",
			categoryText: "PARKING",
			typeText:     "",
			want:         CategoryTransportation,
		},
		{
			name:         "traffic",
			categoryText: "Traffic Regulations",
			typeText:     "",
			want:         CategoryTransportation,
		},
		{
			name:         "finance",
			categoryText: "Finance Committee Matters",
			typeText:     "",
			want:         CategoryFinance,
		},
		{
			name:         "budget",
			categoryText: "Annual Budget",
			typeText:     "",
			want:         CategoryFinance,
		},
		{
			name:         "public safety",
			categoryText: "Public Safety",
			typeText:     "",
			want:         CategoryPublicSafety,
		},
		{
			name:         "education",
			categoryText: "School Matters",
			typeText:     "",
			want:         CategoryEducation,
		},
		{
			name:         "environment",
			categoryText: "Sustainability Programs",
			typeText:     "",
			want:         CategoryEnvironment,
		},
		{
			name:         "housing",
			categoryText: "Residential Development",
			typeText:     "",
			want:         CategoryHousing,
		},
		{
			name:         "executive order type",
			categoryText: "General Matters",
			typeText:     "Executive Order",
			want:         CategoryGovernance,
		},
		{
			name:         "resolution type",
			categoryText: "",
			typeText:     "Resolution",
			want:         CategoryGovernance,
		},
		{
			name:         "ordinance type",
			categoryText: "",
			typeText:     "Ordinance",
			want:         CategoryGovernance,
		},
		{
			name:         "no match defaults to general",
			categoryText: "Miscellaneous",
			typeText:     "Communication",
			want:         CategoryGeneral,
		},
		{
			name:         "empty inputs default to general",
			categoryText: "",
			typeText:     "",
			want:         CategoryGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyCategory(tt.categoryText, tt.typeText)
			if got != tt.want {
				t.Errorf("ClassifyCategory(%q, %q) = %v, want %v",
					tt.categoryText, tt.typeText, got, tt.want)
			}
		})
	}
}

func TestClassifyCategory_RuleOrder(t *testing.T) {
	// The zoning rule fires before the ordinance rule even when both would
	// match the input pair.
	got := ClassifyCategory("ZONING RECLASSIFICATIONS", "Ordinance")
	if got != CategoryConstruction {
		t.Errorf("zoning ordinance classified as %v, want %v", got, CategoryConstruction)
	}
}

func TestClassifyCategory_Total(t *testing.T) {
	// Every pair maps to exactly one taxonomy value.
	inputs := []struct{ category, docType string }{
		{"", ""},
		{"ZONING", "Ordinance"},
		{"something else entirely", "unknown"},
		{"BUSINESS LICENSES", ""},
		{"random text 123", "!!!"},
	}
	valid := Categories()
	for _, in := range inputs {
		got := ClassifyCategory(in.category, in.docType)
		found := false
		for _, c := range valid {
			if got == c {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("ClassifyCategory(%q, %q) = %v, not in taxonomy",
				in.category, in.docType, got)
		}
	}
}
