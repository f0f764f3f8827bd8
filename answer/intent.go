package answer

import "strings"

// Intent is the coarse topic bucket a question falls into.
type Intent string

const (
	IntentZoning         Intent = "zoning"
	IntentBusiness       Intent = "business"
	IntentTransportation Intent = "transportation"
	IntentGeneral        Intent = "general"
)

type intentRule struct {
	keywords []string
	intent   Intent
}

// Rule order matters: the first bucket with a keyword hit wins.
var intentRules = []intentRule{
	{[]string{"zoning"}, IntentZoning},
	{[]string{"business", "license"}, IntentBusiness},
	{[]string{"parking", "traffic"}, IntentTransportation},
}

// classifyIntent buckets a question by keyword, defaulting to general.
func classifyIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}
