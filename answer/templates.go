package answer

import "github.com/tmc/langchaingo/prompts"

// The answer bodies are fixed civic-information templates rendered per
// intent bucket. F-string placeholders are filled from the best-matching
// document and its metadata.

var zoningTemplate = prompts.PromptTemplate{
	TemplateFormat: prompts.TemplateFormatFString,
	InputVariables: []string{"title", "record_number", "matter_type", "status", "sponsor", "committee"},
	Template: `Based on Chicago zoning legislation '{title}':

**Zoning Information:**
- Record Number: {record_number}
- Type: {matter_type}
- Status: {status}
- Sponsor: {sponsor}
- Committee: {committee}

**Next Steps:**
For zoning matters in Chicago:
1. Contact the Committee on Zoning, Landmarks and Building Standards
2. Review the full legislation text
3. Check for public hearing requirements
4. Consult with the Department of Planning and Development

For more information, visit the Chicago City Clerk's office or the Department of Planning and Development.`,
}

var businessTemplate = prompts.PromptTemplate{
	TemplateFormat: prompts.TemplateFormatFString,
	InputVariables: []string{"title", "record_number", "matter_type", "status", "sponsor", "matter_category"},
	Template: `Based on Chicago business legislation '{title}':

**Business Information:**
- Record Number: {record_number}
- Type: {matter_type}
- Status: {status}
- Sponsor: {sponsor}
- Category: {matter_category}

**Requirements:**
For business matters in Chicago:
1. Contact the Department of Business Affairs and Consumer Protection
2. Review all applicable regulations
3. Complete required applications
4. Pay necessary fees

Contact the Chicago Department of Business Affairs and Consumer Protection at 312-744-6060 for assistance.`,
}

var transportationTemplate = prompts.PromptTemplate{
	TemplateFormat: prompts.TemplateFormatFString,
	InputVariables: []string{"title", "record_number", "matter_type", "status", "sponsor", "committee"},
	Template: `Based on Chicago transportation legislation '{title}':

**Transportation Information:**
- Record Number: {record_number}
- Type: {matter_type}
- Status: {status}
- Sponsor: {sponsor}
- Committee: {committee}

**Requirements:**
For transportation matters in Chicago:
1. Contact the Committee on Pedestrian and Traffic Safety
2. Review traffic and parking regulations
3. Check for permit requirements
4. Consult with the Department of Transportation

Contact the Chicago Department of Transportation for more information.`,
}

var generalTemplate = prompts.PromptTemplate{
	TemplateFormat: prompts.TemplateFormatFString,
	InputVariables: []string{
		"title", "record_number", "matter_type", "status", "sponsor",
		"committee", "introduction_date", "content_snippet", "authority",
		"category", "document_type",
	},
	Template: `Based on Chicago legislation '{title}':

**Legislation Details:**
- Record Number: {record_number}
- Type: {matter_type}
- Status: {status}
- Sponsor: {sponsor}
- Committee: {committee}
- Introduction Date: {introduction_date}

**Content:**
{content_snippet}

**Source Information:**
- Authority: {authority}
- Category: {category}
- Document Type: {document_type}

For more detailed information, please contact the relevant Chicago department or visit the official Chicago government website.`,
}

func templateFor(intent Intent) prompts.PromptTemplate {
	switch intent {
	case IntentZoning:
		return zoningTemplate
	case IntentBusiness:
		return businessTemplate
	case IntentTransportation:
		return transportationTemplate
	default:
		return generalTemplate
	}
}
