// Package prompts holds the fixed prompt templates for both workflows.
// Every function is a pure string formatter: the same page data always
// produces the same prompt.
package prompts

import (
	"fmt"
	"strings"

	"go-brochure/internal/webpage"
)

// AggregateLimit caps the aggregated multi-page content block, in raw
// characters. Applied after concatenation, so the cut can land mid-word.
const AggregateLimit = 5000

const contentAnalystSystem = `ROLE: Professional Content Analyst

TASK:
- Analyze and summarize web content
- Focus on main content, ignore navigation elements
- Be objective, factual and professional

FORMAT:
- Use markdown formatting
- Structure with clear headings
- Use bullet points for lists
- Bold important terms`

const linkClassifierSystem = `ROLE: Professional Content Analyst

TASK:
- Analyze the provided list of links from a company website
- Identify which links are most relevant for a company brochure
- Focus on pages like About, Company, Team, Careers, Services, Products, Contact
- Ignore login, privacy policy, terms of service and other non-essential pages

RESPONSE FORMAT:
- Respond with a JSON object containing an array of relevant links
- Each link should have a 'type' (e.g., 'about page', 'careers page')
- Include the full URL in the 'url' field
- Only include genuinely relevant links (0-5 links is typical)

EXAMPLE RESPONSE:
{
    "links": [
        {"type": "about page", "url": "https://example.com/about"},
        {"type": "careers page", "url": "https://example.com/careers"}
    ]
}`

const brochureWriterSystem = `ROLE: Professional Content Analyst

TASK:
- Analyze the contents of several relevant pages from a company website
- Create a short brochure about the company for prospective customers, investors and recruits
- Respond in markdown
- Include details of company culture, customers and careers/jobs if you have the information
- Brochure must be in the language of the website`

// ContentAnalystSystem is the system prompt for the summary workflow.
func ContentAnalystSystem() string {
	return contentAnalystSystem
}

// LinkClassifierSystem is the system prompt for link classification.
func LinkClassifierSystem() string {
	return linkClassifierSystem
}

// BrochureWriterSystem is the system prompt for brochure synthesis.
func BrochureWriterSystem() string {
	return brochureWriterSystem
}

// SummaryUser renders the user prompt for summarizing a single page.
func SummaryUser(page *webpage.Page) string {
	return fmt.Sprintf(`# Website Summary Request
## Website Title: %s

## Content to Summarize:
%s`, page.Title, page.BodyText)
}

// LinkAnalysisUser renders the user prompt asking which of a page's raw
// links belong in a brochure.
func LinkAnalysisUser(pageURL string, links []string) string {
	return fmt.Sprintf(`Here is the list of links on the website of %s.
Please decide which of these are relevant web links for a brochure about the company.
Respond with the full https URL in JSON format.
Do not include Terms of Service, Privacy, or email links.

Links (some might be relative links):
%s`, pageURL, strings.Join(links, "\n"))
}

// BrochureUser renders the synthesis prompt from the aggregated content of
// the landing page and selected links. The aggregate is truncated to
// AggregateLimit characters before interpolation.
func BrochureUser(pageURL, aggregate string) string {
	return fmt.Sprintf(`You are looking at the website %s of a company.
Here are the contents of its landing page and other relevant pages;
use this information to build a short brochure of the company in markdown.
%s
Respond in markdown.`, pageURL, TruncateAggregate(aggregate))
}

// TruncateAggregate applies the raw-character ceiling to the aggregated
// content block. The limit counts code points, not bytes, so multi-byte
// text is never cut mid-rune. No trimming to word or sentence boundaries.
func TruncateAggregate(aggregate string) string {
	// Byte length bounds the rune count, so this also covers ASCII.
	if len(aggregate) <= AggregateLimit {
		return aggregate
	}
	runes := []rune(aggregate)
	if len(runes) <= AggregateLimit {
		return aggregate
	}
	return string(runes[:AggregateLimit])
}
