// Package literacy attaches static health-literacy advisories to search
// queries that look health related.
package literacy

import "strings"

// Hint is a fixed advisory record shown alongside search results.
type Hint struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
}

// Keywords trigger a hint when any of them occurs anywhere in the
// lower-cased query. Matching is plain substring containment.
var Keywords = []string{
	"health", "medical", "disease", "treatment", "medicine",
	"nutrition", "exercise", "mental health", "wellness",
}

var healthLiteracy = Hint{
	Type:        "health_literacy",
	Title:       "Health Literacy Resources",
	Description: "Find trusted health information and resources",
	URL:         "https://health.gov/our-work/national-health-initiatives/health-literacy",
	Source:      "Health.gov",
}

// Match returns the health-literacy hint for health related queries and an
// empty, non-nil slice otherwise.
func Match(query string) []Hint {
	q := strings.ToLower(query)
	for _, kw := range Keywords {
		if strings.Contains(q, kw) {
			return []Hint{healthLiteracy}
		}
	}
	return []Hint{}
}
