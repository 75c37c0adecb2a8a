/* parser.go
 * Contains the wikitext parsing used to discover bracket group ids on a tournament page
 */

package external

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	matchlistTemplatePattern = regexp.MustCompile(`(?s)\{\{\s*Matchlist\s*\|([^}]*)\}\}`)
	bracketTemplatePattern   = regexp.MustCompile(`(?s)\{\{\s*Bracket\s*\|([^}]*)\}\}`)
	htmlCommentPattern       = regexp.MustCompile(`<!--.*?-->`)
)

// GroupRef is one bracket group discovered on a page, with the template kind it came from
type GroupRef struct {
	ID   string
	Type string // "matchlist" or "bracket"
}

// ExtractGroupRefs scans raw wikitext for {{Matchlist ...}} and {{Bracket ...}} templates
// and returns the group ids they declare, in page order per kind
func ExtractGroupRefs(wikitext string) ([]GroupRef, error) {
	var refs []GroupRef
	refs = append(refs, extractTemplateIDs(wikitext, matchlistTemplatePattern, "matchlist")...)
	refs = append(refs, extractTemplateIDs(wikitext, bracketTemplatePattern, "bracket")...)

	if len(refs) == 0 {
		return nil, fmt.Errorf("no group ids found")
	}
	return refs, nil
}

func extractTemplateIDs(wikitext string, pattern *regexp.Regexp, kind string) []GroupRef {
	var refs []GroupRef
	for _, match := range pattern.FindAllStringSubmatch(wikitext, -1) {
		paramsText := match[1]

		// Parse pipe separated key value pairs from the template
		for _, part := range strings.Split(paramsText, "|") {
			part = strings.TrimSpace(part)
			if !strings.HasPrefix(part, "id=") {
				continue
			}
			id := strings.TrimSpace(strings.TrimPrefix(part, "id="))

			// Remove trailing html comments (sometimes occurs in bracket data)
			id = strings.TrimSpace(htmlCommentPattern.ReplaceAllString(id, ""))
			if id != "" {
				refs = append(refs, GroupRef{ID: id, Type: kind})
			}
			break
		}
	}
	return refs
}
