package flightparser

import "strings"

type fingerprint struct {
	source  Source
	needles []string
}

// Tiers are checked in order. Portals come first because they quote the
// carrier's name and domain in their own emails.
var detectionTiers = [][]fingerprint{
	{
		{SourceChaseTravel, []string{"chasetravel", "chase.com", "chase travel", "travel reservation center", "ultimate rewards travel", "trip id"}},
	},
	{
		{SourceUnited, []string{"united.com"}},
		{SourceDelta, []string{"delta.com"}},
		{SourceAmerican, []string{"@aa.com", ".aa.com", "americanairlines.com"}},
		{SourceSouthwest, []string{"southwest.com", "southwestairlines.com"}},
		{SourceJetBlue, []string{"jetblue.com"}},
		{SourceRyanair, []string{"ryanair.com"}},
	},
	{
		{SourceUnited, []string{"united airlines"}},
		{SourceDelta, []string{"delta air lines"}},
		{SourceAmerican, []string{"american airlines"}},
		{SourceSouthwest, []string{"southwest airlines"}},
		{SourceJetBlue, []string{"jetblue"}},
		{SourceRyanair, []string{"ryanair"}},
	},
}

// DetectSource identifies which strategy should handle an email, or
// SourceUnknown if none matches.
func DetectSource(from, subject, body string) Source {
	haystack := strings.ToLower(from + "\n" + subject + "\n" + body)
	for _, tier := range detectionTiers {
		for _, fp := range tier {
			for _, needle := range fp.needles {
				if strings.Contains(haystack, needle) {
					return fp.source
				}
			}
		}
	}
	return SourceUnknown
}
