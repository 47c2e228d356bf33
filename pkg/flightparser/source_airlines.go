package flightparser

import "regexp"

// United: "Washington, DC (IAD) to Paris (CDG)", "Mon, Jan 15, 2024",
// "Confirmation: ABC123".
var unitedProfile = airlineProfile{
	source:         SourceUnited,
	airline:        "United Airlines",
	baseConfidence: 0.75,
	routes: []routeMatcher{
		regexPair(cityCodeRe),
		regexPair(fromToRe),
	},
	confirmation: []*regexp.Regexp{
		regexp.MustCompile(`(?i:\bconfirmation(?:\s+number)?)\s*[#:]?\s*([A-Z0-9]{6})\b`),
	},
}

// Delta: "ATL › LAX", "15JAN24", "Confirmation #: GH7K2L".
var deltaProfile = airlineProfile{
	source:         SourceDelta,
	airline:        "Delta Air Lines",
	baseConfidence: 0.8,
	routes: []routeMatcher{
		regexPair(regexp.MustCompile(`\b([A-Z]{3})\s*(?:›|»|✈|→|>)\s*([A-Z]{3})\b`)),
		regexPair(cityCodeRe),
	},
	dates: []dateRule{
		{re: regexp.MustCompile(`(?i)\b(\d{2})(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)(\d{2})\b`), day: 1, month: 2, year: 3, monthName: true, twoDigit: true},
	},
	confirmation: []*regexp.Regexp{
		regexp.MustCompile(`(?i:\bconfirmation\s*#)\s*:?\s*([A-Z0-9]{6})\b`),
	},
}

// American: codes only appear in parentheses after city names, and the
// booking code is labeled "Record Locator".
var americanProfile = airlineProfile{
	source:         SourceAmerican,
	airline:        "American Airlines",
	baseConfidence: 0.75,
	routes: []routeMatcher{
		regexPair(cityCodeRe),
		parenCodes(),
	},
	confirmation: []*regexp.Regexp{
		regexp.MustCompile(`(?i:\brecord\s+locator)\s*:?\s*([A-Z0-9]{6})\b`),
	},
}

// Southwest puts each airport on its own line after "Departs"/"Arrives".
var southwestProfile = airlineProfile{
	source:         SourceSouthwest,
	airline:        "Southwest Airlines",
	baseConfidence: 0.8,
	routes: []routeMatcher{
		labeledPair(regexp.MustCompile(`(?i)\bdeparts?\b`), regexp.MustCompile(`(?i)\barrives?\b`)),
		regexPair(arrowRe),
	},
	confirmation: []*regexp.Regexp{
		regexp.MustCompile(`(?i:\bconfirmation\s*(?:#|number))\s*:?\s*([A-Z0-9]{6})\b`),
	},
}

var jetblueProfile = airlineProfile{
	source:         SourceJetBlue,
	airline:        "JetBlue",
	baseConfidence: 0.75,
	routes: []routeMatcher{
		regexPair(regexp.MustCompile(`\b([A-Z]{3})\s+(?:-|–|to)\s+([A-Z]{3})\b`)),
		regexPair(cityCodeRe),
	},
	confirmation: []*regexp.Regexp{
		regexp.MustCompile(`(?i:\bconfirmation\s+code|\byour\s+confirmation\s+(?:number|code)\s+is)\s*:?\s*([A-Z0-9]{6})\b`),
	},
}

// Ryanair writes dates day-first with two-digit years: "Mon, 15 Jan 24".
var ryanairProfile = airlineProfile{
	source:         SourceRyanair,
	airline:        "Ryanair",
	baseConfidence: 0.8,
	routes: []routeMatcher{
		regexPair(cityCodeRe),
		regexPair(regexp.MustCompile(`\b([A-Z]{3})\s*[-–]\s*([A-Z]{3})\b`)),
	},
	dates: []dateRule{
		{re: regexp.MustCompile(`(?i)\b(\d{1,2})\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{2})\b`), day: 1, month: 2, year: 3, monthName: true, twoDigit: true},
	},
	confirmation: []*regexp.Regexp{
		regexp.MustCompile(`(?i:\breservation\s+number|\bbooking\s+reference)\s*:?\s*([A-Z0-9]{6})\b`),
	},
}
