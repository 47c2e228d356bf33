package airports

// Uppercase tokens that show up in confirmation emails but should never be
// read as airports, even where a real IATA code exists (SAT, JAN, PER...).
var stopwords = []string{
	// common English words
	"AND", "THE", "FOR", "ARE", "NOT", "YOU", "ALL", "ANY", "CAN", "HAS",
	"HAD", "WAS", "ONE", "TWO", "OUR", "OUT", "NEW", "NOW", "GET", "SEE",
	"USE", "WAY", "DAY", "PER", "VIA", "TAX", "FEE", "AIR", "BAG", "BET",
	"FAR", "GUM", "PIE", "MOB", "LIT", "RAP", "PAT", "NAT", "BUS", "BOB",
	"ACE", "END", "TOP", "HOT", "FUN", "CAP",
	// weekdays
	"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN",
	// months
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT",
	"NOV", "DEC",
	// currencies
	"USD", "EUR", "GBP", "CAD", "AUD", "MXN", "JPY", "CNY", "INR", "CHF",
	"NZD", "BRL",
	// travel jargon
	"PNR", "ETA", "ETD", "TBA", "TBD", "TSA", "FAQ", "APP", "PDF", "VIP",
	"USA", "CEO",
}

// IsStopword reports whether token (any case) is on the stoplist.
func IsStopword(token string) bool {
	_, ok := stopwordSet[normalize(token)]
	return ok
}
