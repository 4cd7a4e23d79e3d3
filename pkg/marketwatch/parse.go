package marketwatch

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

const maxCompetitors = 5

// Selector lists mirror the page variants observed in the wild; the first
// one that matches wins.
var (
	quoteSelectors = []string{
		"[data-module='Quote']",
		".intraday",
		".region--intraday",
	}
	performanceSelectors = []string{
		"section[data-module='Performance']",
		"div[class*=performance]",
		"table[class*=performance]",
	}
	competitorSelectors = []string{
		"[data-module='Competitors']",
		"[data-testid='competitors']",
		".peers",
		".element--peers",
	}
	companyNameSelectors = []string{
		"[data-module='Quote'] h1",
		"h1.company__name",
		"[data-automation-id='quote-header'] h1",
		"h1",
	}
)

func firstMatch(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if s := doc.Find(sel); s.Length() > 0 {
			return s.First()
		}
	}
	return nil
}

// parseOverview extracts whatever the page offers. If none of the expected
// modules exist at all, the page is not a stock overview and the fetch is a
// hard structure failure rather than an empty success.
func parseOverview(doc *goquery.Document) (*Overview, error) {
	quote := firstMatch(doc, quoteSelectors)
	perf := firstMatch(doc, performanceSelectors)
	comp := firstMatch(doc, competitorSelectors)

	if quote == nil && perf == nil && comp == nil {
		return nil, &Error{Kind: ErrorKindStructureMissing, Message: "no quote, performance or competitors module found"}
	}

	out := &Overview{CompanyName: parseCompanyName(doc)}
	if perf != nil {
		out.Performance = parsePerformance(perf)
	}
	if comp != nil {
		out.Competitors = parseCompetitors(comp)
	}
	return out, nil
}

func parseCompanyName(doc *goquery.Document) string {
	for _, sel := range companyNameSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			if name := strings.TrimSpace(s.Text()); name != "" {
				return name
			}
		}
	}
	return ""
}

func parsePerformance(container *goquery.Selection) Performance {
	return Performance{
		FiveDays:    findPeriodValue(container, "5D"),
		OneMonth:    findPeriodValue(container, "1M"),
		ThreeMonths: findPeriodValue(container, "3M"),
		YearToDate:  findPeriodValue(container, "YTD"),
		OneYear:     findPeriodValue(container, "1Y"),
	}
}

// findPeriodValue locates the element whose whole text is the period label
// and reads the adjacent value, trying the parent row when the label has no
// direct sibling.
func findPeriodValue(container *goquery.Selection, label string) *float64 {
	var out *float64
	container.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) != label {
			return true
		}
		value := strings.TrimSpace(s.Next().Text())
		if value == "" {
			value = strings.TrimSpace(s.Parent().Next().Text())
		}
		if v := ParsePercent(value); v != nil {
			out = v
			return false
		}
		return true
	})
	return out
}

func parseCompetitors(container *goquery.Selection) []Competitor {
	rows := container.Find("tr")
	if rows.Length() < 2 {
		rows = container.Find("li")
	}

	out := []Competitor{}
	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		link := row.Find("a[href*='/investing/stock/']").First()
		name := strings.TrimSpace(link.Text())
		if name == "" {
			return true
		}

		competitor := Competitor{Name: name}
		// market cap conventionally sits in the row's last cell
		cell := row.Find("td, span").Last()
		if cap := ParseMoney(cell.Text()); cap != nil {
			competitor.MarketCap = cap
		}

		out = append(out, competitor)
		return len(out) < maxCompetitors
	})
	return out
}

var numberRe = regexp.MustCompile(`[+-]?\d+(?:\.\d+)?`)

// ParsePercent reads a percentage like "-3.21%" into its numeric value.
// Returns nil when no number is present.
func ParsePercent(text string) *float64 {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	m := numberRe.FindString(s)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseMoney reads a market-cap string like "$2.95T" or "€421.3B" into a
// currency code and absolute value. Currency defaults to USD.
func ParseMoney(text string) *Money {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "US$", "$")
	s = strings.ReplaceAll(s, "USD", "$")

	currency := "USD"
	switch {
	case strings.Contains(s, "€"):
		currency = "EUR"
	case strings.Contains(s, "£"):
		currency = "GBP"
	}

	s = strings.ReplaceAll(s, ",", "")
	m := numberRe.FindString(s)
	if m == "" {
		return nil
	}
	value, err := decimal.NewFromString(m)
	if err != nil {
		return nil
	}

	if idx := strings.Index(s, m) + len(m); idx < len(s) {
		switch unicode.ToLower(rune(s[idx])) {
		case 'k':
			value = value.Mul(decimal.NewFromInt(1_000))
		case 'm':
			value = value.Mul(decimal.NewFromInt(1_000_000))
		case 'b':
			value = value.Mul(decimal.NewFromInt(1_000_000_000))
		case 't':
			value = value.Mul(decimal.NewFromInt(1_000_000_000_000))
		}
	}

	return &Money{Currency: currency, Value: value}
}
