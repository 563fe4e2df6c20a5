package article

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/araddon/dateparse"
)

// PeriodUnknown is the bucket for articles whose date could not be parsed.
const PeriodUnknown = "unknown"

var yearPattern = regexp.MustCompile(`(20\d{2})`)

// arabicMonths maps both the Gulf transliterations and the Levantine month
// names used on the site to zero-padded month numbers.
var arabicMonths = []struct {
	name string
	num  string
}{
	{"كانون الثاني", "01"},
	{"تشرين الأول", "10"},
	{"تشرين الثاني", "11"},
	{"كانون الأول", "12"},
	{"شباط", "02"},
	{"آذار", "03"},
	{"نيسان", "04"},
	{"أيار", "05"},
	{"حزيران", "06"},
	{"تموز", "07"},
	{"آب", "08"},
	{"أيلول", "09"},
	{"يناير", "01"},
	{"فبراير", "02"},
	{"مارس", "03"},
	{"أبريل", "04"},
	{"مايو", "05"},
	{"يونيو", "06"},
	{"يوليو", "07"},
	{"أغسطس", "08"},
	{"سبتمبر", "09"},
	{"أكتوبر", "10"},
	{"نوفمبر", "11"},
	{"ديسمبر", "12"},
}

// ParsePeriod derives the YYYY-MM calendar bucket from a free-text
// publication date. Arabic month names are tried first, then a generic
// date parse for ISO and English forms. Unparseable dates land in the
// "unknown" bucket instead of failing.
//
// Periods are compared lexicographically throughout the pipeline, which
// only works because years are four digits and months zero-padded.
func ParsePeriod(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return PeriodUnknown
	}

	if year := yearPattern.FindString(date); year != "" {
		month := "01"
		for _, m := range arabicMonths {
			if strings.Contains(date, m.name) {
				month = m.num
				break
			}
		}
		if month == "01" && !containsArabicMonth(date) {
			if t, err := dateparse.ParseAny(date); err == nil {
				return t.Format("2006-01")
			}
		}
		return fmt.Sprintf("%s-%s", year, month)
	}

	if t, err := dateparse.ParseAny(date); err == nil {
		return t.Format("2006-01")
	}
	return PeriodUnknown
}

func containsArabicMonth(date string) bool {
	for _, m := range arabicMonths {
		if strings.Contains(date, m.name) {
			return true
		}
	}
	return false
}

// Period returns the article's calendar bucket.
func (a Article) Period() string {
	return ParsePeriod(a.Date)
}
