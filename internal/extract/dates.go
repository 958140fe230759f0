package extract

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
)

var (
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	writtenDateRe = regexp.MustCompile(`\b(\d{1,2})\s+(?:de\s+)?(janeiro|fevereiro|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro|january|february|march|april|may|june|july|august|september|october|november|december)(?:\s+(?:de\s+)?(\d{4}))?`)
	nextWeekRe    = regexp.MustCompile(`\b(?:proxima semana|semana que vem|next week)\b`)
	nextMonthRe   = regexp.MustCompile(`\b(?:proximo mes|mes que vem|next month)\b`)
	// a bare month only counts when it opens the message or follows a period
	// preposition, so month words inside city names ("rio de janeiro") are
	// never read as travel periods
	bareMonthRe = regexp.MustCompile(`(?:^|\b(?:em|in|durante)\s+)(janeiro|fevereiro|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro|january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	weekdayRe     = regexp.MustCompile(`\b(?:proxima |proximo |next |na |no )?(segunda|terca|quarta|quinta|sexta|sabado|domingo|monday|tuesday|wednesday|thursday|friday|saturday|sunday)(?:-feira)?\b`)
	todayRe       = regexp.MustCompile(`\b(?:hoje|today)\b`)
	tomorrowRe    = regexp.MustCompile(`\b(?:amanha|tomorrow)\b`)
)

var monthNumbers = map[string]time.Month{
	"janeiro": time.January, "january": time.January,
	"fevereiro": time.February, "february": time.February,
	"marco": time.March, "march": time.March,
	"abril": time.April, "april": time.April,
	"maio": time.May, "may": time.May,
	"junho": time.June, "june": time.June,
	"julho": time.July, "july": time.July,
	"agosto": time.August, "august": time.August,
	"setembro": time.September, "september": time.September,
	"outubro": time.October, "october": time.October,
	"novembro": time.November, "november": time.November,
	"dezembro": time.December, "december": time.December,
}

var weekdayNumbers = map[string]time.Weekday{
	"domingo": time.Sunday, "sunday": time.Sunday,
	"segunda": time.Monday, "monday": time.Monday,
	"terca": time.Tuesday, "tuesday": time.Tuesday,
	"quarta": time.Wednesday, "wednesday": time.Wednesday,
	"quinta": time.Thursday, "thursday": time.Thursday,
	"sexta": time.Friday, "friday": time.Friday,
	"sabado": time.Saturday, "saturday": time.Saturday,
}

// extractDates applies the date pattern families in priority order: explicit
// dates first, then single relative days, then flexible periods. The first
// explicit date is the departure; a later, chronologically greater date is
// the return. A period sets the flexible range and, when the message gave no
// explicit departure, the departure defaults to the range start.
func (e *Extractor) extractDates(text string, q *domain.TravelQuery) {
	today := e.today()

	explicit := e.explicitDates(text, today)
	if len(explicit) == 0 {
		if d, ok := e.relativeDay(text, today); ok {
			explicit = []time.Time{d}
		}
	}

	if len(explicit) > 0 {
		q.DepartureDate = explicit[0]
		q.Flexible = false
		q.DateRangeStart = time.Time{}
		q.DateRangeEnd = time.Time{}
		for _, d := range explicit[1:] {
			if d.After(q.DepartureDate) {
				q.ReturnDate = d
				break
			}
		}
	}

	start, end, ok := e.period(text, today, len(explicit) > 0)
	if !ok {
		return
	}
	q.Flexible = true
	q.DateRangeStart = start
	q.DateRangeEnd = end
	if len(explicit) == 0 {
		q.DepartureDate = start
		q.ReturnDate = time.Time{}
	}
}

// explicitDates returns every DD/MM[/YYYY] and "DD de <month> [de YYYY]"
// date in text order. Dates without a year roll forward to their next
// occurrence.
func (e *Extractor) explicitDates(text string, today time.Time) []time.Time {
	type hit struct {
		pos  int
		date time.Time
	}
	var hits []hit

	for _, m := range numericDateRe.FindAllStringSubmatchIndex(text, -1) {
		day, _ := strconv.Atoi(text[m[2]:m[3]])
		month, _ := strconv.Atoi(text[m[4]:m[5]])
		year := 0
		if m[6] >= 0 {
			year, _ = strconv.Atoi(text[m[6]:m[7]])
			if year < 100 {
				year += 2000
			}
		}
		if d, ok := buildDate(day, time.Month(month), year, today); ok {
			hits = append(hits, hit{pos: m[0], date: d})
		}
	}

	for _, m := range writtenDateRe.FindAllStringSubmatchIndex(text, -1) {
		day, _ := strconv.Atoi(text[m[2]:m[3]])
		month := monthNumbers[text[m[4]:m[5]]]
		year := 0
		if m[6] >= 0 {
			year, _ = strconv.Atoi(text[m[6]:m[7]])
		}
		if d, ok := buildDate(day, month, year, today); ok {
			hits = append(hits, hit{pos: m[0], date: d})
		}
	}

	// keep text order across both families
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	dates := make([]time.Time, 0, len(hits))
	for _, h := range hits {
		dates = append(dates, h.date)
	}
	return dates
}

// relativeDay resolves today/tomorrow/weekday expressions to a fixed date
func (e *Extractor) relativeDay(text string, today time.Time) (time.Time, bool) {
	if todayRe.MatchString(text) {
		return today, true
	}
	if tomorrowRe.MatchString(text) {
		return today.AddDate(0, 0, 1), true
	}
	if m := weekdayRe.FindStringSubmatch(text); m != nil {
		target := weekdayNumbers[m[1]]
		days := int(target-today.Weekday()+7) % 7
		if days == 0 {
			days = 7
		}
		return today.AddDate(0, 0, days), true
	}
	return time.Time{}, false
}

// period resolves flexible expressions to a [start, end] span. A bare month
// name only counts when the message had no explicit date, otherwise "13 de
// julho" would also read as the whole of July.
func (e *Extractor) period(text string, today time.Time, hadExplicit bool) (time.Time, time.Time, bool) {
	if nextWeekRe.MatchString(text) {
		// upcoming Monday through Sunday
		days := int(time.Monday-today.Weekday()+7) % 7
		if days == 0 {
			days = 7
		}
		start := today.AddDate(0, 0, days)
		return start, start.AddDate(0, 0, 6), true
	}
	if nextMonthRe.MatchString(text) {
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).AddDate(0, 1, 0)
		return start, start.AddDate(0, 1, -1), true
	}
	if hadExplicit {
		return time.Time{}, time.Time{}, false
	}
	if m := bareMonthRe.FindStringSubmatch(text); m != nil {
		month := monthNumbers[m[1]]
		year := today.Year()
		if month < today.Month() {
			year++
		}
		start := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
		return start, start.AddDate(0, 1, -1), true
	}
	return time.Time{}, time.Time{}, false
}

// buildDate validates the day/month pair and rolls year-less dates forward
// to their next occurrence
func buildDate(day int, month time.Month, year int, today time.Time) (time.Time, bool) {
	if day < 1 || day > 31 || month < time.January || month > time.December {
		return time.Time{}, false
	}
	if year == 0 {
		year = today.Year()
		d := time.Date(year, month, day, 0, 0, 0, 0, today.Location())
		if d.Before(today) {
			d = d.AddDate(1, 0, 0)
		}
		if d.Day() != day {
			return time.Time{}, false
		}
		return d, true
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, today.Location())
	if d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func (e *Extractor) today() time.Time {
	now := e.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
