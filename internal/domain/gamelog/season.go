package gamelog

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// SeasonFromDate maps a YYYY-MM-DD game date to its season: games before
// August belong to the previous year's season.
func SeasonFromDate(date string) (int, bool) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return 0, false
	}
	if d.Month() < time.August {
		return d.Year() - 1, true
	}
	return d.Year(), true
}

// CurrentSeason is the season in progress on day: the league year rolls
// over in September.
func CurrentSeason(day time.Time) int {
	if day.Month() < time.September {
		return day.Year() - 1
	}
	return day.Year()
}
