package scraper

import "strings"

// Teams is the canonical vocabulary of all 30 NBA team names.
var Teams = []string{
	"Atlanta Hawks", "Boston Celtics", "Brooklyn Nets", "Charlotte Hornets",
	"Chicago Bulls", "Cleveland Cavaliers", "Dallas Mavericks", "Denver Nuggets",
	"Detroit Pistons", "Golden State Warriors", "Houston Rockets", "Indiana Pacers",
	"LA Clippers", "Los Angeles Lakers", "Memphis Grizzlies", "Miami Heat",
	"Milwaukee Bucks", "Minnesota Timberwolves", "New Orleans Pelicans", "New York Knicks",
	"Oklahoma City Thunder", "Orlando Magic", "Philadelphia 76ers", "Phoenix Suns",
	"Portland Trail Blazers", "Sacramento Kings", "San Antonio Spurs", "Toronto Raptors",
	"Utah Jazz", "Washington Wizards",
}

type teamKeyword struct {
	keyword string
	team    string
}

// teamKeywords maps lowercase keywords to canonical team names. It is a
// slice, not a map: matching is first-keyword-wins in exactly this order
// (alphabetical by team, nickname variants adjacent), so results are
// reproducible when keywords overlap.
var teamKeywords = []teamKeyword{
	{"hawks", "Atlanta Hawks"},
	{"celtics", "Boston Celtics"},
	{"nets", "Brooklyn Nets"},
	{"hornets", "Charlotte Hornets"},
	{"bulls", "Chicago Bulls"},
	{"cavaliers", "Cleveland Cavaliers"},
	{"cavs", "Cleveland Cavaliers"},
	{"mavericks", "Dallas Mavericks"},
	{"mavs", "Dallas Mavericks"},
	{"nuggets", "Denver Nuggets"},
	{"pistons", "Detroit Pistons"},
	{"warriors", "Golden State Warriors"},
	{"rockets", "Houston Rockets"},
	{"pacers", "Indiana Pacers"},
	{"clippers", "LA Clippers"},
	{"lakers", "Los Angeles Lakers"},
	{"grizzlies", "Memphis Grizzlies"},
	{"heat", "Miami Heat"},
	{"bucks", "Milwaukee Bucks"},
	{"timberwolves", "Minnesota Timberwolves"},
	{"wolves", "Minnesota Timberwolves"},
	{"pelicans", "New Orleans Pelicans"},
	{"knicks", "New York Knicks"},
	{"thunder", "Oklahoma City Thunder"},
	{"magic", "Orlando Magic"},
	{"76ers", "Philadelphia 76ers"},
	{"sixers", "Philadelphia 76ers"},
	{"suns", "Phoenix Suns"},
	{"trail blazers", "Portland Trail Blazers"},
	{"blazers", "Portland Trail Blazers"},
	{"kings", "Sacramento Kings"},
	{"spurs", "San Antonio Spurs"},
	{"raptors", "Toronto Raptors"},
	{"jazz", "Utah Jazz"},
	{"wizards", "Washington Wizards"},
}

// MatchTeam returns the canonical team name for the first keyword found in
// the text, or "" when nothing matches.
func MatchTeam(text string) string {
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)
	for _, tk := range teamKeywords {
		if strings.Contains(lower, tk.keyword) {
			return tk.team
		}
	}
	return ""
}
