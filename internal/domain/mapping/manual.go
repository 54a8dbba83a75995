package mapping

import (
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

// builtinManualMappings is the curated provider-name -> canonical-name table,
// grouped by competition. Keys are the exact provider strings, case included;
// lookups against this table are deliberately not normalized.
var builtinManualMappings = map[string]string{
	// Premier League
	"Manchester United":       "Manchester Utd",
	"Manchester City":         "Manchester City",
	"Tottenham Hotspur":       "Tottenham",
	"West Ham United":         "West Ham",
	"Newcastle United":        "Newcastle",
	"Aston Villa":             "Aston Villa",
	"Brighton & Hove Albion":  "Brighton",
	"Crystal Palace":          "Crystal Palace",
	"Wolverhampton Wanderers": "Wolves",
	"Sheffield United":        "Sheffield Utd",
	"Leicester City":          "Leicester",
	"Nottingham Forest":       "Nottm Forest",

	// La Liga
	"Real Madrid":      "Real Madrid",
	"FC Barcelona":     "Barcelona",
	"Atletico Madrid":  "Atl Madrid",
	"Real Betis":       "Real Betis",
	"Real Sociedad":    "Real Sociedad",
	"Athletic Club":    "Athletic Bilbao",
	"Villarreal CF":    "Villarreal",
	"Valencia CF":      "Valencia",
	"Sevilla FC":       "Sevilla",
	"Real Mallorca":    "Mallorca",
	"Deportivo Alaves": "Deportivo Alavés",
	"Cadiz CF":         "Cádiz",
	"Celta Vigo":       "Celta Vigo",

	// Bundesliga
	"Bayern Munich":            "Bayern Munich",
	"Borussia Dortmund":        "Dortmund",
	"RB Leipzig":               "RB Leipzig",
	"Bayer Leverkusen":         "Bayer Leverkusen",
	"Eintracht Frankfurt":      "E. Frankfurt",
	"Borussia Monchengladbach": "B. Monchengladbach",
	"VfB Stuttgart":            "Stuttgart",
	"SC Freiburg":              "Freiburg",
	"TSG Hoffenheim":           "Hoffenheim",
	"1. FC Koln":               "FC Köln",
	"Hertha Berlin":            "Hertha",
	"VfL Wolfsburg":            "Wolfsburg",

	// Serie A
	"Juventus":   "Juventus",
	"AC Milan":   "AC Milan",
	"Inter":      "Inter Milan",
	"AS Roma":    "AS Roma",
	"SSC Napoli": "Napoli",
	"Lazio":      "Lazio",
	"Atalanta":   "Atalanta",
	"Fiorentina": "Fiorentina",
	"Torino":     "Torino",
	"Bologna":    "Bologna",
	"Udinese":    "Udinese",
	"Sassuolo":   "Sassuolo",

	// Ligue 1
	"Paris Saint Germain":  "PSG",
	"Olympique Marseille":  "Marseille",
	"Olympique Lyonnais":   "Lyon",
	"AS Monaco":            "Monaco",
	"Lille":                "Lille",
	"Rennes":               "Rennes",
	"OGC Nice":             "Nice",
	"RC Strasbourg Alsace": "Strasbourg",
	"Montpellier":          "Montpellier",
}

// LoadManualMappings builds the manual table from the builtin curated entries,
// merged with the optional JSON override file at path. Override entries win on
// key collision. An empty path skips the override step.
func LoadManualMappings(path string) (map[string]string, error) {
	out := make(map[string]string, len(builtinManualMappings))
	for k, v := range builtinManualMappings {
		out[k] = v
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return out, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return out, crerr.Wrapf(err, "read manual mappings override file %s", path)
	}

	var overrides map[string]string
	if err := sonic.Unmarshal(raw, &overrides); err != nil {
		return out, crerr.Wrapf(err, "parse manual mappings override file %s", path)
	}

	for k, v := range overrides {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}

	return out, nil
}
