package config

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var keyCaser = cases.Upper(language.English)

// NormalizeKey upper-cases and trims a user-supplied mainstat/focus key so
// that "atk%", " ATK% ", "Atk%" all resolve to the same MainStatKey. Mirrors
// the teacher's rarity-string normalisation in internal/config (formerly
// rarity.go), now applied to build keys instead of card rarities.
func NormalizeKey(raw string) string {
	return keyCaser.String(strings.TrimSpace(raw))
}

// NormalizeMainStat normalizes a raw build mainstat string into a
// MainStatKey, or "" if it does not match a known key after normalisation.
func NormalizeMainStat(raw string) (MainStatKey, bool) {
	norm := NormalizeKey(raw)
	for _, k := range []MainStatKey{
		MainStatHPFlat, MainStatHPPct, MainStatATKFlat, MainStatATKPct,
		MainStatDEFFlat, MainStatDEFPct, MainStatSPD, MainStatCritRate,
		MainStatCritDmg, MainStatResist, MainStatAccuracy,
	} {
		if string(k) == norm {
			return k, true
		}
	}
	return "", false
}
