package solver

import (
	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
)

// minStatFailure reports the first min-stat floor a stat line fails to
// reach, for the structural diagnostic of spec §4.3.3.
func minStatFailure(min domain.MinStats, st StatTotals) (stat string, threshold int, ok bool) {
	checks := []struct {
		name      string
		threshold *int
		actual    int
	}{
		{"HP", min.HP, st.HP},
		{"HP_NO_BASE", min.HPNoBase, st.HPNoBase},
		{"ATK", min.ATK, st.ATK},
		{"ATK_NO_BASE", min.ATKNoBase, st.ATKNoBase},
		{"DEF", min.DEF, st.DEF},
		{"DEF_NO_BASE", min.DEFNoBase, st.DEFNoBase},
		{"SPD", min.SPD, st.RawSPD},
		{"SPD_NO_BASE", min.SPDNoBase, st.RawSPDNoBase},
		{"CRIT_RATE", min.CritRate, st.CritRate},
		{"CRIT_DMG", min.CritDmg, st.CritDmg},
		{"RES", min.Resist, st.Resist},
		{"ACC", min.Accuracy, st.Accuracy},
	}
	for _, c := range checks {
		if c.threshold != nil && c.actual < *c.threshold {
			return c.name, *c.threshold, false
		}
	}
	return "", 0, true
}

// speedWithinBounds checks the build's tick bucket, the caller-imposed
// turn-order/opening floors and caps, and returns false with the violated
// bound's name on the first failure.
func speedWithinBounds(build domain.Build, st StatTotals, ext External) (reason string, ok bool) {
	if build.SPDTick != 0 {
		if st.CombatSPD < config.MinSPDForTick(build.SPDTick) {
			return "spd_tick_min", false
		}
		if max := config.MaxSPDForTick(build.SPDTick); max > 0 && st.CombatSPD > max {
			return "spd_tick_max", false
		}
	}
	if ext.MinFinalSPD != nil && st.CombatSPD < *ext.MinFinalSPD {
		return "min_final_spd", false
	}
	if ext.MaxFinalSPD != nil && st.CombatSPD > *ext.MaxFinalSPD {
		return "max_final_spd", false
	}
	return "", true
}

// mainstatAllowed reports whether a rune's main-effect key is acceptable
// for a build-restricted slot. An empty allowed list means the build does
// not restrict the slot (spec §4.3.1).
func mainstatAllowed(r domain.Rune, allowed []config.MainStatKey) bool {
	if len(allowed) == 0 {
		return true
	}
	key, ok := config.MainStatKeyForEffect(r.MainEffect.EffectID)
	if !ok {
		return false
	}
	for _, k := range allowed {
		if k == key {
			return true
		}
	}
	return false
}

// artifactFilterAllowed applies a build's artifact_focus/artifact_substats
// restriction. An empty filter admits every artifact of the type.
func artifactFilterAllowed(a domain.Artifact, filter domain.ArtifactFilter) bool {
	if len(filter.Focus) > 0 {
		key, ok := config.MainStatKeyForEffect(a.PriEffect.EffectID)
		if !ok || !containsMainStatKey(filter.Focus, key) {
			return false
		}
	}
	for _, required := range filter.Substats {
		if !a.HasSubEffect(required) {
			return false
		}
	}
	return true
}

func containsMainStatKey(keys []config.MainStatKey, key config.MainStatKey) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
