package solver

import (
	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
)

// setOptionSatisfied reports whether chosenRunes cover option's required
// set pieces, allowing at most one missing piece across the whole option
// to be covered by a chosen Intangible rune. Intangible's own requirement
// (if the option names it) can never itself be satisfied by replacement
// (spec §3 Invariants, §4.3.1).
func setOptionSatisfied(chosenRunes []domain.Rune, option domain.SetOption) bool {
	counts := map[config.SetID]int{}
	for _, r := range chosenRunes {
		counts[r.SetID]++
	}

	namesIntangible := false
	for _, sid := range option.SetIDs {
		if sid == config.SetIntangible {
			namesIntangible = true
		}
	}

	remainingIntangible := counts[config.SetIntangible]
	if namesIntangible {
		required := config.SetRequiredPieces[config.SetIntangible]
		if counts[config.SetIntangible] < required {
			return false
		}
		remainingIntangible -= required
	}

	replacementUsed := false
	for _, sid := range option.SetIDs {
		if sid == config.SetIntangible {
			continue
		}
		required := config.SetRequiredPieces[sid]
		have := counts[sid]
		if have >= required {
			continue
		}
		missing := required - have
		if missing == 1 && !replacementUsed && remainingIntangible > 0 {
			replacementUsed = true
			remainingIntangible--
			continue
		}
		return false
	}
	return true
}
