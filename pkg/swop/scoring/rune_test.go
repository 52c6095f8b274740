package scoring

import (
	"testing"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
)

func TestRuneQualityPenalisesUnforcedFlatMainstatOnEvenSlot(t *testing.T) {
	r := domain.Rune{SlotNo: 2, MainEffect: domain.EffectValue{EffectID: config.EffectHPFlat, Value: 100}}
	acc := domain.AccountData{}

	unforced := RuneQuality(r, 1, domain.ModeSiege, acc, false, domain.ArchetypeUnknown)
	forced := RuneQuality(r, 1, domain.ModeSiege, acc, true, domain.ArchetypeUnknown)

	if forced-unforced != -config.EvenSlotFlatMainstatPenalty {
		t.Fatalf("forced-unforced = %d, want %d", forced-unforced, -config.EvenSlotFlatMainstatPenalty)
	}
}

func TestRuneQualityAddsEquippedBonus(t *testing.T) {
	r := domain.Rune{RuneID: 5, SlotNo: 1}
	acc := domain.AccountData{GuildRuneEquip: map[int64][]int64{1: {5}}}

	equipped := RuneQuality(r, 1, domain.ModeSiege, acc, false, domain.ArchetypeUnknown)
	unequipped := RuneQuality(r, 2, domain.ModeSiege, acc, false, domain.ArchetypeUnknown)

	if equipped-unequipped != config.EquippedOwnerBonus {
		t.Fatalf("equipped-unequipped = %d, want %d", equipped-unequipped, config.EquippedOwnerBonus)
	}
}

func TestRuneQualityDefensiveAmplifiesSurvivalStats(t *testing.T) {
	r := domain.Rune{
		SlotNo:     1,
		MainEffect: domain.EffectValue{EffectID: config.EffectHPPct, Value: 10},
	}
	acc := domain.AccountData{}

	offense := RuneQuality(r, 1, domain.ModeSiege, acc, false, domain.ArchetypeAttack)
	defensive := RuneQuality(r, 1, domain.ModeSiege, acc, false, domain.ArchetypeHP)

	if defensive <= offense {
		t.Fatalf("defensive score %d should exceed offense score %d for HP%%", defensive, offense)
	}
}

func TestRuneEfficiencyZeroWithoutSubEffects(t *testing.T) {
	if got := RuneEfficiency(domain.Rune{}, EfficiencyCurrent); got != 0 {
		t.Fatalf("RuneEfficiency() = %v, want 0", got)
	}
}

func TestRoundedEfficiencyPctRoundsHalfToEven(t *testing.T) {
	// 12.5 and 13.5 are both exact ties; half-to-even rounds each to its
	// nearest even integer (12, 14), not up every time like int(x+0.5) did.
	cases := []struct {
		eff  float64
		want int
	}{
		{0.125, 12},
		{0.135, 14},
	}
	for _, c := range cases {
		if got := RoundedEfficiencyPct(c.eff); got != c.want {
			t.Fatalf("RoundedEfficiencyPct(%v) = %d, want %d", c.eff, got, c.want)
		}
	}
}

func TestRuneEfficiencyLegendMaxUsesMoreRollsThanHeroMax(t *testing.T) {
	r := domain.Rune{
		UpgradeLevel: 15,
		SubEffects:   []domain.SubEffect{{EffectID: config.EffectSPD, BaseValue: 6}},
	}
	hero := RuneEfficiency(r, EfficiencyHeroMax)
	legend := RuneEfficiency(r, EfficiencyLegendMax)
	if legend >= hero {
		t.Fatalf("legend-max efficiency %v should be lower than hero-max %v for the same rune", legend, hero)
	}
}
