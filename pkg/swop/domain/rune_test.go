package domain

import (
	"testing"

	"github.com/klauer/swop/internal/config"
)

func TestFlatSPDSumsAllContributors(t *testing.T) {
	r := Rune{
		RuneClass:    2,
		UpgradeLevel: 9,
		MainEffect:   EffectValue{EffectID: config.EffectSPD, Value: 5},
		PrefixEffect: &EffectValue{EffectID: config.EffectSPD, Value: 3},
		SubEffects: []SubEffect{
			{EffectID: config.EffectSPD, BaseValue: 4, GrindValue: 2},
			{EffectID: config.EffectHPPct, BaseValue: 10},
		},
	}
	if got := r.FlatSPD(); got != 5+3+4+2 {
		t.Fatalf("FlatSPD() = %d, want %d", got, 5+3+4+2)
	}
}

func TestFlatSPDProjectsMainStatPastPlus12(t *testing.T) {
	r := Rune{
		RuneClass:    5,
		UpgradeLevel: 12,
		MainEffect:   EffectValue{EffectID: config.EffectSPD, Value: 2},
	}
	got := r.FlatSPD()
	want := mainStatProjectedSPD[5]
	if got != want {
		t.Fatalf("FlatSPD() = %d, want projected value %d", got, want)
	}
}

func TestFlatSPDDoesNotProjectBelowPlus12(t *testing.T) {
	r := Rune{
		RuneClass:    5,
		UpgradeLevel: 11,
		MainEffect:   EffectValue{EffectID: config.EffectSPD, Value: 2},
	}
	if got := r.FlatSPD(); got != 2 {
		t.Fatalf("FlatSPD() = %d, want raw value 2", got)
	}
}

func TestHasSet(t *testing.T) {
	r := Rune{SetID: config.SetSwift}
	if !r.HasSet(config.SetSwift) {
		t.Fatal("HasSet(Swift) = false, want true")
	}
	if r.HasSet(config.SetViolent) {
		t.Fatal("HasSet(Violent) = true, want false")
	}
}
