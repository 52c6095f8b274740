package config

import "sort"

// SpeedTickMinSPD is the closed-form tick→min-combat-SPD breakpoint table
// (spec §6.5), transcribed from original_source/app/domain/speed_ticks.py.
var SpeedTickMinSPD = map[int]int{
	11: 130,
	10: 143,
	9:  159,
	8:  179,
	7:  205,
	6:  239,
	5:  286,
	4:  358,
	3:  477,
}

// LowLeoTick is the special single bucket whose lower SPD bound is
// unpublished (spec §9 Open Question 1) and whose upper bound is capped at
// combat SPD 129.
const LowLeoTick = 12

// LowLeoTickMaxSPD is the inclusive upper SPD bound for LowLeoTick.
const LowLeoTickMaxSPD = 129

// AllowedSPDTicks returns the configured tick buckets, slowest (highest
// number) first.
func AllowedSPDTicks() []int {
	ticks := make([]int, 0, len(SpeedTickMinSPD))
	for t := range SpeedTickMinSPD {
		ticks = append(ticks, t)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ticks)))
	return ticks
}

// MinSPDForTick returns the inclusive lower combat-SPD bound for a tick
// bucket. Returns 0 (open-lower) for LowLeoTick and for unknown ticks.
func MinSPDForTick(tick int) int {
	if tick == LowLeoTick {
		return 0
	}
	return SpeedTickMinSPD[tick]
}

// MaxSPDForTick returns the inclusive upper combat-SPD bound for a tick
// bucket: one less than the next faster tick's floor, or a large sentinel
// for the fastest configured bucket. LowLeoTick is capped at 129.
func MaxSPDForTick(tick int) int {
	if tick == LowLeoTick {
		return LowLeoTickMaxSPD
	}
	if _, ok := SpeedTickMinSPD[tick]; !ok {
		return 0
	}
	fasterMin, ok := SpeedTickMinSPD[tick-1]
	if !ok || fasterMin <= 0 {
		return 1_000_000_000
	}
	return fasterMin - 1
}
