// Package progression holds the pure progression math: level and tier derived
// from XP, the coin reward table and stat clamping. No I/O, no side effects.
package progression

import "levelup_backend/internal/domain"

// Tier - ранг пользователя, производный от XP
type Tier string

const (
	TierD Tier = "D"
	TierC Tier = "C"
	TierB Tier = "B"
	TierA Tier = "A"
	TierS Tier = "S"
)

// XP required per level. Level = xp/LevelStep + 1.
const LevelStep = 100

// Stat bounds applied when quest rewards are granted.
const (
	StatMin = 1
	StatMax = 100
)

// tierThresholds are ascending; the tier is the highest threshold <= xp.
var tierThresholds = []struct {
	MinXP int64
	Tier  Tier
}{
	{0, TierD},
	{500, TierC},
	{1500, TierB},
	{3500, TierA},
	{6000, TierS},
}

var coinRewards = map[domain.Difficulty]int64{
	domain.DifficultyEasy:   10,
	domain.DifficultyNormal: 25,
	domain.DifficultyHard:   50,
	domain.DifficultyEpic:   100,
}

// LevelForXP возвращает уровень для заданного XP.
// Отрицательный XP трактуется как 0.
func LevelForXP(xp int64) int {
	if xp < 0 {
		xp = 0
	}
	return int(xp/LevelStep) + 1
}

// TierForXP возвращает высший ранг, чей порог не превышает xp
func TierForXP(xp int64) Tier {
	if xp < 0 {
		xp = 0
	}
	tier := TierD
	for _, t := range tierThresholds {
		if xp >= t.MinXP {
			tier = t.Tier
		}
	}
	return tier
}

// Rank returns the ordinal of the tier, D=0 .. S=4. Unknown tiers rank as D.
func (t Tier) Rank() int {
	switch t {
	case TierC:
		return 1
	case TierB:
		return 2
	case TierA:
		return 3
	case TierS:
		return 4
	}
	return 0
}

// NextThreshold returns the XP needed for the next tier, or 0 if already S.
func NextThreshold(xp int64) int64 {
	if xp < 0 {
		xp = 0
	}
	for _, t := range tierThresholds {
		if xp < t.MinXP {
			return t.MinXP
		}
	}
	return 0
}

// CoinRewardForDifficulty - фиксированная таблица монетных наград.
// Неизвестная сложность считается normal.
func CoinRewardForDifficulty(d domain.Difficulty) int64 {
	if reward, ok := coinRewards[d]; ok {
		return reward
	}
	return coinRewards[domain.DifficultyNormal]
}

// ClampStat clamps a stat value into [StatMin, StatMax].
func ClampStat(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}

// ApplyStatDeltas applies per-stat deltas additively with clamping and
// returns the per-stat changes actually applied (after clamping).
func ApplyStatDeltas(stats *domain.Stats, deltas map[string]int) map[string]int {
	applied := make(map[string]int, len(deltas))
	for name, delta := range deltas {
		cur, ok := stats.Get(name)
		if !ok {
			continue
		}
		next := ClampStat(cur + delta)
		if next != cur {
			applied[name] = next - cur
			stats.Set(name, next)
		}
	}
	return applied
}
