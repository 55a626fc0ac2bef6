package progression

import (
	"testing"

	"levelup_backend/internal/domain"
)

func TestTierForXP_Thresholds(t *testing.T) {
	cases := []struct {
		xp   int64
		want Tier
	}{
		{0, TierD},
		{499, TierD},
		{500, TierC},
		{1499, TierC},
		{1500, TierB},
		{3499, TierB},
		{3500, TierA},
		{5999, TierA},
		{6000, TierS},
		{1000000, TierS},
		{-50, TierD},
	}

	for _, tc := range cases {
		if got := TierForXP(tc.xp); got != tc.want {
			t.Errorf("TierForXP(%d) = %s, want %s", tc.xp, got, tc.want)
		}
	}
}

func TestTierForXP_Monotonic(t *testing.T) {
	prev := TierForXP(0)
	for xp := int64(0); xp <= 7000; xp += 7 {
		cur := TierForXP(xp)
		if cur.Rank() < prev.Rank() {
			t.Fatalf("tier dropped from %s to %s at xp=%d", prev, cur, xp)
		}
		prev = cur
	}
}

func TestLevelForXP(t *testing.T) {
	if got := LevelForXP(0); got != 1 {
		t.Errorf("LevelForXP(0) = %d, want 1", got)
	}
	if got := LevelForXP(99); got != 1 {
		t.Errorf("LevelForXP(99) = %d, want 1", got)
	}
	if got := LevelForXP(100); got != 2 {
		t.Errorf("LevelForXP(100) = %d, want 2", got)
	}
	if got := LevelForXP(-10); got != 1 {
		t.Errorf("LevelForXP(-10) = %d, want 1", got)
	}

	// strictly non-decreasing, always positive
	prev := 0
	for xp := int64(0); xp <= 5000; xp += 13 {
		lvl := LevelForXP(xp)
		if lvl < 1 {
			t.Fatalf("LevelForXP(%d) = %d, want >= 1", xp, lvl)
		}
		if lvl < prev {
			t.Fatalf("level dropped at xp=%d", xp)
		}
		prev = lvl
	}
}

func TestCoinRewardForDifficulty(t *testing.T) {
	cases := map[domain.Difficulty]int64{
		domain.DifficultyEasy:   10,
		domain.DifficultyNormal: 25,
		domain.DifficultyHard:   50,
		domain.DifficultyEpic:   100,
	}
	for d, want := range cases {
		if got := CoinRewardForDifficulty(d); got != want {
			t.Errorf("CoinRewardForDifficulty(%s) = %d, want %d", d, got, want)
		}
	}

	// unknown difficulty falls back to normal
	if got := CoinRewardForDifficulty("nightmare"); got != 25 {
		t.Errorf("CoinRewardForDifficulty(unknown) = %d, want 25", got)
	}
}

func TestNextThreshold(t *testing.T) {
	if got := NextThreshold(0); got != 500 {
		t.Errorf("NextThreshold(0) = %d, want 500", got)
	}
	if got := NextThreshold(5999); got != 6000 {
		t.Errorf("NextThreshold(5999) = %d, want 6000", got)
	}
	if got := NextThreshold(6000); got != 0 {
		t.Errorf("NextThreshold(6000) = %d, want 0", got)
	}
}

func TestApplyStatDeltas_Clamping(t *testing.T) {
	stats := domain.Stats{Strength: 98, Intelligence: 10, Charisma: 1}

	applied := ApplyStatDeltas(&stats, map[string]int{
		"strength":     5,   // clamps at 100
		"intelligence": 3,   // plain add
		"charisma":     -10, // clamps at 1, no change
		"luck":         7,   // unknown stat ignored
	})

	if stats.Strength != 100 {
		t.Errorf("strength = %d, want 100", stats.Strength)
	}
	if applied["strength"] != 2 {
		t.Errorf("applied strength delta = %d, want 2", applied["strength"])
	}
	if stats.Intelligence != 13 || applied["intelligence"] != 3 {
		t.Errorf("intelligence = %d (applied %d), want 13 (3)", stats.Intelligence, applied["intelligence"])
	}
	if stats.Charisma != 1 {
		t.Errorf("charisma = %d, want 1", stats.Charisma)
	}
	if _, ok := applied["charisma"]; ok {
		t.Error("charisma delta should not be reported when clamped to no-op")
	}
	if _, ok := applied["luck"]; ok {
		t.Error("unknown stat should be ignored")
	}
}
