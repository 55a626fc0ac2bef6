package domain

import (
	"testing"
	"time"
)

func TestStats_GetSet(t *testing.T) {
	var s Stats
	for i, name := range StatNames {
		s.Set(name, i+1)
	}
	for i, name := range StatNames {
		v, ok := s.Get(name)
		if !ok {
			t.Fatalf("Get(%q) reported unknown", name)
		}
		if v != i+1 {
			t.Errorf("Get(%q) = %d, want %d", name, v, i+1)
		}
	}

	if _, ok := s.Get("luck"); ok {
		t.Error("unknown stat name must not resolve")
	}
	before := s
	s.Set("luck", 99)
	if s != before {
		t.Error("Set with unknown name must be a no-op")
	}
}

func TestUserPatch_Empty(t *testing.T) {
	if !(UserPatch{}).Empty() {
		t.Error("zero patch must be empty")
	}
	v := 5
	if (UserPatch{Willpower: &v}).Empty() {
		t.Error("patch with a stat must not be empty")
	}
	name := "newname"
	if (UserPatch{Username: &name}).Empty() {
		t.Error("patch with username must not be empty")
	}
}

func TestQuest_Expired(t *testing.T) {
	now := time.Now()

	q := Quest{}
	if q.Expired(now) {
		t.Error("quest without expiry never expires")
	}

	past := now.Add(-time.Hour)
	q.ExpiresAt = &past
	if !q.Expired(now) {
		t.Error("past expiry must report expired")
	}

	future := now.Add(time.Hour)
	q.ExpiresAt = &future
	if q.Expired(now) {
		t.Error("future expiry must not report expired")
	}
}
