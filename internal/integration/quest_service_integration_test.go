package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"levelup_backend/internal/domain"
	"levelup_backend/internal/progression"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func connectDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

// createUser makes a fresh user with a unique name so reruns don't collide.
func createUser(t *testing.T, db *pgxpool.Pool, prefix string) *domain.User {
	t.Helper()
	ur := repository.NewUserRepository(db)
	u := &domain.User{
		Username: fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano()),
	}
	if err := ur.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createQuest(t *testing.T, db *pgxpool.Pool, userID int64, xp int64, stats map[string]int) *domain.Quest {
	t.Helper()
	qr := repository.NewQuestRepository(db)
	q := &domain.Quest{
		UserID:      userID,
		Title:       "integration quest",
		QuestType:   domain.QuestTypeDaily,
		Difficulty:  domain.DifficultyNormal,
		RewardXP:    xp,
		RewardCoins: progression.CoinRewardForDifficulty(domain.DifficultyNormal),
		RewardStats: stats,
	}
	if err := qr.Create(context.Background(), q); err != nil {
		t.Fatalf("create quest: %v", err)
	}
	return q
}

func TestQuestService_Complete_FreshUser(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db, "fresh")
	q := createQuest(t, db, u.ID, 50, map[string]int{domain.StatStamina: 1})

	svc := service.NewQuestService(db, service.NewActivityService(db))
	res, err := svc.Complete(ctx, q.ID, u.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if res.User.XP != u.XP+50 {
		t.Errorf("xp = %d, want %d", res.User.XP, u.XP+50)
	}
	if res.User.Coins != u.Coins+25 {
		t.Errorf("coins = %d, want %d", res.User.Coins, u.Coins+25)
	}
	if res.User.Level != progression.LevelForXP(res.User.XP) {
		t.Errorf("level = %d, want %d", res.User.Level, progression.LevelForXP(res.User.XP))
	}
	if res.User.Tier != string(progression.TierD) {
		t.Errorf("tier = %s, want D", res.User.Tier)
	}
	if res.TierUp {
		t.Error("unexpected tier up")
	}
	if got := res.StatDeltas[domain.StatStamina]; got != 1 {
		t.Errorf("stamina delta = %d, want 1", got)
	}

	// snapshot persisted, not just returned
	stored, err := repository.NewUserRepository(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.XP != res.User.XP || stored.Coins != res.User.Coins {
		t.Errorf("stored xp/coins = %d/%d, want %d/%d", stored.XP, stored.Coins, res.User.XP, res.User.Coins)
	}
}

func TestQuestService_Complete_Idempotent(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db, "idem")
	q := createQuest(t, db, u.ID, 40, nil)

	svc := service.NewQuestService(db, service.NewActivityService(db))
	first, err := svc.Complete(ctx, q.ID, u.ID)
	if err != nil {
		t.Fatalf("first complete: %v", err)
	}

	if _, err := svc.Complete(ctx, q.ID, u.ID); !errors.Is(err, service.ErrAlreadyCompleted) {
		t.Fatalf("second complete err = %v, want ErrAlreadyCompleted", err)
	}

	// награда не задвоилась
	stored, err := repository.NewUserRepository(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.XP != first.User.XP || stored.Coins != first.User.Coins {
		t.Errorf("rewards applied twice: xp/coins = %d/%d, want %d/%d",
			stored.XP, stored.Coins, first.User.XP, first.User.Coins)
	}
}

func TestQuestService_Complete_Concurrent(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db, "race")
	q := createQuest(t, db, u.ID, 60, nil)

	svc := service.NewQuestService(db, service.NewActivityService(db))

	const n = 2
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Complete(ctx, q.ID, u.ID)
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, service.ErrAlreadyCompleted):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != 1 {
		t.Fatalf("got %d successes and %d duplicates, want exactly 1/1", ok, dup)
	}

	stored, err := repository.NewUserRepository(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.XP != u.XP+60 {
		t.Errorf("xp = %d, want %d (reward granted once)", stored.XP, u.XP+60)
	}
}

func TestQuestService_Complete_Forbidden(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	other := createUser(t, db, "other")
	q := createQuest(t, db, owner.ID, 30, nil)

	svc := service.NewQuestService(db, service.NewActivityService(db))
	if _, err := svc.Complete(ctx, q.ID, other.ID); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// чужая попытка не трогает квест
	stored, err := repository.NewQuestRepository(db).GetByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("reload quest: %v", err)
	}
	if stored.Completed {
		t.Error("quest marked completed by non-owner")
	}
}

func TestQuestService_Complete_NotFound(t *testing.T) {
	db := connectDB(t)

	u := createUser(t, db, "nf")
	svc := service.NewQuestService(db, service.NewActivityService(db))
	if _, err := svc.Complete(context.Background(), 999999999, u.ID); !errors.Is(err, service.ErrQuestNotFound) {
		t.Fatalf("err = %v, want ErrQuestNotFound", err)
	}
}

func TestQuestService_Complete_TierUp(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db, "tier")
	if _, err := db.Exec(ctx, `UPDATE users SET xp = 490, level = 5 WHERE id = $1`, u.ID); err != nil {
		t.Fatalf("seed xp: %v", err)
	}
	q := createQuest(t, db, u.ID, 20, nil)

	svc := service.NewQuestService(db, service.NewActivityService(db))
	res, err := svc.Complete(ctx, q.ID, u.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.User.XP != 510 {
		t.Errorf("xp = %d, want 510", res.User.XP)
	}
	if res.User.Tier != string(progression.TierC) {
		t.Errorf("tier = %s, want C", res.User.Tier)
	}
	if !res.TierUp {
		t.Error("expected tier up D -> C")
	}
}

func TestQuestService_Complete_WritesActivityAndNotification(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db, "act")
	q := createQuest(t, db, u.ID, 50, nil)

	svc := service.NewQuestService(db, service.NewActivityService(db))
	if _, err := svc.Complete(ctx, q.ID, u.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	recs, err := repository.NewActivityRepository(db).GetByUserID(ctx, u.ID, 10)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("activity records = %d, want 1", len(recs))
	}
	if recs[0].Action != domain.ActionQuestCompleted {
		t.Errorf("action = %s, want %s", recs[0].Action, domain.ActionQuestCompleted)
	}
	if recs[0].XPDelta != 50 {
		t.Errorf("xp delta = %d, want 50", recs[0].XPDelta)
	}

	notifs, err := repository.NewNotificationRepository(db).GetByUserID(ctx, u.ID, 10)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if len(notifs) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifs))
	}
	if notifs[0].Read {
		t.Error("new notification must be unread")
	}
}
