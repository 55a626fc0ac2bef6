package main

import (
	"context"
	"log"
	"os"

	"levelup_backend/internal/db"
	"levelup_backend/internal/domain"
	"levelup_backend/internal/progression"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/service"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ur := repository.NewUserRepository(pool)
	qr := repository.NewQuestRepository(pool)
	ctx := context.Background()

	username := "testuser"
	if len(os.Args) > 1 {
		username = os.Args[1]
	}

	u, err := ur.GetByUsername(ctx, username)
	if err == nil {
		log.Printf("user already exists id=%d", u.ID)
	} else {
		u = &domain.User{
			Username: username,
			Goal:     domain.Goal{Category: "fitness", Specific: "run a 5k"},
		}
		if err := ur.Create(ctx, u); err != nil {
			log.Fatalf("create user: %v", err)
		}
		log.Printf("user created id=%d", u.ID)

		// пара стартовых квестов, чтобы было что закрывать
		quests := []*domain.Quest{
			{
				UserID:      u.ID,
				Title:       "Morning run",
				QuestType:   domain.QuestTypeDaily,
				Difficulty:  domain.DifficultyNormal,
				RewardXP:    50,
				RewardCoins: progression.CoinRewardForDifficulty(domain.DifficultyNormal),
				RewardStats: map[string]int{domain.StatStamina: 1},
			},
			{
				UserID:      u.ID,
				Title:       "Read 30 pages",
				QuestType:   domain.QuestTypeDaily,
				Difficulty:  domain.DifficultyEasy,
				RewardXP:    30,
				RewardCoins: progression.CoinRewardForDifficulty(domain.DifficultyEasy),
				RewardStats: map[string]int{domain.StatIntelligence: 1},
			},
			{
				UserID:      u.ID,
				Title:       "A week without sugar",
				QuestType:   domain.QuestTypeBoss,
				Difficulty:  domain.DifficultyEpic,
				RewardXP:    500,
				RewardCoins: progression.CoinRewardForDifficulty(domain.DifficultyEpic),
				RewardStats: map[string]int{domain.StatWillpower: 3, domain.StatVitality: 2},
			},
		}
		for _, q := range quests {
			if err := qr.Create(ctx, q); err != nil {
				log.Fatalf("create quest %q: %v", q.Title, err)
			}
			log.Printf("quest created id=%d title=%q", q.ID, q.Title)
		}
	}

	service.InitJWT()
	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s", token)
}
