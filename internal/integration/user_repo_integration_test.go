package integration

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"levelup_backend/internal/domain"
	"levelup_backend/internal/repository"
)

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	ur := repository.NewUserRepository(db)
	name := fmt.Sprintf("dup_%d", time.Now().UnixNano())

	if err := ur.Create(ctx, &domain.User{Username: name}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// второй insert с тем же именем режет constraint, не 500
	err := ur.Create(ctx, &domain.User{Username: name})
	if !errors.Is(err, repository.ErrUsernameTaken) {
		t.Fatalf("second create err = %v, want ErrUsernameTaken", err)
	}
}
