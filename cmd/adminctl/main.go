package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"recus/internal/adapter/repo"
	"recus/internal/domain"
	"recus/internal/infra"
	"recus/internal/infra/credentials"
)

// adminctl maintains the allow-list that gates the receipt interface and
// rotates the stored mail provider key. Accounts sign up on their own;
// issuance access is granted here.
func main() {
	var (
		idFlag        string
		emailFlag     string
		revokeFlag    bool
		resendKeyFlag string
	)

	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&emailFlag, "email", "", "user email to update")
	flag.BoolVar(&revokeFlag, "revoke", false, "remove the user from the allow-list instead of adding it")
	flag.StringVar(&resendKeyFlag, "resend-key", "", "store a Resend API key for the workers instead of touching the allow-list")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	email := domain.NormalizeEmail(emailFlag)
	resendKey := strings.TrimSpace(resendKeyFlag)
	if userID == "" && email == "" && resendKey == "" {
		exitWithError(errors.New("either -id, -email or -resend-key must be provided"))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "adminctl").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	if resendKey != "" {
		if err := credentials.NewStore(runner).SetResendAPIKey(ctx, resendKey); err != nil {
			exitWithError(fmt.Errorf("failed to store resend api key: %w", err))
		}
		fmt.Println("resend api key stored")
		return
	}

	users := repo.NewUserRepository(runner)
	admins := repo.NewAdminRepository(runner)

	if userID == "" {
		user, err := users.GetUserByEmail(ctx, email)
		if err != nil {
			exitWithError(fmt.Errorf("failed to load user %q: %w", email, err))
		}
		userID = user.ID
	}

	if revokeFlag {
		if err := admins.Revoke(ctx, userID); err != nil {
			exitWithError(fmt.Errorf("failed to revoke access: %w", err))
		}
		fmt.Printf("revoked: %s\n", userID)
		return
	}

	if err := admins.Grant(ctx, userID); err != nil {
		exitWithError(fmt.Errorf("failed to grant access: %w", err))
	}
	fmt.Printf("granted: %s\n", userID)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
