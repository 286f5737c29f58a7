package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/database"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/logger"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/repository"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewAdminUserRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	// Name
	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		fmt.Println("Error: A valid email is required")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 8 {
		fmt.Println("Error: Password must be at least 8 characters")
		return
	}

	// Role
	fmt.Printf("Enter Role [%s|%s|%s|%s] (default %s): ",
		model.RoleSuperadmin, model.RoleAgency, model.RoleAdmin, model.RoleViewer, model.RoleSuperadmin)
	roleStr, _ := reader.ReadString('\n')
	role := model.Role(strings.TrimSpace(roleStr))
	if role == "" {
		role = model.RoleSuperadmin
	}
	if !role.Valid() {
		fmt.Printf("Error: Unknown role %q\n", role)
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	exists, err := userRepo.EmailExists(ctx, email, "")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check email")
	}
	if exists {
		fmt.Printf("Error: An account with email %s already exists\n", email)
		return
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	user := &model.AdminUser{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	}

	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin user")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with role %s\n", user.Name, user.Email, user.Role)
}
