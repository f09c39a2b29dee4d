package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"brickvest.backend/internal/config"
	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/infrastructure/repositories"
	"brickvest.backend/pkg/crypto"
)

var openAdminSeedDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false})
}

var openAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type adminSeedRuntime interface {
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) error
}

type adminSeedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (adminSeedRuntime, io.Closer, error)
	out     io.Writer
}

type adminSeedRuntimeImpl struct {
	userRepo interface {
		GetByEmail(ctx context.Context, email string) (*entities.User, error)
		Create(ctx context.Context, user *entities.User) error
	}
}

func (r adminSeedRuntimeImpl) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.userRepo.GetByEmail(ctx, email)
}

func (r adminSeedRuntimeImpl) CreateUser(ctx context.Context, user *entities.User) error {
	return r.userRepo.Create(ctx, user)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultAdminSeedDeps() adminSeedDeps {
	return adminSeedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (adminSeedRuntime, io.Closer, error) {
			db, err := openAdminSeedDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			return adminSeedRuntimeImpl{userRepo: repositories.NewUserRepository(db)}, sqlDB, nil
		},
		out: os.Stdout,
	}
}

func validateSeedInput(email, password string) error {
	if email == "" {
		return fmt.Errorf("--email is required")
	}
	if len(password) < 8 {
		return fmt.Errorf("--password must be at least 8 characters")
	}
	return nil
}

func runAdminSeed(args []string, deps adminSeedDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		def := defaultAdminSeedDeps()
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("admin-seed", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "admin email (required)")
	passwordFlag := fs.String("password", "", "admin password (required, min 8 chars)")
	nameFlag := fs.String("name", "Platform Admin", "admin display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := validateSeedInput(*emailFlag, *passwordFlag); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	if existing, err := runtime.GetUserByEmail(ctx, *emailFlag); err == nil && existing != nil {
		return fmt.Errorf("user %s already exists (role=%s)", *emailFlag, existing.Role)
	} else if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return fmt.Errorf("failed to look up user %s: %w", *emailFlag, err)
	}

	hash, err := crypto.HashPassword(*passwordFlag)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		ID:                  uuid.New(),
		Email:               *emailFlag,
		Name:                *nameFlag,
		PasswordHash:        hash,
		Role:                entities.UserRoleAdmin,
		AccreditationStatus: entities.AccreditationNone,
		EmailVerified:       true,
	}
	if err := runtime.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed creating admin user: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created ADMIN user")
	_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", user.ID.String())
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", user.Email)
	_, _ = fmt.Fprintf(deps.out, "role=%s\n", user.Role)
	return nil
}

func main() {
	if err := runAdminSeed(os.Args[1:], defaultAdminSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
