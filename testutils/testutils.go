package testutils

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"blog-backend/config"
	"blog-backend/services"
	"blog-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB returns a GORM handle backed by sqlmock. Handlers get the
// handle injected, so there is no global to restore afterwards.
func SetupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Error creating the SQL mock connection: %s", err)
	}

	newLogger := logger.New(
		log.New(io.Discard, "", log.LstdFlags),
		logger.Config{
			LogLevel: logger.Silent,
		},
	)

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		t.Fatalf("Error opening the GORM connection: %s", err)
	}

	cleanup := func() {
		sqlDB.Close()
	}

	return gormDB, mock, cleanup
}

func SetupTestRouter() *gin.Engine {
	return gin.New()
}

func InitTestMain() {
	gin.SetMode(gin.TestMode)
}

// TestConfig mirrors the runtime defaults
func TestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		AccessTokenTTL:     10 * time.Hour,
		RefreshTokenTTL:    30 * 24 * time.Hour,
		PostsPerPage:       10,
		LikesPerPage:       5,
		BodyOverviewLength: 100,
		LatestLikesLimit:   3,
	}
}

func TestTokenManager() *utils.TokenManager {
	cfg := TestConfig()
	return utils.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
}

// StubVerifier answers a fixed identity, or an error, for both providers.
// DeletedUIDs records compensating deletions.
type StubVerifier struct {
	Identity    *services.Identity
	Err         error
	DeletedUIDs []string
}

func (s *StubVerifier) GetUser(ctx context.Context, token string) (*services.Identity, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Identity, nil
}

func (s *StubVerifier) DeleteUser(ctx context.Context, uid string) error {
	s.DeletedUIDs = append(s.DeletedUIDs, uid)
	return nil
}
