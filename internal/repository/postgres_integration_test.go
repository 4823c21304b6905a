package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"thumbnail-server/internal/models"
	"thumbnail-server/internal/repository"
	"thumbnail-server/pkg/migration"
)

// PostgresRepositorySuite прогоняет контракт хранилища против настоящего
// PostgreSQL в контейнере.
type PostgresRepositorySuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pool        *pgxpool.Pool
	repo        *repository.PostgresRepository
	logger      *zap.Logger
}

func (s *PostgresRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err, "Failed to create logger for tests")

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("thumbnails_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.pool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: "migrations",
		MigrationsFS:   repository.MigrationsFS,
	}, s.pool, s.logger)
	require.NoError(s.T(), migrator.Up(s.ctx), "Failed to apply migrations")

	s.repo = repository.NewPostgresRepository(s.pool, s.logger)
}

func (s *PostgresRepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
}

func (s *PostgresRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "TRUNCATE TABLE thumbnails")
	require.NoError(s.T(), err, "Failed to truncate thumbnails table")
}

func TestPostgresRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(PostgresRepositorySuite))
}

func (s *PostgresRepositorySuite) TestCreateAndGetByID() {
	t := s.T()
	ctx := context.Background()

	created, err := s.repo.Create(ctx, repository.CreateThumbnailParams{
		Title:       "First",
		Description: "desc",
		Category:    models.CategoryDocumentary,
		Style:       models.StyleRealistic,
		MainText:    "HEADLINE",
		SubText:     "part one",
		ImageURL:    "data:image/png;base64,AAAA",
	})
	require.NoError(t, err, "Create should succeed")
	require.NotEmpty(t, created.ID, "ID should be assigned")
	require.False(t, created.CreatedAt.IsZero(), "CreatedAt should be set")

	fetched, err := s.repo.GetByID(ctx, created.ID)
	require.NoError(t, err, "GetByID should succeed")
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, "First", fetched.Title)
	require.Equal(t, "desc", fetched.Description)
	require.Equal(t, models.CategoryDocumentary, fetched.Category)
	require.Equal(t, models.StyleRealistic, fetched.Style)
	require.Equal(t, "HEADLINE", fetched.MainText)
	require.Equal(t, "part one", fetched.SubText)
	require.Equal(t, "data:image/png;base64,AAAA", fetched.ImageURL)
}

func (s *PostgresRepositorySuite) TestCreateWithoutOptionalFields() {
	t := s.T()
	ctx := context.Background()

	created, err := s.repo.Create(ctx, repository.CreateThumbnailParams{
		Title:    "Bare",
		Category: models.CategoryGaming,
		Style:    models.StyleCartoon,
		ImageURL: "data:image/png;base64,BBBB",
	})
	require.NoError(t, err)

	fetched, err := s.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, fetched.Description, "Optional fields should round-trip as empty strings")
	require.Empty(t, fetched.MainText)
	require.Empty(t, fetched.SubText)
}

func (s *PostgresRepositorySuite) TestGetByIDNotFound() {
	t := s.T()

	_, err := s.repo.GetByID(context.Background(), "3f0c2e7a-0000-0000-0000-000000000000")
	require.Error(t, err)
	require.True(t, errors.Is(err, models.ErrNotFound), "Error should be ErrNotFound")
}

func (s *PostgresRepositorySuite) TestListRecentOrdering() {
	t := s.T()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		created, err := s.repo.Create(ctx, repository.CreateThumbnailParams{
			Title:    fmt.Sprintf("video-%d", i),
			Category: models.CategoryMusic,
			Style:    models.StyleRealistic,
			ImageURL: "data:image/png;base64,AAAA",
		})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	records, err := s.repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// Новые первыми, равные метки времени разрешаются порядком вставки
	require.Equal(t, ids[3], records[0].ID)
	require.Equal(t, ids[2], records[1].ID)
	require.Equal(t, ids[1], records[2].ID)
}

func (s *PostgresRepositorySuite) TestListRecentEmpty() {
	t := s.T()

	records, err := s.repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, records)
}
