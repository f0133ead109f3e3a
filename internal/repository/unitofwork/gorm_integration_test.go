package unitofwork

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/model"
	"tobacco-catalog-be/internal/pkg/apperror"
	"tobacco-catalog-be/internal/repository/specification"
	"tobacco-catalog-be/pkg/database"
	"tobacco-catalog-be/pkg/events"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Load .env from root
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, true)
	require.NoError(t, err)
	require.NoError(t, database.Ping(db))
	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func TestGormTobaccoRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	factory := NewRepositoryFactory(db)

	name := "integration-" + uuid.NewString()
	renamed := name + "-renamed"
	t.Cleanup(func() {
		db.Where("name IN ?", []string{name, renamed}).Delete(&model.Tobacco{})
	})

	t.Run("Create and find", func(t *testing.T) {
		repo := factory.NewUnitOfWork(ctx).TobaccoRepository()
		tobacco := &entity.Tobacco{Name: name, Taste: 7.5, Molasses: 0.8, SmokeTime: 45, HeatResistance: 6, Comment: "sweet"}
		require.NoError(t, repo.Create(ctx, tobacco))
		assert.NotZero(t, tobacco.Id)

		found, err := repo.FindOne(ctx, specification.ByName{Name: name})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, tobacco.Id, found.Id)
		assert.Equal(t, name, found.Name)
		assert.Equal(t, 7.5, found.Taste)
		assert.Equal(t, 0.8, found.Molasses)
		assert.Equal(t, 45.0, found.SmokeTime)
		assert.Equal(t, 6.0, found.HeatResistance)
		assert.Equal(t, "sweet", found.Comment)
		// postgres keeps microseconds
		assert.WithinDuration(t, tobacco.CreatedAt, found.CreatedAt, time.Millisecond)

		names, err := repo.ListNames(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, name)
	})

	t.Run("Duplicate name is a conflict", func(t *testing.T) {
		repo := factory.NewUnitOfWork(ctx).TobaccoRepository()
		err := repo.Create(ctx, &entity.Tobacco{Name: name})
		assert.True(t, apperror.Is(err, apperror.CodeDuplicateName), "got %v", err)
	})

	t.Run("Concurrent creates of one name", func(t *testing.T) {
		raced := name + "-raced"
		t.Cleanup(func() {
			db.Where("name = ?", raced).Delete(&model.Tobacco{})
		})

		const writers = 8
		errs := make([]error, writers)
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				uow := factory.NewUnitOfWork(ctx)
				if err := uow.Begin(ctx); err != nil {
					errs[i] = err
					return
				}
				defer uow.Rollback()
				if err := uow.TobaccoRepository().Create(ctx, &entity.Tobacco{Name: raced}); err != nil {
					errs[i] = err
					return
				}
				errs[i] = uow.Commit()
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, apperror.Is(err, apperror.CodeDuplicateName), "got %v", err)
		}
		assert.Equal(t, 1, succeeded)

		count, err := factory.NewUnitOfWork(ctx).TobaccoRepository().Count(ctx, specification.ByName{Name: raced})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Rolled back create leaves nothing", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.TobaccoRepository().Create(ctx, &entity.Tobacco{Name: renamed}))
		require.NoError(t, uow.Rollback())

		found, err := factory.NewUnitOfWork(ctx).TobaccoRepository().FindOne(ctx, specification.ByName{Name: renamed})
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Rename and delete", func(t *testing.T) {
		repo := factory.NewUnitOfWork(ctx).TobaccoRepository()
		comment := "updated"
		updated, err := repo.UpdateByName(ctx, name, entity.TobaccoPatch{Name: &renamed, Comment: &comment})
		require.NoError(t, err)
		assert.Equal(t, renamed, updated.Name)
		assert.Equal(t, "updated", updated.Comment)

		require.NoError(t, repo.DeleteByName(ctx, renamed))
		err = repo.DeleteByName(ctx, renamed)
		assert.True(t, apperror.Is(err, apperror.CodeNotFound))
	})
}

func TestGormCatalogEventRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewRepositoryFactory(db).NewUnitOfWork(ctx).CatalogEventRepository()

	name := "integration-" + uuid.NewString()
	t.Cleanup(func() {
		db.Where("tobacco_name = ?", name).Delete(&model.CatalogEvent{})
	})

	for _, eventType := range []string{events.TobaccoCreated, events.TobaccoDeleted} {
		require.NoError(t, repo.Create(ctx, &entity.CatalogEvent{
			Id:          uuid.New(),
			Type:        eventType,
			TobaccoName: name,
			Payload:     map[string]interface{}{"name": name},
			OccurredAt:  time.Now(),
		}))
	}

	all, err := repo.FindAll(ctx, specification.ByTobaccoName{Name: name})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, events.TobaccoDeleted, all[0].Type, "newest first")
	assert.Equal(t, name, all[0].Payload["name"])

	created, err := repo.FindAll(ctx,
		specification.ByTobaccoName{Name: name},
		specification.ByEventType{Type: events.TobaccoCreated},
		specification.Pagination{Limit: 1},
	)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, events.TobaccoCreated, created[0].Type)
}
