package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/pkg/logger"
	"tobacco-catalog-be/internal/repository/contract"
	"tobacco-catalog-be/internal/repository/specification"
	"tobacco-catalog-be/internal/repository/unitofwork"
	"tobacco-catalog-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogEventRepository struct {
	contract.CatalogEventRepository

	mu     sync.Mutex
	stored []*entity.CatalogEvent
	specs  []specification.Specification
}

func (r *fakeCatalogEventRepository) Create(_ context.Context, event *entity.CatalogEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = append(r.stored, event)
	return nil
}

func (r *fakeCatalogEventRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.CatalogEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs = specs
	return r.stored, nil
}

func (r *fakeCatalogEventRepository) snapshot() []*entity.CatalogEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.CatalogEvent(nil), r.stored...)
}

type eventUnitOfWork struct {
	unitofwork.UnitOfWork
	repo *fakeCatalogEventRepository
}

func (u *eventUnitOfWork) CatalogEventRepository() contract.CatalogEventRepository { return u.repo }

type eventFactory struct {
	repo *fakeCatalogEventRepository
}

func (f *eventFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &eventUnitOfWork{repo: f.repo}
}

func TestConsumerStoresPublishedEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	repo := &fakeCatalogEventRepository{}
	log := logger.NewNopLogger()
	consumer := NewConsumerService(pubSub, "CATALOG_EVENTS", &eventFactory{repo: repo}, nil, log, log)
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("CATALOG_EVENTS", pubSub)
	evt := events.NewCatalogEvent(events.TobaccoUpdated, "Serbetli", map[string]interface{}{"previous_name": "Serbeti"})
	require.NoError(t, publisher.Publish(ctx, evt))

	require.Eventually(t, func() bool {
		return len(repo.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stored := repo.snapshot()[0]
	assert.Equal(t, events.TobaccoUpdated, stored.Type)
	assert.Equal(t, "Serbetli", stored.TobaccoName)
	assert.Equal(t, "Serbeti", stored.Payload["previous_name"])
	assert.WithinDuration(t, evt.OccurredAt, stored.OccurredAt, time.Second)
}
