package payment

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	mysqlrepo "loanlink-backend/internal/adapter/repository/mysql"
	domainApp "loanlink-backend/internal/domain/application"
	domain "loanlink-backend/internal/domain/payment"
	"loanlink-backend/internal/metrics"
	"loanlink-backend/internal/testutil/paymentmock"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(mysqlrepo.Models()...))
	return db
}

func TestMaterialize_ConcurrentCallersConverge(t *testing.T) {
	db := openSQLite(t)
	apps := mysqlrepo.NewApplicationRepository(db)
	pays := mysqlrepo.NewPaymentRepository(db)
	uc := NewUsecase(mysqlrepo.NewLoanRepository(db), apps, pays, mysqlrepo.NewGormUoW(db), &paymentmock.Processor{}, nil, "")
	sess := paidSession(t, "cs_race")

	const callers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		ids     = map[string]struct{}{}
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			source := metrics.SourceWebhook
			if i%2 == 1 {
				source = metrics.SourcePoll
			}
			res, err := uc.Materialize(context.Background(), sess, source)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if res.Created {
				created++
			}
			ids[res.Receipt.ID] = struct{}{}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, ids, 1)

	n, err := apps.Count(context.Background(), domainApp.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	p, err := pays.GetBySessionID(context.Background(), "cs_race")
	require.NoError(t, err)
	assert.Equal(t, "pi_cs_race", p.TransactionID)
	assert.Equal(t, "10", p.Amount.String())
}

func TestMaterialize_ReusesOrphanLeftInStore(t *testing.T) {
	db := openSQLite(t)
	apps := mysqlrepo.NewApplicationRepository(db)
	pays := mysqlrepo.NewPaymentRepository(db)
	uc := NewUsecase(mysqlrepo.NewLoanRepository(db), apps, pays, mysqlrepo.NewGormUoW(db), &paymentmock.Processor{}, nil, "")
	ctx := context.Background()

	sess := paidSession(t, "cs_orphan")
	meta, err := domain.DecodeMetadata(sess.Metadata)
	require.NoError(t, err)
	orphan := newApplication(meta)
	require.NoError(t, apps.Create(ctx, orphan))

	res, err := uc.Materialize(ctx, sess, metrics.SourcePoll)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, orphan.ID, res.Receipt.ApplicationID)

	n, err := apps.Count(ctx, domainApp.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
