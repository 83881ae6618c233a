package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thereayou/geoguess/internal/config"
	"github.com/thereayou/geoguess/internal/database"
	"github.com/thereayou/geoguess/internal/models"
	"github.com/thereayou/geoguess/pkg/auth"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSecret        = "test-secret-at-least-16-chars!!"
	superuserName     = "root"
	superuserPassword = "toor"
)

var errDiskFailure = errors.New("disk failure")

// fakeFiles файловое хранилище в памяти
type fakeFiles struct {
	mu        sync.Mutex
	files     map[string]string
	deleted   []string
	deleteErr error
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{files: make(map[string]string)}
}

func (f *fakeFiles) Save(_ context.Context, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[name] = string(data)
	return nil
}

func (f *fakeFiles) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.files, name)
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeFiles) has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[name]
	return ok
}

type fakePublisher struct {
	published []*models.Action
	err       error
}

func (p *fakePublisher) PublishAction(_ context.Context, action *models.Action) error {
	p.published = append(p.published, action)
	return p.err
}

// brokenUsers ломает поиск пользователя, остальное делегирует БД
type brokenUsers struct {
	*database.Database
}

func (b brokenUsers) FindUserByUsername(context.Context, string) (*models.User, error) {
	return nil, errors.New("connection refused")
}

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	d := database.NewDatabase(db)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func newTestAuthService(t *testing.T, users UserStore, files *fakeFiles) *AuthService {
	t.Helper()
	return NewAuthService(
		users,
		files,
		auth.NewJWTManager(testSecret, time.Hour),
		auth.NewPasswordHasher(bcrypt.MinCost),
		config.Superuser{Username: superuserName, Password: superuserPassword},
	)
}

func register(t *testing.T, s *AuthService, username, password string) {
	t.Helper()
	require.NoError(t, s.Register(context.Background(), RegisterInput{
		Username: username,
		Password: password,
		Name:     "Name",
		Surname:  "Surname",
		Email:    username + "@example.com",
	}))
}
