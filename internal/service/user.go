// File: internal/service/user.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"users-api/internal/api"
	"users-api/internal/cache"
	"users-api/internal/database"
	"users-api/internal/model"
	"users-api/internal/store"
	"users-api/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const cacheFillTimeout = 2 * time.Second

var (
	createUser  = store.CreateUser
	getUserByID = store.GetUserByID
	updateUser  = store.UpdateUser
	deleteUser  = store.DeleteUser
)

// UserService 負責 users 的 CRUD，可選擇性搭配 Redis cache-aside
type UserService struct {
	db      database.DB
	cache   cache.Cache
	ttl     time.Duration
	workers worker.Pool
	log     zerolog.Logger

	// gen 每次 invalidate 都會遞增；讀取前記下的值不同時，背景回填直接放棄
	genMu sync.RWMutex
	gen   uint64
}

type Option func(*UserService)

// WithCache 啟用讀取快取；c 為 nil 時等同未啟用
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *UserService) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithWorkers 讓快取回填在背景執行
func WithWorkers(p worker.Pool) Option {
	return func(s *UserService) { s.workers = p }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *UserService) { s.log = l }
}

func NewUserService(db database.DB, opts ...Option) *UserService {
	s := &UserService{db: db, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *UserService) CreateUser(ctx context.Context, req api.CreateUserRequest) (*api.User, error) {
	u, err := createUser(ctx, s.db, &model.User{
		Name:        deref(req.Name),
		Email:       deref(req.Email),
		Password:    deref(req.Password),
		AccountType: deref(req.AccountType),
		Role:        deref(req.Role),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create user")
		return nil, err
	}
	return toAPI(u), nil
}

// GetUserByID 回傳 found=false 表示該 id 不存在
func (s *UserService) GetUserByID(ctx context.Context, id int) (*api.User, bool, error) {
	if cached, ok := s.readCache(ctx, id); ok {
		return cached, true, nil
	}
	gen := s.generation()

	u, err := getUserByID(ctx, s.db, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, false, nil
	}
	if err != nil {
		s.log.Error().Err(err).Int("user_id", id).Msg("get user")
		return nil, false, err
	}

	out := toAPI(u)
	s.fillCache(out, gen)
	return out, true, nil
}

// UpdateUser 只覆寫非空欄位；row 不存在（或在寫回前被刪除）時 found=false
func (s *UserService) UpdateUser(ctx context.Context, id int, req api.UpdateUserRequest) (*api.User, bool, error) {
	u, err := getUserByID(ctx, s.db, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, false, nil
	}
	if err != nil {
		s.log.Error().Err(err).Int("user_id", id).Msg("update user: fetch")
		return nil, false, err
	}

	applyUpdate(u, req)

	err = updateUser(ctx, s.db, u)
	if errors.Is(err, store.ErrUserNotFound) {
		s.invalidate(ctx, id)
		return nil, false, nil
	}
	if err != nil {
		s.log.Error().Err(err).Int("user_id", id).Msg("update user: save")
		return nil, false, err
	}

	s.invalidate(ctx, id)
	return toAPI(u), true, nil
}

// DeleteUser 回傳 true 表示確實刪除了一筆資料
func (s *UserService) DeleteUser(ctx context.Context, id int) (bool, error) {
	err := deleteUser(ctx, s.db, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		s.log.Error().Err(err).Int("user_id", id).Msg("delete user")
		return false, err
	}
	s.invalidate(ctx, id)
	return true, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func applyUpdate(u *model.User, req api.UpdateUserRequest) {
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Password != "" {
		u.Password = req.Password
	}
	if req.AccountType != "" {
		u.AccountType = req.AccountType
	}
	if req.Role != "" {
		u.Role = req.Role
	}
}

func toAPI(u *model.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Password:    u.Password,
		AccountType: u.AccountType,
		Role:        u.Role,
	}
}

// readCache 任何快取錯誤都視為 miss，改查資料庫
func (s *UserService) readCache(ctx context.Context, id int) (*api.User, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cache.Key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Int("user_id", id).Msg("cache get")
		}
		return nil, false
	}
	var u api.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Warn().Err(err).Int("user_id", id).Msg("cache decode")
		return nil, false
	}
	return &u, true
}

func (s *UserService) generation() uint64 {
	s.genMu.RLock()
	defer s.genMu.RUnlock()
	return s.gen
}

// fillCache 寫入 gen 時刻讀到的資料；期間若有 update / delete 則不寫
func (s *UserService) fillCache(u *api.User, gen uint64) {
	if s.cache == nil {
		return
	}
	task := func() {
		data, err := json.Marshal(u)
		if err != nil {
			s.log.Warn().Err(err).Int("user_id", u.ID).Msg("cache encode")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
		defer cancel()

		// 持有讀鎖直到 Set 完成，invalidate 必須等待後才能 Del
		s.genMu.RLock()
		defer s.genMu.RUnlock()
		if s.gen != gen {
			return
		}
		if err := s.cache.Set(ctx, cache.Key(u.ID), data, s.ttl).Err(); err != nil {
			s.log.Warn().Err(err).Int("user_id", u.ID).Msg("cache set")
		}
	}
	if s.workers == nil || !s.workers.Submit(task) {
		task()
	}
}

func (s *UserService) invalidate(ctx context.Context, id int) {
	if s.cache == nil {
		return
	}
	s.genMu.Lock()
	s.gen++
	s.genMu.Unlock()

	if err := s.cache.Del(ctx, cache.Key(id)).Err(); err != nil {
		s.log.Warn().Err(err).Int("user_id", id).Msg("cache del")
	}
}
