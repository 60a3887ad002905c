package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"dating-app-be/internal/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type nopMailer struct{}

func (nopMailer) SendWelcome(toEmail, name string) error { return nil }

type capturingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *capturingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

type pushSend struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

type capturingPushSender struct {
	mu    sync.Mutex
	sends []pushSend
	fail  bool
}

func (p *capturingPushSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return context.DeadlineExceeded
	}
	p.sends = append(p.sends, pushSend{Token: token, Title: title, Body: body, Data: data})
	return nil
}

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[uint]string
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[uint]string)}
}

func (s *memTokenStore) Save(ctx context.Context, userId uint, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userId] = token
	return nil
}

func (s *memTokenStore) Get(ctx context.Context, userId uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[userId], nil
}

func (s *memTokenStore) Delete(ctx context.Context, userId uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userId)
	return nil
}

// seedProfile inserts a user plus profile pair straight into the store.
func seedProfile(t *testing.T, f *fakeFactory, nickname string, birthYear, minAge, maxAge int) *entity.Profile {
	t.Helper()
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	user := &entity.User{
		Id:    f.store.id(),
		Email: nickname + "@example.com",
		Name:  nickname,
	}
	f.store.users = append(f.store.users, user)

	profile := &entity.Profile{
		Id:               f.store.id(),
		UserId:           user.Id,
		Nickname:         nickname,
		BirthDate:        time.Date(birthYear, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:           entity.GenderOther,
		MinAgePreference: minAge,
		MaxAgePreference: maxAge,
		MaxDistance:      50,
		CreatedAt:        time.Now(),
	}
	f.store.profiles = append(f.store.profiles, profile)

	clone := *profile
	return &clone
}
