package service

import (
	"context"
	"sort"
	"sync"

	"dating-app-be/internal/entity"
	"dating-app-be/internal/repository/contract"
	"dating-app-be/internal/repository/specification"
	"dating-app-be/internal/repository/unitofwork"

	"gorm.io/gorm"
)

// memStore is shared state behind the fake unit of work, with the unique
// indexes of the real schema emulated on insert.
type memStore struct {
	mu sync.Mutex

	users     []*entity.User
	profiles  []*entity.Profile
	matches   []*entity.Match
	rooms     []*entity.ChatRoom
	messages  []*entity.ChatMessage
	fcmTokens []*entity.FcmToken

	nextId uint

	// Runs once before the next room insert, outside the lock. Lets a test
	// interleave a competing writer between a FindOne miss and the Create.
	beforeRoomCreate func()
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) id() uint {
	s.nextId++
	return s.nextId
}

func (s *memStore) findUserByEmail(email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeFactory struct {
	store *memStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: newMemStore()}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *memStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUow) ProfileRepository() contract.ProfileRepository {
	return &fakeProfileRepo{store: u.store}
}

func (u *fakeUow) MatchRepository() contract.MatchRepository {
	return &fakeMatchRepo{store: u.store}
}

func (u *fakeUow) ChatRoomRepository() contract.ChatRoomRepository {
	return &fakeChatRoomRepo{store: u.store}
}

func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeChatMessageRepo{store: u.store}
}

func (u *fakeUow) FcmTokenRepository() contract.FcmTokenRepository {
	return &fakeFcmTokenRepo{store: u.store}
}

// queryOpts extracts ordering and paging specs; the per-entity predicates
// handle the filters.
type queryOpts struct {
	orderField string
	orderDesc  bool
	limit      int
	offset     int
}

func extractOpts(specs []specification.Specification) queryOpts {
	opts := queryOpts{limit: -1}
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			opts.orderField = s.Field
			opts.orderDesc = s.Desc
		case specification.Pagination:
			opts.limit = s.Limit
			opts.offset = s.Offset
		}
	}
	return opts
}

// --- User ---

type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) matches(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.Id = r.store.id()
	clone := *user
	r.store.users = append(r.store.users, &clone)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if r.matches(u, specs) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, u := range r.store.users {
		if r.matches(u, specs) {
			count++
		}
	}
	return count, nil
}

// --- Profile ---

type fakeProfileRepo struct {
	store *memStore
}

func (r *fakeProfileRepo) matches(p *entity.Profile, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.ByUserID:
			if p.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.profiles {
		if existing.UserId == profile.UserId {
			return gorm.ErrDuplicatedKey
		}
	}
	profile.Id = r.store.id()
	clone := *profile
	r.store.profiles = append(r.store.profiles, &clone)
	return nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, profile *entity.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.profiles {
		if existing.Id == profile.Id {
			clone := *profile
			r.store.profiles[i] = &clone
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.profiles {
		if r.matches(p, specs) {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Profile
	for _, p := range r.store.profiles {
		if r.matches(p, specs) {
			clone := *p
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

func (r *fakeProfileRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- Match ---

type fakeMatchRepo struct {
	store *memStore
}

func (r *fakeMatchRepo) matchesSpec(m *entity.Match, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.Id != s.ID {
				return false
			}
		case specification.ByOrderedPair:
			if m.FromProfileId != s.FromProfileID || m.ToProfileId != s.ToProfileID {
				return false
			}
		case specification.ByFromProfile:
			if m.FromProfileId != s.ProfileID {
				return false
			}
		case specification.MatchedOnly:
			if !m.IsMatched {
				return false
			}
		case specification.ByAction:
			if string(m.Action) != s.Action {
				return false
			}
		}
	}
	return true
}

func (r *fakeMatchRepo) Create(ctx context.Context, match *entity.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.matches {
		if existing.FromProfileId == match.FromProfileId && existing.ToProfileId == match.ToProfileId {
			return gorm.ErrDuplicatedKey
		}
	}
	match.Id = r.store.id()
	clone := *match
	r.store.matches = append(r.store.matches, &clone)
	return nil
}

func (r *fakeMatchRepo) Update(ctx context.Context, match *entity.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.matches {
		if existing.Id == match.Id {
			clone := *match
			r.store.matches[i] = &clone
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeMatchRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.matches {
		if r.matchesSpec(m, specs) {
			clone := *m
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeMatchRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Match
	for _, m := range r.store.matches {
		if r.matchesSpec(m, specs) {
			clone := *m
			result = append(result, &clone)
		}
	}
	opts := extractOpts(specs)
	sort.Slice(result, func(i, j int) bool {
		if opts.orderField == "created_at" {
			if opts.orderDesc {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			}
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].Id < result[j].Id
	})
	return result, nil
}

func (r *fakeMatchRepo) Exists(ctx context.Context, specs ...specification.Specification) (bool, error) {
	count, err := r.Count(ctx, specs...)
	return count > 0, err
}

func (r *fakeMatchRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- ChatRoom ---

type fakeChatRoomRepo struct {
	store *memStore
}

func (r *fakeChatRoomRepo) matchesSpec(room *entity.ChatRoom, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if room.Id != s.ID {
				return false
			}
		case specification.ByMatchID:
			if room.MatchId != s.MatchID {
				return false
			}
		case specification.RoomsForProfile:
			var involved bool
			for _, m := range r.store.matches {
				if m.Id == room.MatchId && m.Involves(s.ProfileID) {
					involved = true
					break
				}
			}
			if !involved {
				return false
			}
		}
	}
	return true
}

func (r *fakeChatRoomRepo) Create(ctx context.Context, room *entity.ChatRoom) error {
	if hook := r.store.beforeRoomCreate; hook != nil {
		r.store.beforeRoomCreate = nil
		hook()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.rooms {
		if existing.MatchId == room.MatchId {
			return gorm.ErrDuplicatedKey
		}
	}
	room.Id = r.store.id()
	clone := *room
	r.store.rooms = append(r.store.rooms, &clone)
	return nil
}

func (r *fakeChatRoomRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatRoom, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, room := range r.store.rooms {
		if r.matchesSpec(room, specs) {
			clone := *room
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeChatRoomRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatRoom, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.ChatRoom
	for _, room := range r.store.rooms {
		if r.matchesSpec(room, specs) {
			clone := *room
			result = append(result, &clone)
		}
	}
	opts := extractOpts(specs)
	sort.Slice(result, func(i, j int) bool {
		if opts.orderDesc {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].Id < result[j].Id
	})
	return result, nil
}

func (r *fakeChatRoomRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- ChatMessage ---

type fakeChatMessageRepo struct {
	store *memStore
}

func (r *fakeChatMessageRepo) matchesSpec(m *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.Id != s.ID {
				return false
			}
		case specification.ByChatRoomID:
			if m.ChatRoomId != s.ChatRoomID {
				return false
			}
		}
	}
	return true
}

func (r *fakeChatMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	message.Id = r.store.id()
	clone := *message
	r.store.messages = append(r.store.messages, &clone)
	return nil
}

func (r *fakeChatMessageRepo) Update(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.messages {
		if existing.Id == message.Id {
			clone := *message
			r.store.messages[i] = &clone
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.ChatMessage
	for _, m := range r.store.messages {
		if r.matchesSpec(m, specs) {
			clone := *m
			result = append(result, &clone)
		}
	}
	opts := extractOpts(specs)
	sort.Slice(result, func(i, j int) bool {
		if opts.orderField == "created_at" {
			if result[i].CreatedAt.Equal(result[j].CreatedAt) {
				if opts.orderDesc {
					return result[i].Id > result[j].Id
				}
				return result[i].Id < result[j].Id
			}
			if opts.orderDesc {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			}
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].Id < result[j].Id
	})
	if opts.offset > 0 {
		if opts.offset >= len(result) {
			result = nil
		} else {
			result = result[opts.offset:]
		}
	}
	if opts.limit >= 0 && opts.limit < len(result) {
		result = result[:opts.limit]
	}
	return result, nil
}

func (r *fakeChatMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, m := range r.store.messages {
		if r.matchesSpec(m, specs) {
			count++
		}
	}
	return count, nil
}

// --- FcmToken ---

type fakeFcmTokenRepo struct {
	store *memStore
}

func (r *fakeFcmTokenRepo) matchesSpec(t *entity.FcmToken, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if t.Id != s.ID {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "token":
				if t.Token != s.Value.(string) {
					return false
				}
			case "user_id":
				if t.UserId != s.Value.(uint) {
					return false
				}
			}
		}
	}
	return true
}

func (r *fakeFcmTokenRepo) Save(ctx context.Context, token *entity.FcmToken) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.fcmTokens {
		if existing.Token == token.Token {
			existing.UserId = token.UserId
			*token = *existing
			return nil
		}
	}
	token.Id = r.store.id()
	clone := *token
	r.store.fcmTokens = append(r.store.fcmTokens, &clone)
	return nil
}

func (r *fakeFcmTokenRepo) DeleteByToken(ctx context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.fcmTokens {
		if existing.Token == token {
			r.store.fcmTokens = append(r.store.fcmTokens[:i], r.store.fcmTokens[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeFcmTokenRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FcmToken, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.fcmTokens {
		if r.matchesSpec(t, specs) {
			clone := *t
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeFcmTokenRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FcmToken, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.FcmToken
	for _, t := range r.store.fcmTokens {
		if r.matchesSpec(t, specs) {
			clone := *t
			result = append(result, &clone)
		}
	}
	return result, nil
}
