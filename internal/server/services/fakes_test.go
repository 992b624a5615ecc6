package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/brainly/internal/common"
	"github.com/dmitrijs2005/brainly/internal/dbx"
	"github.com/dmitrijs2005/brainly/internal/server/models"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/contents"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/sharelinks"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// memStore is an in-memory stand-in for the three tables, with per-call
// error injection.
type memStore struct {
	mu       sync.Mutex
	seq      int
	clock    time.Time
	users    map[string]*models.User
	contents map[string]*models.Content
	links    map[string]*models.ShareLink // by user id

	usersErr    error
	contentsErr error
	linksErr    error

	// createLinkHook, when set, runs before a share link insert and may
	// return an error to simulate a conflict.
	createLinkHook func(userID, hash string) error
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    map[string]*models.User{},
		contents: map[string]*models.Content{},
		links:    map[string]*models.ShareLink{},
	}
}

func (m *memStore) nextID() string {
	m.seq++
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", m.seq)
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usersErr != nil {
		return nil, r.usersErr
	}
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = r.nextID()
	u.CreatedAt = r.tick()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return u, nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usersErr != nil {
		return nil, r.usersErr
	}
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetPublicByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usersErr != nil {
		return nil, r.usersErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Public(), nil
}

func (r memUsers) SetRefreshToken(_ context.Context, id string, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usersErr != nil {
		return r.usersErr
	}
	u, ok := r.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.RefreshToken = token
	return nil
}

type memContents struct{ *memStore }

func (r memContents) Create(_ context.Context, c *models.Content) (*models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.contentsErr != nil {
		return nil, r.contentsErr
	}
	c.ID = r.nextID()
	c.CreatedAt = r.tick()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.contents[c.ID] = &cp
	return c, nil
}

func (r memContents) ListByUser(_ context.Context, userID string) ([]*models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.contentsErr != nil {
		return nil, r.contentsErr
	}
	out := make([]*models.Content, 0)
	for _, c := range r.contents {
		if c.UserID != userID {
			continue
		}
		cp := *c
		if u, ok := r.users[userID]; ok {
			cp.OwnerUsername = u.Username
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memContents) DeleteOwned(_ context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.contentsErr != nil {
		return r.contentsErr
	}
	c, ok := r.contents[id]
	if !ok || c.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.contents, id)
	return nil
}

type memLinks struct{ *memStore }

func (r memLinks) Create(_ context.Context, userID string, hash string) (*models.ShareLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.linksErr != nil {
		return nil, r.linksErr
	}
	if r.createLinkHook != nil {
		if err := r.createLinkHook(userID, hash); err != nil {
			return nil, err
		}
	}
	if _, ok := r.links[userID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	for _, l := range r.links {
		if l.Hash == hash {
			return nil, sharelinks.ErrHashCollision
		}
	}
	l := &models.ShareLink{ID: r.nextID(), Hash: hash, UserID: userID, CreatedAt: r.tick()}
	r.links[userID] = l
	cp := *l
	return &cp, nil
}

func (r memLinks) GetByUserID(_ context.Context, userID string) (*models.ShareLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.linksErr != nil {
		return nil, r.linksErr
	}
	l, ok := r.links[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *l
	return &cp, nil
}

func (r memLinks) GetByHash(_ context.Context, hash string) (*models.ShareLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.linksErr != nil {
		return nil, r.linksErr
	}
	for _, l := range r.links {
		if l.Hash == hash {
			cp := *l
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memLinks) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.linksErr != nil {
		return r.linksErr
	}
	delete(r.links, userID)
	return nil
}

type fakeRepoManager struct{ store *memStore }

func newFakeRepoManager() *fakeRepoManager { return &fakeRepoManager{store: newMemStore()} }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return memUsers{m.store} }
func (m *fakeRepoManager) Contents(dbx.DBTX) contents.Repository        { return memContents{m.store} }
func (m *fakeRepoManager) ShareLinks(dbx.DBTX) sharelinks.Repository    { return memLinks{m.store} }

// fakeHasher avoids bcrypt cost in service tests.
type fakeHasher struct{ hashErr error }

func (h fakeHasher) Hash(p string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + p, nil
}

func (h fakeHasher) Verify(p, hash string) bool { return p != "" && hash == "hashed:"+p }

type fakeTokens struct {
	accessErr  error
	refreshErr error
}

func (f fakeTokens) IssueAccessToken(userID, username string) (string, error) {
	if f.accessErr != nil {
		return "", f.accessErr
	}
	return "access-" + userID + "-" + username, nil
}

func (f fakeTokens) IssueRefreshToken(userID string) (string, error) {
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	return "refresh-" + userID, nil
}

type revokeCall struct {
	jti string
	exp time.Time
}

type fakeRevoker struct {
	calls []revokeCall
	err   error
}

func (f *fakeRevoker) Revoke(_ context.Context, jti string, exp time.Time) error {
	f.calls = append(f.calls, revokeCall{jti: jti, exp: exp})
	return f.err
}

func (f *fakeRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func asAppError(err error) *common.Error {
	var e *common.Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
