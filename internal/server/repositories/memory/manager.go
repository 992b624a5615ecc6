// Package memory provides an in-memory RepositoryManager with the same
// uniqueness rules as the PostgreSQL schema. It backs handler tests and
// local runs without a database.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/brainly/internal/common"
	"github.com/dmitrijs2005/brainly/internal/dbx"
	"github.com/dmitrijs2005/brainly/internal/server/models"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/contents"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/sharelinks"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/users"
	"github.com/google/uuid"
)

type contentRow struct {
	models.Content
	seq int64
}

type store struct {
	mu       sync.Mutex
	seq      int64
	now      func() time.Time
	users    map[string]*models.User
	contents map[string]*contentRow
	links    map[string]*models.ShareLink // by user id
}

// InMemoryRepositoryManager vends repositories over a shared in-memory store.
// The DBTX arguments are ignored.
type InMemoryRepositoryManager struct {
	s *store
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{s: &store{
		now:      time.Now,
		users:    map[string]*models.User{},
		contents: map[string]*contentRow{},
		links:    map[string]*models.ShareLink{},
	}}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return userRepo{m.s} }

func (m *InMemoryRepositoryManager) Contents(dbx.DBTX) contents.Repository { return contentRepo{m.s} }

func (m *InMemoryRepositoryManager) ShareLinks(dbx.DBTX) sharelinks.Repository { return linkRepo{m.s} }

type userRepo struct{ *store }

func (r userRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = r.now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return u, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r userRepo) GetPublicByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Public(), nil
}

func (r userRepo) SetRefreshToken(_ context.Context, id string, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.RefreshToken = token
	u.UpdatedAt = r.now()
	return nil
}

type contentRepo struct{ *store }

func (r contentRepo) Create(_ context.Context, c *models.Content) (*models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.Tags == nil {
		c.Tags = []string{}
	}
	c.ID = uuid.NewString()
	c.CreatedAt = r.now()
	c.UpdatedAt = c.CreatedAt
	r.seq++
	row := &contentRow{Content: *c, seq: r.seq}
	row.Tags = append([]string(nil), c.Tags...)
	r.contents[c.ID] = row
	return c, nil
}

func (r contentRepo) ListByUser(_ context.Context, userID string) ([]*models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]*contentRow, 0)
	for _, row := range r.contents {
		if row.UserID == userID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	out := make([]*models.Content, 0, len(rows))
	for _, row := range rows {
		c := row.Content
		c.Tags = append([]string{}, row.Tags...)
		if u, ok := r.users[userID]; ok {
			c.OwnerUsername = u.Username
		}
		out = append(out, &c)
	}
	return out, nil
}

func (r contentRepo) DeleteOwned(_ context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.contents[id]
	if !ok || row.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.contents, id)
	return nil
}

type linkRepo struct{ *store }

func (r linkRepo) Create(_ context.Context, userID string, hash string) (*models.ShareLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.links[userID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	for _, l := range r.links {
		if l.Hash == hash {
			return nil, sharelinks.ErrHashCollision
		}
	}
	l := &models.ShareLink{ID: uuid.NewString(), Hash: hash, UserID: userID, CreatedAt: r.now()}
	r.links[userID] = l
	cp := *l
	return &cp, nil
}

func (r linkRepo) GetByUserID(_ context.Context, userID string) (*models.ShareLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.links[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *l
	return &cp, nil
}

func (r linkRepo) GetByHash(_ context.Context, hash string) (*models.ShareLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.links {
		if l.Hash == hash {
			cp := *l
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r linkRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.links, userID)
	return nil
}
