package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"erp-backend/internal/data/entity"
	"erp-backend/internal/data/repository"
	"erp-backend/pkg/events"
	"erp-backend/pkg/mailer"
	"erp-backend/pkg/token"
	"erp-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email && u.DeletedAt == nil {
			return repository.ErrDuplicate
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && u.DeletedAt == nil {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.User
	for _, u := range r.users {
		if u.DeletedAt == nil {
			all = append(all, &u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return page(all, limit, offset), nil
}

func (r *fakeUserRepo) CountAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[user.ID]; !ok || u.DeletedAt != nil {
		return repository.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return repository.ErrNotFound
	}
	now := u.UpdatedAt
	u.DeletedAt = &now
	u.IsActive = false
	r.users[id] = u
	return nil
}

// stored returns the raw row, including soft-deleted users.
func (r *fakeUserRepo) stored(id uuid.UUID) entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

type fakeRoleRepo struct {
	roles map[uuid.UUID]entity.Role
	users *fakeUserRepo
}

func newFakeRoleRepo(users *fakeUserRepo) *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[uuid.UUID]entity.Role{}, users: users}
}

func (r *fakeRoleRepo) Create(_ context.Context, role *entity.Role) error {
	r.roles[role.ID] = *role
	return nil
}

func (r *fakeRoleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (r *fakeRoleRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Role, error) {
	var all []*entity.Role
	for _, role := range r.roles {
		all = append(all, &role)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *fakeRoleRepo) CountAll(context.Context) (int64, error) {
	return int64(len(r.roles)), nil
}

func (r *fakeRoleRepo) Update(_ context.Context, role *entity.Role) error {
	if _, ok := r.roles[role.ID]; !ok {
		return repository.ErrNotFound
	}
	r.roles[role.ID] = *role
	return nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.roles[id]; !ok {
		return 0, repository.ErrNotFound
	}
	delete(r.roles, id)

	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	var n int64
	for uid, u := range r.users.users {
		if u.RoleID != nil && *u.RoleID == id {
			u.RoleID = nil
			u.RoleName = nil
			r.users.users[uid] = u
			n++
		}
	}
	return n, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]entity.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uuid.UUID]entity.UserProfile{}}
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *entity.UserProfile) error {
	if existing, ok := r.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	}
	r.profiles[profile.UserID] = *profile
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[uuid.UUID]entity.Category{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return repository.ErrDuplicate
		}
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCategoryRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	var all []*entity.Category
	for _, c := range r.categories {
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *fakeCategoryRepo) CountAll(context.Context) (int64, error) {
	return int64(len(r.categories)), nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return repository.ErrNotFound
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type fakeSubCategoryRepo struct {
	subs map[uuid.UUID]entity.SubCategory
}

func newFakeSubCategoryRepo() *fakeSubCategoryRepo {
	return &fakeSubCategoryRepo{subs: map[uuid.UUID]entity.SubCategory{}}
}

func (r *fakeSubCategoryRepo) Create(_ context.Context, s *entity.SubCategory) error {
	r.subs[s.ID] = *s
	return nil
}

func (r *fakeSubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.SubCategory, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSubCategoryRepo) FindAll(_ context.Context, limit, offset int, categoryID *uuid.UUID) ([]*entity.SubCategory, error) {
	var all []*entity.SubCategory
	for _, s := range r.subs {
		if categoryID == nil || s.CategoryID == *categoryID {
			all = append(all, &s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *fakeSubCategoryRepo) CountAll(_ context.Context, categoryID *uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.subs {
		if categoryID == nil || s.CategoryID == *categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeSubCategoryRepo) Update(_ context.Context, s *entity.SubCategory) error {
	if _, ok := r.subs[s.ID]; !ok {
		return repository.ErrNotFound
	}
	r.subs[s.ID] = *s
	return nil
}

func (r *fakeSubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.subs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.subs, id)
	return nil
}

type fakeVendorRepo struct {
	vendors map[uuid.UUID]entity.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: map[uuid.UUID]entity.Vendor{}}
}

func (r *fakeVendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	for _, existing := range r.vendors {
		if existing.Email == v.Email {
			return repository.ErrDuplicate
		}
	}
	r.vendors[v.ID] = *v
	return nil
}

func (r *fakeVendorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *fakeVendorRepo) matches(v entity.Vendor, f repository.VendorFilter) bool {
	if f.Status != "" && v.Status != f.Status {
		return false
	}
	if f.CategoryID != nil && (v.CategoryID == nil || *v.CategoryID != *f.CategoryID) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(v.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func (r *fakeVendorRepo) FindAll(_ context.Context, limit, offset int, f repository.VendorFilter) ([]*entity.Vendor, error) {
	var all []*entity.Vendor
	for _, v := range r.vendors {
		if r.matches(v, f) {
			all = append(all, &v)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *fakeVendorRepo) CountAll(_ context.Context, f repository.VendorFilter) (int64, error) {
	var n int64
	for _, v := range r.vendors {
		if r.matches(v, f) {
			n++
		}
	}
	return n, nil
}

func (r *fakeVendorRepo) Update(_ context.Context, v *entity.Vendor) error {
	if _, ok := r.vendors[v.ID]; !ok {
		return repository.ErrNotFound
	}
	r.vendors[v.ID] = *v
	return nil
}

func (r *fakeVendorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.vendors[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.vendors, id)
	return nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) last() mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return mailer.Message{}
	}
	return m.sent[len(m.sent)-1]
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.AccountEvent
}

func (p *fakePublisher) PublishAccountEvent(e events.AccountEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) Close() {}

func (p *fakePublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}

type fakeStorage struct {
	keys []string
}

func (s *fakeStorage) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	return "https://cdn.example.com/" + key, nil
}

// syncNotifier delivers mails and events before returning.
func syncNotifier(m *fakeMailer, p *fakePublisher) *notifier {
	n := newNotifier(m, p, zap.NewNop())
	n.run = func(f func()) { f() }
	return n
}

type accountFixture struct {
	svc    *accountService
	users  *fakeUserRepo
	mail   *fakeMailer
	events *fakePublisher
	tokens *token.Manager
	config *utils.Config
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	config := &utils.Config{
		App: utils.AppConfig{BaseURL: "https://erp.example.com/"},
		JWT: utils.JWTConfig{Secret: "test-secret", AccessTTLMinutes: 5, RefreshTTLHours: 1, AccountTokenTTLHours: 1},
		OTP: utils.OTPConfig{Length: 6, ExpiryMinutes: 10},
	}
	users := newFakeUserRepo()
	mail := &fakeMailer{}
	pub := &fakePublisher{}
	tokens := token.NewManager(config.JWT)

	svc := NewAccountService(users, config, tokens, syncNotifier(mail, pub), zap.NewNop()).(*accountService)
	return &accountFixture{svc: svc, users: users, mail: mail, events: pub, tokens: tokens, config: config}
}
