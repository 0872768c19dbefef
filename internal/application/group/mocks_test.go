package group

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
)

type mockGroupRepo struct {
	groups map[string]*domain.UserGroup

	saved   []*domain.UserGroup
	deleted []*domain.UserGroup
	saveErr error
}

func newMockGroupRepo(groups ...*domain.UserGroup) *mockGroupRepo {
	m := &mockGroupRepo{groups: make(map[string]*domain.UserGroup)}
	for _, g := range groups {
		m.groups[g.ID.String()] = g
	}
	return m
}

func (m *mockGroupRepo) FindByID(ctx context.Context, id domain.GroupID) (*domain.UserGroup, error) {
	return m.groups[id.String()], nil
}

func (m *mockGroupRepo) Save(ctx context.Context, g *domain.UserGroup) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, g)
	m.groups[g.ID.String()] = g
	return nil
}

func (m *mockGroupRepo) Delete(ctx context.Context, g *domain.UserGroup) error {
	m.deleted = append(m.deleted, g)
	delete(m.groups, g.ID.String())
	return nil
}

type mockGroupReads struct {
	model *ports.UserGroupReadModel
	page  ports.Page[ports.UserGroupReadModel]

	lastFilter ports.UserGroupFilter
}

func (m *mockGroupReads) FindByID(ctx context.Context, id domain.GroupID) (*ports.UserGroupReadModel, error) {
	return m.model, nil
}

func (m *mockGroupReads) Find(ctx context.Context, filter ports.UserGroupFilter) (ports.Page[ports.UserGroupReadModel], error) {
	m.lastFilter = filter
	return m.page, nil
}

type mockRoleReads struct {
	roles map[string]*domain.Role
}

func newMockRoleReads(roles ...*domain.Role) *mockRoleReads {
	m := &mockRoleReads{roles: make(map[string]*domain.Role)}
	for _, r := range roles {
		m.roles[r.ID.String()] = r
	}
	return m
}

func (m *mockRoleReads) FindByID(ctx context.Context, id domain.RoleID) (*domain.Role, error) {
	return m.roles[id.String()], nil
}

func (m *mockRoleReads) Find(ctx context.Context, filter ports.RoleFilter) (ports.Page[ports.RoleReadModel], error) {
	return ports.Page[ports.RoleReadModel]{}, nil
}

type mockUserRepo struct {
	users map[string]*domain.User
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		m.users[u.ID.String()] = u
	}
	return m
}

func (m *mockUserRepo) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return m.users[id.String()], nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	return nil, nil
}

func (m *mockUserRepo) UsernameExists(ctx context.Context, username domain.Username, excludeID domain.UserID) (bool, error) {
	return false, nil
}

func (m *mockUserRepo) Save(ctx context.Context, u *domain.User) error {
	m.users[u.ID.String()] = u
	return nil
}

type captureHandler struct {
	events []domain.Event
}

func (h *captureHandler) EventTypes() []domain.EventType { return nil }

func (h *captureHandler) Handle(ctx context.Context, ev domain.Event) error {
	h.events = append(h.events, ev)
	return nil
}

func newTestDispatcher() (*event.Dispatcher, *captureHandler) {
	d := event.NewDispatcher(zerolog.Nop())
	h := &captureHandler{}
	d.RegisterHandler(h)
	return d, h
}

func asCaller(roles ...domain.RoleCode) domain.AppContext {
	return domain.AppContext{User: &domain.Caller{
		UserID: domain.NewUserID(uuid.New()),
		Roles:  roles,
	}}
}

func activeUser(email string) *domain.User {
	em, err := domain.NewEmail(email)
	if err != nil {
		panic(err)
	}
	id := domain.UserIDFromEmail(uuid.NameSpaceDNS, em)
	u := domain.RegisterUser(id, em, domain.SignInEmail, "ext-"+email, nil, nil, id)
	u.TakeEvents()
	return u
}

func savedGroup(name string) *domain.UserGroup {
	g := domain.NewUserGroup(domain.NewGroupID(uuid.New()), name, nil, domain.NewUserID(uuid.New()))
	g.TakeEvents()
	return g
}

func seededRole(code domain.RoleCode) *domain.Role {
	return &domain.Role{ID: domain.NewRoleID(uuid.New()), Code: code, Name: string(code)}
}

var _ ports.UserGroupWriteRepository = (*mockGroupRepo)(nil)
var _ ports.UserGroupReadRepository = (*mockGroupReads)(nil)
var _ ports.RoleReadRepository = (*mockRoleReads)(nil)
var _ ports.UserWriteRepository = (*mockUserRepo)(nil)
