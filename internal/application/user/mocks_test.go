package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
)

type mockUserRepo struct {
	users         map[string]*domain.User // keyed by id
	usernameTaken bool

	saved      []*domain.User
	saveErr    error
	findCalls  int
	existCalls int
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		m.users[u.ID.String()] = u
	}
	return m
}

func (m *mockUserRepo) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	m.findCalls++
	return m.users[id.String()], nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	m.findCalls++
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	m.findCalls++
	for _, u := range m.users {
		if u.Username != nil && *u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) UsernameExists(ctx context.Context, username domain.Username, excludeID domain.UserID) (bool, error) {
	m.existCalls++
	return m.usernameTaken, nil
}

func (m *mockUserRepo) Save(ctx context.Context, u *domain.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, u)
	m.users[u.ID.String()] = u
	return nil
}

type mockReadRepo struct {
	roles    []domain.RoleCode
	rolesErr error
	page     ports.Page[ports.UserReadModel]
	model    *ports.UserReadModel

	lastFilter ports.UserFilter
}

func (m *mockReadRepo) FindByID(ctx context.Context, id domain.UserID) (*ports.UserReadModel, error) {
	return m.model, nil
}

func (m *mockReadRepo) Find(ctx context.Context, filter ports.UserFilter) (ports.Page[ports.UserReadModel], error) {
	m.lastFilter = filter
	return m.page, nil
}

func (m *mockReadRepo) ListRoleCodes(ctx context.Context, id domain.UserID) ([]domain.RoleCode, error) {
	return m.roles, m.rolesErr
}

type mockProvider struct {
	creds     *ports.ProviderCredentials
	verifyErr error

	createdID     string
	createUserErr error

	signInToken    string
	signInTokenErr error

	verifyTokenID  string
	verifyTokenErr error

	enabled    []string
	disabled   []string
	enableErr  error
	disableErr error
}

func (m *mockProvider) VerifyPassword(ctx context.Context, email, password string) (*ports.ProviderCredentials, error) {
	return m.creds, m.verifyErr
}

func (m *mockProvider) CreateSignInToken(ctx context.Context, externalID string, claims map[string]interface{}) (string, error) {
	return m.signInToken, m.signInTokenErr
}

func (m *mockProvider) CreateUser(ctx context.Context, input ports.CreateIdentityInput) (string, error) {
	return m.createdID, m.createUserErr
}

func (m *mockProvider) EnableUser(ctx context.Context, externalID string) error {
	m.enabled = append(m.enabled, externalID)
	return m.enableErr
}

func (m *mockProvider) DisableUser(ctx context.Context, externalID string) error {
	m.disabled = append(m.disabled, externalID)
	return m.disableErr
}

func (m *mockProvider) VerifyToken(ctx context.Context, idToken string) (string, error) {
	return m.verifyTokenID, m.verifyTokenErr
}

type mockTokens struct {
	token    string
	issueErr error

	issuedFor   string
	issuedRoles []domain.RoleCode
}

func (m *mockTokens) IssueAccessToken(userID string, roles []domain.RoleCode, expiresInSeconds int64) (string, error) {
	m.issuedFor = userID
	m.issuedRoles = roles
	return m.token, m.issueErr
}

func (m *mockTokens) VerifyAccessToken(token string) (string, []domain.RoleCode, error) {
	if token != m.token {
		return "", nil, errors.New("unknown token")
	}
	return m.issuedFor, m.issuedRoles, nil
}

// captureHandler records every dispatched event.
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

func activeUser(email string) *domain.User {
	em, err := domain.NewEmail(email)
	if err != nil {
		panic(fmt.Sprintf("bad test email %q: %v", email, err))
	}
	id := domain.UserIDFromEmail(testNamespace, em)
	u := domain.RegisterUser(id, em, domain.SignInEmail, "ext-"+email, nil, nil, id)
	u.TakeEvents()
	return u
}

var _ ports.UserWriteRepository = (*mockUserRepo)(nil)
var _ ports.UserReadRepository = (*mockReadRepo)(nil)
var _ ports.IdentityProvider = (*mockProvider)(nil)
var _ ports.TokenService = (*mockTokens)(nil)
