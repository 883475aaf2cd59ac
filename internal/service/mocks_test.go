package service

import (
	"context"
	"time"

	"github.com/formgate/formgate/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockFormStore mocks the domain.FormStore interface
type MockFormStore struct {
	mock.Mock
}

func (m *MockFormStore) Get(ctx context.Context, workspace domain.WorkspaceID, id domain.FormID) (*domain.Form, error) {
	args := m.Called(ctx, workspace, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Form), args.Error(1)
}

func (m *MockFormStore) Save(ctx context.Context, workspace domain.WorkspaceID, form *domain.Form) error {
	args := m.Called(ctx, workspace, form)
	return args.Error(0)
}

func (m *MockFormStore) Delete(ctx context.Context, workspace domain.WorkspaceID, id domain.FormID) (bool, error) {
	args := m.Called(ctx, workspace, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFormStore) List(ctx context.Context, workspace domain.WorkspaceID) ([]domain.FormSummary, error) {
	args := m.Called(ctx, workspace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FormSummary), args.Error(1)
}

// MockCooldownTracker mocks the domain.CooldownTracker interface
type MockCooldownTracker struct {
	mock.Mock
}

func (m *MockCooldownTracker) Remaining(ctx context.Context, ref domain.FormRef, user domain.UserID) (time.Duration, error) {
	args := m.Called(ctx, ref, user)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockCooldownTracker) Trigger(ctx context.Context, ref domain.FormRef, user domain.UserID, duration time.Duration) error {
	args := m.Called(ctx, ref, user, duration)
	return args.Error(0)
}

func (m *MockCooldownTracker) Clear(ctx context.Context, ref domain.FormRef, user domain.UserID) (bool, error) {
	args := m.Called(ctx, ref, user)
	return args.Bool(0), args.Error(1)
}

// MockSessionStore mocks the domain.SessionStore interface
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Put(ctx context.Context, session *domain.PromptSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.PromptSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PromptSession), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockDispatcher mocks the dispatch.Dispatcher interface
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) CanCreatePrivateConversation(ctx context.Context, destination domain.ChannelID) (bool, error) {
	args := m.Called(ctx, destination)
	return args.Bool(0), args.Error(1)
}

func (m *MockDispatcher) CreatePrivateConversation(ctx context.Context, destination domain.ChannelID, title string) (domain.ConversationRef, error) {
	args := m.Called(ctx, destination, title)
	return args.Get(0).(domain.ConversationRef), args.Error(1)
}

func (m *MockDispatcher) Post(ctx context.Context, ref domain.ConversationRef, message domain.ComposedMessage) error {
	args := m.Called(ctx, ref, message)
	return args.Error(0)
}

func (m *MockDispatcher) GrantAccess(ctx context.Context, ref domain.ConversationRef, user domain.UserID) error {
	args := m.Called(ctx, ref, user)
	return args.Error(0)
}
