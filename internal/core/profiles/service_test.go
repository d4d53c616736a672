package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"SocialRelay/internal/ayrshare"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID string) (*UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserProfile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *UserProfile) (*UserProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserProfile), args.Error(1)
}

func (m *MockProfileRepository) UpdateRefID(ctx context.Context, userID, refID string) error {
	args := m.Called(ctx, userID, refID)
	return args.Error(0)
}

// MockUpstreamClient is a mock implementation of ayrshare.Client
type MockUpstreamClient struct {
	mock.Mock
}

func (m *MockUpstreamClient) CreateProfile(ctx context.Context, title string) (*ayrshare.ProfileCreated, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ayrshare.ProfileCreated), args.Error(1)
}

func (m *MockUpstreamClient) GetActiveAccounts(ctx context.Context, profileKey string) (*ayrshare.ActiveAccounts, error) {
	args := m.Called(ctx, profileKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ayrshare.ActiveAccounts), args.Error(1)
}

func (m *MockUpstreamClient) CreatePost(ctx context.Context, profileKey string, req ayrshare.PostRequest) (json.RawMessage, error) {
	args := m.Called(ctx, profileKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockUpstreamClient) GenerateJWT(ctx context.Context, profileKey string) (json.RawMessage, error) {
	args := m.Called(ctx, profileKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func TestCreateProfile_StoresMapping(t *testing.T) {
	repo := new(MockProfileRepository)
	upstream := new(MockUpstreamClient)

	raw := json.RawMessage(`{"profileKey":"PK-999","status":"success"}`)
	repo.On("GetByUserID", mock.Anything, "user-1").Return(nil, ErrProfileNotFound)
	upstream.On("CreateProfile", mock.Anything, "My Brand").
		Return(&ayrshare.ProfileCreated{ProfileKey: "PK-999", Raw: raw}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *UserProfile) bool {
		return p.UserID == "user-1" && p.ProfileKey == "PK-999"
	})).Return(&UserProfile{ID: "id-1", UserID: "user-1", ProfileKey: "PK-999"}, nil)

	service := NewProfileService(repo, upstream)
	created, err := service.CreateProfile(context.Background(), CreateProfileRequest{UserID: "user-1", Title: "My Brand"})

	require.NoError(t, err)
	assert.Equal(t, "PK-999", created.Profile.ProfileKey)
	assert.JSONEq(t, string(raw), string(created.Upstream))
	repo.AssertExpectations(t)
}

func TestCreateProfile_DuplicateSkipsUpstream(t *testing.T) {
	repo := new(MockProfileRepository)
	upstream := new(MockUpstreamClient)

	repo.On("GetByUserID", mock.Anything, "user-1").
		Return(&UserProfile{ID: "id-1", UserID: "user-1", ProfileKey: "PK-1"}, nil)

	service := NewProfileService(repo, upstream)
	_, err := service.CreateProfile(context.Background(), CreateProfileRequest{UserID: "user-1", Title: "My Brand"})

	require.ErrorIs(t, err, ErrProfileExists)
	upstream.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
}

func TestCreateProfile_UpstreamFailureLeavesNoLocalState(t *testing.T) {
	repo := new(MockProfileRepository)
	upstream := new(MockUpstreamClient)

	repo.On("GetByUserID", mock.Anything, "user-1").Return(nil, ErrProfileNotFound)
	upstream.On("CreateProfile", mock.Anything, "My Brand").Return(nil, errors.New("provider down"))

	service := NewProfileService(repo, upstream)
	_, err := service.CreateProfile(context.Background(), CreateProfileRequest{UserID: "user-1", Title: "My Brand"})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProfile_RequiresUserIDAndTitle(t *testing.T) {
	service := NewProfileService(new(MockProfileRepository), new(MockUpstreamClient))

	_, err := service.CreateProfile(context.Background(), CreateProfileRequest{UserID: "", Title: "x"})
	require.Error(t, err)

	_, err = service.CreateProfile(context.Background(), CreateProfileRequest{UserID: "user-1", Title: "  "})
	require.Error(t, err)
}

func TestGenerateJWT_ResolvesProfileKey(t *testing.T) {
	repo := new(MockProfileRepository)
	upstream := new(MockUpstreamClient)

	token := json.RawMessage(`{"token":"abc","url":"https://profile.example"}`)
	repo.On("GetByUserID", mock.Anything, "user-1").
		Return(&UserProfile{ID: "id-1", UserID: "user-1", ProfileKey: "PK-1"}, nil)
	upstream.On("GenerateJWT", mock.Anything, "PK-1").Return(token, nil)

	service := NewProfileService(repo, upstream)
	body, err := service.GenerateJWT(context.Background(), "user-1")

	require.NoError(t, err)
	assert.JSONEq(t, string(token), string(body))
}

func TestGenerateJWT_NoProfile(t *testing.T) {
	repo := new(MockProfileRepository)
	upstream := new(MockUpstreamClient)

	repo.On("GetByUserID", mock.Anything, "ghost").Return(nil, ErrProfileNotFound)

	service := NewProfileService(repo, upstream)
	_, err := service.GenerateJWT(context.Background(), "ghost")

	require.ErrorIs(t, err, ErrProfileNotFound)
	upstream.AssertNotCalled(t, "GenerateJWT", mock.Anything, mock.Anything)
}
