package usecase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/apperror"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	doc   *model.PolicyDocument
	err   error
	calls int
	kinds []policy.Kind
}

func (f *fakeRepo) FindDocument(_ context.Context, kind policy.Kind) (*model.PolicyDocument, error) {
	f.calls++
	f.kinds = append(f.kinds, kind)
	return f.doc, f.err
}

type memoryStore struct {
	data   map[string][]byte
	getErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (m *memoryStore) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryStore) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryStore) DeletePattern(context.Context, string) (int, error) {
	n := len(m.data)
	m.data = map[string][]byte{}
	return n, nil
}

var updatedAt = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func termsDoc(text string, valid bool) *model.PolicyDocument {
	return &model.PolicyDocument{
		ID:             "doc-1",
		TermsOfService: sql.NullString{String: text, Valid: valid},
		UpdatedAt:      updatedAt,
	}
}

func TestResolve_Success(t *testing.T) {
	repo := &fakeRepo{doc: termsDoc("Be nice.", true)}
	uc := NewPolicyUseCase(repo, nil, time.Minute, logger.NewNop())

	for _, in := range []string{"terms of service", "Terms of Service", "termsOfService"} {
		got, err := uc.Resolve(context.Background(), in)
		require.NoError(t, err, in)
		assert.Equal(t, "Be nice.", got.Content)
		assert.True(t, got.UpdatedAt.Equal(updatedAt))
	}
	assert.Equal(t, []policy.Kind{policy.TermsOfService, policy.TermsOfService, policy.TermsOfService}, repo.kinds)
}

func TestResolve_NullContentIsNotFound(t *testing.T) {
	uc := NewPolicyUseCase(&fakeRepo{doc: termsDoc("", false)}, nil, time.Minute, logger.NewNop())

	got, err := uc.Resolve(context.Background(), "terms of service")
	assert.Nil(t, got)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestResolve_EmptyContentIsNotFound(t *testing.T) {
	uc := NewPolicyUseCase(&fakeRepo{doc: termsDoc("  ", true)}, nil, time.Minute, logger.NewNop())

	_, err := uc.Resolve(context.Background(), "terms of service")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestResolve_MissingDocumentIsNotFound(t *testing.T) {
	uc := NewPolicyUseCase(&fakeRepo{}, nil, time.Minute, logger.NewNop())

	_, err := uc.Resolve(context.Background(), "privacy policy")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestResolve_BlankTypeIsValidationError(t *testing.T) {
	repo := &fakeRepo{doc: termsDoc("x", true)}
	uc := NewPolicyUseCase(repo, nil, time.Minute, logger.NewNop())

	for _, in := range []string{"", "   "} {
		_, err := uc.Resolve(context.Background(), in)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	}
	assert.Zero(t, repo.calls)
}

func TestResolve_UnknownTypeSkipsRepository(t *testing.T) {
	repo := &fakeRepo{doc: termsDoc("x", true)}
	uc := NewPolicyUseCase(repo, nil, time.Minute, logger.NewNop())

	_, err := uc.Resolve(context.Background(), "warranty policy")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Zero(t, repo.calls)
}

func TestResolve_RepositoryFailureIsInternal(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	uc := NewPolicyUseCase(&fakeRepo{err: cause}, nil, time.Minute, logger.NewNop())

	_, err := uc.Resolve(context.Background(), "terms of service")
	require.Error(t, err)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.KindInternal, appErr.Kind)
	assert.Equal(t, apperror.MsgInternal, appErr.MessageID)
	assert.ErrorIs(t, err, cause)
}

func TestResolve_CachesContent(t *testing.T) {
	repo := &fakeRepo{doc: termsDoc("Be nice.", true)}
	store := newMemoryStore()
	uc := NewPolicyUseCase(repo, store, time.Minute, logger.NewNop())

	_, err := uc.Resolve(context.Background(), "terms of service")
	require.NoError(t, err)
	got, err := uc.Resolve(context.Background(), "Terms Of Service")
	require.NoError(t, err)

	assert.Equal(t, "Be nice.", got.Content)
	assert.Equal(t, 1, repo.calls)
	assert.Contains(t, store.data, "policies:termsOfService")
}

func TestResolve_CacheErrorFallsThrough(t *testing.T) {
	repo := &fakeRepo{doc: termsDoc("Be nice.", true)}
	store := newMemoryStore()
	store.getErr = errors.New("redis down")
	uc := NewPolicyUseCase(repo, store, time.Minute, logger.NewNop())

	got, err := uc.Resolve(context.Background(), "terms of service")
	require.NoError(t, err)
	assert.Equal(t, "Be nice.", got.Content)
	assert.Equal(t, 1, repo.calls)
}

func TestResolve_NotFoundIsNotCached(t *testing.T) {
	store := newMemoryStore()
	uc := NewPolicyUseCase(&fakeRepo{doc: termsDoc("", false)}, store, time.Minute, logger.NewNop())

	_, err := uc.Resolve(context.Background(), "terms of service")
	require.Error(t, err)
	assert.Empty(t, store.data)
}
