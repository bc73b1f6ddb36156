package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/craftfolio/craftfolio-server/internal/models"
	"github.com/craftfolio/craftfolio-server/internal/repositories"
	"github.com/craftfolio/craftfolio-server/internal/uploader"
)

type fakeUserStore struct {
	users map[string]*models.User // keyed by email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := s.users[user.Email]; ok {
		return repositories.ErrDuplicateEmail
	}
	s.users[user.Email] = user
	return nil
}

func (s *fakeUserStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeProfileStore struct {
	profiles map[uuid.UUID]*models.Profile // keyed by user id
	saves    int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (s *fakeProfileStore) ProfileByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *profile
	return &clone, nil
}

func (s *fakeProfileStore) SaveProfile(_ context.Context, profile *models.Profile) error {
	clone := *profile
	s.profiles[profile.UserID] = &clone
	s.saves++
	return nil
}

func (s *fakeProfileStore) DeleteProfile(_ context.Context, userID uuid.UUID) error {
	if _, ok := s.profiles[userID]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.profiles, userID)
	return nil
}

type fakeUploader struct {
	calls  int
	result *uploader.Result
	err    error
}

func (u *fakeUploader) Upload(_ context.Context, _ []byte, _, _, _ string) (*uploader.Result, error) {
	u.calls++
	if u.err != nil {
		return nil, u.err
	}
	return u.result, nil
}

var errProvider = errors.New("provider outage")
