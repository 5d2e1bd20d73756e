// Package auth is a local, mock credential store. It is a placeholder for a
// sign-in screen and offers no protection: passwords are kept as typed.
package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/storage"
)

// Messages are shown verbatim on the sign-in screen.
var (
	ErrPasswordMismatch   = errors.New("Passwords do not match")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrMissingFields      = errors.New("Email and password are required")
)

// ProfileSaver receives the profile derived from a successful sign-in.
type ProfileSaver interface {
	SaveProfile(ctx context.Context, p model.Profile) error
}

type Service struct {
	kv       storage.KV
	profiles ProfileSaver
	log      logrus.FieldLogger
	now      func() time.Time
	newID    func() string
}

func NewService(kv storage.KV, profiles ProfileSaver, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{kv: kv, profiles: profiles, log: log, now: time.Now, newID: uuid.NewString}
}

// SignUp registers a credential and writes the matching profile. Emails are
// compared exactly as typed.
func (s *Service) SignUp(ctx context.Context, email, password, confirm string) (model.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.Profile{}, ErrMissingFields
	}
	if password != confirm {
		return model.Profile{}, ErrPasswordMismatch
	}
	users, err := s.users(ctx)
	if err != nil {
		return model.Profile{}, err
	}
	if slices.ContainsFunc(users, func(c model.Credential) bool { return c.Email == email }) {
		return model.Profile{}, ErrEmailTaken
	}
	users = append(users, model.Credential{
		ID:        model.CredentialID(s.newID()),
		Email:     email,
		Password:  password,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	})
	if err := storage.PutJSON(ctx, s.kv, storage.KeyUsers, users); err != nil {
		return model.Profile{}, fmt.Errorf("auth: persist users: %w", err)
	}
	s.log.WithField("email", email).Info("mock account registered")
	return s.writeProfile(ctx, email)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (model.Profile, error) {
	email = strings.TrimSpace(email)
	users, err := s.users(ctx)
	if err != nil {
		return model.Profile{}, err
	}
	if !slices.ContainsFunc(users, func(c model.Credential) bool {
		return c.Email == email && c.Password == password
	}) {
		return model.Profile{}, ErrInvalidCredentials
	}
	return s.writeProfile(ctx, email)
}

// Users returns the stored credentials; unreadable data reads as none.
func (s *Service) Users(ctx context.Context) []model.Credential {
	users, err := s.users(ctx)
	if err != nil {
		return nil
	}
	return slices.Clone(users)
}

// users reads the stored list. A missing key is an empty list; anything else
// that fails to read is returned so callers never write over it.
func (s *Service) users(ctx context.Context) ([]model.Credential, error) {
	var users []model.Credential
	if err := storage.GetJSON(ctx, s.kv, storage.KeyUsers, &users); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.log.WithError(err).WithField("key", storage.KeyUsers).Warn("stored users unreadable")
		return nil, fmt.Errorf("auth: read users: %w", err)
	}
	return users, nil
}

func (s *Service) writeProfile(ctx context.Context, email string) (model.Profile, error) {
	p := model.ProfileForEmail(email)
	if s.profiles == nil {
		return p, nil
	}
	if err := s.profiles.SaveProfile(ctx, p); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}
