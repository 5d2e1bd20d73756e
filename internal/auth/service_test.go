package auth

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/storage"
)

type profileRecorder struct {
	saved []model.Profile
}

func (r *profileRecorder) SaveProfile(_ context.Context, p model.Profile) error {
	r.saved = append(r.saved, p)
	return nil
}

func newService(t *testing.T) (*Service, *storage.MemoryKV, *profileRecorder) {
	t.Helper()
	kv := storage.NewMemoryKV()
	rec := &profileRecorder{}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(kv, rec, log), kv, rec
}

func TestSignUpThenSignIn(t *testing.T) {
	svc, _, rec := newService(t)
	ctx := context.Background()

	p, err := svc.SignUp(ctx, "ada@example.com", "pw", "pw")
	require.NoError(t, err)
	assert.Equal(t, model.ProfileForEmail("ada@example.com"), p)
	require.Len(t, svc.Users(ctx), 1)
	assert.Equal(t, "pw", svc.Users(ctx)[0].Password)

	p, err = svc.SignIn(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ada", p.Name)
	assert.Len(t, rec.saved, 2)
}

func TestSignUpRejectsPasswordMismatch(t *testing.T) {
	svc, _, rec := newService(t)
	_, err := svc.SignUp(context.Background(), "ada@example.com", "pw", "other")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Equal(t, "Passwords do not match", err.Error())
	assert.Empty(t, svc.Users(context.Background()))
	assert.Empty(t, rec.saved)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	_, err := svc.SignUp(ctx, "ada@example.com", "pw", "pw")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "ada@example.com", "other", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, "Email already registered", err.Error())
	assert.Len(t, svc.Users(ctx), 1)
}

func TestSignInRejectsUnknownOrWrongPassword(t *testing.T) {
	svc, _, rec := newService(t)
	ctx := context.Background()
	_, err := svc.SignIn(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignUp(ctx, "ada@example.com", "pw", "pw")
	require.NoError(t, err)
	_, err = svc.SignIn(ctx, "ada@example.com", "wrong")
	assert.Equal(t, "Invalid email or password", err.Error())
	assert.Len(t, rec.saved, 1)
}

func TestNumericIDUsersStillSignIn(t *testing.T) {
	svc, kv, rec := newService(t)
	ctx := context.Background()
	seed := []byte(`[{"id":1717000000000,"email":"a@x.io","password":"p","createdAt":"2025-06-01T00:00:00.000Z"}]`)
	require.NoError(t, kv.Put(ctx, storage.KeyUsers, seed))

	users := svc.Users(ctx)
	require.Len(t, users, 1)
	assert.Equal(t, model.CredentialID("1717000000000"), users[0].ID)

	p, err := svc.SignIn(ctx, "a@x.io", "p")
	require.NoError(t, err)
	assert.Equal(t, "a", p.Name)
	assert.Len(t, rec.saved, 1)

	_, err = svc.SignUp(ctx, "a@x.io", "q", "q")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.SignUp(ctx, "b@x.io", "q", "q")
	require.NoError(t, err)
	users = svc.Users(ctx)
	require.Len(t, users, 2)
	assert.Equal(t, "a@x.io", users[0].Email)
}

func TestUnreadableUsersAreNotOverwritten(t *testing.T) {
	for name, raw := range map[string]string{
		"malformed":         `nope`,
		"numeric createdAt": `[{"id":"u1","email":"a@x.io","password":"p","createdAt":1717000000000}]`,
	} {
		t.Run(name, func(t *testing.T) {
			svc, kv, rec := newService(t)
			ctx := context.Background()
			require.NoError(t, kv.Put(ctx, storage.KeyUsers, []byte(raw)))

			assert.Empty(t, svc.Users(ctx))
			_, err := svc.SignUp(ctx, "ada@example.com", "pw", "pw")
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrEmailTaken)

			_, err = svc.SignIn(ctx, "a@x.io", "p")
			require.Error(t, err)

			got, err := kv.Get(ctx, storage.KeyUsers)
			require.NoError(t, err)
			assert.Equal(t, raw, string(got))
			assert.Empty(t, rec.saved)
		})
	}
}

func TestSignUpRequiresEmailAndPassword(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.SignUp(context.Background(), "  ", "", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}
