package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellpath/portal/internal/model"
)

func TestRegister_PatientDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.register(t, model.RolePatient, "Patient@Example.com")
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "patient@example.com", res.User.Email)
	assert.Equal(t, model.RolePatient, res.User.Role)
	assert.Equal(t, []string{"patient@example.com"}, env.mailer.welcomed)

	account, err := env.auth.Account(ctx, &model.Identity{UserID: res.User.ID, Role: model.RolePatient})
	require.NoError(t, err)

	patient, ok := account.(*model.Patient)
	require.True(t, ok)
	require.Len(t, patient.Goals, 3)
	assert.Equal(t, model.GoalTypeSteps, patient.Goals[0].Type)
	assert.Equal(t, 8000.0, *patient.Goals[0].Target)
	assert.Equal(t, "steps", *patient.Goals[0].Unit)
	assert.Equal(t, model.GoalTypeWater, patient.Goals[1].Type)
	assert.Equal(t, "glasses", *patient.Goals[1].Unit)
	assert.Equal(t, model.GoalTypeSleep, patient.Goals[2].Type)
	assert.Equal(t, "hours", *patient.Goals[2].Unit)
	for _, g := range patient.Goals {
		assert.Empty(t, g.Logs)
	}

	require.Len(t, patient.Reminders, 1)
	r := patient.Reminders[0]
	assert.Equal(t, "Annual Wellness Check", r.Title)
	assert.False(t, r.Completed)
	require.NotNil(t, r.DueDate)
	assert.Equal(t, time.December, r.DueDate.Month())
	assert.Equal(t, 31, r.DueDate.Day())
	assert.Equal(t, "None", patient.Allergies)
	assert.Equal(t, "Vitamin D", patient.Medications)
}

func TestRegister_ProviderHasNoPatientRecords(t *testing.T) {
	env := newTestEnv(t)

	res := env.register(t, model.RoleProvider, "doc@example.com")
	assert.Empty(t, env.mailer.welcomed)

	account, err := env.auth.Account(context.Background(), &model.Identity{UserID: res.User.ID, Role: model.RoleProvider})
	require.NoError(t, err)

	provider, ok := account.(*model.Provider)
	require.True(t, ok)
	assert.Empty(t, provider.AssignedPatientIDs)
	assert.Empty(t, provider.Allergies)
}

func TestRegister_Validation(t *testing.T) {
	valid := RegisterInput{Name: "Pat", Email: "pat@example.com", Password: "Patient123!", Role: "patient"}

	tests := []struct {
		name    string
		mutate  func(in *RegisterInput)
		message string
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "  " }, "Missing required fields"},
		{"missing email", func(in *RegisterInput) { in.Email = "" }, "Missing required fields"},
		{"missing password", func(in *RegisterInput) { in.Password = "" }, "Missing required fields"},
		{"missing role", func(in *RegisterInput) { in.Role = "" }, "Missing required fields"},
		{"unknown role", func(in *RegisterInput) { in.Role = "admin" }, "Invalid role"},
		{"bad email", func(in *RegisterInput) { in.Email = "nope" }, "invalid email address format"},
		{"long password", func(in *RegisterInput) { in.Password = string(make([]byte, 73)) }, "password must not exceed 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			in := valid
			tt.mutate(&in)

			_, err := env.auth.Register(context.Background(), in)
			requireClass(t, err, ErrValidation, tt.message)
		})
	}
}

func TestRegister_DuplicateEmailIgnoresCase(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, model.RolePatient, "dup@example.com")

	_, err := env.auth.Register(context.Background(), RegisterInput{
		Name: "Other", Email: "  DUP@example.com ", Password: "Provider123!", Role: "provider",
	})
	requireClass(t, err, ErrConflict, "Email already in use")
}

func TestRegister_ConcurrentDuplicates(t *testing.T) {
	env := newTestEnv(t)

	const n = 4
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.auth.Register(context.Background(), RegisterInput{
				Name: "Racer", Email: "race@example.com", Password: "Patient123!", Role: "patient",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrConflict)
	}
	assert.Equal(t, 1, succeeded)
}

func TestRegister_WelcomeFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.fail = true

	res, err := env.auth.Register(context.Background(), RegisterInput{
		Name: "Pat", Email: "pat@example.com", Password: "Patient123!", Role: "patient",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := env.register(t, model.RolePatient, "login@example.com")

	res, err := env.auth.Login(ctx, LoginInput{Email: "LOGIN@example.com", Password: "Patient123!"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, res.User.ID)

	identity, err := env.auth.Verify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, identity.UserID)

	_, wrongPassword := env.auth.Login(ctx, LoginInput{Email: "login@example.com", Password: "nope"})
	_, unknownEmail := env.auth.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "Patient123!"})
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	_, err = env.auth.Login(ctx, LoginInput{Email: "login@example.com"})
	requireClass(t, err, ErrValidation, "Missing required fields")
}

func TestVerify(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	res := env.register(t, model.RoleProvider, "verify@example.com")

	identity, err := env.auth.Verify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, model.Identity{UserID: res.User.ID, Role: model.RoleProvider}, *identity)

	t.Run("empty", func(t *testing.T) {
		_, err := env.auth.Verify(ctx, "")
		requireClass(t, err, ErrUnauthorized, "Invalid or expired token")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := env.auth.Verify(ctx, "not.a.token")
		requireClass(t, err, ErrUnauthorized, "Invalid or expired token")
	})

	t.Run("expired", func(t *testing.T) {
		issuer := *env.auth
		issuer.now = func() time.Time { return time.Now().Add(-9 * time.Hour) }
		token, err := issuer.GenerateJWT(res.User)
		require.NoError(t, err)

		_, err = env.auth.Verify(ctx, token)
		requireClass(t, err, ErrUnauthorized, "Invalid or expired token")
	})

	t.Run("other secret", func(t *testing.T) {
		other := *env.auth
		other.jwtSecret = "someone-else"
		token, err := other.GenerateJWT(res.User)
		require.NoError(t, err)

		_, err = env.auth.Verify(ctx, token)
		requireClass(t, err, ErrUnauthorized, "Invalid or expired token")
	})

	t.Run("unsigned", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"user_id": res.User.ID,
			"role":    "provider",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = env.auth.Verify(ctx, token)
		requireClass(t, err, ErrUnauthorized, "Invalid or expired token")
	})

	t.Run("missing claims", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = env.auth.Verify(ctx, token)
		requireClass(t, err, ErrUnauthorized, "Invalid or expired token")
	})

	t.Run("user gone", func(t *testing.T) {
		token, err := env.auth.GenerateJWT(&model.User{ID: "ghost", Role: model.RolePatient})
		require.NoError(t, err)

		_, err = env.auth.Verify(ctx, token)
		requireClass(t, err, ErrUnauthorized, "User not found")
	})
}

func TestRequireRole(t *testing.T) {
	env := newTestEnv(t)
	patient := &model.Identity{UserID: "p", Role: model.RolePatient}

	assert.NoError(t, env.auth.RequireRole(patient, model.RolePatient))
	requireClass(t, env.auth.RequireRole(patient, model.RoleProvider), ErrForbidden, "Forbidden")
	assert.ErrorIs(t, env.auth.RequireRole(nil, model.RolePatient), ErrUnauthorized)
}
