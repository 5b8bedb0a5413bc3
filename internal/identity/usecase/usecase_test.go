package usecase

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamindaf/lion-svc/internal/identity/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
	"github.com/chamindaf/lion-svc/internal/pkg/validator"
	"github.com/chamindaf/lion-svc/internal/shared/event"
)

// fakeHash keeps plaintexts recoverable so tests stay fast and deterministic.
type fakeHash struct {
	verifyAll bool
}

func (fakeHash) Hash(plaintext string) ([]byte, error) {
	return []byte("hashed:" + plaintext), nil
}

func (f fakeHash) Verify(hashed, plaintext string) bool {
	if f.verifyAll {
		return true
	}

	return hashed == "hashed:"+plaintext
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type seqID struct {
	next int64
}

func (s *seqID) Generate() int64 {
	s.next++

	return s.next
}

type fakeRepoDB struct {
	users      map[int64]*entity.User
	challenges map[int64]*entity.OtpChallenge

	createUserErr error
	lockoutErr    error
	lockedOut     []int64
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		users:      make(map[int64]*entity.User),
		challenges: make(map[int64]*entity.OtpChallenge),
	}
}

func (f *fakeRepoDB) addUser(u entity.User) {
	f.users[u.ID] = &u
}

func (f *fakeRepoDB) UserByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u

			return &cp, nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) UserByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *u

	return &cp, nil
}

func (f *fakeRepoDB) CreateUser(_ context.Context, user *entity.User) error {
	if f.createUserErr != nil {
		return f.createUserErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return goerror.ErrConflict
		}
	}
	cp := *user
	f.users[user.ID] = &cp

	return nil
}

func (f *fakeRepoDB) Users(_ context.Context, limit, offset int) ([]entity.User, int64, error) {
	out := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, int64(len(out)), nil
}

func (f *fakeRepoDB) UpdateUser(_ context.Context, user *entity.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return goerror.ErrNotFound
	}
	cp := *user
	f.users[user.ID] = &cp

	return nil
}

func (f *fakeRepoDB) CreateChallenge(_ context.Context, ch *entity.OtpChallenge) error {
	cp := *ch
	f.challenges[ch.ID] = &cp

	return nil
}

func (f *fakeRepoDB) PendingChallengeHashes(_ context.Context) ([]string, error) {
	var hashes []string
	for _, ch := range f.challenges {
		if ch.Status == entity.ChallengePending {
			hashes = append(hashes, ch.CodeHash)
		}
	}

	return hashes, nil
}

func (f *fakeRepoDB) NewestPendingChallenge(_ context.Context, userID int64) (*entity.OtpChallenge, error) {
	var newest *entity.OtpChallenge
	for _, ch := range f.challenges {
		if ch.UserID != userID || ch.Status != entity.ChallengePending {
			continue
		}
		if newest == nil || ch.CreatedAt.After(newest.CreatedAt) ||
			(ch.CreatedAt.Equal(newest.CreatedAt) && ch.ID > newest.ID) {
			newest = ch
		}
	}
	if newest == nil {
		return nil, goerror.ErrNotFound
	}
	cp := *newest

	return &cp, nil
}

func (f *fakeRepoDB) UpdateChallengeStatus(_ context.Context, id int64, status entity.ChallengeStatus) error {
	ch, ok := f.challenges[id]
	if !ok {
		return goerror.ErrNotFound
	}
	ch.Status = status

	return nil
}

func (f *fakeRepoDB) IncrementChallengeAttempts(_ context.Context, id int64) error {
	ch, ok := f.challenges[id]
	if !ok {
		return goerror.ErrNotFound
	}
	ch.Attempts++

	return nil
}

func (f *fakeRepoDB) LockoutUser(_ context.Context, challengeID, userID int64) error {
	if f.lockoutErr != nil {
		return f.lockoutErr
	}
	delete(f.challenges, challengeID)
	if u, ok := f.users[userID]; ok {
		u.IsActive = false
	}
	f.lockedOut = append(f.lockedOut, userID)

	return nil
}

type fakeRepoMessaging struct {
	otpIssued     []event.OtpIssued
	tempPasswords []event.TempPassword

	otpErr  error
	tempErr error
}

func (f *fakeRepoMessaging) PublishOtpIssued(_ context.Context, ev event.OtpIssued) error {
	if f.otpErr != nil {
		return f.otpErr
	}
	f.otpIssued = append(f.otpIssued, ev)

	return nil
}

func (f *fakeRepoMessaging) PublishTempPassword(_ context.Context, ev event.TempPassword) error {
	if f.tempErr != nil {
		return f.tempErr
	}
	f.tempPasswords = append(f.tempPasswords, ev)

	return nil
}

type fixture struct {
	uc    *Usecase
	repo  *fakeRepoDB
	mq    *fakeRepoMessaging
	clock *fakeClock
	jwt   *jwt.Symmetric
	hash  fakeHash
}

func newFixture(t *testing.T, hashOpts ...fakeHash) *fixture {
	t.Helper()

	h := fakeHash{}
	if len(hashOpts) > 0 {
		h = hashOpts[0]
	}

	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := newFakeRepoDB()
	mq := &fakeRepoMessaging{}

	ins, err := instrument.New(context.Background(), instrument.Options{ServiceName: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ins.Close(context.Background()) })

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	signer, err := jwt.NewSymmetric(jwt.Config{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Issuer: "lion-svc",
		Clock:  clk,
	})
	require.NoError(t, err)

	uc := New(Dependency{
		RepoDB:        repo,
		RepoMessaging: mq,
		Hash:          h,
		JWT:           signer,
		Clock:         clk,
		UID:           &seqID{next: 1000},
		Validator:     v10,
		Instrument:    ins,
		OTP: OTPConfig{
			CodeLength:     6,
			Validity:       5 * time.Minute,
			MaxAttempts:    3,
			MaxGenerations: 10,
		},
	})

	return &fixture{uc: uc, repo: repo, mq: mq, clock: clk, jwt: signer, hash: h}
}

func (f *fixture) addUser(t *testing.T, id int64, email, password string) entity.User {
	t.Helper()

	hashed, err := f.hash.Hash(password)
	require.NoError(t, err)

	u := entity.User{
		ID:           id,
		Email:        email,
		Role:         entity.RoleVendor,
		FirstName:    "Tharindu",
		LastName:     "Perera",
		PasswordHash: string(hashed),
		IsActive:     true,
		CreatedAt:    f.clock.now,
		UpdatedAt:    f.clock.now,
	}
	f.repo.addUser(u)

	return u
}

func adminCtx() context.Context {
	return jwt.SetAuth(context.Background(), &jwt.Claims{UserID: 99, Role: "Admin", Kind: jwt.KindAccess})
}

func assertBusinessError(t *testing.T, err error, msg string, code goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, goerror.TypeBusiness, ge.Type())
	assert.Equal(t, msg, ge.Msg())
	assert.Equal(t, code, ge.Code())
}

func TestUsecase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a challenge and emails the code", func(t *testing.T) {
		f := newFixture(t)
		f.addUser(t, 1, "vendor@lion.example", "correct-horse")

		out, err := f.uc.Login(ctx, LoginInput{Email: "vendor@lion.example", Password: "correct-horse"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), out.UserID)
		assert.Equal(t, 0, out.Attempts)
		assert.Equal(t, f.clock.now.Add(5*time.Minute), out.ExpiresAt)

		require.Len(t, f.mq.otpIssued, 1)
		ev := f.mq.otpIssued[0]
		assert.Equal(t, int64(1), ev.UserID)
		assert.Len(t, ev.Code, 6)
		_, convErr := strconv.Atoi(ev.Code)
		assert.NoError(t, convErr)

		ch, ok := f.repo.challenges[out.ChallengeID]
		require.True(t, ok)
		assert.Equal(t, entity.ChallengePending, ch.Status)
		assert.Equal(t, 0, ch.Attempts)
		assert.True(t, f.hash.Verify(ch.CodeHash, ev.Code))
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		f := newFixture(t)
		f.addUser(t, 1, "vendor@lion.example", "correct-horse")

		_, unknownErr := f.uc.Login(ctx, LoginInput{Email: "nobody@lion.example", Password: "correct-horse"})
		_, wrongErr := f.uc.Login(ctx, LoginInput{Email: "vendor@lion.example", Password: "wrong-password"})

		assertBusinessError(t, unknownErr, "Incorrect email or password", goerror.CodeUnauthorized)
		assertBusinessError(t, wrongErr, "Incorrect email or password", goerror.CodeUnauthorized)
	})

	t.Run("delivery failure does not fail the login", func(t *testing.T) {
		f := newFixture(t)
		f.addUser(t, 1, "vendor@lion.example", "correct-horse")
		f.mq.otpErr = errors.New("broker down")

		out, err := f.uc.Login(ctx, LoginInput{Email: "vendor@lion.example", Password: "correct-horse"})

		require.NoError(t, err)
		assert.Contains(t, f.repo.challenges, out.ChallengeID)
	})

	t.Run("generation exhaustion is a server fault", func(t *testing.T) {
		// a hash that matches everything makes every candidate collide with
		// the one pending challenge
		f := newFixture(t, fakeHash{verifyAll: true})
		f.addUser(t, 1, "vendor@lion.example", "correct-horse")
		f.repo.challenges[99] = &entity.OtpChallenge{
			ID: 99, UserID: 2, CodeHash: "hashed:anything",
			Status: entity.ChallengePending, CreatedAt: f.clock.now,
		}

		_, err := f.uc.Login(ctx, LoginInput{Email: "vendor@lion.example", Password: "correct-horse"})

		var ge *goerror.Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, goerror.TypeServer, ge.Type())
	})

	t.Run("invalid input is rejected before any lookup", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Login(ctx, LoginInput{Email: "not-an-email", Password: "short"})

		var ve *validator.V10ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestUsecase_VerifyLogin(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, f *fixture) (entity.User, string, int64) {
		t.Helper()

		u := f.addUser(t, 1, "vendor@lion.example", "correct-horse")
		out, err := f.uc.Login(ctx, LoginInput{Email: u.Email, Password: "correct-horse"})
		require.NoError(t, err)
		require.Len(t, f.mq.otpIssued, 1)

		return u, f.mq.otpIssued[0].Code, out.ChallengeID
	}

	t.Run("correct code consumes the challenge and issues tokens", func(t *testing.T) {
		f := newFixture(t)
		u, code, challengeID := login(t, f)

		out, err := f.uc.VerifyLogin(ctx, VerifyLoginInput{Email: u.Email, Code: code})

		require.NoError(t, err)
		assert.Equal(t, "bearer", out.TokenType)
		assert.Equal(t, entity.ChallengeConsumed, f.repo.challenges[challengeID].Status)

		access, err := f.jwt.Verify(out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, jwt.KindAccess, access.Kind)
		assert.Equal(t, u.Email, access.Subject)
		assert.Equal(t, u.ID, access.UserID)

		refresh, err := f.jwt.Verify(out.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, jwt.KindRefresh, refresh.Kind)
	})

	t.Run("wrong code counts an attempt", func(t *testing.T) {
		f := newFixture(t)
		u, _, challengeID := login(t, f)

		_, err := f.uc.VerifyLogin(ctx, VerifyLoginInput{Email: u.Email, Code: "000000"})

		assertBusinessError(t, err, "Incorrect OTP", goerror.CodeUnauthorized)
		assert.Equal(t, 1, f.repo.challenges[challengeID].Attempts)
		assert.Empty(t, f.repo.lockedOut)
	})

	t.Run("limit reached locks out on the next wrong code", func(t *testing.T) {
		f := newFixture(t)
		u, code, challengeID := login(t, f)

		for i := 0; i < 3; i++ {
			_, err := f.uc.VerifyLogin(ctx, VerifyLoginInput{Email: u.Email, Code: "000000"})
			assertBusinessError(t, err, "Incorrect OTP", goerror.CodeUnauthorized)
		}
		assert.Equal(t, 3, f.repo.challenges[challengeID].Attempts)

		_, err := f.uc.VerifyLogin(ctx, VerifyLoginInput{Email: u.Email, Code: "000000"})

		assertBusinessError(t, err, "Maximum OTP attempts exceeded", goerror.CodeForbidden)
		assert.Equal(t, []int64{u.ID}, f.repo.lockedOut)
		assert.NotContains(t, f.repo.challenges, challengeID)
		assert.False(t, f.repo.users[u.ID].IsActive)

		// even the right code is useless once the challenge is gone
		_, err = f.uc.VerifyLogin(ctx, VerifyLoginInput{Email: u.Email, Code: code})
		assertBusinessError(t, err, "OTP not found", goerror.CodeUnauthorized)
	})

	t.Run("lockout for a missing user surfaces not found", func(t *testing.T) {
		f := newFixture(t)
		u, _, _ := login(t, f)
		f.repo.lockoutErr = goerror.ErrNotFound

		for i := 0; i < 3; i++ {
			_, err := f.uc.VerifyLogin(ctx, VerifyLoginInput{Email: u.Email, Code: "000000"})
			assertBusinessError(t, err, "Incorrect OTP", goerror.CodeUnauthorized)
		}

		_, err := f.uc.VerifyLogin(ctx, VerifyLoginInput{Email: u.Email, Code: "000000"})

		assertBusinessError(t, err, "User not found", goerror.CodeNotFound)
	})

	t.Run("a code at the validity boundary is expired", func(t *testing.T) {
		f := newFixture(t)
		u, code, challengeID := login(t, f)

		f.clock.now = f.clock.now.Add(5 * time.Minute)

		_, err := f.uc.VerifyLogin(ctx, VerifyLoginInput{Email: u.Email, Code: code})

		assertBusinessError(t, err, "OTP has expired.", goerror.CodeForbidden)
		assert.Equal(t, entity.ChallengeExpired, f.repo.challenges[challengeID].Status)
	})

	t.Run("no pending challenge", func(t *testing.T) {
		f := newFixture(t)
		f.addUser(t, 1, "vendor@lion.example", "correct-horse")

		_, err := f.uc.VerifyLogin(ctx, VerifyLoginInput{Email: "vendor@lion.example", Code: "123456"})

		assertBusinessError(t, err, "OTP not found", goerror.CodeUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.VerifyLogin(ctx, VerifyLoginInput{Email: "nobody@lion.example", Code: "123456"})

		assertBusinessError(t, err, "Incorrect email", goerror.CodeUnauthorized)
	})

	t.Run("the newest challenge wins", func(t *testing.T) {
		f := newFixture(t)
		u, firstCode, _ := login(t, f)

		f.clock.now = f.clock.now.Add(time.Minute)
		_, err := f.uc.Login(ctx, LoginInput{Email: u.Email, Password: "correct-horse"})
		require.NoError(t, err)
		require.Len(t, f.mq.otpIssued, 2)
		secondCode := f.mq.otpIssued[1].Code

		if firstCode != secondCode {
			_, err = f.uc.VerifyLogin(ctx, VerifyLoginInput{Email: u.Email, Code: firstCode})
			assertBusinessError(t, err, "Incorrect OTP", goerror.CodeUnauthorized)
		}

		out, err := f.uc.VerifyLogin(ctx, VerifyLoginInput{Email: u.Email, Code: secondCode})
		require.NoError(t, err)
		assert.NotEmpty(t, out.AccessToken)
	})
}

func TestUsecase_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("exchanges a refresh token for a new access token", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, 1, "vendor@lion.example", "correct-horse")

		refresh, err := f.jwt.GenerateRefresh(u.Email, u.ID, string(u.Role))
		require.NoError(t, err)

		out, err := f.uc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: refresh})

		require.NoError(t, err)
		assert.Equal(t, "bearer", out.TokenType)

		claims, err := f.jwt.Verify(out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, jwt.KindAccess, claims.Kind)
		assert.Equal(t, u.ID, claims.UserID)
	})

	t.Run("an access token is not a refresh token", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, 1, "vendor@lion.example", "correct-horse")

		access, err := f.jwt.GenerateAccess(u.Email, u.ID, string(u.Role))
		require.NoError(t, err)

		_, err = f.uc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: access})

		assertBusinessError(t, err, "Invalid refresh token", goerror.CodeUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "not.a.token"})

		assertBusinessError(t, err, "Invalid refresh token", goerror.CodeUnauthorized)
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		f := newFixture(t)

		refresh, err := f.jwt.GenerateRefresh("gone@lion.example", 9, "Vendor")
		require.NoError(t, err)

		_, err = f.uc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: refresh})

		assertBusinessError(t, err, "Invalid refresh token", goerror.CodeUnauthorized)
	})
}

func TestUsecase_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the password and clears the temporary flag", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, 1, "vendor@lion.example", "temp-pass-1!")
		f.repo.users[u.ID].IsTempPassword = true

		err := f.uc.ResetPassword(ctx, ResetPasswordInput{
			Email:           u.Email,
			CurrentPassword: "temp-pass-1!",
			NewPassword:     "brand-new-pass",
		})

		require.NoError(t, err)
		stored := f.repo.users[u.ID]
		assert.False(t, stored.IsTempPassword)
		assert.True(t, f.hash.Verify(stored.PasswordHash, "brand-new-pass"))
		assert.True(t, stored.IsActive, "activation is not part of a password reset")
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t, 1, "vendor@lion.example", "temp-pass-1!")

		err := f.uc.ResetPassword(ctx, ResetPasswordInput{
			Email:           u.Email,
			CurrentPassword: "not-the-password",
			NewPassword:     "brand-new-pass",
		})

		assertBusinessError(t, err, "Incorrect email or password", goerror.CodeUnauthorized)
		assert.True(t, f.hash.Verify(f.repo.users[u.ID].PasswordHash, "temp-pass-1!"))
	})
}

func TestUsecase_CreateUser(t *testing.T) {
	t.Run("provisions an inactive account with a temporary password", func(t *testing.T) {
		f := newFixture(t)

		out, err := f.uc.CreateUser(adminCtx(), CreateUserInput{
			Email:     "new@lion.example",
			Role:      "Vendor",
			FirstName: "Nuwan",
		})

		require.NoError(t, err)
		assert.True(t, out.User.IsTempPassword)
		assert.False(t, out.User.IsActive)
		assert.NotZero(t, out.User.ID)

		require.Len(t, f.mq.tempPasswords, 1)
		ev := f.mq.tempPasswords[0]
		assert.Equal(t, out.User.ID, ev.UserID)
		assert.Len(t, ev.Password, 12)
		assert.True(t, f.hash.Verify(f.repo.users[out.User.ID].PasswordHash, ev.Password))
	})

	t.Run("only administrators can create accounts", func(t *testing.T) {
		f := newFixture(t)
		vendor := jwt.SetAuth(context.Background(), &jwt.Claims{UserID: 7, Role: "Vendor", Kind: jwt.KindAccess})

		_, err := f.uc.CreateUser(vendor, CreateUserInput{
			Email:     "new@lion.example",
			Role:      "Admin",
			FirstName: "Nuwan",
		})

		assertBusinessError(t, err, "Only administrators can create users", goerror.CodeForbidden)
		assert.Empty(t, f.repo.users)
		assert.Empty(t, f.mq.tempPasswords)
	})

	t.Run("requires authentication", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.CreateUser(context.Background(), CreateUserInput{
			Email:     "new@lion.example",
			Role:      "Vendor",
			FirstName: "Nuwan",
		})

		assertBusinessError(t, err, "missing bearer token", goerror.CodeUnauthorized)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)
		f.addUser(t, 1, "taken@lion.example", "correct-horse")

		_, err := f.uc.CreateUser(adminCtx(), CreateUserInput{
			Email:     "taken@lion.example",
			Role:      "Admin",
			FirstName: "Nuwan",
		})

		assertBusinessError(t, err, "A user with this email already exists", goerror.CodeConflict)
	})

	t.Run("delivery failure does not undo the account", func(t *testing.T) {
		f := newFixture(t)
		f.mq.tempErr = errors.New("broker down")

		out, err := f.uc.CreateUser(adminCtx(), CreateUserInput{
			Email:     "new@lion.example",
			Role:      "Vendor",
			FirstName: "Nuwan",
		})

		require.NoError(t, err)
		assert.Contains(t, f.repo.users, out.User.ID)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.CreateUser(adminCtx(), CreateUserInput{
			Email:     "new@lion.example",
			Role:      "Superuser",
			FirstName: "Nuwan",
		})

		var ve *validator.V10ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}
