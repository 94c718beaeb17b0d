package auth_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/roster-management/internal"
	"github.com/frahmantamala/roster-management/internal/auth"
	userDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

type MockUserRepository struct {
	users      map[string]*userDatamodel.User
	shouldFail bool
	failError  error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: map[string]*userDatamodel.User{}}
}

func (m *MockUserRepository) AddUser(u *userDatamodel.User) {
	m.users[u.Username] = u
}

func (m *MockUserRepository) GetByUsername(username string) (*userDatamodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.users[username], nil
}

type MockSessionRepository struct {
	sessions   map[string]string
	touched    map[string]int
	shouldFail bool
	failError  error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: map[string]string{},
		touched:  map[string]int{},
	}
}

func (m *MockSessionRepository) Create(token, username string) error {
	if m.shouldFail {
		return m.failError
	}
	m.sessions[token] = username
	return nil
}

func (m *MockSessionRepository) FindUsername(token string) (string, error) {
	if m.shouldFail {
		return "", m.failError
	}
	return m.sessions[token], nil
}

func (m *MockSessionRepository) Touch(token string) error {
	if m.shouldFail {
		return m.failError
	}
	m.touched[token]++
	return nil
}

func (m *MockSessionRepository) Delete(token string) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.sessions, token)
	return nil
}

func (m *MockSessionRepository) DeleteForUsername(username string) error {
	if m.shouldFail {
		return m.failError
	}
	for token, owner := range m.sessions {
		if owner == username {
			delete(m.sessions, token)
		}
	}
	return nil
}

var _ = Describe("Auth Service", func() {
	var (
		userRepo    *MockUserRepository
		sessionRepo *MockSessionRepository
		service     *auth.Service
	)

	teamID := int64(1)

	hash := func(password string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		return string(h)
	}

	BeforeEach(func() {
		userRepo = NewMockUserRepository()
		sessionRepo = NewMockSessionRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(userRepo, sessionRepo, bcrypt.MinCost, logger)

		userRepo.AddUser(&userDatamodel.User{
			ID: 1, Username: "faizan.ahmad", PasswordHash: hash("123456"),
			Role: userDatamodel.RoleSupervisor, TeamID: &teamID, Active: true,
		})
		userRepo.AddUser(&userDatamodel.User{
			ID: 2, Username: "retired", PasswordHash: hash("secret"),
			Role: userDatamodel.RoleAdmin, TeamID: &teamID, Active: false,
		})
	})

	Describe("Authenticate", func() {
		It("mints a persisted session token for valid credentials", func() {
			resp, err := service.Authenticate(auth.LoginDTO{Username: "faizan.ahmad", Password: "123456"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Token).To(HaveLen(64))
			Expect(resp.Username).To(Equal("faizan.ahmad"))
			Expect(resp.Role).To(Equal(userDatamodel.RoleSupervisor))
			Expect(*resp.TeamID).To(Equal(teamID))
			Expect(sessionRepo.sessions[resp.Token]).To(Equal("faizan.ahmad"))
		})

		It("issues a distinct token per login", func() {
			first, err := service.Authenticate(auth.LoginDTO{Username: "faizan.ahmad", Password: "123456"})
			Expect(err).NotTo(HaveOccurred())
			second, err := service.Authenticate(auth.LoginDTO{Username: "faizan.ahmad", Password: "123456"})
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Token).NotTo(Equal(second.Token))
			Expect(sessionRepo.sessions).To(HaveLen(2))
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "faizan.ahmad", Password: "wrong"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("rejects an unknown username with the same error as a bad password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "nobody", Password: "123456"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("refuses deactivated accounts before checking the password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "retired", Password: "secret"})
			Expect(err).To(Equal(internal.ErrAccountDisabled))
		})

		It("requires both username and password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "faizan.ahmad"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UserForToken", func() {
		var token string

		BeforeEach(func() {
			resp, err := service.Authenticate(auth.LoginDTO{Username: "faizan.ahmad", Password: "123456"})
			Expect(err).NotTo(HaveOccurred())
			token = resp.Token
		})

		It("resolves a live token to its user", func() {
			u, err := service.UserForToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Username).To(Equal("faizan.ahmad"))
			Expect(u.Role).To(Equal(userDatamodel.RoleSupervisor))
		})

		It("touches the session on use", func() {
			_, err := service.UserForToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(sessionRepo.touched[token]).To(Equal(1))
		})

		It("rejects an unknown token", func() {
			_, err := service.UserForToken("deadbeef")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("rejects tokens of users deactivated after login", func() {
			userRepo.users["faizan.ahmad"].Active = false
			_, err := service.UserForToken(token)
			Expect(err).To(Equal(internal.ErrAccountDisabled))
		})

		It("rejects tokens after logout", func() {
			service.Logout(token)
			_, err := service.UserForToken(token)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("RevokeSessionsFor", func() {
		It("drops every session of the username and no others", func() {
			first, _ := service.Authenticate(auth.LoginDTO{Username: "faizan.ahmad", Password: "123456"})
			second, _ := service.Authenticate(auth.LoginDTO{Username: "faizan.ahmad", Password: "123456"})
			sessionRepo.sessions["other-token"] = "someone.else"

			service.RevokeSessionsFor("faizan.ahmad")

			Expect(sessionRepo.sessions).NotTo(HaveKey(first.Token))
			Expect(sessionRepo.sessions).NotTo(HaveKey(second.Token))
			Expect(sessionRepo.sessions).To(HaveKey("other-token"))
		})
	})

	Describe("Authenticate failure paths", func() {
		It("wraps repository failures as internal errors", func() {
			userRepo.shouldFail = true
			userRepo.failError = errors.New("db down")
			_, err := service.Authenticate(auth.LoginDTO{Username: "faizan.ahmad", Password: "123456"})
			Expect(err).To(HaveOccurred())
			Expect(err).NotTo(Equal(internal.ErrInvalidCredentials))
		})
	})
})

var _ = Describe("Team Scoping Policy", func() {
	teamOne := int64(1)
	teamTwo := int64(2)

	superAdmin := &auth.User{ID: 1, Username: "root", Role: userDatamodel.RoleSuperAdmin}
	supervisor := &auth.User{ID: 2, Username: "sup", Role: userDatamodel.RoleSupervisor, TeamID: &teamOne}
	unassigned := &auth.User{ID: 3, Username: "floating", Role: userDatamodel.RoleAdmin}

	Describe("EffectiveTeam", func() {
		It("passes any requested team through for a super admin", func() {
			got, err := auth.EffectiveTeam(superAdmin, &teamTwo)
			Expect(err).NotTo(HaveOccurred())
			Expect(*got).To(Equal(teamTwo))
		})

		It("lets a super admin omit the team, meaning all teams", func() {
			got, err := auth.EffectiveTeam(superAdmin, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})

		It("forces other roles onto their own team regardless of the request", func() {
			got, err := auth.EffectiveTeam(supervisor, &teamTwo)
			Expect(err).NotTo(HaveOccurred())
			Expect(*got).To(Equal(teamOne))
		})

		It("rejects non-super users without a team assignment", func() {
			_, err := auth.EffectiveTeam(unassigned, &teamTwo)
			Expect(err).To(MatchError("User has no team assigned"))
		})
	})

	Describe("RequireEffectiveTeam", func() {
		It("returns the concrete team for scoped roles", func() {
			got, err := auth.RequireEffectiveTeam(supervisor, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(teamOne))
		})

		It("demands an explicit team from a super admin", func() {
			_, err := auth.RequireEffectiveTeam(superAdmin, nil)
			Expect(err).To(Equal(internal.ErrTeamRequired))
		})

		It("accepts an explicit team from a super admin", func() {
			got, err := auth.RequireEffectiveTeam(superAdmin, &teamTwo)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(teamTwo))
		})
	})
})
