package provisioning

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"themis-backend/internal/domain/audit"
	"themis-backend/internal/domain/puc"
	"themis-backend/internal/domain/uow"
	"themis-backend/internal/domain/user"
	"themis-backend/internal/domain/visitor"
	"themis-backend/internal/testutil/auditmock"
	"themis-backend/internal/testutil/pucmock"
	"themis-backend/internal/testutil/uowmock"
	"themis-backend/internal/testutil/usermock"
	"themis-backend/internal/testutil/visitormock"
	"themis-backend/internal/usecase/auth"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() { auth.HashCost = bcrypt.MinCost }

var rePassword = regexp.MustCompile(`^[A-Za-z0-9]{8}$`)

// fakeStore keeps just enough state to exercise username probing.
type fakeStore struct {
	usernames map[string]bool
	users     []*user.User
	visitors  []*visitor.Visitor
	approved  []*visitor.ApprovedVisitor
	audits    *auditmock.Repo
}

func newFakeStore(taken ...string) (*fakeStore, uow.Repos) {
	s := &fakeStore{usernames: map[string]bool{}, audits: &auditmock.Repo{}}
	for _, u := range taken {
		s.usernames[u] = true
	}
	users := &usermock.Repo{
		UsernameExistsFn: func(ctx context.Context, username string) (bool, error) {
			return s.usernames[username], nil
		},
		CreateFn: func(ctx context.Context, u *user.User) error {
			if s.usernames[u.Username] {
				return gorm.ErrDuplicatedKey
			}
			s.usernames[u.Username] = true
			u.UserID = uint64(len(s.users) + 100)
			s.users = append(s.users, u)
			return nil
		},
	}
	visitors := &visitormock.Repo{
		CreateFn: func(ctx context.Context, v *visitor.Visitor) error {
			v.VisitorID = uint64(len(s.visitors) + 1)
			s.visitors = append(s.visitors, v)
			return nil
		},
		CreateApprovedFn: func(ctx context.Context, a *visitor.ApprovedVisitor) error {
			a.ApprovalID = uint64(len(s.approved) + 1)
			s.approved = append(s.approved, a)
			return nil
		},
	}
	pucs := &pucmock.Repo{
		GetByIDFn: func(ctx context.Context, pucID uint64) (*puc.PUC, error) {
			if pucID != 1 {
				return nil, gorm.ErrRecordNotFound
			}
			return &puc.PUC{PUCID: 1, FirstName: "Ray", LastName: "Doe"}, nil
		},
	}
	return s, uow.Repos{Users: users, Visitors: visitors, PUCs: pucs, Audit: s.audits}
}

func TestBaseUsername(t *testing.T) {
	tests := []struct{ first, last, want string }{
		{"Jane", "Doe", "jdoe"},
		{"  jane", "Van Der Berg", "jvanderberg"},
		{"Élodie", "Durand", "édurand"},
		{"A", "Abcdefghijklmnopqrstuvwxyz", "aabcdefghijklmn"},
		{"", "Solo", "solo"},
	}
	for _, tc := range tests {
		if got := BaseUsername(tc.first, tc.last); got != tc.want {
			t.Errorf("BaseUsername(%q,%q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestUniqueUsername(t *testing.T) {
	_, repos := newFakeStore("jdoe", "jdoe1", "jdoe2")
	got, err := UniqueUsername(context.Background(), repos.Users, "jdoe")
	if err != nil {
		t.Fatalf("UniqueUsername: %v", err)
	}
	if got != "jdoe3" {
		t.Fatalf("got %q, want jdoe3", got)
	}
}

func TestProvision_SequentialCollisions(t *testing.T) {
	s, repos := newFakeStore()
	uc := NewUsecase(uowmock.Passthrough(repos), nil)
	ctx := context.Background()

	first, err := uc.Provision(ctx, Input{PUCID: 1, FirstName: "Jane", LastName: "Doe", Relationship: "Sister", Email: "jane@x.io", ActorID: 7, IP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("Provision jane: %v", err)
	}
	second, err := uc.Provision(ctx, Input{PUCID: 1, FirstName: "John", LastName: "Doe"})
	if err != nil {
		t.Fatalf("Provision john: %v", err)
	}

	if first.Username != "jdoe" || second.Username != "jdoe1" {
		t.Fatalf("usernames = %q, %q", first.Username, second.Username)
	}
	if !rePassword.MatchString(first.Password) || !rePassword.MatchString(second.Password) {
		t.Fatalf("passwords not 8 alphanumerics: %q %q", first.Password, second.Password)
	}

	if len(s.visitors) != 2 {
		t.Fatalf("visitor rows = %d, want one per provision", len(s.visitors))
	}
	u := s.users[0]
	if u.RoleID != user.RoleVisitor || u.VisitorID == nil || *u.VisitorID != first.VisitorID {
		t.Fatalf("user = %+v", u)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(first.Password)) != nil {
		t.Fatalf("stored hash does not match returned password")
	}
	av := s.approved[0]
	if !av.AccountCreated || av.Password != first.Password || *av.UserID != first.UserID || av.PUCID != 1 {
		t.Fatalf("approved visitor = %+v", av)
	}

	if len(s.audits.Created) != 2 {
		t.Fatalf("audit rows = %d", len(s.audits.Created))
	}
	a := s.audits.Created[0]
	if a.EventType != audit.EventVisitorProvisioned || a.UserID == nil || *a.UserID != 7 || a.IPAddress != "10.0.0.1" {
		t.Fatalf("audit = %+v", a)
	}
	if s.audits.Created[1].UserID != nil {
		t.Fatalf("anonymous actor should leave user_id empty")
	}
}

func TestProvision_Validation(t *testing.T) {
	_, repos := newFakeStore()
	uc := NewUsecase(uowmock.Passthrough(repos), nil)
	ctx := context.Background()

	if _, err := uc.Provision(ctx, Input{PUCID: 1, FirstName: " ", LastName: "Doe"}); !errors.Is(err, puc.ErrNameRequired) {
		t.Fatalf("want ErrNameRequired, got %v", err)
	}
	if _, err := uc.Provision(ctx, Input{PUCID: 99, FirstName: "Jane", LastName: "Doe"}); !errors.Is(err, puc.ErrNotFound) {
		t.Fatalf("want puc.ErrNotFound, got %v", err)
	}

	repos.Users.(*usermock.Repo).EmailExistsFn = func(ctx context.Context, email string) (bool, error) { return true, nil }
	if _, err := uc.Provision(ctx, Input{PUCID: 1, FirstName: "Jane", LastName: "Doe", Email: "dup@x"}); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestProvision_RetriesLostRace(t *testing.T) {
	_, repos := newFakeStore()
	attempts := 0
	tx := uowmock.New().WithWithinTx(func(ctx context.Context, fn func(uow.Repos) error) error {
		attempts++
		if attempts == 1 {
			// a concurrent provision took the name between probe and insert
			return gorm.ErrDuplicatedKey
		}
		return fn(repos)
	})
	uc := NewUsecase(tx, nil)

	res, err := uc.Provision(context.Background(), Input{PUCID: 1, FirstName: "Jane", LastName: "Doe"})
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if attempts != 2 || res.Username != "jdoe" {
		t.Fatalf("attempts=%d username=%q", attempts, res.Username)
	}
}

func TestProvision_GivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	tx := uowmock.New().WithWithinTx(func(ctx context.Context, fn func(uow.Repos) error) error {
		attempts++
		return gorm.ErrDuplicatedKey
	})
	uc := NewUsecase(tx, nil)

	_, err := uc.Provision(context.Background(), Input{PUCID: 1, FirstName: "Jane", LastName: "Doe"})
	if !errors.Is(err, user.ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}
	if attempts != MaxAttempts {
		t.Fatalf("attempts = %d, want %d", attempts, MaxAttempts)
	}
}

func TestProvision_FailureStopsWorkflow(t *testing.T) {
	s, repos := newFakeStore()
	boom := errors.New("disk full")
	repos.Visitors.(*visitormock.Repo).CreateApprovedFn = func(ctx context.Context, a *visitor.ApprovedVisitor) error { return boom }
	uc := NewUsecase(uowmock.Passthrough(repos), nil)

	if _, err := uc.Provision(context.Background(), Input{PUCID: 1, FirstName: "Jane", LastName: "Doe"}); !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
	if len(s.audits.Created) != 0 {
		t.Fatalf("audit row written after failure")
	}
}
