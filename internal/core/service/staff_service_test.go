package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/restohub/staff-service/internal/core/domain"
	"github.com/restohub/staff-service/internal/infrastructure/auth"
)

const testSecret = "test-secret"

// stubStaffRepo is an in-memory StaffRepository keeping insertion order.
type stubStaffRepo struct {
	mu      sync.Mutex
	records map[string]*domain.Staff
	order   []string
	nextID  int
}

func newStubStaffRepo() *stubStaffRepo {
	return &stubStaffRepo{records: make(map[string]*domain.Staff)}
}

func cloneStaff(s *domain.Staff) *domain.Staff {
	c := *s
	return &c
}

func (r *stubStaffRepo) Create(_ context.Context, staff *domain.Staff) (*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.Email == staff.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	c := cloneStaff(staff)
	c.ID = fmt.Sprintf("staff-%d", r.nextID)
	r.records[c.ID] = c
	r.order = append(r.order, c.ID)
	return cloneStaff(c), nil
}

func (r *stubStaffRepo) FindByID(_ context.Context, id string) (*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.records[id]
	if !ok {
		return nil, domain.ErrStaffNotFound
	}
	return cloneStaff(s), nil
}

func (r *stubStaffRepo) FindByEmail(_ context.Context, email string) (*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.records {
		if s.Email == email {
			return cloneStaff(s), nil
		}
	}
	return nil, domain.ErrStaffNotFound
}

func (r *stubStaffRepo) Update(_ context.Context, staff *domain.Staff) (*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[staff.ID]; !ok {
		return nil, domain.ErrStaffNotFound
	}
	for id, existing := range r.records {
		if id != staff.ID && existing.Email == staff.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.records[staff.ID] = cloneStaff(staff)
	return cloneStaff(staff), nil
}

func (r *stubStaffRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return domain.ErrStaffNotFound
	}
	delete(r.records, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubStaffRepo) ListAll(_ context.Context) ([]*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Staff, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneStaff(r.records[id]))
	}
	return out, nil
}

// stubAuditPublisher collects published events synchronously.
type stubAuditPublisher struct {
	mu     sync.Mutex
	events []domain.StaffEvent
}

func (p *stubAuditPublisher) Publish(event domain.StaffEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *stubAuditPublisher) actions() []domain.StaffEventAction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.StaffEventAction, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

func newTestService() (*StaffService, *stubStaffRepo, *stubAuditPublisher) {
	repo := newStubStaffRepo()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	authn := NewCredentialAuthenticator(repo, hasher)
	audit := &stubAuditPublisher{}
	svc := NewStaffService(repo, hasher, authn, issuer, audit, zerolog.Nop())
	return svc, repo, audit
}

func TestStaffService_Register(t *testing.T) {
	svc, repo, audit := newTestService()

	summary, err := svc.Register(context.Background(), waiterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if summary.ID == "" {
		t.Fatal("expected assigned id")
	}
	if summary.FullName != "AnnLee" {
		t.Errorf("full name = %q, want AnnLee", summary.FullName)
	}
	if want := time.Now().Year() - waiterInput().DateOfBirth.Year(); summary.Age != want {
		t.Errorf("age = %d, want %d", summary.Age, want)
	}
	if summary.Role != "WAITER" {
		t.Errorf("role = %q, want WAITER", summary.Role)
	}

	stored, err := repo.FindByID(context.Background(), summary.ID)
	if err != nil {
		t.Fatalf("stored record: %v", err)
	}
	if stored.PasswordHash == "p" || stored.PasswordHash == "" {
		t.Error("password was not hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}

	if got := audit.actions(); len(got) != 1 || got[0] != domain.ActionRegistered {
		t.Errorf("audit actions = %v", got)
	}
}

func TestStaffService_RegisterDuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Register(ctx, waiterInput())
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	dup := waiterInput()
	dup.FirstName = "Bea"
	if _, err := svc.Register(ctx, dup); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// The original record is untouched.
	stored, err := repo.FindByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("first record gone: %v", err)
	}
	if stored.FirstName != "Ann" {
		t.Errorf("first record mutated: %q", stored.FirstName)
	}
}

func TestStaffService_RegisterRejectsInvalid(t *testing.T) {
	svc, repo, audit := newTestService()

	in := waiterInput()
	in.Experience = 0
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInsufficientExperience) {
		t.Fatalf("expected ErrInsufficientExperience, got %v", err)
	}

	if members, _ := repo.ListAll(context.Background()); len(members) != 0 {
		t.Error("rejected registration was persisted")
	}
	if got := audit.actions(); len(got) != 0 {
		t.Errorf("rejected registration was audited: %v", got)
	}
}

func TestStaffService_Login(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, waiterInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login(ctx, "ann@x.com", "p")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims["email"] != "ann@x.com" {
		t.Errorf("email claim = %v", claims["email"])
	}
	if claims["role"] != "WAITER" {
		t.Errorf("role claim = %v", claims["role"])
	}
}

// Login failures never reveal whether the email exists.
func TestStaffService_LoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, waiterInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	for name, creds := range map[string][2]string{
		"wrong password": {"ann@x.com", "nope"},
		"unknown email":  {"ghost@x.com", "p"},
		"empty password": {"ann@x.com", ""},
	} {
		token, err := svc.Login(ctx, creds[0], creds[1])
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
		if token != "" {
			t.Errorf("%s: got token on failed login", name)
		}
	}
}

func TestStaffService_GetByID(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, waiterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "ann@x.com" {
		t.Errorf("email = %q", got.Email)
	}

	_, err = svc.GetByID(ctx, "missing")
	if !errors.Is(err, domain.ErrStaffNotFound) {
		t.Fatalf("expected ErrStaffNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "no staff member with id missing") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestStaffService_Update(t *testing.T) {
	svc, repo, audit := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, waiterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	before, _ := repo.FindByID(ctx, created.ID)

	in := waiterInput()
	in.FirstName = "Anna"
	in.Password = "new-password"
	updated, err := svc.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("id changed: %q -> %q", created.ID, updated.ID)
	}
	if updated.FullName != "AnnaLee" {
		t.Errorf("full name = %q", updated.FullName)
	}

	after, _ := repo.FindByID(ctx, created.ID)
	if after.PasswordHash == before.PasswordHash {
		t.Error("password was not re-hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(after.PasswordHash), []byte("new-password")); err != nil {
		t.Errorf("new hash does not verify: %v", err)
	}

	if got := audit.actions(); len(got) != 2 || got[1] != domain.ActionUpdated {
		t.Errorf("audit actions = %v", got)
	}
}

// Updates go through the same validation as registrations.
func TestStaffService_UpdateRejectsInvalid(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, waiterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	in := waiterInput()
	in.Experience = 0
	if _, err := svc.Update(ctx, created.ID, in); !errors.Is(err, domain.ErrInsufficientExperience) {
		t.Fatalf("expected ErrInsufficientExperience, got %v", err)
	}

	stored, _ := repo.FindByID(ctx, created.ID)
	if stored.Experience != 1 {
		t.Errorf("record mutated by rejected update: experience = %d", stored.Experience)
	}
}

func TestStaffService_UpdateNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Update(context.Background(), "missing", waiterInput()); !errors.Is(err, domain.ErrStaffNotFound) {
		t.Fatalf("expected ErrStaffNotFound, got %v", err)
	}
}

func TestStaffService_Delete(t *testing.T) {
	svc, repo, audit := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, waiterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	msg, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if msg != "ann@x.com is deleted" {
		t.Errorf("confirmation = %q", msg)
	}

	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, domain.ErrStaffNotFound) {
		t.Error("record still present after delete")
	}
	if got := audit.actions(); len(got) != 2 || got[1] != domain.ActionDeleted {
		t.Errorf("audit actions = %v", got)
	}

	if _, err := svc.Delete(ctx, created.ID); !errors.Is(err, domain.ErrStaffNotFound) {
		t.Fatalf("expected ErrStaffNotFound, got %v", err)
	}
}

func TestStaffService_ListAll(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		in := waiterInput()
		in.FirstName = fmt.Sprintf("W%d", i)
		in.Email = email
		if _, err := svc.Register(ctx, in); err != nil {
			t.Fatalf("register %s: %v", email, err)
		}
	}

	members, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("len = %d, want 3", len(members))
	}
	for i, want := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if members[i].Email != want {
			t.Errorf("members[%d].Email = %q, want %q", i, members[i].Email, want)
		}
	}
}
