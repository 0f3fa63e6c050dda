package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/routesettings-backend/internal/data/repos/testutil"
)

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	active := testutil.SeedUserWithPassword(t, ctx, f.db, uniq("active"), "s3cret", true)
	disabled := testutil.SeedUserWithPassword(t, ctx, f.db, uniq("disabled"), "s3cret", false)

	u, err := f.auth.Authenticate(ctx, active.Username, "s3cret")
	if err != nil || u == nil || u.ID != active.ID {
		t.Fatalf("Authenticate: %+v %v", u, err)
	}
	if _, err := f.auth.Authenticate(ctx, active.Username, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.auth.Authenticate(ctx, "nobody-"+uuid.NewString(), "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.auth.Authenticate(ctx, disabled.Username, "s3cret"); !errors.Is(err, ErrInactiveAccount) {
		t.Fatalf("disabled user: expected ErrInactiveAccount, got %v", err)
	}

	res := <-f.auth.AuthenticateAsync(ctx, active.Username, "s3cret")
	if res.Err != nil || res.User == nil || res.User.ID != active.ID {
		t.Fatalf("AuthenticateAsync: %+v", res)
	}
	res = <-f.auth.AuthenticateAsync(ctx, active.Username, "nope")
	if !errors.Is(res.Err, ErrInvalidCredentials) {
		t.Fatalf("AuthenticateAsync wrong password: %+v", res)
	}
}

func TestActiveUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUserWithPassword(t, ctx, f.db, uniq("sess"), "pw", true)

	got, err := f.auth.ActiveUser(ctx, u.ID)
	if err != nil || got.ID != u.ID {
		t.Fatalf("ActiveUser: %+v %v", got, err)
	}
	if err := f.auth.SetActive(ctx, u.Username, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	res := <-f.auth.ActiveUserAsync(ctx, u.ID)
	if !errors.Is(res.Err, ErrInactiveAccount) {
		t.Fatalf("disabled session user: expected ErrInactiveAccount, got %+v", res)
	}
	if _, err := f.auth.ActiveUser(ctx, uuid.New()); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown session user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	name := uniq("created")

	u, err := f.auth.CreateUser(ctx, name, "pw", true)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Password == "pw" {
		t.Fatalf("password must be stored hashed")
	}
	if _, err := f.auth.Authenticate(ctx, name, "pw"); err != nil {
		t.Fatalf("created user cannot log in: %v", err)
	}
	if _, err := f.auth.CreateUser(ctx, name, "pw", true); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate username: expected ErrValidation, got %v", err)
	}
	if _, err := f.auth.CreateUser(ctx, " ", "pw", true); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank username: expected ErrValidation, got %v", err)
	}
	if err := f.auth.SetActive(ctx, "ghost-"+uuid.NewString(), true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetActive unknown: expected ErrNotFound, got %v", err)
	}
}
