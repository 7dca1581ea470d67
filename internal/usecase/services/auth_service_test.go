package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/usecase/services"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:       "jane@example.com",
		Password:    "correct-horse",
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: "1990-04-01",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newFakeStore()
	svc := services.NewAuthService(&fakeCustomerRepo{store: store}, testJWTSecret)

	response, err := svc.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	customer, err := (&fakeCustomerRepo{store: store}).GetByID(context.Background(), response.Data.CustomerID)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if customer.PasswordHash == "correct-horse" {
		t.Fatal("password must not be stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte("correct-horse")) != nil {
		t.Fatal("stored hash must verify the original password")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := services.NewAuthService(&fakeCustomerRepo{store: store}, testJWTSecret)

	if _, err := svc.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), validRegisterRequest()); !errors.Is(err, commons.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLoginIssuesTokenForValidCredentials(t *testing.T) {
	store := newFakeStore()
	svc := services.NewAuthService(&fakeCustomerRepo{store: store}, testJWTSecret)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	response, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "jane@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(response.Data.AccessToken, claims, func(*jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Subject != registered.Data.CustomerID {
		t.Fatalf("token subject %q does not match customer id %q", claims.Subject, registered.Data.CustomerID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store := newFakeStore()
	svc := services.NewAuthService(&fakeCustomerRepo{store: store}, testJWTSecret)

	if _, err := svc.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Wrong password and unknown email report the same error.
	_, wrongPassword := svc.Login(context.Background(), models.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})
	if !errors.Is(wrongPassword, commons.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", wrongPassword)
	}

	_, unknownEmail := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	if !errors.Is(unknownEmail, commons.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", unknownEmail)
	}
}
