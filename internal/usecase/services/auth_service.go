package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/logger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	customerRepo repo_interfaces.CustomerRepository
	jwtSecret    []byte
}

func NewAuthService(customerRepo repo_interfaces.CustomerRepository, jwtSecret string) *AuthService {
	return &AuthService{
		customerRepo: customerRepo,
		jwtSecret:    []byte(jwtSecret),
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (commons.Response[models.RegisterResponse], error) {
	logger.Info("auth service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("auth service register validation failed", err, nil)
		return commons.ErrorResponse[models.RegisterResponse]("validation failed", err.Error()), err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.customerRepo.GetByEmail(ctx, email); err == nil {
		err := commons.ErrEmailAlreadyExists
		return commons.ErrorResponse[models.RegisterResponse]("Email already exists", err.Error()), err
	} else if !errors.Is(err, commons.ErrRecordNotFound) {
		logger.Error("auth service register email lookup failed", err, nil)
		return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("auth service register hash password failed", err, nil)
		return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), err
	}

	dob, _ := time.Parse("2006-01-02", strings.TrimSpace(req.DateOfBirth))

	created, err := s.customerRepo.Create(ctx, domain.Customer{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		DateOfBirth:  dob,
	})
	if err != nil {
		// The unique constraint catches the race the pre-check cannot.
		if errors.Is(err, commons.ErrEmailAlreadyExists) {
			return commons.ErrorResponse[models.RegisterResponse]("Email already exists", err.Error()), err
		}
		logger.Error("auth service register repository failed", err, nil)
		return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), err
	}

	logger.Info("auth service register success", logger.Fields{
		"customerId": created.ID,
	})

	return commons.SuccessResponse("customer registered successfully", models.RegisterResponse{
		CustomerID: created.ID,
		Email:      created.Email,
	}), nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("auth service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoginResponse]("validation failed", err.Error()), err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			// Unknown email and wrong password are indistinguishable.
			return commons.ErrorResponse[models.LoginResponse]("Invalid email or password"), commons.ErrInvalidCredentials
		}
		logger.Error("auth service login lookup failed", err, nil)
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)) != nil {
		return commons.ErrorResponse[models.LoginResponse]("Invalid email or password"), commons.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   customer.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		logger.Error("auth service login sign token failed", err, nil)
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	logger.Info("auth service login success", logger.Fields{
		"customerId": customer.ID,
	})

	return commons.SuccessResponse("login successful", models.LoginResponse{
		AccessToken: signed,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}), nil
}
