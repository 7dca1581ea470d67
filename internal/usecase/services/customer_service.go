package services

import (
	"context"
	"errors"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/logger"
)

type CustomerService struct {
	customerRepo repo_interfaces.CustomerRepository
}

func NewCustomerService(customerRepo repo_interfaces.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) GetAuthenticatedCustomer(ctx context.Context, customerID string) (commons.Response[models.CustomerResponse], error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		logger.Error("customer service get customer failed", err, logger.Fields{
			"customerId": customerID,
		})
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CustomerResponse]("Customer not found"), err
		}
		return commons.ErrorResponse[models.CustomerResponse]("failed to get customer", "Unable to fetch customer right now"), err
	}

	response := models.CustomerResponse{
		ID:          customer.ID,
		Email:       customer.Email,
		FirstName:   customer.FirstName,
		LastName:    customer.LastName,
		PhoneNumber: customer.PhoneNumber,
		DateOfBirth: customer.DateOfBirth.Format("2006-01-02"),
		CreatedAt:   customer.CreatedAt.Format(time.RFC3339),
	}

	return commons.SuccessResponse("customer fetched successfully", response), nil
}
