package service

import (
	"github.com/lexfirm/backoffice-api/internal/domain"
)

// Validation failures raised before any store call
var (
	// ErrClientRequired is returned when a case names neither an existing nor a new client
	ErrClientRequired = domain.NewValidationError("a client is required", "clientId", "select an existing client or provide a new one")

	// ErrClientAmbiguous is returned when a case names both an existing and a new client
	ErrClientAmbiguous = domain.NewValidationError("choose either an existing client or a new one", "client", "clientId and client are mutually exclusive")

	// ErrLawyerRequired is returned when a case is created without any lawyer
	ErrLawyerRequired = domain.NewValidationError("at least one lawyer is required", "lawyerId", "This field is required")

	// ErrCommissionReset is returned when an update tries to mark a paid commission as unpaid
	ErrCommissionReset = domain.NewValidationError("a liquidated commission cannot be reverted", "commissionPaid", "only true is accepted")

	// ErrCommissionLocked is returned when changing the amount of a commission that is already partly paid
	ErrCommissionLocked = domain.NewValidationError("the commission has already been liquidated", "commissionAmount", "cannot change a liquidated commission")
)
