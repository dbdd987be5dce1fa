package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"salon-booking/internal/location"
	"salon-booking/internal/pricing"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors to HTTP responses
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case location.IsWarning(err):
		// shown to the user verbatim
		log.Info(operation+" - location warning", zap.String("warning", errMsg))
		utils.ResponseUnprocessable(w, errMsg)

	case errors.Is(err, pricing.ErrPriceLookup):
		log.Error(operation+" failed - price lookup",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseJSON(w, http.StatusBadGateway, false, "Service price lookup failed", nil, nil)

	case errors.Is(err, pricing.ErrItemNotFound), strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
