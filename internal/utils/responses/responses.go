package responses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/supchaser/aria2bot/internal/utils/errs"
	"github.com/supchaser/aria2bot/internal/utils/logger"
	"go.uber.org/zap"
)

type BadResponse struct {
	Status int    `json:"status"`
	Text   string `json:"text"`
}

// notFound lists the lookup errors the status API answers with 404.
var notFound = []error{errs.ErrServerNotFound, errs.ErrTaskNotFound}

func DoBadResponseAndLog(w http.ResponseWriter, statusCode int, message string) {
	body, err := json.Marshal(BadResponse{Status: statusCode, Text: message})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		logger.Error("failed to write response",
			zap.String("function", "DoBadResponseAndLog"),
			zap.Error(err),
		)
		return
	}

	logger.Warn("bad response",
		zap.Int("status", statusCode),
		zap.String("message", message),
	)
}

func DoJSONResponse(w http.ResponseWriter, responseData any, successStatusCode int) {
	body, err := json.Marshal(responseData)
	if err != nil {
		logger.Error("failed to marshal response",
			zap.String("function", "DoJSONResponse"),
			zap.Error(err),
		)
		DoBadResponseAndLog(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(successStatusCode)

	if _, err := w.Write(body); err != nil {
		logger.Error("failed to write response",
			zap.String("function", "DoJSONResponse"),
			zap.Error(err),
		)
	}
}

// ResponseErrorAndLog answers 404 with the sentinel text for a failed lookup
// and 500 for anything else.
func ResponseErrorAndLog(w http.ResponseWriter, err error, funcName string) {
	for _, target := range notFound {
		if errors.Is(err, target) {
			logger.Warn("lookup failed",
				zap.String("function", funcName),
				zap.Error(err),
			)
			DoBadResponseAndLog(w, http.StatusNotFound, target.Error())
			return
		}
	}

	logger.Error("request failed",
		zap.String("function", funcName),
		zap.Error(err),
	)
	DoBadResponseAndLog(w, http.StatusInternalServerError, "internal error")
}
