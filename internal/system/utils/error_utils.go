/*
 * Copyright (c) 2025, TradeOps Software Ltd. (https://www.tradeops.io).
 *
 * TradeOps Software Ltd. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package utils

import (
	"encoding/json"
	"io"
	"net/http"

	pkgerrors "github.com/pkg/errors"

	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
	"github.com/tradeops/pricing-rules-service/internal/system/log"
)

// HandleError writes the given error to the response. Client errors keep
// their status code and message. Everything else is masked as an internal
// server error so internals never leak to callers.
func HandleError(w http.ResponseWriter, logger *log.Logger, err error) {

	w.Header().Set("Content-Type", "application/json")

	var clientErr *errors2.ClientError
	if pkgerrors.As(err, &clientErr) {
		w.WriteHeader(clientErr.StatusCode)
		writeErrorBody(w, clientErr.ErrorMessage)
		return
	}

	var serverErr *errors2.ServerError
	if pkgerrors.As(err, &serverErr) {
		logger.Error("Server error while processing request",
			log.String("code", serverErr.ErrorMessage.Code), log.Error(err))
	} else {
		logger.Error("Unexpected error while processing request", log.Error(err))
	}

	w.WriteHeader(http.StatusInternalServerError)
	writeErrorBody(w, errors2.ErrorMessage{
		Code:        "PRS-15000",
		Message:     "Internal server error",
		Description: "An unexpected error occurred while processing the request",
	})
}

// HandleDecodeError writes a bad request response describing why the
// request body could not be decoded.
func HandleDecodeError(w http.ResponseWriter, logger *log.Logger, err error) {

	description := "The request body is malformed"

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case pkgerrors.As(err, &syntaxErr):
		description = "The request body contains badly formed JSON"
	case pkgerrors.As(err, &typeErr):
		if typeErr.Field != "" {
			description = "The request body contains an invalid value for the field: " + typeErr.Field
		} else {
			description = "The request body contains a value of an invalid type"
		}
	case pkgerrors.Is(err, io.EOF):
		description = "The request body is empty"
	}

	logger.Debug("Failed to decode request body", log.Error(err))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	writeErrorBody(w, errors2.ErrorMessage{
		Code:        errors2.BAD_REQUEST.Code,
		Message:     errors2.BAD_REQUEST.Message,
		Description: description,
	})
}

func writeErrorBody(w io.Writer, errMsg errors2.ErrorMessage) {

	_ = json.NewEncoder(w).Encode(errMsg)
}
