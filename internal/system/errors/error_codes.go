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

package errors

const errorPrefix = "PRS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	ADD_PRICING_RULE = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while adding pricing rule.",
	}

	FETCH_PRICING_RULES = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while fetching pricing rule(s).",
	}

	UPDATE_PRICING_RULE = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while updating pricing rule.",
	}

	DELETE_PRICING_RULE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while deleting pricing rule.",
	}

	RULE_REPOSITORY_UNAVAILABLE = ErrorMessage{
		Code:        errorPrefix + "15006",
		Message:     "Pricing rule repository unavailable.",
		Description: "Pricing rules could not be loaded for evaluation.",
	}

	ATTRIBUTE_PROVIDER_UNAVAILABLE = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "User attribute provider unavailable.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Parsing token failed.",
	}

	PRICE_COMPUTATION = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while computing the price.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Forbidden",
		Description: "You do not have permission to access this resource.",
	}

	PRICING_RULE_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11004",
		Message:     "Pricing rule not found.",
		Description: "No pricing rule found for this organization for the provided rule_id.",
	}

	INVALID_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Invalid evaluation request.",
	}

	INVALID_RULE_DEFINITION = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Pricing rule definition validation failed.",
	}

	INVALID_POLICY_CONTEXT = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Acting user attributes are malformed.",
	}

	INVALID_AMOUNT = ErrorMessage{
		Code:    errorPrefix + "11008",
		Message: "Invalid monetary amount.",
	}
)
