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
	"context"
	"net/http"
	"strings"

	"github.com/tradeops/pricing-rules-service/internal/system/constants"
)

// MountTenantDispatcher registers the tenant aware entry points on the mux.
// Requests of the form /t/{org}/api/v1/... are stripped of the tenant prefix
// and dispatched with the organization handle in the request context.
// Requests hitting /api/v1/... directly are served under the default
// organization.
func MountTenantDispatcher(mux *http.ServeMux, apiHandler http.Handler) {

	mux.Handle("/t/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orgHandle, remainder, ok := splitTenantPath(r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}
		r2 := r.Clone(context.WithValue(r.Context(), constants.OrgContextKey, orgHandle))
		r2.URL.Path = remainder
		apiHandler.ServeHTTP(w, r2)
	}))

	mux.Handle(constants.ApiBasePath+"/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r2 := r.Clone(context.WithValue(r.Context(), constants.OrgContextKey, constants.DefaultOrgHandle))
		apiHandler.ServeHTTP(w, r2)
	}))
}

// splitTenantPath splits /t/{org}/rest into the organization handle and the
// remaining path. The remainder must itself start with the API base path.
func splitTenantPath(path string) (string, string, bool) {

	trimmed := strings.TrimPrefix(path, "/t/")
	if trimmed == path {
		return "", "", false
	}
	idx := strings.Index(trimmed, "/")
	if idx <= 0 {
		return "", "", false
	}
	orgHandle := trimmed[:idx]
	remainder := trimmed[idx:]
	if !strings.HasPrefix(remainder, constants.ApiBasePath+"/") && remainder != constants.ApiBasePath {
		return "", "", false
	}
	return orgHandle, remainder, true
}

// OrgHandleFromRequest returns the organization handle resolved by the
// tenant dispatcher. Falls back to the default organization when the
// request bypassed the dispatcher.
func OrgHandleFromRequest(r *http.Request) string {

	if orgHandle, ok := r.Context().Value(constants.OrgContextKey).(string); ok && orgHandle != "" {
		return orgHandle
	}
	return constants.DefaultOrgHandle
}
