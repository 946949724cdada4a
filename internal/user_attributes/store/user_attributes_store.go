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

package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tradeops/pricing-rules-service/internal/system/config"
	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
	"github.com/tradeops/pricing-rules-service/internal/user_attributes/model"
)

const connectTimeout = 5 * time.Second

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

// ErrAttributesNotFound is returned when no attribute document exists for
// the user in the organization.
var ErrAttributesNotFound = mongo.ErrNoDocuments

// getClient lazily connects to the attribute store. The connection is shared
// for the lifetime of the process.
func getClient(ctx context.Context) (*mongo.Client, error) {

	clientOnce.Do(func() {
		attrConfig := config.GetPRSRuntime().Config.AttributeSource
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		client, clientErr = mongo.Connect(connectCtx, options.Client().ApplyURI(attrConfig.URI))
	})
	if clientErr != nil {
		return nil, errors2.NewServerError(errors2.ATTRIBUTE_PROVIDER_UNAVAILABLE, clientErr)
	}
	return client, nil
}

// GetUserAttributeRecord fetches the attribute document for the user.
// Returns ErrAttributesNotFound when the user has no document.
func GetUserAttributeRecord(ctx context.Context, orgHandle, userID string) (model.UserAttributeRecord, error) {

	mongoClient, err := getClient(ctx)
	if err != nil {
		return model.UserAttributeRecord{}, err
	}

	attrConfig := config.GetPRSRuntime().Config.AttributeSource
	collection := mongoClient.Database(attrConfig.Database).Collection(attrConfig.Collection)

	findCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	var record model.UserAttributeRecord
	err = collection.FindOne(findCtx, bson.M{"user_id": userID, "org_handle": orgHandle}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return model.UserAttributeRecord{}, ErrAttributesNotFound
		}
		return model.UserAttributeRecord{}, errors2.NewServerError(errors2.ATTRIBUTE_PROVIDER_UNAVAILABLE, err)
	}
	return record, nil
}
