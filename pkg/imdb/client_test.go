// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package imdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItem(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		errContains string
		want        AddResult
	}{
		{
			name:   "success_with_title_text",
			status: http.StatusOK,
			body: `{"data": {"addItemToList": {"listId": "ls123", "modifiedItem": {
				"listItemId": "li456",
				"item": {"titleText": {"text": "The Dark Knight"}}
			}}}}`,
			want: AddResult{ListItemID: "li456", DisplayLabel: "The Dark Knight"},
		},
		{
			name:   "success_without_title_text",
			status: http.StatusOK,
			body:   `{"data": {"addItemToList": {"listId": "ls123", "modifiedItem": {"listItemId": "li456", "item": {}}}}}`,
			want:   AddResult{ListItemID: "li456", DisplayLabel: ""},
		},
		{
			name:        "api_level_error",
			status:      http.StatusOK,
			body:        `{"errors": [{"message": "Title not found"}, {"message": "second reason"}]}`,
			wantErr:     true,
			errContains: "Title not found; second reason",
		},
		{
			name:        "non_success_status",
			status:      http.StatusTooManyRequests,
			body:        `{}`,
			wantErr:     true,
			errContains: "unexpected status 429",
		},
		{
			name:        "malformed_body",
			status:      http.StatusOK,
			body:        `not json`,
			wantErr:     true,
			errContains: "decoding response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured request
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&captured), "request body should be valid JSON")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := New(WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
			got, err := client.AddItem(context.Background(), "ls123", "tt0468569")

			// The request envelope is the wire contract: query, operationName, variables
			assert.Equal(t, "AddItemToList", captured.OperationName, "operation name should match")
			assert.Contains(t, captured.Query, "addItemToList", "query should carry the mutation")
			assert.Equal(t, "ls123", captured.Variables["listId"], "listId variable should match")
			assert.Equal(t, "tt0468569", captured.Variables["itemId"], "itemId variable should match")

			if tt.wantErr {
				require.Error(t, err, "AddItem should fail")
				var remoteErr *RemoteError
				require.ErrorAs(t, err, &remoteErr, "failure should normalize to RemoteError")
				assert.Contains(t, remoteErr.Message, tt.errContains, "error message should match")
				return
			}

			require.NoError(t, err, "AddItem should succeed")
			assert.Equal(t, tt.want, got, "result should match")
		})
	}
}

func TestAddItem_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Connection refused from here on

	client := New(WithEndpoint(srv.URL))
	_, err := client.AddItem(context.Background(), "ls123", "tt1")

	require.Error(t, err, "AddItem should fail when the endpoint is unreachable")
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr, "transport failure should normalize to RemoteError")
	assert.Contains(t, remoteErr.Message, "network failure", "message should identify the failure class")
}

func TestSetAnnotation(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		errContains string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"data": {"editListItemDescription": {"listId": "ls123"}}}`,
		},
		{
			name:        "api_level_error",
			status:      http.StatusOK,
			body:        `{"errors": [{"message": "description too long"}]}`,
			wantErr:     true,
			errContains: "description too long",
		},
		{
			name:        "server_error_status",
			status:      http.StatusInternalServerError,
			body:        ``,
			wantErr:     true,
			errContains: "unexpected status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured request
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&captured), "request body should be valid JSON")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := New(WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
			err := client.SetAnnotation(context.Background(), "ls123", "li456", "a, b")

			assert.Equal(t, "EditListItemDescription", captured.OperationName, "operation name should match")
			assert.Equal(t, "li456", captured.Variables["listItemId"], "listItemId variable should match")
			assert.Equal(t, "a, b", captured.Variables["description"], "description variable should match")

			if tt.wantErr {
				require.Error(t, err, "SetAnnotation should fail")
				var remoteErr *RemoteError
				require.ErrorAs(t, err, &remoteErr, "failure should normalize to RemoteError")
				assert.Contains(t, remoteErr.Message, tt.errContains, "error message should match")
				return
			}

			require.NoError(t, err, "SetAnnotation should succeed")
		})
	}
}
