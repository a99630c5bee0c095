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

// Package imdb is a stateless client for the two list mutations this tool
// needs: adding a title to a list and setting the list item's description.
// Authentication is ambient: whatever credentials the injected http.Client
// attaches are the credentials used. No retries are attempted here.
package imdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// 🌐 DefaultEndpoint is the GraphQL endpoint mutations are posted to
const DefaultEndpoint = "https://api.graphql.imdb.com/"

const addItemMutation = `mutation AddItemToList($listId: ID!, $itemId: ID!) {
  addItemToList(input: {listId: $listId, item: {itemElementId: $itemId}}) {
    listId
    modifiedItem {
      listItemId
      item {
        ... on Title {
          titleText {
            text
          }
        }
      }
    }
  }
}`

const editDescriptionMutation = `mutation EditListItemDescription($listId: ID!, $listItemId: ID!, $description: String!) {
  editListItemDescription(input: {listId: $listId, listItemId: $listItemId, description: {originalText: $description}}) {
    listId
  }
}`

// 🎯 Client issues list mutations against a GraphQL endpoint. It holds no
// mutable state and is safe for repeated and concurrent use.
type Client struct {
	endpoint string
	httpc    *http.Client
}

// 🔧 Option configures a Client
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint URL
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient injects the transport. This is where ambient session
// credentials come from; the client itself never constructs or stores any.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// 🏭 New creates a new client
func New(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		httpc:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// 📦 AddResult is what a successful add reports back
type AddResult struct {
	ListItemID   string // Remote identifier of the created list item
	DisplayLabel string // Remote-confirmed title text, empty if absent
}

// 📨 request is the GraphQL request envelope
type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// 📬 response is the GraphQL response envelope
type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// ➕ AddItem adds one title to the list. Any failure is a *RemoteError.
func (c *Client) AddItem(ctx context.Context, listID, itemID string) (AddResult, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("list", listID).Str("item", itemID).Msg("adding item to list")

	data, err := c.do(ctx, "AddItemToList", addItemMutation, map[string]any{
		"listId": listID,
		"itemId": itemID,
	})
	if err != nil {
		return AddResult{}, err
	}

	var payload struct {
		AddItemToList struct {
			ModifiedItem struct {
				ListItemID string `json:"listItemId"`
				Item       struct {
					TitleText struct {
						Text string `json:"text"`
					} `json:"titleText"`
				} `json:"item"`
			} `json:"modifiedItem"`
		} `json:"addItemToList"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return AddResult{}, &RemoteError{Op: "AddItemToList", Message: fmt.Sprintf("decoding response: %v", err)}
	}

	return AddResult{
		ListItemID:   payload.AddItemToList.ModifiedItem.ListItemID,
		DisplayLabel: payload.AddItemToList.ModifiedItem.Item.TitleText.Text,
	}, nil
}

// 📝 SetAnnotation sets the description on an already-added list item
func (c *Client) SetAnnotation(ctx context.Context, listID, listItemID, text string) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("list", listID).Str("list_item", listItemID).Msg("setting item description")

	_, err := c.do(ctx, "EditListItemDescription", editDescriptionMutation, map[string]any{
		"listId":      listID,
		"listItemId":  listItemID,
		"description": text,
	})
	return err
}

// 🚚 do posts one mutation and normalizes every failure mode into *RemoteError
func (c *Client) do(ctx context.Context, operation, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(request{
		Query:         query,
		OperationName: operation,
		Variables:     variables,
	})
	if err != nil {
		return nil, &RemoteError{Op: operation, Message: fmt.Sprintf("encoding request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &RemoteError{Op: operation, Message: fmt.Sprintf("creating request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &RemoteError{Op: operation, Message: fmt.Sprintf("network failure: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{Op: operation, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Op: operation, Message: fmt.Sprintf("reading response: %v", err)}
	}

	var envelope response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &RemoteError{Op: operation, Message: fmt.Sprintf("decoding response: %v", err)}
	}

	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, &RemoteError{Op: operation, Message: strings.Join(msgs, "; ")}
	}

	return envelope.Data, nil
}
