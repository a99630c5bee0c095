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

import "fmt"

// ❌ RemoteError is the single failure shape for one mutation call. Transport
// failures, non-success HTTP statuses, and API-reported errors all normalize
// into it; callers isolate it per item instead of aborting a batch.
type RemoteError struct {
	Op      string // Operation name, e.g. "AddItemToList"
	Message string // Human-readable reason
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
