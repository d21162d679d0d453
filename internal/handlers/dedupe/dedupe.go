// Package dedupe implements the "identify-duplicates" handler.
//
// The module is exported as a value with a Handler method, exercising the
// member-accessor path of the handler resolver.
package dedupe

import (
	"context"
	"encoding/json"

	"github.com/fn-gate/fngate/pkg/handler"
)

// Module is the handler reference resolved at startup.
var Module = dedupeModule{}

type dedupeModule struct{}

// Handler groups identical entries in the payload's "records" array and
// reports the indexes of each duplicate group. Record equality is defined on
// the serialized form; since the gateway coerces every leaf to a string
// before dispatch, this compares exactly what the caller sent.
func (dedupeModule) Handler(_ context.Context, event handler.Event) (handler.Result, error) {
	var payload struct {
		Records []json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal([]byte(event.Body), &payload); err != nil || payload.Records == nil {
		return handler.Result{
			StatusCode: 422,
			Body:       `{"status":"rejected","reason":"payload has no records array"}`,
		}, nil
	}

	seen := make(map[string][]int, len(payload.Records))
	order := make([]string, 0, len(payload.Records))
	for i, rec := range payload.Records {
		key := string(rec)
		if _, ok := seen[key]; !ok {
			order = append(order, key)
		}
		seen[key] = append(seen[key], i)
	}

	duplicates := make([][]int, 0)
	for _, key := range order {
		if idx := seen[key]; len(idx) > 1 {
			duplicates = append(duplicates, idx)
		}
	}

	body, err := json.Marshal(map[string]any{"duplicates": duplicates})
	if err != nil {
		return handler.Result{}, err
	}
	return handler.Result{StatusCode: 200, Body: string(body)}, nil
}
