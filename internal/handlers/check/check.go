// Package check implements the "check" handler. The gateway treats it as an
// opaque collaborator: a normalized event in, a status/body pair out.
//
// The module is exported as a bare callable, one of the export shapes the
// handler resolver accepts.
package check

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fn-gate/fngate/pkg/handler"
)

// Module is the handler reference resolved at startup.
var Module handler.Func = Handle

// Handle inspects the normalized payload and reports whether it is a usable
// submission: a JSON object with at least one field. Every leaf in the event
// body is a string by the time it arrives here.
func Handle(_ context.Context, event handler.Event) (handler.Result, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(event.Body), &payload); err != nil {
		return handler.Result{
			StatusCode: 422,
			Body:       `{"status":"rejected","reason":"payload is not an object"}`,
		}, nil
	}
	if len(payload) == 0 {
		return handler.Result{
			StatusCode: 422,
			Body:       `{"status":"rejected","reason":"payload is empty"}`,
		}, nil
	}
	return handler.Result{
		StatusCode: 200,
		Body:       fmt.Sprintf(`{"status":"passed","fields":%d}`, len(payload)),
	}, nil
}
