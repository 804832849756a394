// Package requester issues HTTP requests against the shhh API and resubmits
// them when the server answers with an internal error.
//
// A request is described by an address and a Config bag (method, headers,
// body, cache directive) that is passed through unchanged. A Policy carries
// the retry budget: RetriesRemaining is decremented and Backoff doubled on
// every retry.
//
// # Retry Rules
//
//   - HTTP 500 with retries remaining: wait Backoff, then resubmit.
//   - Any other status, or no retries left: decode the body as JSON.
//   - Transport failure: logged, never retried.
//   - Malformed JSON: logged, no value produced.
//
// Every call resolves to a single Outcome value whose Kind tells success,
// retryable and terminal results apart.
//
// # Retry Propagation
//
// By default retries are chained: the caller receives the outcome of the
// last attempt. WithDetachedRetries switches to fire-and-forget retries,
// where the caller receives the first attempt's body while the retry chain
// keeps running in the background. Call Wait to block until those chains
// finish.
//
// # Usage
//
//	r := requester.New(requester.WithLogger(log))
//	out := r.Do(ctx, "https://shhh.example/api/r?slug=abc", requester.Config{
//	    Method: http.MethodGet,
//	    Cache:  "no-store",
//	}, requester.DefaultRetries, requester.DefaultBackoff)
//	if !out.OK() {
//	    return out.Err
//	}
package requester
