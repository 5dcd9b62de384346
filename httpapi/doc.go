// Package httpapi adapts the blogging use cases to net/http.
//
// Flow of a request through the server:
//
//  1. middleware chain: request log, security headers, CORS, concurrency
//     cap, rate limit, bearer-token auth
//  2. handler: decode + validate the payload, call the application
//     service, translate domain errors to status codes
//  3. response: JSON bodies, errors as {"detail": "..."}
//
// Handlers never touch a store directly and services never see a header;
// everything HTTP-shaped lives in this package.
package httpapi
