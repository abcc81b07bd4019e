// Package middleware stores global middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request IDs, request-scoped logging, CORS, secure
// headers, panic recovery and the final error funnel.
package middleware
