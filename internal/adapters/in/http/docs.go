// Package http is the REST adapter of the work order service.
//
// Requests under /api/v1 must carry the caller in the X-User-ID header and are checked
// against the embedded OpenAPI document before they reach a handler. Bodies are then
// validated with validator/v10 and turned into commands or queries. Errors from any
// layer are rendered by one error handler as {code, message, details}:
//
//	not found        -> 404 NOT_FOUND
//	validation       -> 400 VALIDATION_ERROR
//	state conflict   -> 409 CONFLICT
//	missing caller   -> 401 UNAUTHORIZED
//	anything else    -> 500 INTERNAL_ERROR
package http
