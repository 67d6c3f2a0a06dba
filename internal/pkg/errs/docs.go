// Package errs holds the error vocabulary shared by the domain, the use cases and the
// adapters of the work order service.
//
// Every typed error unwraps to one sentinel, so callers classify with errors.Is and
// inspect details with errors.As:
//
//	ErrValueIsRequired    *ValueIsRequiredError    a mandatory value is missing
//	ErrValueIsInvalid     *ValueIsInvalidError     a value is malformed or not allowed
//	ErrValueIsOutOfRange  *ValueIsOutOfRangeError  a value is outside its bounds
//	ErrObjectNotFound     *ObjectNotFoundError     a referenced entity does not exist
//	ErrConflict           *ConflictError           the entity's state forbids the operation
//
// The HTTP adapter maps the sentinels to status codes (400, 404 and 409); anything else
// is an internal error.
package errs
