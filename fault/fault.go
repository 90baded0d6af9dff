// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type AccessError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type StateError GenericError

// common errors - keep in alphabetic order
var (
	ErrCollectionNotFound    = NotFoundError("collection not found")
	ErrDuplicateSuffix       = ExistsError("collection suffix already exists")
	ErrEmptyValue            = InvalidError("value is empty")
	ErrInsufficientAllowance = InvalidError("insufficient allowance")
	ErrInsufficientBalance   = InvalidError("insufficient balance")
	ErrInvalidAmount         = InvalidError("amount is not positive")
	ErrInvalidEncoding       = InvalidError("malformed hex encoded payload")
	ErrInvalidRecipient      = InvalidError("recipient account is zero")
	ErrLengthMismatch        = InvalidError("ids and amounts lengths differ")
	ErrNotFound              = NotFoundError("no matching entry")
	ErrSystemPaused          = StateError("system is paused")
	ErrUnauthorized          = AccessError("principal lacks the required capability")
	ErrUnknownToken          = NotFoundError("token has never been in supply")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccessError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e StateError) Error() string    { return string(e) }

// determine the class of an error
func IsErrAccess(e error) bool   { _, ok := e.(AccessError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrState(e error) bool    { _, ok := e.(StateError); return ok }
