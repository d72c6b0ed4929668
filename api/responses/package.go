// Package responses writes the standard JSON envelope used by every API
// response: {"status": ..., "message": ..., "data": ...}.
//
// The status tag fixes the HTTP code (OK 200, ERROR 400, UNAUTHORIZED 401,
// FORBIDDEN 403). Payloads are classified into sequences, records and
// scalars; scalars are wrapped as {"value": ...} and falsy scalars are
// dropped along with the data key.
package responses
