// Package sanitizer normalizes free-text input before validation and storage.
//
// All functions are idempotent. Invalid input is never an error here; it is
// returned in its best normalized form and left for the validators to reject.
//
//   - Names and notes: collapse whitespace, trim, drop control characters
//   - Space types: lowercase and collapse separators ("Meeting  Room" -> "meeting_room")
//   - Emails: trim and lowercase
//   - CPF: keep digits only
package sanitizer
