// Package client talks to the photodrop server over HTTP and bootstraps the
// local SQLite database.
//
// HTTPClient covers sign-up, login, token refresh, the current principal,
// credential issuance and the user_photos table. Failed calls come back as
// *APIError, which matches the sentinel errors in internal/common with
// errors.Is; transport failures match ErrUnavailable.
package client
