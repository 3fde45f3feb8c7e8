package common

// Keys carried in page addresses and session stores.
const (
	UploadURLParam    = "upload_url"
	UploadPathParam   = "path"
	AccessTokenParam  = "access_token"
	RefreshTokenParam = "refresh_token"
)

// AuthorizationHeader is the HTTP header carrying the bearer access token.
const AuthorizationHeader = "Authorization"

// BearerPrefix precedes the access token in the Authorization header.
const BearerPrefix = "Bearer "
