package common

// AuthorizationHeaderName carries the access token on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// RequestIDHeaderName is echoed back on every response.
const RequestIDHeaderName = "X-Request-ID"

// APIPrefix is the version prefix shared by server routes and the client.
const APIPrefix = "/api/v1"
