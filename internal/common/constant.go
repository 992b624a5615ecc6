// Package common contains shared constants, sentinel errors and the typed
// application error used across the Brainly server.
package common

// Cookie names carrying the session tokens issued at login.
const (
	AccessTokenCookieName  = "accessToken"
	RefreshTokenCookieName = "refreshToken"
)

// ServiceName is the name reported by the gRPC health service.
const ServiceName = "brainly"
