// Package common contains shared constants and sentinel errors used across
// FitTrack components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer session
// token on protected requests.
const AuthorizationHeaderName = "Authorization"
