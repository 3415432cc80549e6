package middleware

import (
	"exam-prep-assistant/pkg/log"
)

type Middleware struct {
	l              log.Logger
	allowedOrigins []string
}

func New(l log.Logger, allowedOrigins []string) Middleware {
	return Middleware{
		l:              l,
		allowedOrigins: allowedOrigins,
	}
}
