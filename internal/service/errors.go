package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("invalid params")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailExist        = errors.New("this email already exists")
	ErrPasswordMismatch  = errors.New("password fields didn't match")
	ErrPasswordIncorrect = errors.New("incorrect email or password")
	ErrTokenRequired     = errors.New("token is required")
	ErrTokenInvalid      = errors.New("token is invalid or expired")
	ErrFollowSelf        = errors.New("you cannot follow yourself")
	ErrFollowExist       = errors.New("you are already following this user")
	ErrFollowNotFound    = errors.New("you are not following this user")
	ErrPostNotFound      = errors.New("post not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrLikeExist         = errors.New("you already liked this post")
	ErrLikeNotFound      = errors.New("you have not liked this post yet")
	ErrFileNotSupported  = errors.New("unsupported file type")
	ErrNotOwner          = errors.New("you do not have permission to modify this resource")
	UnExpectedError      = errors.New("unexpected error, please try again later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrEmailExist:        BadRequest,
	ErrPasswordMismatch:  BadRequest,
	ErrPasswordIncorrect: Unauthorized,
	ErrTokenRequired:     BadRequest,
	ErrTokenInvalid:      Unauthorized,
	ErrFollowSelf:        BadRequest,
	ErrFollowExist:       BadRequest,
	ErrFollowNotFound:    BadRequest,
	ErrPostNotFound:      NotFound,
	ErrCommentNotFound:   NotFound,
	ErrLikeExist:         BadRequest,
	ErrLikeNotFound:      BadRequest,
	ErrFileNotSupported:  BadRequest,
	ErrNotOwner:          Forbidden,
	UnExpectedError:      InternalServerError,
}
