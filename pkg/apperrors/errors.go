package apperrors

import (
	"errors"
	"fmt"
)

// Error — доменная ошибка с закрытым набором кодов.
// Код сопоставляется с HTTP-статусом в одном месте на уровне handlers.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is сравнивает по коду, чтобы errors.Is работал с обёрнутыми ошибками
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf достаёт код из любой ошибки в цепочке
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// Доменные ошибки
var (
	ErrChannelNotFound      = New(CodeChannelNotFound, "channel not found")
	ErrChannelAlreadyExists = New(CodeChannelAlreadyExists, "channel with this name already exists")
	ErrMemberNotFound       = New(CodeMemberNotFound, "member not found in this channel")
	ErrMemberAlreadyExists  = New(CodeMemberAlreadyExists, "user is already a member of this channel")
	ErrMissingPermissions   = New(CodeMissingPermissions, "missing permissions")
	ErrMessageNotFound      = New(CodeMessageNotFound, "message not found")
	ErrUnknownAttachment    = New(CodeUnknownAttachment, "unknown attachment")
	ErrAttachmentsEmpty     = New(CodeAttachmentsEmpty, "attachments cannot be empty")
	ErrUploadFailed         = New(CodeUploadFailed, "upload failed")
)
