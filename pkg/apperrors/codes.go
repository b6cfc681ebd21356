package apperrors

type Code string

const (
	CodeUnknown              Code = "UNKNOWN"
	CodeChannelNotFound      Code = "CHANNEL_NOT_FOUND"
	CodeChannelAlreadyExists Code = "CHANNEL_ALREADY_EXISTS"
	CodeMemberNotFound       Code = "MEMBER_NOT_FOUND"
	CodeMemberAlreadyExists  Code = "MEMBER_ALREADY_IN_CHANNEL"
	CodeMissingPermissions   Code = "MISSING_PERMISSIONS"
	CodeMessageNotFound      Code = "MESSAGE_NOT_FOUND"
	CodeUnknownAttachment    Code = "UNKNOWN_ATTACHMENT"
	CodeAttachmentsEmpty     Code = "ATTACHMENTS_EMPTY"
	CodeUploadFailed         Code = "UPLOAD_FAILED"
)
