package models

// Response messages returned in the envelope. The frontend matches on
// these strings, so they are constants rather than free text.
const (
	MsgGetDataSuccess    = "GET_DATA_SUCCESS"
	MsgCreateDataSuccess = "CREATE_DATA_SUCCESS"
	MsgUpdateDataSuccess = "UPDATE_DATA_SUCCESS"
	MsgDeleteDataSuccess = "DELETE_DATA_SUCCESS"

	MsgGeneralError    = "GENERAL_ERROR"
	MsgValidationError = "VALIDATION_ERROR"
	MsgUnauthorized    = "UNAUTHORIZED"
	MsgInvalidLogin    = "INVALID_EMAIL_OR_PASSWORD"
	MsgLoginSuccess    = "LOGIN_SUCCESS"
	MsgLogoutSuccess   = "LOGOUT_SUCCESS"

	MsgNoUsersFound         = "NO_USERS_FOUND"
	MsgNoRegistrationsFound = "NO_REGISTRATIONS_FOUND"
	MsgUnmatchedLevel       = "UNMATCHED_LEVEL"
	MsgAlreadyRegistered    = "ALREADY_REGISTERED"

	MsgAchievementApproved = "ACHIEVEMENT_APPROVED"
	MsgAchievementRejected = "ACHIEVEMENT_REJECTED"

	MsgAddYouTubeMediaSuccess = "ADD_YOUTUBE_MEDIA_SUCCESS"
	MsgInvalidYouTubeURL      = "INVALID_YOUTUBE_URL"

	MsgActivityNotFound        = "ACTIVITY_NOT_FOUND"
	MsgClubNotFound            = "CLUB_NOT_FOUND"
	MsgCustomFormNotFound      = "CUSTOM_FORM_NOT_FOUND"
	MsgDataNotFound            = "DATA_NOT_FOUND"
	MsgCertificateNotAvailable = "CERTIFICATE_NOT_AVAILABLE"
)

// APIResponse is the envelope every endpoint returns. AffectedRows is
// only present on bulk mutations.
type APIResponse struct {
	Message      string            `json:"message"`
	Data         interface{}       `json:"data,omitempty"`
	Error        string            `json:"error,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	AffectedRows *int64            `json:"affected_rows,omitempty"`
}

func NewSuccessResponse(message string, data interface{}) *APIResponse {
	return &APIResponse{Message: message, Data: data}
}

func NewAffectedRowsResponse(message string, affected int64) *APIResponse {
	return &APIResponse{Message: message, AffectedRows: &affected}
}

func NewErrorResponse(message, detail string) *APIResponse {
	return &APIResponse{Message: message, Error: detail}
}

// PaginatedData wraps list payloads with their paging metadata.
type PaginatedData struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int         `json:"total"`
	TotalPages int         `json:"total_pages"`
}

func NewPaginatedData(items interface{}, page, limit, total int) *PaginatedData {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return &PaginatedData{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
