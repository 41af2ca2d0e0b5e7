package middlewares

const (
	CtxUserID    = "auth.userID"
	CtxRequestID = "request_id"
)
