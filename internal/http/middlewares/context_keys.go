package middlewares

type ctxKey string

const (
	KeyUserID ctxKey = "user_id"
)
