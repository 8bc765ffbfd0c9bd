package domain

// VerificationCode is the one-time numeric code mailed to a user during
// signup and sign-in. At most one live code exists per user: issuance always
// deletes prior codes before inserting a new one. Expired codes are removed
// lazily, when a verification attempt runs into them.
type VerificationCode struct {
	CodeID    string `json:"id" dynamodbav:"code_id"`
	UserID    string `json:"user_id" dynamodbav:"user_id"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // Unix seconds, UTC
}
