package respond

import (
	"regexp"
)

var (
	// NewsAPI のキーはクエリ文字列 (apiKey=...) で渡される
	apiKeyParamPattern = regexp.MustCompile(`(?i)(api_?key=)[^&\s"']+`)

	// Webhook URL はパス自体がシークレット
	slackWebhookPattern   = regexp.MustCompile(`(hooks\.slack\.com/services/)[^\s"']+`)
	discordWebhookPattern = regexp.MustCompile(`(discord(?:app)?\.com/api/webhooks/)[^\s"']+`)

	// データベースパスワードパターン（DSN内）
	dbPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = apiKeyParamPattern.ReplaceAllString(msg, "${1}****")
	msg = slackWebhookPattern.ReplaceAllString(msg, "${1}****")
	msg = discordWebhookPattern.ReplaceAllString(msg, "${1}****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
