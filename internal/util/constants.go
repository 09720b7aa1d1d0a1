package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	MailProviderConsole  = "console"
	MailProviderSMTP     = "smtp"
	MailProviderSendgrid = "sendgrid"
)

const (
	UsernameMinLen       = 4
	UsernameMaxLen       = 20
	EmailMaxLen          = 30
	PasswordMinLen       = 8
	MessageMaxLen        = 500
	TestTitleMaxLen      = 30
	TestTopicMaxLen      = 50
	QuestionMinLen       = 5
	QuestionMaxLen       = 100
	VerificationSubject  = "Random Feedback | Verification Email"
	SuggestionsSeparator = "||"
)
