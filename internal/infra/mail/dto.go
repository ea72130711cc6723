package mail

type BatchReportData struct {
	JobID      string
	Direction  string
	Successful int
	Failed     int
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
