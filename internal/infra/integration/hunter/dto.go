package hunter

// verifyResponse wraps the verifier payload the way the API nests it.
type verifyResponse struct {
	Data verificationData `json:"data"`
}

type verificationData struct {
	Status     string `json:"status"`
	Result     string `json:"result"` // deliverable, risky, undeliverable, unknown
	Score      int    `json:"score"`  // 0-100
	Disposable bool   `json:"disposable"`
	Webmail    bool   `json:"webmail"`
	MXRecords  bool   `json:"mx_records"`
	SMTPCheck  bool   `json:"smtp_check"`
	AcceptAll  bool   `json:"accept_all"`
	Block      bool   `json:"block"`
}
