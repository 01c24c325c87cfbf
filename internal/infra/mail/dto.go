package mail

type summaryData struct {
	ContactName    string
	CampaignName   string
	Outcome        string
	ErrorKind      string
	LeadCount      int
	SourcedCount   int
	DuplicateCount int
}
