package apollo

// searchRequest is the wire format of the people-search endpoint.
type searchRequest struct {
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
	Keywords string `json:"q_keywords,omitempty"`

	PersonLocations   []string `json:"person_locations,omitempty"`
	PersonTitles      []string `json:"person_titles,omitempty"`
	OrgIndustries     []string `json:"organization_industries,omitempty"`
	OrgEmployeeRanges []string `json:"organization_num_employees_ranges,omitempty"`
}

type searchResponse struct {
	People []person `json:"people"`
}

type person struct {
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Title        string        `json:"title"`
	Email        string        `json:"email"`
	City         string        `json:"city"`
	LinkedInURL  string        `json:"linkedin_url"`
	Organization *organization `json:"organization"`
	PhoneNumbers []phoneNumber `json:"phone_numbers"`
}

type organization struct {
	Name                  string `json:"name"`
	Industry              string `json:"industry"`
	EstimatedNumEmployees int    `json:"estimated_num_employees"`
}

type phoneNumber struct {
	RawNumber string `json:"raw_number"`
}

type errorResponse struct {
	Error string `json:"error"`
}
