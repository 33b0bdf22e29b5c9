package models

// License is the driving license record attached to a driver. Dates are kept
// as display strings exactly as entered (the UI owns the format).
type License struct {
	ID            string `json:"id"`
	DriverID      string `json:"driverId"`
	LicenseType   string `json:"licenseType"`
	LicenseNumber string `json:"licenseNumber"`
	IssueDate     string `json:"issueDate"`
	RenewalDate   string `json:"renewalDate"`
}

type NewLicense struct {
	DriverID      string `json:"driverId"`
	LicenseType   string `json:"licenseType"`
	LicenseNumber string `json:"licenseNumber"`
	IssueDate     string `json:"issueDate"`
	RenewalDate   string `json:"renewalDate"`
}

// LicenseUpdate is a partial update; nil fields are left unchanged.
type LicenseUpdate struct {
	DriverID      *string `json:"driverId"`
	LicenseType   *string `json:"licenseType"`
	LicenseNumber *string `json:"licenseNumber"`
	IssueDate     *string `json:"issueDate"`
	RenewalDate   *string `json:"renewalDate"`
}
