package draft

// StorageKey is the fixed key drafts live under; it is suffixed with the
// browser profile id.
const StorageKey = "employee-form-draft"

// Draft is a partially filled employee form. Every field is optional.
type Draft struct {
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Department string   `json:"department,omitempty"`
	HireDate   string   `json:"hireDate,omitempty"`
	Country    string   `json:"country,omitempty"`
	Salary     *float64 `json:"salary,omitempty"`
}

func (d Draft) IsZero() bool {
	return d == Draft{}
}

// Key returns the storage key for a profile.
func Key(profileID string) string {
	if profileID == "" {
		return StorageKey
	}
	return StorageKey + ":" + profileID
}
