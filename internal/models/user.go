package models

// DietaryPreferences is the fixed set of dietary flags the backend keeps on
// every account. The field names mirror the backend's JSON contract.
type DietaryPreferences struct {
	Vegetarian  bool `json:"is_vegetarian"`
	Vegan       bool `json:"is_vegan"`
	Pescatarian bool `json:"is_pescatarian"`
	Flexitarian bool `json:"is_flexitarian"`
	Paleo       bool `json:"is_paleo"`
	Ketogenic   bool `json:"is_ketogenic"`
	Halal       bool `json:"is_halal"`
	Kosher      bool `json:"is_kosher"`
	Fruitarian  bool `json:"is_fruitarian"`
	GlutenFree  bool `json:"is_gluten_free"`
	DairyFree   bool `json:"is_dairy_free"`
	Organic     bool `json:"is_organic"`
}

// User is the account profile as returned by the backend. After any profile
// mutation the whole struct is replaced by the server's representation.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username,omitempty"`
	Email          string `json:"email"`
	FullName       string `json:"full_name,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	DateJoined     string `json:"date_joined,omitempty"`
	DietaryPreferences
}
