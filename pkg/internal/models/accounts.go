package models

type Account struct {
	BaseModel

	Name           string  `json:"name"`
	Email          string  `json:"email" gorm:"uniqueIndex"`
	Username       *string `json:"username" gorm:"uniqueIndex"`
	Bio            string  `json:"bio"`
	Location       string  `json:"location"`
	ProfilePicture *string `json:"profile_picture"`
	Password       string  `json:"-" msgpack:"-"`

	Posts []Post `json:"-"`
}

// DisplayName returns the username when the account has one, otherwise the name.
func (v Account) DisplayName() string {
	if v.Username != nil && len(*v.Username) > 0 {
		return *v.Username
	}
	return v.Name
}
