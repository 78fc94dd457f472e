package entity

// Address is embedded into doctor and patient rows with the address_ column prefix
type Address struct {
	Street     string `gorm:"type:varchar(255);not null" json:"street"`
	District   string `gorm:"type:varchar(255);not null" json:"district"`
	City       string `gorm:"type:varchar(255);not null" json:"city"`
	Number     string `gorm:"type:varchar(20)" json:"number,omitempty"`
	Complement string `gorm:"type:varchar(255)" json:"complement,omitempty"`
}
