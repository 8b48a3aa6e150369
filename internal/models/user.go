package models

// User represents the user model in the database. Authentication is
// delegated to the external identity provider; ExternalID is the stable
// principal id it issues. Users are provisioned lazily on first sight.
type User struct {
	Base
	ExternalID string `gorm:"uniqueIndex;not null" json:"external_id"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Name       string `json:"name"`

	Categories   []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	SavingsGoals []SavingsGoal `gorm:"foreignKey:UserID" json:"savings_goals,omitempty"`
}
