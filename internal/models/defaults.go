package models

// DefaultCategory describes one entry of the seed set created for every
// new user: 30 expense categories, 8 income categories, and one catch-all.
type DefaultCategory struct {
	Name  string
	Type  CategoryType
	Color string
	Icon  string
}

// DefaultCategories is the seed set applied during user provisioning.
var DefaultCategories = []DefaultCategory{
	// Housing
	{Name: "Rent/Mortgage", Type: CategoryTypeExpense, Color: "#6366f1", Icon: "🏠"},
	{Name: "Utilities", Type: CategoryTypeExpense, Color: "#f59e0b", Icon: "💡"},
	{Name: "Internet & Phone", Type: CategoryTypeExpense, Color: "#3b82f6", Icon: "📱"},
	{Name: "Home Insurance", Type: CategoryTypeExpense, Color: "#6d28d9", Icon: "🛡️"},
	{Name: "Home Maintenance", Type: CategoryTypeExpense, Color: "#f43f5e", Icon: "🔧"},
	{Name: "Property Tax", Type: CategoryTypeExpense, Color: "#4f46e5", Icon: "🏛️"},
	// Transportation
	{Name: "Car Payment", Type: CategoryTypeExpense, Color: "#dc2626", Icon: "🚗"},
	{Name: "Gas/Fuel", Type: CategoryTypeExpense, Color: "#f87171", Icon: "⛽"},
	{Name: "Car Insurance", Type: CategoryTypeExpense, Color: "#ef4444", Icon: "📋"},
	{Name: "Public Transit", Type: CategoryTypeExpense, Color: "#10b981", Icon: "🚇"},
	{Name: "Car Maintenance", Type: CategoryTypeExpense, Color: "#fb923c", Icon: "🔩"},
	// Food
	{Name: "Groceries", Type: CategoryTypeExpense, Color: "#10b981", Icon: "🛒"},
	{Name: "Restaurants", Type: CategoryTypeExpense, Color: "#14b8a6", Icon: "🍽️"},
	{Name: "Coffee & Snacks", Type: CategoryTypeExpense, Color: "#06b6d4", Icon: "☕"},
	{Name: "Food Delivery", Type: CategoryTypeExpense, Color: "#0891b2", Icon: "🚚"},
	// Healthcare
	{Name: "Health Insurance", Type: CategoryTypeExpense, Color: "#ef4444", Icon: "🏥"},
	{Name: "Medical & Dental", Type: CategoryTypeExpense, Color: "#dc2626", Icon: "👨‍⚕️"},
	{Name: "Pharmacy", Type: CategoryTypeExpense, Color: "#b91c1c", Icon: "💊"},
	{Name: "Fitness & Wellness", Type: CategoryTypeExpense, Color: "#fca5a5", Icon: "💪"},
	// Personal
	{Name: "Clothing", Type: CategoryTypeExpense, Color: "#f97316", Icon: "👕"},
	{Name: "Personal Care", Type: CategoryTypeExpense, Color: "#a855f7", Icon: "💅"},
	{Name: "Household Items", Type: CategoryTypeExpense, Color: "#fb923c", Icon: "🧺"},
	{Name: "Gifts", Type: CategoryTypeExpense, Color: "#c026d3", Icon: "🎁"},
	// Entertainment
	{Name: "Entertainment", Type: CategoryTypeExpense, Color: "#ec4899", Icon: "🎬"},
	{Name: "Subscriptions", Type: CategoryTypeExpense, Color: "#8b5cf6", Icon: "📺"},
	{Name: "Hobbies", Type: CategoryTypeExpense, Color: "#9f1239", Icon: "🎨"},
	// Financial
	{Name: "Loan Payments", Type: CategoryTypeExpense, Color: "#991b1b", Icon: "💰"},
	{Name: "Credit Card Payment", Type: CategoryTypeExpense, Color: "#7f1d1d", Icon: "💳"},
	{Name: "Savings Transfer", Type: CategoryTypeExpense, Color: "#059669", Icon: "🏦"},
	{Name: "Investments", Type: CategoryTypeExpense, Color: "#0891b2", Icon: "📈"},
	// Income
	{Name: "Salary", Type: CategoryTypeIncome, Color: "#10b981", Icon: "💰"},
	{Name: "Freelance/Contract", Type: CategoryTypeIncome, Color: "#3b82f6", Icon: "💼"},
	{Name: "Business Income", Type: CategoryTypeIncome, Color: "#8b5cf6", Icon: "🏢"},
	{Name: "Investment Returns", Type: CategoryTypeIncome, Color: "#f59e0b", Icon: "📈"},
	{Name: "Rental Income", Type: CategoryTypeIncome, Color: "#f97316", Icon: "🏠"},
	{Name: "Tax Refund", Type: CategoryTypeIncome, Color: "#6366f1", Icon: "📋"},
	{Name: "Gifts Received", Type: CategoryTypeIncome, Color: "#ec4899", Icon: "🎁"},
	{Name: "Other Income", Type: CategoryTypeIncome, Color: "#64748b", Icon: "💵"},
	// Catch-all
	{Name: "Miscellaneous", Type: CategoryTypeExpense, Color: "#64748b", Icon: "📦"},
}
