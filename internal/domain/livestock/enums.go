package livestock

import "strings"

// Category is the kind of animal a count, event, tag or expense belongs to
type Category string

const (
	CategoryGoat   Category = "GOAT"
	CategorySheep  Category = "SHEEP"
	CategoryCattle Category = "CATTLE"
)

// AllCategories lists every supported category
var AllCategories = []Category{CategoryGoat, CategorySheep, CategoryCattle}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	switch c {
	case CategoryGoat, CategorySheep, CategoryCattle:
		return true
	}
	return false
}

// String returns the category name
func (c Category) String() string {
	return string(c)
}

// Title returns the display name of the category
func (c Category) Title() string {
	switch c {
	case CategoryGoat:
		return "Goat"
	case CategorySheep:
		return "Sheep"
	case CategoryCattle:
		return "Cattle"
	}
	return string(c)
}

// ParseCategory parses a category name case-insensitively
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", NewInvalidRequestError("Invalid category: " + s)
	}
	return c, nil
}

// Gender of an individually tagged animal
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// IsValid reports whether g is a known gender
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// String returns the gender name
func (g Gender) String() string {
	return string(g)
}

// Prefix returns the tag number prefix for the gender
func (g Gender) Prefix() string {
	if g == GenderMale {
		return "M"
	}
	return "F"
}

// TagStatus is the lifecycle state of a tagged animal
type TagStatus string

const (
	TagStatusAlive       TagStatus = "ALIVE"
	TagStatusSold        TagStatus = "SOLD"
	TagStatusDeceased    TagStatus = "DECEASED"
	TagStatusSlaughtered TagStatus = "SLAUGHTERED"
	TagStatusLost        TagStatus = "LOST"
)

// IsValid reports whether s is a known tag status
func (s TagStatus) IsValid() bool {
	switch s {
	case TagStatusAlive, TagStatusSold, TagStatusDeceased, TagStatusSlaughtered, TagStatusLost:
		return true
	}
	return false
}

// String returns the status name
func (s TagStatus) String() string {
	return string(s)
}

// ParseTagStatus parses a tag status case-insensitively
func ParseTagStatus(s string) (TagStatus, error) {
	status := TagStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", NewInvalidRequestError("Invalid tag status: " + s)
	}
	return status, nil
}

// EventType is the kind of change an event applies to a count
type EventType string

const (
	EventTypeBirth     EventType = "BIRTH"
	EventTypeDeath     EventType = "DEATH"
	EventTypeLost      EventType = "LOST"
	EventTypeSlaughter EventType = "SLAUGHTER"
	EventTypeSale      EventType = "SALE"
	EventTypePurchase  EventType = "PURCHASE"
)

// IsValid reports whether t is a known event type
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeBirth, EventTypeDeath, EventTypeLost, EventTypeSlaughter, EventTypeSale, EventTypePurchase:
		return true
	}
	return false
}

// String returns the event type name
func (t EventType) String() string {
	return string(t)
}

// IsIncreasing reports whether the event adds animals to a count
func (t EventType) IsIncreasing() bool {
	return t == EventTypeBirth || t == EventTypePurchase
}

// IsDecreasing reports whether the event removes animals from a count
func (t EventType) IsDecreasing() bool {
	switch t {
	case EventTypeDeath, EventTypeSlaughter, EventTypeSale, EventTypeLost:
		return true
	}
	return false
}

// RequiresTags reports whether the event must name the tags it consumes
func (t EventType) RequiresTags() bool {
	switch t {
	case EventTypeSale, EventTypeSlaughter, EventTypeLost:
		return true
	}
	return false
}

// TerminalStatus returns the status a consumed tag moves to.
// The second result is false for events that do not consume tags.
func (t EventType) TerminalStatus() (TagStatus, bool) {
	switch t {
	case EventTypeSale:
		return TagStatusSold, true
	case EventTypeSlaughter:
		return TagStatusSlaughtered, true
	case EventTypeLost:
		return TagStatusLost, true
	case EventTypeDeath:
		return TagStatusDeceased, true
	}
	return "", false
}

// ParseEventType parses an event type case-insensitively
func ParseEventType(s string) (EventType, error) {
	t := EventType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", NewInvalidEventTypeError(s)
	}
	return t, nil
}

// ExpenseCategory classifies an expense record
type ExpenseCategory string

const (
	ExpenseCategoryPurchase    ExpenseCategory = "PURCHASE"
	ExpenseCategoryFeed        ExpenseCategory = "FEED"
	ExpenseCategoryVaccination ExpenseCategory = "VACCINATION"
	ExpenseCategoryMedication  ExpenseCategory = "MEDICATION"
	ExpenseCategoryLabour      ExpenseCategory = "LABOUR"
	ExpenseCategoryBuilding    ExpenseCategory = "BUILDING"
	ExpenseCategoryTransport   ExpenseCategory = "TRANSPORT"
	ExpenseCategoryMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseCategoryFencing     ExpenseCategory = "FENCING"
	ExpenseCategoryEquipment   ExpenseCategory = "EQUIPMENT"
	ExpenseCategoryTraining    ExpenseCategory = "TRAINING"
	ExpenseCategoryMarketing   ExpenseCategory = "MARKETING"
	ExpenseCategoryOther       ExpenseCategory = "OTHER"
)

var expenseCategoryDescriptions = map[ExpenseCategory]string{
	ExpenseCategoryPurchase:    "Buying new livestock",
	ExpenseCategoryFeed:        "Animal feed and supplements",
	ExpenseCategoryVaccination: "Preventive veterinary vaccinations",
	ExpenseCategoryMedication:  "Veterinary medicines or treatments",
	ExpenseCategoryLabour:      "Wages or fees for farm workers",
	ExpenseCategoryBuilding:    "Building or repairing farm structures",
	ExpenseCategoryTransport:   "Fuel or transport for livestock/supplies",
	ExpenseCategoryMaintenance: "Facility upkeep or minor repairs",
	ExpenseCategoryFencing:     "Installing or repairing fences/gates",
	ExpenseCategoryEquipment:   "Buying or maintaining farm equipment",
	ExpenseCategoryTraining:    "Staff training or certifications",
	ExpenseCategoryMarketing:   "Advertising or selling livestock/products",
	ExpenseCategoryOther:       "Miscellaneous farm expenses",
}

// IsValid reports whether c is a known expense category
func (c ExpenseCategory) IsValid() bool {
	_, ok := expenseCategoryDescriptions[c]
	return ok
}

// String returns the expense category name
func (c ExpenseCategory) String() string {
	return string(c)
}

// Description returns the human readable description of the expense category
func (c ExpenseCategory) Description() string {
	return expenseCategoryDescriptions[c]
}

// ParseExpenseCategory parses an expense category case-insensitively
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	c := ExpenseCategory(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", NewInvalidExpenseCategoryError(s)
	}
	return c, nil
}
