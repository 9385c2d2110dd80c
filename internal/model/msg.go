package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// FoodsLoadedMsg is sent when a load of the food list settles.
type FoodsLoadedMsg struct {
	Items     []FoodRecord
	IsLoading bool
	Err       string
}

// FoodDetailLoadedMsg is sent when a single food record is fetched.
type FoodDetailLoadedMsg struct {
	Food FoodRecord
}

// FoodSearchResultsMsg is sent when a remote search completes.
type FoodSearchResultsMsg struct {
	Query string
	Items []FoodRecord
}

// FoodSavedMsg is sent when a create or update is confirmed by the server.
type FoodSavedMsg struct {
	ID        string
	Operation string // insert, update
	Before    *FoodRecord
	After     FoodRecord
}

// FoodDeletedMsg is sent when a delete is confirmed by the server.
type FoodDeletedMsg struct {
	ID      string
	Deleted FoodRecord
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// NotificationMsg carries a notification into the UI loop.
type NotificationMsg struct {
	Notification Notification
}

// RefetchRequestedMsg asks the UI to reload the food list.
type RefetchRequestedMsg struct{}

// ActivityLoadedMsg is sent when the activity log is loaded.
type ActivityLoadedMsg struct {
	Entries  []ActivityEntry
	Searches []string
}

// Screen represents different app screens.
type Screen int

const (
	ScreenFoods Screen = iota
	ScreenActivity
	ScreenFoodDetail
	ScreenFoodForm
	ScreenDeleteConfirm
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
	ModeSearch
)
