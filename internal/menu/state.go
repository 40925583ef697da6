package menu

import "context"

// State is the menu currently shown
type State int

const (
	MainMenu State = iota
	LoggedInMenu
	ContactsMenu
	Exit
)

func (s State) String() string {
	switch s {
	case MainMenu:
		return "main"
	case LoggedInMenu:
		return "logged_in"
	case ContactsMenu:
		return "contacts"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

type action func(c *Controller, ctx context.Context) (State, error)

type item struct {
	run   action
	label string
}

type screen struct {
	header string
	items  []item
}

// screens lists the numbered entries of every menu; entry i answers to
// choice "i+1"
var screens = map[State]screen{
	MainMenu: {
		header: "Welcome to the Telegram SMS Manager!",
		items: []item{
			{label: "Configure Telegram Bot Token", run: (*Controller).configureToken},
			{label: "Send Test Message", run: (*Controller).sendTestMessage},
			{label: "Manage Contacts", run: goTo(ContactsMenu)},
			{label: "Logout", run: (*Controller).logout},
			{label: "Exit", run: goTo(Exit)},
		},
	},
	LoggedInMenu: {
		items: []item{
			{label: "View Configuration", run: (*Controller).viewConfiguration},
			{label: "Change Telegram Bot Token", run: (*Controller).configureToken},
			{label: "Send Test Message", run: (*Controller).sendTestMessage},
			{label: "Manage Contacts", run: goTo(ContactsMenu)},
			{label: "Logout", run: (*Controller).logout},
			{label: "Exit", run: goTo(Exit)},
		},
	},
	ContactsMenu: {
		items: []item{
			{label: "View Contacts", run: (*Controller).viewContacts},
			{label: "Add Contact", run: (*Controller).addContact},
			{label: "Remove Contact", run: (*Controller).removeContact},
			{label: "Back to Menu", run: goTo(LoggedInMenu)},
		},
	},
}

func goTo(next State) action {
	return func(*Controller, context.Context) (State, error) {
		return next, nil
	}
}
