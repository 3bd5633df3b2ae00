package cli

import (
	"github.com/alexanderramin/wanderplan/internal/workflow"
	"github.com/charmbracelet/bubbles/key"
)

// ViewID identifies each screen of the TUI. The active screen follows the
// workflow phase.
type ViewID int

const (
	ViewForm ViewID = iota
	ViewGenerating
	ViewItinerary
)

func viewFor(p workflow.Phase) ViewID {
	switch p {
	case workflow.PhaseGenerating:
		return ViewGenerating
	case workflow.PhaseReady:
		return ViewItinerary
	default:
		return ViewForm
	}
}

// Title returns the breadcrumb for the view.
func (v ViewID) Title() string {
	switch v {
	case ViewGenerating:
		return "Planning"
	case ViewItinerary:
		return "Itinerary"
	default:
		return "New trip"
	}
}

type itineraryKeyMap struct {
	Regenerate key.Binding
	NewTrip    key.Binding
	Scroll     key.Binding
	Quit       key.Binding
}

func newItineraryKeyMap() itineraryKeyMap {
	return itineraryKeyMap{
		Regenerate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "regenerate")),
		NewTrip:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "plan another")),
		Scroll:     key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑↓", "scroll")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// shortHelp returns the key hints shown in the bottom bar for v.
func shortHelp(v ViewID, keys itineraryKeyMap) []key.Binding {
	switch v {
	case ViewItinerary:
		return []key.Binding{keys.Regenerate, keys.NewTrip, keys.Scroll, keys.Quit}
	case ViewGenerating:
		return []key.Binding{keys.Quit}
	default:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
			key.NewBinding(key.WithKeys("x", "space"), key.WithHelp("x", "toggle interest")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
		}
	}
}
