package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wanderplan/internal/cli/formatter"
	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// wanderplanHuhTheme returns a custom huh theme using the Gruvbox palette.
func wanderplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed).SetString(" *")

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// tripFormValues backs the trip form fields. It outlives a single huh.Form so
// the fields keep their values when the form is rebuilt after an error.
type tripFormValues struct {
	Destination string
	Start       string
	End         string
	Interests   []domain.Interest
}

// input converts the raw field values. Unparseable dates become zero, which
// validation reports as missing.
func (v *tripFormValues) input() domain.FormInput {
	in := domain.FormInput{
		Destination: v.Destination,
		Interests:   domain.NewInterestSet(v.Interests...),
	}
	if t, err := domain.ParseDate(v.Start); err == nil {
		in.StartDate = t
	}
	if t, err := domain.ParseDate(v.End); err == nil {
		in.EndDate = t
	}
	return in
}

// newTripForm builds the two-page trip form: destination and dates, then
// interests.
func newTripForm(v *tripFormValues) *huh.Form {
	options := make([]huh.Option[domain.Interest], 0, len(domain.Catalog()))
	for _, info := range domain.Catalog() {
		options = append(options, huh.NewOption(info.Label, info.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Destination").
				Placeholder("Lisbon, Portugal").
				Value(&v.Destination).
				Validate(validateRequired("destination")),
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM-DD").
				Value(&v.Start).
				Validate(validateDate),
			huh.NewInput().
				Title("End date").
				Placeholder("YYYY-MM-DD").
				Value(&v.End).
				Validate(validateDate),
		),
		huh.NewGroup(
			huh.NewMultiSelect[domain.Interest]().
				Title("Interests").
				Description("Pick at least one").
				Options(options...).
				Value(&v.Interests).
				Validate(func(sel []domain.Interest) error {
					if len(sel) == 0 {
						return fmt.Errorf("select at least one interest")
					}
					return nil
				}),
		),
	).WithTheme(wanderplanHuhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := domain.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}
