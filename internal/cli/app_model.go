package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/wanderplan/internal/cli/formatter"
	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/workflow"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Messages delivered back into Update by the commands below. Stage and result
// notifications carry their attempt id so the controller can drop stale ones.
type (
	formSubmittedMsg struct {
		input domain.FormInput
	}

	stageDoneMsg struct {
		attempt workflow.AttemptID
	}

	generationResultMsg struct {
		kind   workflow.AttemptKind
		result workflow.Result
	}

	// tripSavedMsg carries the initial attempt of the trip it belongs to.
	tripSavedMsg struct {
		origin workflow.AttemptID
		trip   *domain.Trip
		err    error
	}
)

// chromeLines is the number of rows used by the header and status bar.
const chromeLines = 5

// appModel is the root bubbletea Model for the TUI. The workflow Controller is
// the source of truth for which screen is shown; Update is the single control
// loop that feeds it stage and result events.
type appModel struct {
	app  *App
	ctrl *workflow.Controller
	rt   *workflow.Runtime

	form   *huh.Form
	values *tripFormValues
	notice error

	itinVP viewport.Model
	keys   itineraryKeyMap

	// origin is the initial attempt behind the itinerary on screen. Saves
	// for any other origin belong to a trip the user already left.
	origin   workflow.AttemptID
	tripID   string
	status   string
	width    int
	height   int
	quitting bool
}

func newAppModel(app *App, rt *workflow.Runtime) appModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = itineraryViewportKeyMap()

	m := appModel{
		app:    app,
		ctrl:   app.newController(),
		rt:     rt,
		values: &tripFormValues{},
		itinVP: vp,
		keys:   newItineraryKeyMap(),
	}
	m.ctrl.Open()
	m.form = newTripForm(m.values)
	return m
}

// runTUI runs the interactive planner until the user quits.
func runTUI(ctx context.Context, app *App) error {
	rt := app.newRuntime()
	defer rt.Close()

	p := tea.NewProgram(newAppModel(app, rt), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m appModel) activeView() ViewID {
	return viewFor(m.ctrl.Phase())
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		if m.activeView() == ViewForm {
			return m.updateForm(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case formSubmittedMsg:
		return m.submit(msg.input)

	case stageDoneMsg:
		switch m.ctrl.AdvanceStage(msg.attempt) {
		case workflow.OutcomeAdvanced:
			p, _ := m.ctrl.Progress()
			return m, awaitStageCmd(m.rt, msg.attempt, p.Stage)
		case workflow.OutcomeCommitted:
			cmd := m.committed(msg.attempt, workflow.AttemptInitial)
			return m, cmd
		}
		return m, nil

	case generationResultMsg:
		id := msg.result.Attempt
		switch m.ctrl.Resolve(msg.result) {
		case workflow.OutcomeCommitted:
			cmd := m.committed(id, msg.kind)
			return m, cmd
		case workflow.OutcomeFailed:
			m.rt.Release(id)
			if m.ctrl.Phase() == workflow.PhaseIdle {
				return m.reopenForm(m.values)
			}
		}
		return m, nil

	case tripSavedMsg:
		if msg.origin != m.origin {
			return m, nil
		}
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("Could not save trip: " + msg.err.Error())
			return m, nil
		}
		m.tripID = msg.trip.ID
		m.status = formatter.Dim(fmt.Sprintf("Saved as %s (revision %d)", shortID(msg.trip.ID), msg.trip.Revision))
		return m, nil
	}

	if m.activeView() == ViewForm {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	switch m.activeView() {
	case ViewForm:
		if msg.Type == tea.KeyEsc {
			return m.quit()
		}
		return m.updateForm(msg)

	case ViewGenerating:
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return m, nil
	}

	// Itinerary: any key clears a regeneration notice before acting.
	m.ctrl.DismissNotice()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Regenerate):
		a, err := m.ctrl.Regenerate()
		if err != nil {
			if errors.Is(err, workflow.ErrBusy) {
				m.status = formatter.Dim("Already regenerating...")
			}
			return m, nil
		}
		m.status = ""
		return m, generateCmd(m.rt, a)

	case key.Matches(msg, m.keys.NewTrip):
		if superseded, ok := m.ctrl.PlanAnother(); ok && superseded != 0 {
			m.rt.Release(superseded)
		}
		m.origin = 0
		m.tripID = ""
		m.status = ""
		m.itinVP.SetContent("")
		return m.reopenForm(&tripFormValues{})
	}

	var cmd tea.Cmd
	m.itinVP, cmd = m.itinVP.Update(msg)
	return m, cmd
}

// updateForm forwards msg to the huh form and turns completion into a
// formSubmittedMsg.
func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		in := m.values.input()
		return m, tea.Batch(cmd, func() tea.Msg { return formSubmittedMsg{input: in} })
	case huh.StateAborted:
		return m.quit()
	}
	return m, cmd
}

func (m appModel) submit(in domain.FormInput) (tea.Model, tea.Cmd) {
	a, err := m.ctrl.Submit(in)
	if err != nil {
		m.notice = err
		m.form = newTripForm(m.values)
		return m, m.form.Init()
	}
	m.notice = nil
	return m, tea.Batch(generateCmd(m.rt, a), awaitStageCmd(m.rt, a.ID, 0))
}

// reopenForm moves Idle to Collecting and shows a fresh form over values,
// surfacing the previous failure as a notice.
func (m appModel) reopenForm(values *tripFormValues) (tea.Model, tea.Cmd) {
	m.ctrl.Open()
	if c, ok := m.ctrl.State().(workflow.Collecting); ok {
		m.notice = c.Notice
	}
	m.values = values
	m.form = newTripForm(values)
	return m, m.form.Init()
}

// committed runs after an itinerary is shown: it releases the attempt,
// refreshes the viewport and records the trip.
func (m *appModel) committed(id workflow.AttemptID, kind workflow.AttemptKind) tea.Cmd {
	m.rt.Release(id)
	r, ok := m.ctrl.State().(workflow.Ready)
	if !ok {
		return nil
	}
	m.itinVP.SetContent(formatter.FormatItinerary(r.Request, r.Itinerary))
	m.itinVP.GotoTop()
	if kind == workflow.AttemptInitial {
		m.origin = id
	}

	if m.app.Trips == nil {
		return nil
	}
	trips, gen, origin := m.app.Trips, m.app.GeneratorName, m.origin
	itin := r.Itinerary
	if kind == workflow.AttemptRegenerate && m.tripID != "" {
		tripID := m.tripID
		return func() tea.Msg {
			trip, err := trips.SaveRevision(context.Background(), tripID, itin, gen)
			return tripSavedMsg{origin: origin, trip: trip, err: err}
		}
	}
	req := r.Request
	return func() tea.Msg {
		trip, err := trips.Save(context.Background(), req, itin, gen)
		return tripSavedMsg{origin: origin, trip: trip, err: err}
	}
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	if id := m.ctrl.InFlight(); id != 0 {
		m.rt.Release(id)
	}
	m.quitting = true
	return m, tea.Quit
}

func (m *appModel) resizeViewport() {
	m.itinVP.Width = m.width
	m.itinVP.Height = max(m.height-chromeLines-2, 1)
}

// ── commands ─────────────────────────────────────────────────────────────────

func generateCmd(rt *workflow.Runtime, a workflow.Attempt) tea.Cmd {
	return func() tea.Msg {
		return generationResultMsg{kind: a.Kind, result: rt.Generate(a)}
	}
}

// awaitStageCmd waits for the given stage of attempt id. Released attempts
// produce no message.
func awaitStageCmd(rt *workflow.Runtime, id workflow.AttemptID, stage int) tea.Cmd {
	return func() tea.Msg {
		if err := rt.AwaitStage(id, stage); err != nil {
			return nil
		}
		return stageDoneMsg{attempt: id}
	}
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}

	switch m.activeView() {
	case ViewForm:
		sections = append(sections, m.renderForm())
	case ViewGenerating:
		sections = append(sections, m.renderGenerating())
	case ViewItinerary:
		sections = append(sections, m.renderItinerary())
	}

	sections = append(sections, m.renderStatusBar())
	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.height {
			result += strings.Repeat("\n", m.height-lines)
		}
	}
	return result
}

func (m appModel) renderHeader() string {
	title := formatter.StylePurple.Render("wanderplan")
	header := title + " " + formatter.Dim("›") + " " + formatter.Dim(m.activeView().Title())
	sep := formatter.Dim(strings.Repeat("─", max(m.width, 20)))
	return header + "\n" + sep
}

func (m appModel) renderForm() string {
	var b strings.Builder
	if m.notice != nil {
		b.WriteString(formatter.StyleRed.Render(noticeText(m.notice)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.form.View())
	return b.String()
}

func (m appModel) renderGenerating() string {
	p, ok := m.ctrl.Progress()
	if !ok {
		return ""
	}
	g := m.ctrl.State().(workflow.Generating)

	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold("Planning "+g.Request.Destination()) + "\n\n")
	b.WriteString("  " + formatter.RenderProgress(p.Fraction(), 30) + "\n\n")
	b.WriteString(formatter.RenderStages(m.ctrl.Stages(), p.Stage))
	return b.String()
}

func (m appModel) renderItinerary() string {
	r := m.ctrl.State().(workflow.Ready)

	var body string
	if m.height > 0 {
		body = m.itinVP.View()
	} else {
		body = formatter.FormatItinerary(r.Request, r.Itinerary)
	}

	lines := []string{body}
	switch {
	case r.Regenerating:
		lines = append(lines, formatter.StyleYellow.Render("Regenerating itinerary..."))
	case r.Notice != nil:
		lines = append(lines, formatter.StyleRed.Render("Could not regenerate: "+noticeText(r.Notice)))
	}
	if m.status != "" {
		lines = append(lines, m.status)
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderStatusBar() string {
	var hints []string
	if m.activeView() == ViewItinerary && m.itinVP.TotalLineCount() > m.itinVP.Height && m.height > 0 {
		hints = append(hints, formatter.Dim(fmt.Sprintf("[%d%%]", int(m.itinVP.ScrollPercent()*100))))
	}
	for _, b := range shortHelp(m.activeView(), m.keys) {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}

// noticeText phrases a workflow error for the user.
func noticeText(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		msgs := make([]string, len(ve.Fields))
		for i, f := range ve.Fields {
			msgs[i] = f.Message
		}
		return strings.Join(msgs, "; ")
	case errors.Is(err, workflow.ErrTimeout):
		return "The planner took too long to answer. Please try again."
	case errors.Is(err, workflow.ErrServiceFailure):
		return "The planner could not build an itinerary. Please try again."
	default:
		return err.Error()
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// itineraryViewportKeyMap limits scrolling to arrow and page keys so letter
// keys stay free for actions.
func itineraryViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}
