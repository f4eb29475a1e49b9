package update

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	log "github.com/sirupsen/logrus"

	"github.com/avashisht/grind/internal/api"
	"github.com/avashisht/grind/internal/challenge"
	"github.com/avashisht/grind/internal/model"
	"github.com/avashisht/grind/internal/reminder"
	"github.com/avashisht/grind/internal/storage"
)

type View string

const (
	ViewChecklist View = "Checklist"
	ViewHistory   View = "History"
	ViewRoadmap   View = "Roadmap"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Checklist string
	History   string
	Roadmap   string
	Help      string
	Quit      string
}

// Backend is the remote collaborator the dashboard talks to. api.Client
// satisfies it; tests substitute a stub.
type Backend interface {
	challenge.Loader
	ToggleTask(ctx context.Context, in api.ToggleRequest) (model.DailyLog, error)
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	Keys        GlobalKeyMap
	Status      StatusBar
	Palette     CommandPaletteState
	HelpVisible bool
	Quitting    bool

	Loading   bool
	LoadErr   error
	FromCache bool

	backend    Backend
	store      *challenge.Store
	intents    *challenge.Intents
	controller *challenge.Controller
	cache      storage.Repository
	consent    *reminder.ConsentSource
	reminders  *reminder.Engine
	notifier   reminder.DesktopNotifier
	logger     *log.Logger

	requestTimeout time.Duration
	reminderHours  []int
	cursor         int
	lastReminder   string

	loadingSpinner  spinner.Model
	commandInput    textinput.Model
	roadmapViewport viewport.Model
	roadmapReady    bool
}

type ProgressLoadedMsg struct {
	Snap challenge.Snapshot
}

type ProgressLoadFailedMsg struct {
	Err error
}

type ToggleSettledMsg struct {
	Task       string
	Err        error
	Superseded bool
}

type DetailsSavedMsg struct {
	Task       string
	Err        error
	Superseded bool
}

type ReminderDueMsg struct {
	Event reminder.Reminder
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

// Deps wires the coordination core and its collaborators into the UI model.
// Everything except Backend has a default so tests stay small.
type Deps struct {
	Backend    Backend
	Store      *challenge.Store
	Intents    *challenge.Intents
	Controller *challenge.Controller
	Cache      storage.Repository
	Consent    *reminder.ConsentSource
	Reminders  *reminder.Engine
	Notifier   reminder.DesktopNotifier
	Logger     *log.Logger
	Config     RuntimeConfig
}

func NewModel(deps Deps) Model {
	cfg := deps.Config
	if cfg.RequestTimeoutSec <= 0 {
		cfg.RequestTimeoutSec = DefaultRuntimeConfig().RequestTimeoutSec
	}
	if len(cfg.ReminderHours) == 0 {
		cfg.ReminderHours = reminder.DefaultHours
	}
	m := Model{
		CurrentView: ViewChecklist,
		Loading:     true,
		Keys: GlobalKeyMap{
			Checklist: "1",
			History:   "2",
			Roadmap:   "3",
			Help:      "?",
			Quit:      "q",
		},
		backend:        deps.Backend,
		store:          deps.Store,
		intents:        deps.Intents,
		controller:     deps.Controller,
		cache:          deps.Cache,
		consent:        deps.Consent,
		reminders:      deps.Reminders,
		notifier:       deps.Notifier,
		logger:         deps.Logger,
		requestTimeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
		reminderHours:  cfg.ReminderHours,
	}
	if m.store == nil {
		m.store = challenge.NewStore()
	}
	if m.intents == nil {
		m.intents = challenge.NewIntents()
	}
	if m.controller == nil {
		m.controller = challenge.NewController()
	}
	if m.consent == nil {
		m.consent = reminder.NewConsentSource(cfg.DesktopNotifications)
	}
	if m.notifier == nil {
		m.notifier = reminder.NoopDesktopNotifier{}
	}
	if m.logger == nil {
		m.logger = log.New()
		m.logger.SetOutput(io.Discard)
	}
	m.loadingSpinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 120
	m.roadmapViewport = viewport.New(54, 18)
	return m
}

// Store exposes the underlying confirmed-state store, mainly so main can seed
// it from the cache before the program starts.
func (m Model) Store() *challenge.Store {
	return m.store
}
