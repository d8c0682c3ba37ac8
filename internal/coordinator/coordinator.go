// Package coordinator owns the application state: the phase of the
// current clone request, the active project and the selected view.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/cloneai/internal/domain/activity"
	"github.com/rpggio/cloneai/internal/domain/project"
	"github.com/rpggio/cloneai/internal/generation"
	"github.com/rpggio/cloneai/internal/persistence"
)

// Generator produces a component for a prompt and optional image.
type Generator interface {
	Generate(ctx context.Context, prompt, imageDataURI string) (generation.Result, error)
}

// Notifier is told about every state change.
type Notifier interface {
	Notify(Snapshot)
}

// ActivityRecorder keeps a diagnostic trail of clone outcomes.
type ActivityRecorder interface {
	Record(ctx context.Context, typ activity.ActivityType, projectID, summary, details string)
}

// Config wires a Coordinator.
type Config struct {
	Store     *project.Store
	Generator Generator
	Activity  ActivityRecorder
	Notifier  Notifier
	// Timeout bounds each generation; zero means no limit.
	Timeout time.Duration
	Logger  *slog.Logger

	Now   func() time.Time
	NewID func() string
}

// Coordinator is the single owner of application state.
type Coordinator struct {
	store     *project.Store
	generator Generator
	activity  ActivityRecorder
	notifier  Notifier
	timeout   time.Duration
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string

	mu       sync.Mutex
	phase    Phase
	errMsg   string
	inFlight bool
	activeID string
	view     View
}

// New creates a coordinator and loads persisted projects. A corrupt stored
// value is logged and treated as an empty list.
func New(ctx context.Context, cfg Config) (*Coordinator, error) {
	if cfg.Store == nil || cfg.Generator == nil {
		return nil, errors.New("coordinator: store and generator are required")
	}
	c := &Coordinator{
		store:     cfg.Store,
		generator: cfg.Generator,
		activity:  cfg.Activity,
		notifier:  cfg.Notifier,
		timeout:   cfg.Timeout,
		logger:    cfg.Logger,
		now:       cfg.Now,
		newID:     cfg.NewID,
		phase:     PhaseIdle,
		view:      ViewCode,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}

	if err := c.store.Load(ctx); err != nil {
		if !errors.Is(err, persistence.ErrCorrupt) {
			return nil, err
		}
		c.logger.Warn("stored projects unreadable, starting empty", "error", err)
	}
	return c, nil
}

// SetNotifier replaces the state change observer.
func (c *Coordinator) SetNotifier(n Notifier) {
	c.mu.Lock()
	c.notifier = n
	c.mu.Unlock()
}

// RequestClone generates a project and blocks until the request settles.
func (c *Coordinator) RequestClone(ctx context.Context, req CloneRequest) (*project.Project, error) {
	if err := c.begin(ctx, req); err != nil {
		return nil, err
	}
	return c.run(ctx, req)
}

// Submit moves to the analyzing phase and settles the request in the
// background. It returns as soon as the request is accepted.
func (c *Coordinator) Submit(ctx context.Context, req CloneRequest) error {
	if err := c.begin(ctx, req); err != nil {
		return err
	}
	go func() {
		_, _ = c.run(context.WithoutCancel(ctx), req)
	}()
	return nil
}

func (c *Coordinator) begin(ctx context.Context, req CloneRequest) error {
	if req.Empty() {
		return ErrEmptyRequest
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrCloneInFlight
	}
	c.inFlight = true
	c.phase = PhaseAnalyzing
	c.errMsg = ""
	c.mu.Unlock()

	c.logger.Info("clone requested", "url", req.URL, "has_image", req.ImageURL != "")
	c.record(ctx, activity.TypeCloneRequested, "", "Clone requested: "+project.DisplayName(req.Description, req.URL), "")
	c.notify()
	return nil
}

func (c *Coordinator) run(ctx context.Context, req CloneRequest) (*project.Project, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.generator.Generate(ctx, req.Prompt(), req.ImageURL)
	if err != nil {
		return nil, c.fail(ctx, fmt.Errorf("generating: %w", err))
	}

	proj := project.Project{
		ID:          c.newID(),
		Name:        project.DisplayName(req.Description, req.URL),
		URL:         req.URL,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Code:        result.Code,
		Analysis:    result.Analysis,
		Timestamp:   c.now().UnixMilli(),
	}
	if err := c.store.Insert(ctx, proj); err != nil {
		return nil, c.fail(ctx, fmt.Errorf("storing project: %w", err))
	}

	c.logger.Info("clone succeeded", "project_id", proj.ID, "name", proj.Name)
	c.record(ctx, activity.TypeCloneSucceeded, proj.ID, "Cloned "+proj.Name, "")

	c.mu.Lock()
	c.inFlight = false
	c.activeID = proj.ID
	c.phase = PhaseSuccess
	c.view = ViewPreview
	c.mu.Unlock()
	c.notify()
	return &proj, nil
}

func (c *Coordinator) fail(ctx context.Context, cause error) error {
	c.logger.Error("clone failed", "error", cause)
	c.record(ctx, activity.TypeCloneFailed, "", "Clone failed", cause.Error())

	c.mu.Lock()
	c.inFlight = false
	c.phase = PhaseError
	c.errMsg = FailureMessage
	c.mu.Unlock()
	c.notify()
	return ErrCloneFailed
}

// SelectProject makes the project with id active. The phase is untouched.
func (c *Coordinator) SelectProject(id string) (project.Project, error) {
	proj, err := c.store.Get(id)
	if err != nil {
		return project.Project{}, err
	}
	c.mu.Lock()
	c.activeID = proj.ID
	c.mu.Unlock()
	c.notify()
	return proj, nil
}

// DeleteProject removes a project and clears it if it was active.
func (c *Coordinator) DeleteProject(ctx context.Context, id string) error {
	removed, err := c.store.Remove(ctx, id)
	if err != nil {
		return err
	}
	c.mu.Lock()
	if c.activeID == id {
		c.activeID = ""
	}
	c.mu.Unlock()

	c.logger.Info("project deleted", "project_id", id)
	c.record(ctx, activity.TypeProjectDeleted, id, "Deleted "+removed.Name, "")
	c.notify()
	return nil
}

// NewProject returns to the intake form: no active project, idle phase.
// A generation still in flight keeps running and lands when it settles.
func (c *Coordinator) NewProject() {
	c.mu.Lock()
	c.activeID = ""
	c.phase = PhaseIdle
	c.errMsg = ""
	c.mu.Unlock()
	c.notify()
}

// SetView switches between the code and preview tabs.
func (c *Coordinator) SetView(v View) error {
	if _, err := ParseView(string(v)); err != nil {
		return err
	}
	c.mu.Lock()
	c.view = v
	c.mu.Unlock()
	c.notify()
	return nil
}

// Project returns a stored project by id.
func (c *Coordinator) Project(id string) (project.Project, error) {
	return c.store.Get(id)
}

// Projects lists stored projects, newest first.
func (c *Coordinator) Projects() []project.Project {
	return c.store.List()
}

// Snapshot copies the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	snap := Snapshot{
		Phase:    c.phase,
		Error:    c.errMsg,
		InFlight: c.inFlight,
		View:     c.view,
	}
	activeID := c.activeID
	c.mu.Unlock()

	snap.Projects = c.store.List()
	if activeID != "" {
		for i := range snap.Projects {
			if snap.Projects[i].ID == activeID {
				active := snap.Projects[i]
				snap.Active = &active
				break
			}
		}
	}
	return snap
}

func (c *Coordinator) notify() {
	c.mu.Lock()
	n := c.notifier
	c.mu.Unlock()
	if n != nil {
		n.Notify(c.Snapshot())
	}
}

func (c *Coordinator) record(ctx context.Context, typ activity.ActivityType, projectID, summary, details string) {
	if c.activity != nil {
		c.activity.Record(ctx, typ, projectID, summary, details)
	}
}
