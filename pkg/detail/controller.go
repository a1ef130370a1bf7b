package detail

import (
	"context"

	"github.com/pluqqy/promptcat/internal/logger"
	"github.com/pluqqy/promptcat/pkg/api"
	"github.com/pluqqy/promptcat/pkg/models"
)

// Controller owns the detail state and the location history. Blocking
// calls are split into a resolve step and an apply step so an event loop
// can run the first off its goroutine. A Controller is not safe for
// concurrent use.
type Controller struct {
	svc     api.Service
	log     *logger.Logger
	state   State
	history *History
}

// NewController starts closed at home, the page location with no prompt.
func NewController(svc api.Service, home Location, log *logger.Logger) *Controller {
	return &Controller{
		svc:     svc,
		log:     log.Component(logger.ComponentDetail),
		history: NewHistory(home.WithoutPrompt()),
	}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// SetState stores a state derived through the State methods.
func (c *Controller) SetState(s State) { c.state = s }

// Location returns the current location.
func (c *Controller) Location() Location { return c.history.Current() }

// History exposes the location history.
func (c *Controller) History() *History { return c.history }

// Open shows p and pushes its location.
func (c *Controller) Open(p models.Prompt) {
	c.state = Apply(c.state, OpenEvent{Prompt: p})
	c.history.Push(c.history.Current().WithPrompt(p.ID))
}

// Close hides the detail view and pushes a location without a prompt.
func (c *Controller) Close() {
	c.state = Apply(c.state, CloseEvent{})
	c.history.Push(c.history.Current().WithoutPrompt())
}

// Resolve fetches the prompt a location names. It returns nil without
// error when the location names none. Failures are logged.
func (c *Controller) Resolve(ctx context.Context, loc Location) (*models.Prompt, error) {
	id := loc.PromptID()
	if id == "" {
		return nil, nil
	}
	p, err := c.svc.GetPrompt(ctx, id)
	if err != nil {
		c.log.WithFields(map[string]any{"prompt_id": id.String()}).Error(err, "Error loading prompt")
		return nil, err
	}
	return p, nil
}

// Arrive applies a navigation to loc with its resolved prompt. The
// history is not touched.
func (c *Controller) Arrive(loc Location, p *models.Prompt) {
	c.state = Apply(c.state, NavigateEvent{Location: loc, Prompt: p})
}

// Start makes loc the initial location and derives the state from it. An
// unresolvable id leaves the view closed.
func (c *Controller) Start(ctx context.Context, loc Location) error {
	c.history = NewHistory(loc)
	p, err := c.Resolve(ctx, loc)
	c.Arrive(loc, p)
	return err
}

// Back moves back in history and re-derives the state.
func (c *Controller) Back(ctx context.Context) (bool, error) {
	loc, ok := c.history.Back()
	if !ok {
		return false, nil
	}
	p, err := c.Resolve(ctx, loc)
	c.Arrive(loc, p)
	return true, err
}

// Forward moves forward in history and re-derives the state.
func (c *Controller) Forward(ctx context.Context) (bool, error) {
	loc, ok := c.history.Forward()
	if !ok {
		return false, nil
	}
	p, err := c.Resolve(ctx, loc)
	c.Arrive(loc, p)
	return true, err
}

// Customize runs a customization of the open prompt end to end.
func (c *Controller) Customize(ctx context.Context) error {
	s, req, err := c.state.BeginCustomize()
	if err != nil {
		c.log.Error(err, "Customization error")
		c.state.Customize.Note = api.Message(err)
		return err
	}
	c.state = s
	text, err := c.svc.Customize(ctx, req)
	c.state = c.state.FinishCustomize(req.PromptID, text, err)
	return err
}

// Like runs a like of the open prompt end to end. The returned message is
// non-empty when the like failed.
func (c *Controller) Like(ctx context.Context) (string, error) {
	s, id, err := c.state.BeginLike()
	if err != nil {
		return err.Error(), err
	}
	c.state = s
	resp, err := c.svc.LikePrompt(ctx, id)
	if err != nil {
		c.log.WithFields(map[string]any{"prompt_id": id.String()}).Error(err, "Error liking prompt")
	}
	var msg string
	c.state, msg = c.state.FinishLike(id, resp, err)
	return msg, err
}
