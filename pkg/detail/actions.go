package detail

import (
	"fmt"
	"strings"

	"github.com/pluqqy/promptcat/pkg/api"
	"github.com/pluqqy/promptcat/pkg/models"
)

// User-facing action texts.
const (
	CustomizeLabel       = "Customize Prompt"
	CustomizeBusyLabel   = "Customizing..."
	CustomizeSuccessNote = "Prompt customized successfully!"
	AlreadyLikedMessage  = "Prompt Already Liked"
)

// Customization is the customization input and its busy flag.
type Customization struct {
	Input string
	Busy  bool
	// Note is a transient message: success or the last error.
	Note string
}

// Count returns the counted instruction length.
func (c Customization) Count() int {
	return models.CustomizationLength(c.Input)
}

// Counter returns the live length label, e.g. "12/1000 characters".
func (c Customization) Counter() string {
	return fmt.Sprintf("%d/%d characters", c.Count(), models.MaxCustomizationLength)
}

// Enabled reports whether the customize control accepts a submit.
func (c Customization) Enabled() bool {
	return !c.Busy && models.CustomizationLengthOK(c.Input)
}

// Label returns the customize control label.
func (c Customization) Label() string {
	if c.Busy {
		return CustomizeBusyLabel
	}
	return CustomizeLabel
}

// SetInput updates the instruction. Input past the maximum is refused and
// the previous value kept.
func (s State) SetInput(input string) (State, bool) {
	if models.CustomizationLength(input) > models.MaxCustomizationLength {
		return s, false
	}
	s.Customize.Input = input
	return s, true
}

// BeginCustomize validates the input and marks the control busy. The
// returned request is what to send to the service.
func (s State) BeginCustomize() (State, models.CustomizationRequest, error) {
	if !s.IsOpen() {
		return s, models.CustomizationRequest{}, models.NewValidationError("prompt_id", "prompt ID not found", nil)
	}
	if s.Customize.Busy {
		return s, models.CustomizationRequest{}, fmt.Errorf("customization already in progress")
	}
	req := models.CustomizationRequest{PromptID: s.Prompt.ID, Message: strings.TrimSpace(s.Customize.Input)}
	if err := models.ValidateCustomization(req); err != nil {
		return s, req, err
	}
	s.Customize.Busy = true
	s.Customize.Note = ""
	return s, req, nil
}

// FinishCustomize records the service result. On success the displayed
// text is replaced and the input cleared; on failure the text is kept.
// Either way the control is no longer busy.
func (s State) FinishCustomize(id models.PromptID, text string, err error) State {
	if !s.IsOpen() || s.Prompt.ID != id {
		// the user moved on while the call was in flight
		return s
	}
	s.Customize.Busy = false
	if err != nil {
		s.Customize.Note = "Failed to customize prompt: " + api.Message(err)
		return s
	}
	s.Text = text
	s.Customize.Input = ""
	s.Customize.Note = CustomizeSuccessNote
	return s
}

// ExpireNote removes the success note once it has been on screen long
// enough. Error notes stay until the next attempt.
func (s State) ExpireNote() State {
	if s.Customize.Note == CustomizeSuccessNote {
		s.Customize.Note = ""
	}
	return s
}

// Like is the like control. Once liked it stays disabled for the life of
// the view.
type Like struct {
	Count   int
	Liked   bool
	Pending bool
}

// NewLike initializes the control from a prompt.
func NewLike(p models.Prompt) Like {
	return Like{Count: p.LikeCount, Liked: p.IsLiked}
}

// Enabled reports whether a like can be sent.
func (l Like) Enabled() bool {
	return !l.Liked && !l.Pending
}

// Icon returns the heart shown next to the count.
func (l Like) Icon() string {
	if l.Liked {
		return "♥"
	}
	return "♡"
}

// BeginLike marks a like in flight. It fails when the control is disabled.
func (s State) BeginLike() (State, models.PromptID, error) {
	if !s.IsOpen() {
		return s, "", models.NewValidationError("prompt_id", "prompt ID not found", nil)
	}
	if !s.Like.Enabled() {
		return s, "", fmt.Errorf("%s", AlreadyLikedMessage)
	}
	s.Like.Pending = true
	return s, s.Prompt.ID, nil
}

// FinishLike records the service answer. Only success:true changes the
// count, by exactly one. The returned message is non-empty on failure.
func (s State) FinishLike(id models.PromptID, resp *models.LikeResponse, err error) (State, string) {
	if !s.IsOpen() || s.Prompt.ID != id {
		return s, ""
	}
	s.Like.Pending = false
	if err != nil {
		msg := api.Message(err)
		if msg == "" || msg == api.DefaultErrorMessage {
			msg = AlreadyLikedMessage
		}
		return s, "Failed to like prompt: " + msg
	}
	if resp == nil || !resp.Success {
		return s, ""
	}
	s.Like.Count++
	s.Like.Liked = true
	return s, ""
}
