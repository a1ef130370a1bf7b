package detail

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pluqqy/promptcat/pkg/models"
)

// PromptIDParam is the query parameter that names the open prompt.
const PromptIDParam = "prompt_id"

// Location is the shareable page address. Its prompt_id parameter is the
// only client state it carries.
type Location struct {
	u url.URL
}

// ParseLocation parses an absolute page URL.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, fmt.Errorf("invalid page URL %q: %w", raw, err)
	}
	if !u.IsAbs() {
		return Location{}, fmt.Errorf("page URL %q must be absolute", raw)
	}
	return Location{u: *u}, nil
}

// MustParseLocation is ParseLocation for known-good constants.
func MustParseLocation(raw string) Location {
	loc, err := ParseLocation(raw)
	if err != nil {
		panic(err)
	}
	return loc
}

// PromptID returns the prompt named by the location, or "".
func (l Location) PromptID() models.PromptID {
	return models.PromptID(strings.TrimSpace(l.u.Query().Get(PromptIDParam)))
}

// HasPrompt reports whether the location names a prompt.
func (l Location) HasPrompt() bool {
	return l.PromptID() != ""
}

// WithPrompt returns the location naming id. Other parameters are kept.
func (l Location) WithPrompt(id models.PromptID) Location {
	q := l.u.Query()
	q.Set(PromptIDParam, id.String())
	u := l.u
	u.RawQuery = q.Encode()
	return Location{u: u}
}

// WithoutPrompt returns the location with no prompt named.
func (l Location) WithoutPrompt() Location {
	q := l.u.Query()
	q.Del(PromptIDParam)
	u := l.u
	u.RawQuery = q.Encode()
	return Location{u: u}
}

func (l Location) String() string {
	return l.u.String()
}

// ResolveArg interprets a command-line argument naming a prompt: either a
// page URL carrying prompt_id or a bare id, which is placed on base.
func ResolveArg(base Location, arg string) (Location, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return base.WithoutPrompt(), nil
	}
	if strings.Contains(arg, "://") {
		loc, err := ParseLocation(arg)
		if err != nil {
			return Location{}, err
		}
		if !loc.HasPrompt() {
			return Location{}, models.NewValidationError(PromptIDParam, "URL does not name a prompt", nil)
		}
		return loc, nil
	}
	return base.WithPrompt(models.PromptID(arg)), nil
}
