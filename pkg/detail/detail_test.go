package detail

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/promptcat/pkg/api"
	"github.com/pluqqy/promptcat/pkg/models"
)

const pageURL = "https://prompt.example.com/"

func newController(t *testing.T) *Controller {
	t.Helper()
	return NewController(api.NewSeededCatalog(), MustParseLocation(pageURL), nil)
}

func mustGet(t *testing.T, svc api.Service, id models.PromptID) models.Prompt {
	t.Helper()
	p, err := svc.GetPrompt(context.Background(), id)
	require.NoError(t, err)
	return *p
}

func TestLocation(t *testing.T) {
	home := MustParseLocation(pageURL + "?ref=x")
	assert.False(t, home.HasPrompt())

	open := home.WithPrompt("42")
	assert.Equal(t, models.PromptID("42"), open.PromptID())
	assert.Equal(t, "https://prompt.example.com/?prompt_id=42&ref=x", open.String())

	closed := open.WithoutPrompt()
	assert.False(t, closed.HasPrompt())
	assert.Equal(t, "https://prompt.example.com/?ref=x", closed.String())

	_, err := ParseLocation("/relative")
	assert.Error(t, err)
}

func TestResolveArg(t *testing.T) {
	base := MustParseLocation(pageURL)

	loc, err := ResolveArg(base, "7")
	require.NoError(t, err)
	assert.Equal(t, models.PromptID("7"), loc.PromptID())

	loc, err = ResolveArg(base, "https://other.example.com/?prompt_id=9")
	require.NoError(t, err)
	assert.Equal(t, models.PromptID("9"), loc.PromptID())

	_, err = ResolveArg(base, "https://other.example.com/")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestHistory(t *testing.T) {
	a := MustParseLocation(pageURL)
	h := NewHistory(a)
	h.Push(a.WithPrompt("1"))
	h.Push(a.WithPrompt("2"))

	loc, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, models.PromptID("1"), loc.PromptID())

	h.Push(a.WithPrompt("3"))
	assert.False(t, h.CanForward(), "push drops forward entries")
	assert.Equal(t, 3, h.Len())

	h.Back()
	h.Back()
	_, ok = h.Back()
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	p := models.Prompt{ID: "5", Name: "Five", Text: "body", LikeCount: 2, IsLiked: true}
	loc := MustParseLocation(pageURL)

	s := Apply(State{}, OpenEvent{Prompt: p})
	assert.True(t, s.IsOpen())
	assert.Equal(t, "body", s.Text)
	assert.False(t, s.Like.Enabled(), "already liked prompt opens disabled")
	assert.Equal(t, 2, s.Like.Count)

	s = Apply(s, CloseEvent{})
	assert.False(t, s.IsOpen())

	s = Apply(s, NavigateEvent{Location: loc.WithPrompt("5"), Prompt: &p})
	assert.True(t, s.IsOpen())

	s = Apply(s, NavigateEvent{Location: loc.WithPrompt("5"), Prompt: nil})
	assert.Equal(t, Closed, s.Phase)

	s = Apply(s, NavigateEvent{Location: loc, Prompt: &p})
	assert.Equal(t, Closed, s.Phase, "location without id closes")
}

func TestOpenCloseAndBack(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	p := mustGet(t, c.svc, "3")

	c.Open(p)
	assert.Equal(t, models.PromptID("3"), c.Location().PromptID())
	assert.True(t, c.State().IsOpen())

	c.Close()
	assert.False(t, c.Location().HasPrompt())
	assert.False(t, c.State().IsOpen())

	moved, err := c.Back(ctx)
	require.NoError(t, err)
	require.True(t, moved)
	require.True(t, c.State().IsOpen())
	assert.Equal(t, models.PromptID("3"), c.State().Prompt.ID)

	moved, err = c.Back(ctx)
	require.NoError(t, err)
	require.True(t, moved)
	assert.False(t, c.State().IsOpen())

	moved, err = c.Forward(ctx)
	require.NoError(t, err)
	require.True(t, moved)
	assert.True(t, c.State().IsOpen())
}

func TestStart(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	base := MustParseLocation(pageURL)

	require.NoError(t, c.Start(ctx, base.WithPrompt("4")))
	assert.True(t, c.State().IsOpen())

	err := c.Start(ctx, base.WithPrompt("missing"))
	assert.True(t, api.IsNotFound(err))
	assert.False(t, c.State().IsOpen())

	require.NoError(t, c.Start(ctx, base))
	assert.False(t, c.State().IsOpen())
}

func TestCustomizationBounds(t *testing.T) {
	s := Apply(State{}, OpenEvent{Prompt: models.Prompt{ID: "1", Text: "orig"}})

	tests := []struct {
		n        int
		accepted bool
		enabled  bool
	}{
		{n: 9, accepted: true, enabled: false},
		{n: 10, accepted: true, enabled: true},
		{n: 1000, accepted: true, enabled: true},
		{n: 1001, accepted: false, enabled: false},
	}
	for _, tt := range tests {
		next, ok := s.SetInput(strings.Repeat("é", tt.n))
		assert.Equal(t, tt.accepted, ok, "length %d", tt.n)
		if ok {
			assert.Equal(t, tt.enabled, next.Customize.Enabled(), "length %d", tt.n)
		}
	}

	next, _ := s.SetInput("   short   ")
	assert.Equal(t, "5/1000 characters", next.Customize.Counter())
}

func TestCustomize(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	c.Open(mustGet(t, c.svc, "2"))

	s, ok := c.State().SetInput("make it about pirates")
	require.True(t, ok)
	c.SetState(s)

	require.NoError(t, c.Customize(ctx))
	got := c.State()
	assert.True(t, strings.HasSuffix(got.Text, "Customized with: make it about pirates"))
	assert.Equal(t, CustomizeSuccessNote, got.Customize.Note)
	assert.Empty(t, got.Customize.Input)
	assert.False(t, got.Customize.Busy)
	assert.Equal(t, CustomizeLabel, got.Customize.Label())
}

type failingCustomizer struct {
	api.Service
}

func (failingCustomizer) Customize(context.Context, models.CustomizationRequest) (string, error) {
	return "", errors.New("Invalid response from customization API")
}

func TestCustomizeFailureKeepsText(t *testing.T) {
	c := NewController(failingCustomizer{Service: api.NewSeededCatalog()}, MustParseLocation(pageURL), nil)
	c.Open(models.Prompt{ID: "2", Text: "original"})

	s, _ := c.State().SetInput("make it about pirates")
	s, req, err := s.BeginCustomize()
	require.NoError(t, err)
	assert.True(t, s.Customize.Busy)
	assert.Equal(t, CustomizeBusyLabel, s.Customize.Label())
	assert.False(t, s.Customize.Enabled())
	c.SetState(s.FinishCustomize(req.PromptID, "", errors.New("Invalid response from customization API")))

	got := c.State()
	assert.Equal(t, "original", got.Text)
	assert.False(t, got.Customize.Busy, "re-enabled after failure")
	assert.Contains(t, got.Customize.Note, "Invalid response from customization API")

	require.Error(t, c.Customize(context.Background()))
	assert.False(t, c.State().Customize.Busy)
}

func TestExpireNote(t *testing.T) {
	s := State{Customize: Customization{Note: CustomizeSuccessNote}}
	assert.Empty(t, s.ExpireNote().Customize.Note)

	s.Customize.Note = "Failed to customize prompt: timeout"
	assert.Equal(t, s.Customize.Note, s.ExpireNote().Customize.Note)
}

func TestLikeOnce(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	p := mustGet(t, c.svc, "1")
	c.Open(p)

	msg, err := c.Like(ctx)
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Equal(t, p.LikeCount+1, c.State().Like.Count)
	assert.True(t, c.State().Like.Liked)
	assert.Equal(t, "♥", c.State().Like.Icon())

	msg, err = c.Like(ctx)
	require.Error(t, err)
	assert.Equal(t, AlreadyLikedMessage, msg)
	assert.Equal(t, p.LikeCount+1, c.State().Like.Count)
	assert.False(t, c.State().Like.Enabled())
}

func TestFinishLike(t *testing.T) {
	s := Apply(State{}, OpenEvent{Prompt: models.Prompt{ID: "1", LikeCount: 4}})
	s, id, err := s.BeginLike()
	require.NoError(t, err)
	assert.False(t, s.Like.Enabled())

	unchanged, msg := s.FinishLike(id, &models.LikeResponse{Success: false}, nil)
	assert.Empty(t, msg)
	assert.Equal(t, 4, unchanged.Like.Count)
	assert.True(t, unchanged.Like.Enabled())

	failed, msg := s.FinishLike(id, nil, api.NewAPIError(400, "POST", "/prompts/1/like", ""))
	assert.Equal(t, "Failed to like prompt: Prompt Already Liked", msg)
	assert.Equal(t, 4, failed.Like.Count)

	stale, _ := s.FinishLike("other", &models.LikeResponse{Success: true}, nil)
	assert.Equal(t, 4, stale.Like.Count, "answer for another prompt is ignored")
}
