// Package share builds social sharing links for a prompt and copies
// prompt content to the system clipboard.
package share

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// Copy feedback texts.
const (
	CopiedMessage     = "Copied!"
	CopyFailedMessage = "Failed to copy"
)

// Channel is a sharing destination.
type Channel string

const (
	Email      Channel = "email"
	Twitter    Channel = "twitter"
	LinkedIn   Channel = "linkedin"
	CopyLink   Channel = "copy"
	CopyPrompt Channel = "copy-prompt"
)

const (
	twitterURL  = "https://twitter.com/intent/tweet"
	linkedInURL = "https://www.linkedin.com/sharing/share-offsite/"
)

// Channels lists every channel in menu order.
func Channels() []Channel {
	return []Channel{Email, Twitter, LinkedIn, CopyLink, CopyPrompt}
}

// ParseChannel maps a flag value to a channel.
func ParseChannel(s string) (Channel, error) {
	c := Channel(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Channels() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown share channel %q (want email, twitter, linkedin, copy or copy-prompt)", s)
}

// Label returns the menu text for the channel.
func (c Channel) Label() string {
	switch c {
	case Email:
		return "Email"
	case Twitter:
		return "Twitter"
	case LinkedIn:
		return "LinkedIn"
	case CopyLink:
		return "Copy link"
	case CopyPrompt:
		return "Copy prompt"
	default:
		return string(c)
	}
}

// IsCopy reports whether the channel writes to the clipboard.
func (c Channel) IsCopy() bool {
	return c == CopyLink || c == CopyPrompt
}

// Target is what gets shared.
type Target struct {
	Title   string
	Text    string
	PageURL string
}

// encodeComponent percent-encodes s for use inside a URL query, with
// spaces as %20 so mail clients decode them.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// EmailLink returns a mailto link carrying the title and prompt text.
func EmailLink(t Target) string {
	return "mailto:?subject=" + encodeComponent(t.Title) + "&body=" + encodeComponent(t.Text)
}

// TwitterLink returns a tweet intent for the title and page URL.
func TwitterLink(t Target) string {
	return twitterURL + "?text=" + encodeComponent(t.Title) + "&url=" + encodeComponent(t.PageURL)
}

// LinkedInLink returns a LinkedIn share link for the page URL.
func LinkedInLink(t Target) string {
	return linkedInURL + "?url=" + encodeComponent(t.PageURL)
}

// Link returns the link for a link channel.
func Link(c Channel, t Target) (string, error) {
	switch c {
	case Email:
		return EmailLink(t), nil
	case Twitter:
		return TwitterLink(t), nil
	case LinkedIn:
		return LinkedInLink(t), nil
	default:
		return "", fmt.Errorf("channel %q has no link", c)
	}
}

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

// WriteAll writes text to the OS clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Copy writes the page URL (CopyLink) or the prompt text (CopyPrompt) and
// returns the feedback text to show.
func Copy(cb Clipboard, c Channel, t Target) (string, error) {
	var content string
	switch c {
	case CopyLink:
		content = t.PageURL
	case CopyPrompt:
		content = t.Text
	default:
		return CopyFailedMessage, fmt.Errorf("channel %q does not copy", c)
	}
	if err := cb.WriteAll(content); err != nil {
		return CopyFailedMessage, fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return CopiedMessage, nil
}

// Opener opens a link outside the process.
type Opener func(link string) error

// OpenInBrowser hands link to the platform's default handler.
func OpenInBrowser(link string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", link)
	case "linux":
		cmd = exec.Command("xdg-open", link)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
