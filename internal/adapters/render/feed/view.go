package feed

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/lensgraph-cli/internal/domain"
)

type RenderOptions struct {
	Now time.Time
}

// RenderSession renders the whoami view.
func RenderSession(session domain.Session) string {
	s := newStyles()

	if !session.Authenticated() {
		return s.empty.Render("Not logged in.")
	}

	lines := []string{
		s.title.Render("Session"),
		labelled(s, "status", string(session.Status)),
	}
	if session.Address != "" {
		lines = append(lines, labelled(s, "address", session.Address))
	}
	if session.ProfileID != "" {
		lines = append(lines, labelled(s, "profile", session.ProfileID))
	} else {
		lines = append(lines, s.warning.Render("profile: unknown (token carried no profile claim)"))
	}
	if session.Token != nil && !session.Token.ExpiresAt.IsZero() {
		lines = append(lines, labelled(s, "expires", session.Token.ExpiresAt.UTC().Format(time.RFC3339)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func RenderProfile(profile domain.Profile) string {
	s := newStyles()

	lines := []string{
		s.author.Render(profileTitle(profile)),
		labelled(s, "id", profile.ID),
	}
	if profile.Bio != "" {
		lines = append(lines, s.content.Render(profile.Bio))
	}
	lines = append(lines, s.meta.Render(fmt.Sprintf("%d followers · %d following", profile.Followers, profile.Following)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderFeed renders a handle's recent publications in the order supplied.
func RenderFeed(handle string, page domain.FeedPage, opts RenderOptions) string {
	s := newStyles()

	lines := []string{
		s.title.Render(fmt.Sprintf("Feed for %s", handle)),
		s.header.Render(fmt.Sprintf("posts: %d", len(page.Items))),
	}

	if len(page.Items) == 0 {
		lines = append(lines, s.empty.Render("No posts found for this profile."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, publication := range page.Items {
		lines = append(lines, s.section.Render(renderPublication(publication, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPublication(publication domain.Publication, opts RenderOptions, s styles) string {
	parts := []string{
		s.author.Render(publication.AuthorProfileID),
		s.content.Render(publication.Content),
		s.meta.Render(fmt.Sprintf("%s · %s", publication.ID, formatAge(publication.CreatedAt, opts.Now))),
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func profileTitle(profile domain.Profile) string {
	if profile.Name != "" {
		return fmt.Sprintf("%s (%s)", profile.Name, profile.Handle)
	}
	return profile.Handle
}

func labelled(s styles, label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(label+": "), s.value.Render(value))
}

func formatAge(createdAt, now time.Time) string {
	if createdAt.IsZero() || now.IsZero() || now.Before(createdAt) {
		return "just now"
	}

	age := now.Sub(createdAt)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}
