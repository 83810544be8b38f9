package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/zaalplan/internal/planner"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

// savedMsg is sent when a gesture or form stored a screening.
type savedMsg struct {
	outcome *planner.Outcome
}

// draftMsg is sent when a gesture needs manual entry.
type draftMsg struct {
	draft screening.Draft
}

// deletedMsg is sent when a screening was removed.
type deletedMsg struct {
	screening *screening.Screening
}

// loadedMsg is sent when the snapshot was reloaded from the store.
type loadedMsg struct{}

// errMsg is sent when an operation failed.
type errMsg struct {
	err error
}

func placeCmd(p *planner.Planner, t planner.Target, film string) tea.Cmd {
	return func() tea.Msg {
		out, err := p.HandleDoubleClick(context.Background(), t, film)
		if err != nil {
			return errMsg{err: err}
		}
		if out.Draft != nil {
			return draftMsg{draft: *out.Draft}
		}
		return savedMsg{outcome: out}
	}
}

func dropCmd(p *planner.Planner, t planner.Target, id string) tea.Cmd {
	return func() tea.Msg {
		out, err := p.HandleDrop(context.Background(), t, planner.Drop{ScreeningID: id})
		if err != nil {
			return errMsg{err: err}
		}
		return savedMsg{outcome: out}
	}
}

func createCmd(p *planner.Planner, d screening.Draft) tea.Cmd {
	return func() tea.Msg {
		s, err := p.Create(context.Background(), d)
		if err != nil {
			return errMsg{err: err}
		}
		return savedMsg{outcome: &planner.Outcome{Screening: s, Created: true, Conflicts: p.Conflicts(s)}}
	}
}

func updateCmd(p *planner.Planner, id string, patch screening.Patch) tea.Cmd {
	return func() tea.Msg {
		s, err := p.Update(context.Background(), id, patch)
		if err != nil {
			return errMsg{err: err}
		}
		return savedMsg{outcome: &planner.Outcome{Screening: s, Conflicts: p.Conflicts(s)}}
	}
}

func deleteCmd(p *planner.Planner, s *screening.Screening) tea.Cmd {
	return func() tea.Msg {
		if err := p.Delete(context.Background(), s.ID); err != nil {
			return errMsg{err: err}
		}
		return deletedMsg{screening: s}
	}
}

func reloadCmd(p *planner.Planner) tea.Cmd {
	return func() tea.Msg {
		if err := p.Load(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return loadedMsg{}
	}
}
