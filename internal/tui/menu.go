// Package tui is the interactive menu: record a route, replay one of
// the sample readouts, or type a description by hand.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Action is a menu selection.
type Action string

const (
	ActionRecord Action = "record"
	ActionSample Action = "sample"
	ActionCustom Action = "custom"
	ActionExit   Action = "exit"
)

// Choice is one pass through the menu. SampleText is set only for
// ActionSample.
type Choice struct {
	Action     Action
	SampleText string
}

// Sample is a canned route readout for trying the parser without a
// microphone.
type Sample struct {
	Name string
	Text string
}

func Samples() []Sample {
	return []Sample{
		{
			Name: "Full route (IA-9 to B62)",
			Text: "START ON IA-9 EB AT A10 INTERSECTION LYON IOWA STATE BORDER OF SOUTH DAKOTA, " +
				"US-75 SB, IA-9 EB IN ROCK RAPIDS AT N UNION ST, US-59 SB, US-18 EB IN SANBORN AT EASTERN ST, " +
				"IA-4 SB IN EMMETSBURG AT BROADWAY, IA-3 EB, US-69 NB, " +
				"END ON B62 WB AT QUAIL AVE INTERSECTION HANCOCK IOWA",
		},
		{
			Name: "Short route (US-75 to B62)",
			Text: "START ON US-75 SB AT A10 INTERSECTION LYON IOWA, IA-9 EB, " +
				"END ON B62 WB AT QUAIL AVE INTERSECTION HANCOCK IOWA",
		},
	}
}

// Menu shows the main menu and returns the user's choice. Esc or
// ctrl-c maps to ActionExit.
func Menu() (Choice, error) {
	var selected Action
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Title("Route Voice").
				Description("↑/↓ navigate • enter select • esc quit").
				Options(
					huh.NewOption("Record a route description", ActionRecord),
					huh.NewOption("Parse a sample route", ActionSample),
					huh.NewOption("Type a route description", ActionCustom),
					huh.NewOption("Exit", ActionExit),
				).
				Value(&selected),
		),
	).WithTheme(theme())

	if err := form.Run(); err != nil {
		if isAbort(err) {
			return Choice{Action: ActionExit}, nil
		}
		return Choice{}, err
	}

	if selected != ActionSample {
		return Choice{Action: selected}, nil
	}

	text, err := pickSample()
	if err != nil {
		if isAbort(err) {
			return Choice{Action: ActionExit}, nil
		}
		return Choice{}, err
	}
	return Choice{Action: ActionSample, SampleText: text}, nil
}

func pickSample() (string, error) {
	samples := Samples()
	options := make([]huh.Option[string], len(samples))
	for i, s := range samples {
		options[i] = huh.NewOption(s.Name, s.Text)
	}

	var text string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sample routes").
				Options(options...).
				Value(&text),
		),
	).WithTheme(theme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return text, nil
}

// CustomText prompts for a free-form route description.
func CustomText() (string, error) {
	var text string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Route description").
				Description("e.g. START ON IA-9 EB AT A10 INTERSECTION...").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("enter a route description")
					}
					return nil
				}).
				Value(&text),
		),
	).WithTheme(theme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func isAbort(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}

func theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	return t
}
