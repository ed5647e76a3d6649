package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/dcm/internal/onprem/view"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when the user cancels a form.
var ErrAborted = errors.New("aborted by user")

// ErrDeleteAborted is returned when a user cancels the delete flow.
var ErrDeleteAborted = errors.New("provider deletion aborted by user")

// ConfirmDeleteForm shows the provider summary and asks for confirmation.
// It returns ErrDeleteAborted unless the user confirms.
func ConfirmDeleteForm(s *view.Summary) error {
	accessible := os.Getenv("ACCESSIBLE") != ""

	summaryNote := huh.NewNote().
		Title("Provider configuration").
		Description(deleteSummary(s))

	confirm := false
	confirmField := huh.NewConfirm().
		Title(DeleteConfirmText).
		Affirmative("Yes, delete").
		Negative("Cancel").
		Value(&confirm)

	if err := runForm(accessible, huh.NewGroup(summaryNote, confirmField)); err != nil {
		if errors.Is(err, ErrAborted) {
			return ErrDeleteAborted
		}
		return err
	}
	if !confirm {
		return ErrDeleteAborted
	}
	return nil
}

func deleteSummary(s *view.Summary) string {
	lines := []string{
		fmt.Sprintf("Name:       %s", s.ProviderName),
		fmt.Sprintf("UUID:       %s", s.ProviderUUID),
		fmt.Sprintf("Key pairs:  %s", s.KeyPairs),
		fmt.Sprintf("Nodes:      %d", s.NodeCount),
	}
	names := make([]string, 0, len(s.Regions))
	for _, r := range s.Regions {
		names = append(names, r.Name)
	}
	if len(names) > 0 {
		lines = append(lines, fmt.Sprintf("Regions:    %s", strings.Join(names, ", ")))
	}
	return strings.Join(lines, "\n")
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// WithSpinner runs action behind a spinner on stderr. Cancelling the
// spinner returns ErrAborted.
func WithSpinner(title string, action func(ctx context.Context) error) error {
	err := spinner.New().
		Title(title).
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(os.Stderr).
		ActionWithErr(action).
		Run()
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return ErrAborted
	}
	return err
}
