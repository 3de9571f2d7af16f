// Package prompt provides interactive confirmation prompts for modctl.
package prompt

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("aborted by user")

// Confirm asks the user a yes/no question. It returns true when the user
// answers yes, false when the user answers no, and ErrAborted when the
// prompt is interrupted.
func Confirm(label string) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, ErrAborted
		}
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ConfirmWithForce skips the prompt entirely when force is set.
func ConfirmWithForce(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label)
}

// IsAborted reports whether err came from an interrupted prompt.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}
