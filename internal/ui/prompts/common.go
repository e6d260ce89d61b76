package prompts

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/huh"

	"github.com/hance08/payledger/internal/ui"
)

// PromptConfirm prompts for yes/no confirmation
func PromptConfirm(message string, description string, defaultValue bool) (bool, error) {
	confirm := defaultValue

	err := huh.NewConfirm().
		Title(message).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()

	return confirm, err
}

// PromptConfirmLine asks the same yes/no question as PromptConfirm with a
// single-line survey prompt, for terminals the full-screen form cannot drive.
// Ctrl-C returns terminal.InterruptErr.
func PromptConfirmLine(message string, description string, defaultValue bool, opts ...survey.AskOpt) (bool, error) {
	confirm := defaultValue

	prompt := &survey.Confirm{
		Message: message,
		Help:    description,
		Default: defaultValue,
	}
	opts = append([]survey.AskOpt{ui.IconOption()}, opts...)
	err := survey.AskOne(prompt, &confirm, opts...)

	return confirm, err
}
