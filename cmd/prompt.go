package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/manifoldco/promptui"
)

// promptColumns is replaced in tests.
var promptColumns = selectColumns

// selectColumns asks the user to pick target columns from the header.
func selectColumns(header []string) ([]string, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("no columns found in header")
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message: "Select columns to transform:",
		Options: header,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, fmt.Errorf("column selection failed: %w", err)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no columns selected")
	}
	return selected, nil
}

// confirmOverwrite asks whether an existing output file may be replaced.
func confirmOverwrite(path string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Overwrite %s", path),
		IsConfirm: true,
	}

	_, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("overwrite confirmation failed: %w", err)
	}
	return true, nil
}
