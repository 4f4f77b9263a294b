// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package command

// Success indicates a successful command execution.
const Success int = 0

// The following error group is intended for issues within the initial setup process of a command's execution.
const (
	// FlagParseError indicates that a command was unable to successfully parse the flags/arguments provided to it.
	FlagParseError int = iota + 16

	// ConfigError indicates that there was an error in the hcensor configuration.
	ConfigError

	// InputError is returned when the text to censor cannot be read; e.g. a missing input file.
	InputError

	// OutputError indicates an error writing the censored output or the run summary.
	OutputError
)

// The following error group is intended for issues with the Filter.
const (
	// FilterSetupError is returned when the filter cannot be built from the resolved configuration.
	FilterSetupError int = iota + 32

	// FilterExecutionError is returned when the filter returns an error while censoring input.
	FilterExecutionError
)
