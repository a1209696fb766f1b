package service

import "errors"

var (
	// ErrUnknownStrategy is returned when an explicit strategy name does not
	// match any registered strategy.
	ErrUnknownStrategy = errors.New("unknown segmentation strategy")

	// ErrNoMasks is returned when a strategy ran without error but produced
	// no masks. The dispatcher treats it like any other failure.
	ErrNoMasks = errors.New("no masks generated")

	// ErrPromptsRequired is returned when the prompt strategy is invoked
	// without point or box prompts.
	ErrPromptsRequired = errors.New("point or box prompts are required")
)
