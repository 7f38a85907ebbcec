package app

import "github.com/josephgoksu/FocusFlow/internal/assist"

// User-facing messages.
const (
	AddFailedMessage          = "Something went wrong while adding the task. Please check the database connection."
	InvalidTaskMessage        = "The task could not be saved: it needs a title and a valid priority."
	ExpandPreconditionMessage = "Enter today's theme or main goal and the AI will build your schedule!"
	ExpandEmptyMessage        = "The AI could not generate anything. Try describing the theme in more detail."
	ExpandFailedMessage       = "Communication with the AI server failed. Please try again shortly."
	ExpandNotSavedMessage     = "The schedule was generated, but saving it failed."
	ExpandedMessageFormat     = "Added %d tasks to your list."
	NothingInProgressMessage  = "No tasks in progress. Shall we set a new goal?"
	AdviceEmptyMessage        = "Focus and solve them one by one!"
	AdvisoryFailureMessage    = assist.FailureMessage
	UpdateFailedMessage       = "Could not update the task. Please try again."
	DeleteFailedMessage       = "Could not delete the task. Please try again."
)
