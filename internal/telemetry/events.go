package telemetry

// Event names. Properties never include task titles or input text.
const (
	EventFlowCompleted = "flow_completed"
	EventCommand       = "command_executed"
)

// Flow outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeEmpty        = "empty"
	OutcomePrecondition = "precondition"
	OutcomeBusy         = "busy"
	OutcomeFailure      = "failure"
)

// FlowProps builds the properties of a flow_completed event.
func FlowProps(flow, outcome string, count int) Properties {
	return Properties{
		"flow":    flow,
		"outcome": outcome,
		"count":   count,
	}
}
